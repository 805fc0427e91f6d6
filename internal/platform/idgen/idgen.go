package idgen

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

type IDGen interface{ NewULID(t time.Time) string }

// ulidGen は同一ミリ秒内でも単調増加する ULID を払い出す
type ulidGen struct {
	mu      sync.Mutex
	entropy io.Reader
}

func ULID() IDGen {
	return &ulidGen{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ulidGen) NewULID(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// Valid は s が ULID として解釈できるか
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
