package idgen

import (
	"testing"
	"time"
)

func TestULID_MonotonicWithinSameMillisecond(t *testing.T) {
	g := ULID()
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	prev := g.NewULID(now)
	for i := 0; i < 100; i++ {
		next := g.NewULID(now)
		if next <= prev {
			t.Fatalf("ulid not increasing: %s <= %s", next, prev)
		}
		if !Valid(next) {
			t.Fatalf("invalid ulid %s", next)
		}
		prev = next
	}
}

func TestValid(t *testing.T) {
	if Valid("not-a-ulid") {
		t.Fatalf("expected invalid")
	}
}
