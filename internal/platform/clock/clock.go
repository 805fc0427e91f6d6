package clock

import (
	"strings"
	"time"
)

// DateLayout は日付（DATE 列）の文字列表現
const DateLayout = "2006-01-02"

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func System() Clock { return realClock{} }

// Fixed は常に同じ時刻を返す（テスト・バッチの再実行用）
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f).UTC() }

// Today は c の現在時刻を UTC の 0 時に切り詰めた日付
func Today(c Clock) time.Time { return TruncateDay(c.Now()) }

func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate は "YYYY-MM-DD" を UTC の日付として解釈する
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }
