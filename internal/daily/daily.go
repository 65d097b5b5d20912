// internal/daily/daily.go
//
// Daily answers: every player gets the same answer on a given UTC date.
// The index is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the answer
// count, exposed as a words.Source so a daily game is an ordinary engine
// with a pinned entropy source.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Source yields the day's index for whatever answer count it is asked about.
type Source struct {
	Date time.Time
	Salt string
}

// NewSource returns the source for the UTC day containing date.
func NewSource(date time.Time, salt string) Source {
	return Source{Date: date, Salt: salt}
}

// Intn implements words.Source.
func (s Source) Intn(n int) int {
	return WordIndex(s.Date, s.Salt, n)
}

var _ words.Source = Source{}
