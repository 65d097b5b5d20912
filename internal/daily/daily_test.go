package daily

import (
	"testing"
	"time"

	"github.com/robalobadob/wordle/internal/words"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 1, 5, 0, 0, 0, loc)
	if got := DateKey(d); got != "2026-02-28" {
		t.Errorf("DateKey = %q, want 2026-02-28", got)
	}
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	a := WordIndex(day, "salt", 500)
	if a < 0 || a >= 500 {
		t.Fatalf("index %d out of range", a)
	}
	if b := WordIndex(later, "salt", 500); b != a {
		t.Errorf("same day gave %d and %d", a, b)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Error("empty list should map to 0")
	}

	differs := false
	for i := 1; i <= 30 && !differs; i++ {
		differs = WordIndex(day.AddDate(0, 0, i), "salt", 500) != a
	}
	if !differs {
		t.Error("index never changed over 30 days")
	}
}

func TestSource_PinsDailyAnswer(t *testing.T) {
	l, err := words.New([]string{"crane", "speed", "askew", "trace", "erase"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	src := NewSource(day, "salt")

	first, err := l.DrawRandomAnswer(src)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if w, _ := l.DrawRandomAnswer(src); w != first {
			t.Fatalf("daily draw changed: %s then %s", first, w)
		}
	}
	if want := l.Answers()[WordIndex(day, "salt", 5)]; first != want {
		t.Errorf("draw = %s, want %s", first, want)
	}
}
