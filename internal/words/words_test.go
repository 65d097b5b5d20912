package words

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_NormalizesAndFilters(t *testing.T) {
	l, err := New(
		[]string{" crane ", "CRANE", "spe3d", "toolong", "Askew"},
		[]string{"trace", "tr", "erase"},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]Word{"CRANE", "ASKEW"}, l.Answers()); diff != "" {
		t.Errorf("answers (-want +got)\n%s", diff)
	}
	a, g := l.Stats()
	if a != 2 || g != 4 {
		t.Errorf("Stats() = %d, %d; want 2, 4", a, g)
	}
}

func TestNew_EmptyAnswerSet(t *testing.T) {
	if _, err := New(nil, []string{"crane"}); !errors.Is(err, ErrEmptyAnswerSet) {
		t.Errorf("err = %v, want ErrEmptyAnswerSet", err)
	}
	if _, err := New([]string{"xx", "12345"}, nil); !errors.Is(err, ErrEmptyAnswerSet) {
		t.Errorf("err = %v, want ErrEmptyAnswerSet", err)
	}
}

func TestIsAcceptedGuess(t *testing.T) {
	l, err := New([]string{"crane"}, []string{"trace"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   string
		want bool
	}{
		{"CRANE", true}, // answers are always accepted
		{"crane", true},
		{"TrAcE", true},
		{"erase", false},
		{"", false},
		{"cran", false},
		{"ſrane", false}, // U+017F folds to S under Unicode rules
		{"craNe\u0301", false},
	}
	for _, tc := range tests {
		for i := 0; i < 2; i++ {
			if got := l.IsAcceptedGuess(tc.in); got != tc.want {
				t.Errorf("IsAcceptedGuess(%q) call %d = %v, want %v", tc.in, i+1, got, tc.want)
			}
		}
	}
	if l.IsAnswer("trace") || !l.IsAnswer("Crane") {
		t.Error("IsAnswer mismatch")
	}
}

func TestNormalize_ASCIIOnly(t *testing.T) {
	tests := []struct {
		in   string
		want Word
		ok   bool
	}{
		{" speed\n", "SPEED", true},
		{"SpEeD", "SPEED", true},
		{"ſpeed", "", false},
		{"ｓpeed", "", false},
		{"spéed", "", false},
		{"spe d", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	l, err := New([]string{"speed", "ſpeed"}, []string{"ſrane"})
	if err != nil {
		t.Fatal(err)
	}
	if a, g := l.Stats(); a != 1 || g != 1 {
		t.Errorf("Stats() = %d, %d; want 1, 1", a, g)
	}
	if l.IsAnswer("ſpeed") {
		t.Error(`IsAnswer("ſpeed") = true`)
	}
}

func TestDrawRandomAnswer(t *testing.T) {
	l, err := New([]string{"crane", "speed", "askew"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := l.DrawRandomAnswer(FixedSource(4))
	if err != nil || got != "SPEED" {
		t.Errorf("DrawRandomAnswer(fixed 4) = %q, %v; want SPEED", got, err)
	}

	seen := map[Word]int{}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 300; i++ {
		w, err := l.DrawRandomAnswer(r)
		if err != nil {
			t.Fatal(err)
		}
		if !l.IsAnswer(string(w)) {
			t.Fatalf("drew non-answer %q", w)
		}
		seen[w]++
	}
	if len(seen) != 3 {
		t.Errorf("expected every answer to be drawn, got %v", seen)
	}

	if w, err := l.DrawRandomAnswer(NewCryptoSource()); err != nil || !l.IsAnswer(string(w)) {
		t.Errorf("crypto draw = %q, %v", w, err)
	}

	var empty *List
	if _, err := empty.DrawRandomAnswer(FixedSource(0)); !errors.Is(err, ErrEmptyAnswerSet) {
		t.Errorf("nil list err = %v", err)
	}
}

func TestLoad_Embedded(t *testing.T) {
	l, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, g := l.Stats()
	if a == 0 || g <= a {
		t.Errorf("Stats() = %d, %d", a, g)
	}
	for _, w := range l.Answers() {
		if !l.IsAcceptedGuess(string(w)) {
			t.Fatalf("answer %s not accepted", w)
		}
	}
	for _, w := range []string{"crane", "trace", "speed", "erase", "sassy"} {
		if !l.IsAcceptedGuess(w) {
			t.Errorf("%s missing from embedded lists", w)
		}
	}
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	ans := filepath.Join(dir, "answers.txt")
	all := filepath.Join(dir, "allowed.txt")
	if err := os.WriteFile(ans, []byte("# answers\ncrane speed\n\nbog\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(all, []byte("trace\nerase\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(ans, all)
	if err != nil {
		t.Fatalf("Load both: %v", err)
	}
	if diff := cmp.Diff([]Word{"CRANE", "SPEED"}, l.Answers()); diff != "" {
		t.Errorf("answers (-want +got)\n%s", diff)
	}
	if !l.IsAcceptedGuess("erase") {
		t.Error("allowed word not accepted")
	}

	l, err = Load("", all)
	if err != nil {
		t.Fatalf("Load allowed only: %v", err)
	}
	if diff := cmp.Diff([]Word{"TRACE", "ERASE"}, l.Answers()); diff != "" {
		t.Errorf("answers (-want +got)\n%s", diff)
	}

	if _, err := Load(filepath.Join(dir, "missing.txt"), all); err == nil {
		t.Error("expected error for missing file")
	}
}
