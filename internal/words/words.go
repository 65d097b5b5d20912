// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and accepted-guess lists from files or the embedded defaults.
//   - Keep set-backed lookups (answers only, answers ∪ guesses).
//   - Draw answers uniformly from an injected entropy Source.
//
// Word Lists:
//   - "answers":  words an answer may be drawn from.
//   - "accepted": valid guesses (always includes answers).
//
// Load behavior:
//  1. answersPath and allowedPath both set:
//     answers from the first, extra accepted guesses from the second.
//  2. Only allowedPath set:
//     that file is used for both answers and accepted guesses.
//  3. Neither set:
//     fall back to the embedded assets.
//
// Constraints:
//   - Words are exactly 5 letters A–Z; anything else is dropped on load.
//   - Lists are normalized to uppercase.
//   - A List is immutable once built and safe for concurrent readers.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/wordle/assets"
)

// Length is the number of letters in every guess and answer.
const Length = 5

// ErrEmptyAnswerSet is returned when no answer survives loading, or when
// drawing from an empty list. The game cannot start without answers.
var ErrEmptyAnswerSet = errors.New("words: answer set is empty")

// Word is a normalized (uppercase, 5 letter) word.
type Word string

// Source supplies entropy for answer selection. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// List is the read-only set of answers and accepted guesses.
type List struct {
	answers   []Word
	answerSet map[Word]struct{}
	accepted  map[Word]struct{} // answers ∪ allowed
}

// New builds a List. Invalid and duplicate entries are dropped, and every
// answer is added to the accepted set so an answer is always guessable.
func New(answers, allowed []string) (*List, error) {
	l := &List{
		answerSet: make(map[Word]struct{}, len(answers)),
		accepted:  make(map[Word]struct{}, len(answers)+len(allowed)),
	}
	for _, s := range answers {
		w, ok := Normalize(s)
		if !ok {
			continue
		}
		if _, dup := l.answerSet[w]; dup {
			continue
		}
		l.answerSet[w] = struct{}{}
		l.answers = append(l.answers, w)
		l.accepted[w] = struct{}{}
	}
	for _, s := range allowed {
		if w, ok := Normalize(s); ok {
			l.accepted[w] = struct{}{}
		}
	}
	if len(l.answers) == 0 {
		return nil, ErrEmptyAnswerSet
	}
	return l, nil
}

// Load reads word lists following the three cases described above.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}
	return New(ansList, allowList)
}

// readWordFile loads whitespace-separated words from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	out, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return out, nil
}

// Normalize trims and upper-cases s, reporting whether it is a valid Word.
func Normalize(s string) (Word, bool) {
	w, ok := UpperASCII(strings.TrimSpace(s))
	if !ok || len(w) != Length {
		return "", false
	}
	return Word(w), true
}

// UpperASCII upper-cases s, which must consist of ASCII letters only.
// Unicode case folding is not applied: "ſ" does not become "S".
func UpperASCII(s string) (string, bool) {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c
		default:
			return "", false
		}
	}
	return string(b), true
}

// IsAcceptedGuess reports whether w is a legal guess. Case-insensitive.
func (l *List) IsAcceptedGuess(w string) bool {
	u, ok := UpperASCII(w)
	if !ok {
		return false
	}
	_, ok = l.accepted[Word(u)]
	return ok
}

// IsAnswer reports whether w is in the answer pool. Case-insensitive.
func (l *List) IsAnswer(w string) bool {
	u, ok := UpperASCII(w)
	if !ok {
		return false
	}
	_, ok = l.answerSet[Word(u)]
	return ok
}

// DrawRandomAnswer picks an answer using src.
func (l *List) DrawRandomAnswer(src Source) (Word, error) {
	if l == nil || len(l.answers) == 0 {
		return "", ErrEmptyAnswerSet
	}
	return l.answers[src.Intn(len(l.answers))], nil
}

// Answers returns a copy of the answer pool in load order.
func (l *List) Answers() []Word {
	return append([]Word(nil), l.answers...)
}

// Stats returns counts of loaded words: (answers, accepted).
func (l *List) Stats() (answersCount int, acceptedCount int) {
	return len(l.answers), len(l.accepted)
}
