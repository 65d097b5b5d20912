// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Draw an answer from the word list using an injected entropy source.
//   - Collect the in-progress guess one letter at a time.
//   - Validate and score submitted guesses (length, word list).
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - An Engine is owned by one session and is not safe for concurrent use.
//     Callers that share one (the HTTP store) serialize access themselves.
//   - Misuse (typing past five letters, deleting from an empty guess, typing
//     into a finished game) is a silent no-op so every call is always safe.
package game

import (
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle/internal/words"
)

// Engine holds the state of one game and the operations that change it.
type Engine struct {
	list *words.List
	src  words.Source

	answer     Word
	history    []ScoredGuess
	inProgress []byte
	status     Status
}

// New starts a game with an answer drawn from list using src.
func New(list *words.List, src words.Source) (*Engine, error) {
	e := &Engine{list: list, src: src}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewWithAnswer starts a game with a fixed answer. The answer must be an
// accepted guess so the game stays winnable. Later resets draw from src.
func NewWithAnswer(list *words.List, src words.Source, answer string) (*Engine, error) {
	w, ok := words.Normalize(answer)
	if !ok || !list.IsAcceptedGuess(string(w)) {
		return nil, ErrInvalidAnswer
	}
	e := &Engine{list: list, src: src}
	e.start(w)
	return e, nil
}

// Reset discards the current game and starts a new one with a fresh answer.
// If no answer can be drawn the current game is left as it was.
func (e *Engine) Reset() error {
	ans, err := e.list.DrawRandomAnswer(e.src)
	if err != nil {
		return err
	}
	e.start(ans)
	return nil
}

func (e *Engine) start(answer Word) {
	e.answer = answer
	e.history = make([]ScoredGuess, 0, MaxGuesses)
	e.inProgress = make([]byte, 0, WordLength)
	e.status = Playing
}

// AppendLetter adds l to the in-progress guess. Lowercase letters are
// upper-cased. It reports whether the letter was taken.
func (e *Engine) AppendLetter(l rune) bool {
	if e.status != Playing || len(e.inProgress) >= WordLength {
		return false
	}
	c, ok := normalizeLetter(l)
	if !ok {
		return false
	}
	e.inProgress = append(e.inProgress, byte(c))
	return true
}

// DeleteLastLetter removes the last in-progress letter, if any.
func (e *Engine) DeleteLastLetter() bool {
	if e.status != Playing || len(e.inProgress) == 0 {
		return false
	}
	e.inProgress = e.inProgress[:len(e.inProgress)-1]
	return true
}

// SubmitGuess scores the in-progress guess and records it.
//
// Failures (state unchanged, in-progress letters kept for correction):
//   - ErrGameOver if the game already ended.
//   - ErrGuessTooShort if fewer than WordLength letters were typed.
//   - ErrGuessNotInWordList if the word is not an accepted guess.
//
// A correct guess on the last turn counts as a win.
func (e *Engine) SubmitGuess() (ScoredGuess, error) {
	if e.status != Playing {
		return ScoredGuess{}, ErrGameOver
	}
	if len(e.inProgress) != WordLength {
		return ScoredGuess{}, ErrGuessTooShort
	}
	guess := Word(e.inProgress)
	if !e.list.IsAcceptedGuess(string(guess)) {
		return ScoredGuess{}, ErrGuessNotInWordList
	}

	sg := ScoredGuess{Word: guess, Results: Score(guess, e.answer)}
	e.history = append(e.history, sg)
	e.inProgress = e.inProgress[:0]

	if sg.Solved() {
		e.status = Won
	} else if len(e.history) >= MaxGuesses {
		e.status = Lost
	}
	return sg, nil
}

// Guess replaces the in-progress letters with word and submits it. On
// failure the previous in-progress letters are restored.
func (e *Engine) Guess(word string) (ScoredGuess, error) {
	if e.status != Playing {
		return ScoredGuess{}, ErrGameOver
	}
	raw := strings.TrimSpace(word)
	if utf8.RuneCountInString(raw) != WordLength {
		return ScoredGuess{}, ErrGuessTooShort
	}
	w, ok := words.UpperASCII(raw)
	if !ok {
		return ScoredGuess{}, ErrGuessNotInWordList
	}
	prev := e.inProgress
	e.inProgress = []byte(w)
	sg, err := e.SubmitGuess()
	if err != nil {
		e.inProgress = prev
	}
	return sg, err
}

// Key applies one on-screen keyboard key: "ENTER" submits, "DEL" or
// "BACKSPACE" deletes, a single letter is appended and anything else is
// ignored. A non-nil ScoredGuess is returned only when a guess was accepted.
func (e *Engine) Key(k string) (*ScoredGuess, error) {
	k = strings.TrimSpace(k)
	switch strings.ToUpper(k) {
	case "ENTER":
		sg, err := e.SubmitGuess()
		if err != nil {
			return nil, err
		}
		return &sg, nil
	case "DEL", "BACKSPACE":
		e.DeleteLastLetter()
		return nil, nil
	}
	if r := []rune(k); len(r) == 1 {
		e.AppendLetter(r[0])
	}
	return nil, nil
}

// Status reports the current status.
func (e *Engine) Status() Status { return e.status }

// InProgress returns the letters typed so far.
func (e *Engine) InProgress() string { return string(e.inProgress) }

// Answer returns the hidden answer. Presentation code should only reveal
// it once Status().Terminal() is true.
func (e *Engine) Answer() Word { return e.answer }

// History returns a copy of the scored guesses, oldest first.
func (e *Engine) History() []ScoredGuess {
	out := make([]ScoredGuess, len(e.history))
	for i, sg := range e.history {
		out[i] = ScoredGuess{Word: sg.Word, Results: append([]LetterResult(nil), sg.Results...)}
	}
	return out
}

// Snapshot returns a copy of the full state.
func (e *Engine) Snapshot() State {
	st := State{
		Status:     e.status,
		History:    e.History(),
		InProgress: e.InProgress(),
		MaxGuesses: MaxGuesses,
		WordLength: WordLength,
	}
	if e.status.Terminal() {
		st.Answer = e.answer
	}
	return st
}

// Score implements the two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches.
//   - Count the answer letters left over at non‑exact positions.
//
// Pass 2:
//   - For each non‑exact guess letter: if a leftover occurrence remains,
//     mark Present and consume it; otherwise mark Absent.
//
// Repeated letters are only credited as often as they occur in the answer.
// Both words must be WordLength uppercase letters.
func Score(guess, answer Word) []LetterResult {
	res := make([]LetterResult, WordLength)
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == answer[i] {
			res[i] = Exact
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == Exact {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'A' }

// normalizeLetter upper-cases a–z and rejects anything outside A–Z.
func normalizeLetter(r rune) (Letter, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return Letter(r), true
}
