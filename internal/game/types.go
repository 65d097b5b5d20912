// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - LetterResult: per-letter outcome of a scored guess (exact/present/absent).
//   - Status: coarse game state (playing/won/lost).
//   - ScoredGuess: an accepted guess paired with its results.
//   - State: read-only snapshot handed to presentation layers.

package game

import (
	"errors"

	"github.com/robalobadob/wordle/internal/words"
)

const (
	// WordLength is the number of letters in a guess.
	WordLength = words.Length
	// MaxGuesses is the number of turns before the game is lost.
	MaxGuesses = 6
)

// Word is an uppercase five-letter word.
type Word = words.Word

// Letter is a single uppercase letter A–Z.
type Letter byte

// LetterResult is the evaluation of one position in a guess.
// Possible values:
//   - "exact":   letter is in the answer at this position.
//   - "present": letter is in the answer elsewhere and still has uncredited occurrences.
//   - "absent":  no uncredited occurrence of the letter remains.
type LetterResult string

const (
	Exact   LetterResult = "exact"
	Present LetterResult = "present"
	Absent  LetterResult = "absent"
)

// Status is the game's position in its state machine.
// Playing is the only non-terminal status.
type Status string

const (
	Playing Status = "playing"
	Won     Status = "won"
	Lost    Status = "lost"
)

// Terminal reports whether no further moves are possible.
func (s Status) Terminal() bool { return s == Won || s == Lost }

// ScoredGuess is one turn: the submitted word and its index-aligned results.
type ScoredGuess struct {
	Word    Word           `json:"word"`
	Results []LetterResult `json:"results"`
}

// Solved reports whether every letter was Exact.
func (sg ScoredGuess) Solved() bool {
	if len(sg.Results) == 0 {
		return false
	}
	for _, r := range sg.Results {
		if r != Exact {
			return false
		}
	}
	return true
}

// State is a copy of a game's state. Answer is only filled in once the
// game has ended.
type State struct {
	Status     Status        `json:"status"`
	History    []ScoredGuess `json:"history"`
	InProgress string        `json:"inProgress"`
	Answer     Word          `json:"answer,omitempty"`
	MaxGuesses int           `json:"maxGuesses"`
	WordLength int           `json:"wordLength"`
}

// Submission errors. All leave the game untouched.
var (
	ErrGuessTooShort      = errors.New("guess too short")
	ErrGuessNotInWordList = errors.New("guess not in word list")
	ErrGameOver           = errors.New("game finished")
	ErrInvalidAnswer      = errors.New("answer is not an accepted word")
)
