// Package share renders the spoiler-free result text players paste into chat.
//
//	3/6
//	⚪️🟢🟡🟡🟢
//	🟢🟢🟢🟢🟢
//
// The tiles come from the stored results, so repeated letters are shown
// exactly as they were scored.
package share

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/internal/game"
)

const (
	tileExact   = "🟢"
	tilePresent = "🟡"
	tileAbsent  = "⚪️"
)

// Text builds the share message. Lost games show "X" in place of the turn count.
// link is appended on its own line, as "Try it on: <link>", when non-empty.
func Text(st game.State, link string) string {
	var b strings.Builder
	turns := fmt.Sprint(len(st.History))
	if st.Status == game.Lost {
		turns = "X"
	}
	fmt.Fprintf(&b, "%s/%d\n", turns, st.MaxGuesses)
	for _, sg := range st.History {
		for _, r := range sg.Results {
			b.WriteString(tile(r))
		}
		b.WriteByte('\n')
	}
	if link != "" {
		b.WriteString("Try it on: ")
		b.WriteString(link)
	}
	return strings.TrimRight(b.String(), "\n")
}

func tile(r game.LetterResult) string {
	switch r {
	case game.Exact:
		return tileExact
	case game.Present:
		return tilePresent
	default:
		return tileAbsent
	}
}
