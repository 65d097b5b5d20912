// assets/embed.go
//
// Embedded word lists shipped with the binary.
//   - answers.txt: the pool answers are drawn from.
//   - allowed.txt: extra accepted guesses (answers are always accepted too).
//
// Files hold whitespace-separated words; lines starting with "#" are comments.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadWords splits r into words, skipping blank and "#" lines.
// No case folding or length filtering happens here; the words package owns
// validation.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// AnswersList returns the embedded answer pool.
func AnswersList() ([]string, error) {
	return readEmbedded("answers.txt")
}

// AllowedList returns the embedded extra-guess list.
func AllowedList() ([]string, error) {
	return readEmbedded("allowed.txt")
}
