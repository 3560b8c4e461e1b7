// Package symbols reads observed symbol lists: the names a built artifact
// actually exports, as produced by nm or readelf and passed to symver on
// stdin or in a file. Input is tokenized into runs of word characters, so
// whitespace, commas and decoration all act as separators. Duplicates
// collapse to the first occurrence.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read scans r and returns the symbols found, in first-seen order with
// duplicates removed. An input with no word characters yields an empty
// list, not an error.
func Read(r io.Reader) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		for _, tok := range split(sc.Text()) {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}
	return out, nil
}

// ReadFile reads the symbol list at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// split breaks a line into runs of word characters.
func split(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
}
