package trainer

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

//go:embed words.txt
var defaultWords string

// DefaultWords returns the built-in practice list.
func DefaultWords() []string {
	words, _ := ParseWords(strings.NewReader(defaultWords))
	return words
}

// LoadWords reads a flat word list, one word per line.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ParseWords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return words, nil
}

// ParseWords lowercases and trims each line, dropping blanks and duplicates.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lo.Uniq(words), nil
}

// FilterWords keeps the words no longer than maxLen characters.
func FilterWords(words []string, maxLen int) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) <= maxLen
	})
}
