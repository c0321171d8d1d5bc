// Package code maps text to Morse patterns and to the tone-gate bit sequence
// that the synthesizer renders.
package code

import "sort"

const (
	Dot   = '.'
	Dash  = '_'
	Space = ' '
)

var patterns = map[rune]string{
	'a': "._", 'b': "_...", 'c': "_._.", 'd': "_..", 'e': ".",
	'f': ".._.", 'g': "__.", 'h': "....", 'i': "..", 'j': ".___",
	'k': "_._", 'l': "._..", 'm': "__", 'n': "_.", 'o': "___",
	'p': ".__.", 'q': "__._", 'r': "._.", 's': "...", 't': "_",
	'u': ".._", 'v': "..._", 'w': ".__", 'x': "_.._", 'y': "_.__",
	'z': "__..",
	' ': " ",
}

// Symbol is one entry of the symbol table.
type Symbol struct {
	Char    rune
	Pattern string
}

// Pattern returns the dot/dash pattern for r. Only lowercase letters and the
// space character are present.
func Pattern(r rune) (string, bool) {
	p, ok := patterns[r]
	return p, ok
}

// Supported reports whether r produces any tone or gap of its own.
func Supported(r rune) bool {
	_, ok := patterns[r]
	return ok
}

// Symbols returns the whole table ordered by character.
func Symbols() []Symbol {
	out := make([]Symbol, 0, len(patterns))
	for r, p := range patterns {
		out = append(out, Symbol{Char: r, Pattern: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}
