package code

import (
	"strings"
	"time"
)

// Bits is the tone-gate timeline: 1 means carrier on for one unit, 0 means silence.
type Bits []int

var (
	dotBits   = []int{0, 1}
	dashBits  = []int{0, 1, 1, 1}
	spaceBits = []int{0, 0}
	gapBits   = []int{0, 0}
)

// Encode converts text into a gate sequence. Characters missing from the
// symbol table contribute nothing except the letter gap that follows every
// character. Callers are expected to lowercase the text first.
func Encode(text string) Bits {
	bits := make(Bits, 0, EncodedLen(text))
	for _, r := range text {
		if p, ok := patterns[r]; ok {
			for _, sym := range p {
				bits = append(bits, symbolBits(sym)...)
			}
		}
		bits = append(bits, gapBits...)
	}
	return bits
}

// EncodedLen returns len(Encode(text)) without building the sequence.
func EncodedLen(text string) int {
	n := 0
	for _, r := range text {
		if p, ok := patterns[r]; ok {
			for _, sym := range p {
				n += len(symbolBits(sym))
			}
		}
		n += len(gapBits)
	}
	return n
}

func symbolBits(sym rune) []int {
	switch sym {
	case Dot:
		return dotBits
	case Dash:
		return dashBits
	default:
		return spaceBits
	}
}

// Patterns renders text as space separated patterns, e.g. "sos" -> "... ___ ...".
// Unsupported characters are dropped.
func Patterns(text string) string {
	var parts []string
	for _, r := range text {
		if r == Space {
			parts = append(parts, "/")
		} else if p, ok := patterns[r]; ok {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Duration is the playback length of the sequence at speed units per second.
func (b Bits) Duration(speed int) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(float64(len(b)) / float64(speed) * float64(time.Second))
}

// OnUnits counts the units where the carrier is audible.
func (b Bits) OnUnits() int {
	n := 0
	for _, v := range b {
		n += v
	}
	return n
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		if v == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}
