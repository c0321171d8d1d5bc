package trainer

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/gigurra/mctrainer/cmd/morse/code"
	"github.com/gigurra/mctrainer/cmd/morse/synth"
)

var (
	ErrInvalidSettings = synth.ErrInvalidSettings
	ErrEmptyWordList   = errors.New("no word fits the maximum word length")
	ErrNoSession       = errors.New("no word selected")
)

// Settings are the user-tunable knobs of a training session.
type Settings struct {
	Speed         int     // bit units per second
	Frequency     float64 // carrier Hz
	MaxWordLength int
}

func DefaultSettings() Settings {
	return Settings{Speed: 13, Frequency: 800, MaxWordLength: 8}
}

func (s Settings) Params() synth.Params {
	return synth.Params{
		SampleRate: synth.DefaultSampleRate,
		Frequency:  s.Frequency,
		Speed:      s.Speed,
	}
}

func (s Settings) Validate() error {
	if err := s.Params().Validate(); err != nil {
		return err
	}
	if s.MaxWordLength < 0 {
		return fmt.Errorf("%w: max word length must be >= 0, got %d", ErrInvalidSettings, s.MaxWordLength)
	}
	return nil
}

// Rendering is a word ready to be played.
type Rendering struct {
	Word   string
	Bits   code.Bits
	Buffer synth.Buffer
}

// Pattern returns the word's dot/dash notation.
func (r Rendering) Pattern() string {
	return code.Patterns(r.Word)
}

// Render encodes and synthesizes a single word. Settings are checked before
// any work is done.
func Render(word string, s Settings) (Rendering, error) {
	if err := s.Validate(); err != nil {
		return Rendering{}, err
	}
	word = strings.ToLower(word)
	bits := code.Encode(word)
	buf, err := synth.Synthesize(bits, s.Params())
	if err != nil {
		return Rendering{}, fmt.Errorf("rendering %q: %w", word, err)
	}
	return Rendering{Word: word, Bits: bits, Buffer: buf}, nil
}

// PickAndRender chooses a random word no longer than s.MaxWordLength and
// renders it.
func PickAndRender(words []string, s Settings, rng *rand.Rand) (Rendering, error) {
	if err := s.Validate(); err != nil {
		return Rendering{}, err
	}
	candidates := FilterWords(words, s.MaxWordLength)
	if len(candidates) == 0 {
		return Rendering{}, fmt.Errorf("%w (max %d, %d words)", ErrEmptyWordList, s.MaxWordLength, len(words))
	}
	return Render(candidates[rng.Intn(len(candidates))], s)
}
