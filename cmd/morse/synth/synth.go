// Package synth renders a tone-gate bit sequence into 16-bit little-endian
// mono PCM.
package synth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gigurra/mctrainer/cmd/morse/code"
)

// DefaultSampleRate is the rate the trainer renders at.
const DefaultSampleRate = 8000

const maxAmplitude = 32767

var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrEmptySequence   = errors.New("empty bit sequence")
)

// Params controls rendering. Speed is in bit units per second.
type Params struct {
	SampleRate int
	Frequency  float64
	Speed      int
}

// Validate rejects parameters that would divide by zero during rendering.
func (p Params) Validate() error {
	switch {
	case p.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidSettings, p.SampleRate)
	case p.Speed <= 0:
		return fmt.Errorf("%w: speed must be > 0, got %d", ErrInvalidSettings, p.Speed)
	case p.Speed > p.SampleRate:
		return fmt.Errorf("%w: speed %d exceeds sample rate %d", ErrInvalidSettings, p.Speed, p.SampleRate)
	case math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) || p.Frequency <= 0:
		return fmt.Errorf("%w: frequency must be finite and > 0, got %v", ErrInvalidSettings, p.Frequency)
	}
	return nil
}

// Buffer is a rendered word. PCM holds one little-endian int16 per sample.
type Buffer struct {
	PCM        []byte
	SampleRate int
	// TotalTimeUnits is the duration in seconds times ten. The timeline uses
	// it as its tick interval in milliseconds, so 100 ticks span the word.
	TotalTimeUnits float64
}

// SampleCount is the number of 16-bit samples in PCM.
func (b Buffer) SampleCount() int {
	return len(b.PCM) / 2
}

// Duration is the playback length at SampleRate.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.SampleCount()) / float64(b.SampleRate) * float64(time.Second))
}

// Sample decodes sample i.
func (b Buffer) Sample(i int) int16 {
	return int16(uint16(b.PCM[2*i]) | uint16(b.PCM[2*i+1])<<8)
}

// Synthesize renders bits as a sine carrier gated on and off per bit. There is
// no envelope: the carrier phase runs continuously and the gate cuts it hard,
// which can click at transitions.
func Synthesize(bits code.Bits, params Params) (Buffer, error) {
	if err := params.Validate(); err != nil {
		return Buffer{}, err
	}
	if len(bits) == 0 {
		return Buffer{}, ErrEmptySequence
	}

	duration := float64(len(bits)) / float64(params.Speed)
	numSamples := int(math.Round(float64(params.SampleRate) * duration))
	samplesPerBit := params.SampleRate / params.Speed
	waveLength := float64(params.SampleRate) / params.Frequency

	pcm := make([]byte, 2*numSamples)
	for i := 0; i < numSamples; i++ {
		idx := min(i/samplesPerBit, len(bits)-1)
		s := math.Sin(2*math.Pi*float64(i)/waveLength) * float64(bits[idx])
		v := int(math.Round(s * maxAmplitude))
		pcm[2*i] = byte(v & 0xff)
		pcm[2*i+1] = byte((v >> 8) & 0xff)
	}

	return Buffer{
		PCM:            pcm,
		SampleRate:     params.SampleRate,
		TotalTimeUnits: duration * 10,
	}, nil
}
