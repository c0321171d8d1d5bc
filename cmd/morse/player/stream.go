// Package player plays rendered PCM buffers through the speaker and exports
// them as audio files.
package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// PCMStream implements beep.StreamSeeker over 16-bit little-endian mono PCM.
// The read position is a byte offset and may sit in the middle of a sample.
type PCMStream struct {
	mu       sync.Mutex
	data     []byte
	position int
}

func NewPCMStream(data []byte) *PCMStream {
	return &PCMStream{data: data}
}

func (s *PCMStream) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position+1 >= len(s.data) {
		return 0, false
	}

	for i := range samples {
		if s.position+1 >= len(s.data) {
			return i, true
		}
		v := int16(uint16(s.data[s.position]) | uint16(s.data[s.position+1])<<8)
		f := float64(v) / 32768.0
		samples[i][0] = f
		samples[i][1] = f
		s.position += 2
	}
	return len(samples), true
}

func (s *PCMStream) Err() error {
	return nil
}

// Len returns the number of samples.
func (s *PCMStream) Len() int {
	return len(s.data) / 2
}

// Position returns the current sample index.
func (s *PCMStream) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position / 2
}

// Seek moves to sample p.
func (s *PCMStream) Seek(p int) error {
	return s.SeekByte(p * 2)
}

// SeekByte moves to a raw byte offset, clamped to the buffer.
func (s *PCMStream) SeekByte(offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = max(0, min(offset, len(s.data)))
	return nil
}

// ByteOffset returns the current read position in bytes.
func (s *PCMStream) ByteOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

var _ beep.StreamSeeker = (*PCMStream)(nil)
