//go:build linux && !cgo

package player

import "time"

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries on Linux.
const AudioAvailable = false

// Speaker is a silent sink for builds without cgo. It keeps a read position
// so the trainer behaves the same, just without sound.
type Speaker struct {
	stream *PCMStream
	rate   int
}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Play(pcm []byte, sampleRate int) error {
	s.stream = NewPCMStream(pcm)
	s.rate = sampleRate
	return nil
}

func (s *Speaker) Pause() {}

func (s *Speaker) Resume() {}

func (s *Speaker) Stop() {
	s.stream = nil
}

func (s *Speaker) Offset() int {
	if s.stream == nil {
		return 0
	}
	return s.stream.ByteOffset()
}

func (s *Speaker) SeekTo(offset int) error {
	if s.stream == nil {
		return nil
	}
	return s.stream.SeekByte(offset)
}

// Wait sleeps for the length of the buffer.
func (s *Speaker) Wait() {
	if s.stream == nil || s.rate <= 0 {
		return
	}
	time.Sleep(time.Duration(float64(s.stream.Len()) / float64(s.rate) * float64(time.Second)))
}
