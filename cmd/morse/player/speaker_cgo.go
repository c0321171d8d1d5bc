//go:build (linux && cgo) || windows || darwin

package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// Speaker plays one buffer at a time on the system audio device.
type Speaker struct {
	mu sync.Mutex

	sampleRate beep.SampleRate // rate the speaker was initialized with, 0 if not yet
	stream     *PCMStream
	ctrl       *beep.Ctrl
	done       chan struct{}
}

// NewSpeaker creates a speaker sink. The device is opened on first Play.
func NewSpeaker() *Speaker {
	return &Speaker{}
}

// initLocked opens the device at rate if not already done.
func (s *Speaker) initLocked(rate beep.SampleRate) error {
	if s.sampleRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	s.sampleRate = rate
	return nil
}

// Play starts pcm from the beginning, replacing whatever was playing.
func (s *Speaker) Play(pcm []byte, sampleRate int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if err := s.initLocked(beep.SampleRate(sampleRate)); err != nil {
		return err
	}

	s.stream = NewPCMStream(pcm)
	s.ctrl = &beep.Ctrl{Streamer: s.stream, Paused: false}
	done := make(chan struct{})
	s.done = done
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		close(done)
	})))
	return nil
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = true
		speaker.Unlock()
	}
}

func (s *Speaker) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
	}
}

func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopLocked stops playback (must be called with lock held).
func (s *Speaker) stopLocked() {
	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()
	}
	s.ctrl = nil
	s.stream = nil
	s.done = nil
}

// Offset returns the byte offset the device is reading from.
func (s *Speaker) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.stream.ByteOffset()
}

func (s *Speaker) SeekTo(offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return nil
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.stream.SeekByte(offset)
}

// Wait blocks until the current buffer has been played out.
func (s *Speaker) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}
