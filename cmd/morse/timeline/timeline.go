// Package timeline drives playback of one rendered word: it advances a 0-100
// progress value on a periodic tick and maps pause, resume and seek onto byte
// offsets of the PCM buffer held by an audio sink.
package timeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gigurra/mctrainer/cmd/morse/synth"
)

var (
	ErrInvalidProgress = errors.New("progress must be within 0..100")
	ErrNotStarted      = errors.New("playback not started")
	ErrDisposed        = errors.New("timeline disposed")
)

// Sink is the audio output the timeline drives. Offsets are byte offsets into
// the buffer passed to Play.
type Sink interface {
	Play(pcm []byte, sampleRate int) error
	Pause()
	Resume()
	Stop()
	Offset() int
	SeekTo(offset int) error
}

// PlaybackState is one of StateStopped, StatePlaying or StatePaused.
type PlaybackState string

const (
	StateStopped PlaybackState = "stopped"
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
)

// State is a point-in-time copy of the timeline.
type State struct {
	State          PlaybackState
	Progress       int
	LastOffset     int
	TotalTimeUnits float64
}

func (s State) IsPlaying() bool { return s.State == StatePlaying }

const minInterval = time.Millisecond

// Option configures a Timeline in New.
type Option func(*Timeline)

// WithScheduler replaces the default time.Ticker based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(t *Timeline) { t.sched = s }
}

// OnProgress registers a callback receiving every progress change.
func OnProgress(fn func(percent int)) Option {
	return func(t *Timeline) { t.onProgress = fn }
}

// OnComplete registers a callback fired when progress reaches 100.
func OnComplete(fn func()) Option {
	return func(t *Timeline) { t.onComplete = fn }
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timeline) { t.log = l }
}

// Timeline tracks one playback session over one buffer. It never modifies
// the buffer.
type Timeline struct {
	mu sync.Mutex

	buf  synth.Buffer
	sink Sink

	sched      Scheduler
	onProgress func(int)
	onComplete func()
	log        *slog.Logger

	state      PlaybackState
	progress   int
	lastOffset int
	disposed   bool

	task Task
	// tickID is bumped whenever a task is scheduled or cancelled so that
	// ticks already in flight for an old task are dropped.
	tickID uint64
}

// New creates a stopped timeline for buf that drives sink.
func New(buf synth.Buffer, sink Sink, opts ...Option) *Timeline {
	t := &Timeline{
		buf:   buf,
		sink:  sink,
		sched: TickerScheduler{},
		log:   slog.Default(),
		state: StateStopped,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start plays the buffer from the beginning, restarting if already active.
func (t *Timeline) Start() error {
	t.mu.Lock()
	err := t.startLocked()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.emitProgress(0)
	return nil
}

func (t *Timeline) startLocked() error {
	if t.disposed {
		return ErrDisposed
	}

	t.cancelTaskLocked()
	t.progress = 0
	t.lastOffset = 0
	if err := t.sink.Play(t.buf.PCM, t.buf.SampleRate); err != nil {
		t.state = StateStopped
		return fmt.Errorf("starting playback: %w", err)
	}
	t.state = StatePlaying
	t.scheduleLocked(unitsToInterval(t.buf.TotalTimeUnits))
	t.log.Debug("playback started", "bytes", len(t.buf.PCM), "tick", unitsToInterval(t.buf.TotalTimeUnits))
	return nil
}

// Pause freezes progress and remembers the sink's read position.
// It does nothing unless the timeline is playing.
func (t *Timeline) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pauseLocked()
}

func (t *Timeline) pauseLocked() {
	if t.state != StatePlaying {
		return
	}
	t.lastOffset = t.sink.Offset()
	t.cancelTaskLocked()
	t.sink.Pause()
	t.state = StatePaused
	t.log.Debug("playback paused", "progress", t.progress, "offset", t.lastOffset)
}

// Resume continues a paused session. The tick interval shrinks with the
// progress already made. It does nothing unless the timeline is paused.
func (t *Timeline) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resumeLocked()
}

func (t *Timeline) resumeLocked() {
	if t.state != StatePaused || t.disposed {
		return
	}
	t.state = StatePlaying
	t.sink.Resume()
	t.scheduleLocked(t.remainingIntervalLocked())
	t.log.Debug("playback resumed", "progress", t.progress, "tick", t.remainingIntervalLocked())
}

// Toggle pauses a playing session, resumes a paused one and starts a
// stopped one. The state is read and changed under a single lock hold.
func (t *Timeline) Toggle() error {
	t.mu.Lock()
	switch t.state {
	case StatePlaying:
		t.pauseLocked()
		t.mu.Unlock()
		return nil
	case StatePaused:
		t.resumeLocked()
		t.mu.Unlock()
		return nil
	}
	err := t.startLocked()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.emitProgress(0)
	return nil
}

// Seek moves the sink to the byte offset matching percent and returns that
// offset. The offset is not aligned to a sample boundary. Seeking to 100
// finishes the session.
func (t *Timeline) Seek(percent int) (int, error) {
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidProgress, percent)
	}

	t.mu.Lock()
	if t.state == StateStopped {
		t.mu.Unlock()
		return 0, ErrNotStarted
	}

	target := OffsetFor(len(t.buf.PCM), percent)
	if err := t.sink.SeekTo(target); err != nil {
		t.mu.Unlock()
		return 0, fmt.Errorf("seeking to %d: %w", target, err)
	}
	t.lastOffset = target
	t.progress = percent

	if percent >= 100 {
		t.stopLocked()
		t.mu.Unlock()
		t.emitProgress(100)
		t.emitComplete()
		return target, nil
	}

	if t.state == StatePlaying {
		t.scheduleLocked(t.remainingIntervalLocked())
	}
	t.mu.Unlock()

	t.emitProgress(percent)
	return target, nil
}

// Stop ends the session without firing the completion callback.
func (t *Timeline) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Dispose stops the session for good. Every later call is a no-op or
// returns ErrDisposed.
func (t *Timeline) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	t.stopLocked()
	t.disposed = true
}

// Snapshot returns a consistent copy of the current state.
func (t *Timeline) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		State:          t.state,
		Progress:       t.progress,
		LastOffset:     t.lastOffset,
		TotalTimeUnits: t.buf.TotalTimeUnits,
	}
}

// RemainingInterval is the tick interval used when resuming from the
// current progress.
func (t *Timeline) RemainingInterval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingIntervalLocked()
}

func (t *Timeline) remainingIntervalLocked() time.Duration {
	return unitsToInterval(t.buf.TotalTimeUnits * (1 - float64(t.progress)/100))
}

func (t *Timeline) tick(id uint64) {
	t.mu.Lock()
	if id != t.tickID || t.state != StatePlaying {
		t.mu.Unlock()
		return
	}
	t.progress++
	p := t.progress
	done := p >= 100
	if done {
		t.stopLocked()
		t.log.Debug("playback complete")
	}
	t.mu.Unlock()

	t.emitProgress(p)
	if done {
		t.emitComplete()
	}
}

func (t *Timeline) scheduleLocked(interval time.Duration) {
	t.cancelTaskLocked()
	id := t.tickID
	t.task = t.sched.Every(interval, func() { t.tick(id) })
}

func (t *Timeline) cancelTaskLocked() {
	if t.task != nil {
		t.task.Cancel()
		t.task = nil
	}
	t.tickID++
}

// stopLocked resets to the initial stopped state (must be called with lock held).
func (t *Timeline) stopLocked() {
	t.cancelTaskLocked()
	if t.state != StateStopped {
		t.sink.Stop()
	}
	t.state = StateStopped
	t.progress = 0
	t.lastOffset = 0
}

func (t *Timeline) emitProgress(p int) {
	if t.onProgress != nil {
		t.onProgress(p)
	}
}

func (t *Timeline) emitComplete() {
	if t.onComplete != nil {
		t.onComplete()
	}
}

// OffsetFor maps a progress percentage to a byte offset in a buffer of
// length n.
func OffsetFor(n, percent int) int {
	return n * percent / 100
}

func unitsToInterval(ms float64) time.Duration {
	d := time.Duration(ms * float64(time.Millisecond))
	if d < minInterval {
		return minInterval
	}
	return d
}
