// Package trainer owns the listening exercise: it picks words, renders them,
// keeps exactly one playback session alive and checks answers.
package trainer

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gigurra/mctrainer/cmd/morse/timeline"
	"github.com/google/uuid"
)

// Session is one rendered word and its playback timeline.
type Session struct {
	ID        string
	Rendering Rendering
	Timeline  *timeline.Timeline
	Revealed  bool
	StartedAt time.Time
}

// Stats counts answers over the trainer's lifetime. A revealed word breaks
// the streak.
type Stats struct {
	Attempts   int
	Correct    int
	Revealed   int
	Streak     int
	BestStreak int
}

// Options configures a Trainer. Only Sink is required.
type Options struct {
	Sink       timeline.Sink
	Scheduler  timeline.Scheduler // nil means time.Ticker based
	Notifier   Notifier           // nil disables notifications
	Logger     *slog.Logger
	Rand       *rand.Rand
	// OnProgress and OnComplete may run on the scheduler goroutine or inside
	// a Trainer method, so they must not call back into the Trainer.
	OnProgress func(percent int)
	OnComplete func()
}

// Trainer runs the exercise over a word list. It is safe for concurrent use.
type Trainer struct {
	mu sync.Mutex

	words    []string
	settings Settings
	opts     Options
	log      *slog.Logger

	session *Session
	stats   Stats
}

// New validates settings and prepares a trainer. No word is picked until
// Next is called.
func New(words []string, settings Settings, opts Options) (*Trainer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeline.TickerScheduler{}
	}
	return &Trainer{
		words:    words,
		settings: settings,
		opts:     opts,
		log:      opts.Logger,
	}, nil
}

// Next discards the current session and renders a new random word.
func (t *Trainer) Next() (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := PickAndRender(t.words, t.settings, t.opts.Rand)
	if err != nil {
		return nil, err
	}
	return t.replaceLocked(r), nil
}

func (t *Trainer) replaceLocked(r Rendering) *Session {
	t.disposeLocked()

	s := &Session{
		ID:        uuid.NewString(),
		Rendering: r,
		StartedAt: time.Now(),
	}
	s.Timeline = timeline.New(r.Buffer, t.opts.Sink,
		timeline.WithScheduler(t.opts.Scheduler),
		timeline.WithLogger(t.log.With("session", s.ID)),
		timeline.OnProgress(t.opts.OnProgress),
		timeline.OnComplete(t.opts.OnComplete),
	)
	t.session = s
	t.log.Debug("new session", "session", s.ID, "bytes", len(r.Buffer.PCM), "units", len(r.Bits))
	return s
}

func (t *Trainer) disposeLocked() {
	if t.session != nil {
		t.session.Timeline.Dispose()
		t.session = nil
	}
}

// Current returns the active session or nil.
func (t *Trainer) Current() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Play starts the current word, resumes it when paused, and replays it from
// the start when already playing.
func (t *Trainer) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playLocked()
}

func (t *Trainer) playLocked() error {
	if t.session == nil {
		return ErrNoSession
	}
	tl := t.session.Timeline
	if tl.Snapshot().State == timeline.StatePaused {
		tl.Resume()
		return nil
	}
	return tl.Start()
}

// Replay plays the current word from the beginning.
func (t *Trainer) Replay() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return ErrNoSession
	}
	return t.session.Timeline.Start()
}

// TogglePause pauses a playing word or resumes a paused one. A stopped word
// is started.
func (t *Trainer) TogglePause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return ErrNoSession
	}
	return t.session.Timeline.Toggle()
}

// Pause pauses the current word if it is playing.
func (t *Trainer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		t.session.Timeline.Pause()
	}
}

// Seek jumps to percent of the current word and returns the byte offset.
func (t *Trainer) Seek(percent int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return 0, ErrNoSession
	}
	return t.session.Timeline.Seek(percent)
}

// Submit checks an answer, ignoring case and surrounding space. A correct
// answer moves on to a new word and plays it.
func (t *Trainer) Submit(answer string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return false, ErrNoSession
	}
	t.stats.Attempts++

	if !strings.EqualFold(strings.TrimSpace(answer), t.session.Rendering.Word) {
		t.stats.Streak = 0
		t.log.Debug("wrong answer", "session", t.session.ID)
		return false, nil
	}

	t.stats.Correct++
	if !t.session.Revealed {
		t.stats.Streak++
		t.stats.BestStreak = max(t.stats.BestStreak, t.stats.Streak)
	}
	if err := t.opts.Notifier.Notify("Correct", t.session.Rendering.Word); err != nil {
		t.log.Warn("failed to send notification", "error", err)
	}

	r, err := PickAndRender(t.words, t.settings, t.opts.Rand)
	if err != nil {
		return true, err
	}
	t.replaceLocked(r)
	return true, t.playLocked()
}

// Reveal gives up on the current word and returns it with its pattern.
func (t *Trainer) Reveal() (word, pattern string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return "", "", ErrNoSession
	}
	if !t.session.Revealed {
		t.session.Revealed = true
		t.stats.Revealed++
		t.stats.Streak = 0
	}
	return t.session.Rendering.Word, t.session.Rendering.Pattern(), nil
}

// UpdateSettings applies new settings. The current word is rendered again
// when it still fits, otherwise (or when there is no session) a new word is
// picked. Nothing changes unless rendering succeeds.
func (t *Trainer) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var r Rendering
	var err error
	if t.session != nil && len(FilterWords([]string{t.session.Rendering.Word}, s.MaxWordLength)) == 1 {
		r, err = Render(t.session.Rendering.Word, s)
	} else {
		r, err = PickAndRender(t.words, s, t.opts.Rand)
	}
	if err != nil {
		return err
	}
	t.settings = s
	t.replaceLocked(r)
	t.log.Info("settings applied", "speed", s.Speed, "frequency", s.Frequency, "max_word_length", s.MaxWordLength)
	return nil
}

// Settings returns the settings in effect.
func (t *Trainer) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// Stats returns a copy of the answer statistics.
func (t *Trainer) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Close discards the current session.
func (t *Trainer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disposeLocked()
}
