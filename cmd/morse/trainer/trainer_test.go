package trainer

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/mctrainer/cmd/morse/timeline"
)

type nullTask struct{}

func (nullTask) Cancel() {}

type nullScheduler struct{ scheduled int }

func (s *nullScheduler) Every(time.Duration, func()) timeline.Task {
	s.scheduled++
	return nullTask{}
}

type recordingSink struct {
	plays  int
	offset int
}

func (r *recordingSink) Play([]byte, int) error { r.plays++; return nil }
func (r *recordingSink) Pause()                 {}
func (r *recordingSink) Resume()                {}
func (r *recordingSink) Stop()                  {}
func (r *recordingSink) Offset() int            { return r.offset }
func (r *recordingSink) SeekTo(o int) error     { r.offset = o; return nil }

type recordingNotifier struct{ messages []string }

func (n *recordingNotifier) Notify(title, message string) error {
	n.messages = append(n.messages, title+": "+message)
	return nil
}

func newTestTrainer(t *testing.T, words []string) (*Trainer, *recordingSink, *recordingNotifier) {
	t.Helper()
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	tr, err := New(words, DefaultSettings(), Options{
		Sink:      sink,
		Scheduler: &nullScheduler{},
		Notifier:  notifier,
		Rand:      rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr, sink, notifier
}

func TestParseWords(t *testing.T) {
	input := "Hello\n\n  world \nhello\nMorse\n"
	words, err := ParseWords(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hello", "world", "morse"}
	if strings.Join(words, ",") != strings.Join(want, ",") {
		t.Errorf("ParseWords = %v, want %v", words, want)
	}
}

func TestDefaultWords(t *testing.T) {
	words := DefaultWords()
	if len(words) < 100 {
		t.Errorf("default list has %d words", len(words))
	}
	for _, w := range words {
		if w != strings.ToLower(w) || strings.TrimSpace(w) != w || w == "" {
			t.Errorf("bad default word %q", w)
		}
	}
}

func TestFilterWords(t *testing.T) {
	words := []string{"a", "abc", "abcd", "abcdefgh"}
	tests := []struct {
		max  int
		want int
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{4, 3},
		{100, 4},
	}
	for _, tt := range tests {
		if got := FilterWords(words, tt.max); len(got) != tt.want {
			t.Errorf("FilterWords(max=%d) = %v, want %d words", tt.max, got, tt.want)
		}
	}
}

func TestPickAndRender(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"toolong", "cat", "dog"}
	s := Settings{Speed: 13, Frequency: 800, MaxWordLength: 3}
	for i := 0; i < 20; i++ {
		r, err := PickAndRender(words, s, rng)
		if err != nil {
			t.Fatal(err)
		}
		if r.Word != "cat" && r.Word != "dog" {
			t.Fatalf("picked %q, which is longer than 3", r.Word)
		}
		if len(r.Buffer.PCM) == 0 || len(r.Bits) == 0 {
			t.Fatal("empty rendering")
		}
	}
}

func TestPickAndRender_SingleWord(t *testing.T) {
	r, err := PickAndRender([]string{"only"}, DefaultSettings(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if r.Word != "only" {
		t.Errorf("picked %q, want only", r.Word)
	}
}

func TestPickAndRender_EmptyWordList(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := PickAndRender(nil, DefaultSettings(), rng)
	if !errors.Is(err, ErrEmptyWordList) {
		t.Errorf("nil list: %v, want ErrEmptyWordList", err)
	}
	s := DefaultSettings()
	s.MaxWordLength = 2
	_, err = PickAndRender([]string{"long", "longer"}, s, rng)
	if !errors.Is(err, ErrEmptyWordList) {
		t.Errorf("all filtered: %v, want ErrEmptyWordList", err)
	}
}

func TestPickAndRender_InvalidSettings(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []Settings{
		{Speed: 0, Frequency: 800, MaxWordLength: 5},
		{Speed: -1, Frequency: 800, MaxWordLength: 5},
		{Speed: 13, Frequency: 0, MaxWordLength: 5},
		{Speed: 13, Frequency: 800, MaxWordLength: -1},
	}
	for _, s := range tests {
		if _, err := PickAndRender([]string{"cat"}, s, rng); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%+v: %v, want ErrInvalidSettings", s, err)
		}
	}
}

func TestRender_Lowercases(t *testing.T) {
	r, err := Render("SOS", DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if r.Word != "sos" || r.Pattern() != "... ___ ..." {
		t.Errorf("Render(SOS) = %q %q", r.Word, r.Pattern())
	}
}

func TestRender_RejectsInfiniteFrequency(t *testing.T) {
	s := DefaultSettings()
	s.Frequency = math.Inf(1)
	if _, err := Render("e", s); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Render(+Inf Hz) = %v, want ErrInvalidSettings", err)
	}
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	_, err := New([]string{"cat"}, Settings{Speed: 0, Frequency: 800}, Options{Sink: &recordingSink{}})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("New: %v, want ErrInvalidSettings", err)
	}
}

func TestTrainer_NoSession(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"cat"})
	if err := tr.Play(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Play: %v", err)
	}
	if _, err := tr.Submit("cat"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Submit: %v", err)
	}
	if _, err := tr.Seek(10); !errors.Is(err, ErrNoSession) {
		t.Errorf("Seek: %v", err)
	}
	if _, _, err := tr.Reveal(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Reveal: %v", err)
	}
}

func TestTrainer_NextReplacesSession(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"cat", "dog"})
	first, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	second, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("sessions share an ID")
	}
	if tr.Current() != second {
		t.Error("Current() is not the newest session")
	}
	if err := first.Timeline.Start(); !errors.Is(err, timeline.ErrDisposed) {
		t.Errorf("old timeline still usable: %v", err)
	}
}

func TestTrainer_PlayPauseResume(t *testing.T) {
	tr, sink, _ := newTestTrainer(t, []string{"cat"})
	if _, err := tr.Next(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Play(); err != nil {
		t.Fatal(err)
	}
	if sink.plays != 1 {
		t.Fatalf("plays = %d, want 1", sink.plays)
	}

	tr.Pause()
	if st := tr.Current().Timeline.Snapshot(); st.State != timeline.StatePaused {
		t.Fatalf("state = %s, want paused", st.State)
	}
	if err := tr.Play(); err != nil {
		t.Fatal(err)
	}
	if sink.plays != 1 {
		t.Error("Play after Pause restarted instead of resuming")
	}
	if err := tr.TogglePause(); err != nil {
		t.Fatal(err)
	}
	if st := tr.Current().Timeline.Snapshot(); st.State != timeline.StatePaused {
		t.Errorf("state after toggle = %s, want paused", st.State)
	}
}

func TestTrainer_SubmitCorrect(t *testing.T) {
	tr, sink, notifier := newTestTrainer(t, []string{"cat"})
	first, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}

	ok, err := tr.Submit("  CAT ")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("correct answer rejected")
	}
	if tr.Current() == first {
		t.Error("correct answer did not move to a new session")
	}
	if sink.plays != 1 {
		t.Errorf("next word not played, plays = %d", sink.plays)
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != "Correct: cat" {
		t.Errorf("notifications = %v", notifier.messages)
	}
	st := tr.Stats()
	if st.Attempts != 1 || st.Correct != 1 || st.Streak != 1 || st.BestStreak != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTrainer_SubmitWrong(t *testing.T) {
	tr, _, notifier := newTestTrainer(t, []string{"cat"})
	first, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Submit("cat"); err != nil {
		t.Fatal(err)
	}

	current := tr.Current()
	ok, err := tr.Submit("dog")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("wrong answer accepted")
	}
	if tr.Current() != current || current == first {
		t.Error("wrong answer changed the session")
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notifications = %v", notifier.messages)
	}
	st := tr.Stats()
	if st.Attempts != 2 || st.Correct != 1 || st.Streak != 0 || st.BestStreak != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTrainer_Reveal(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"sos"})
	if _, err := tr.Next(); err != nil {
		t.Fatal(err)
	}
	word, pattern, err := tr.Reveal()
	if err != nil {
		t.Fatal(err)
	}
	if word != "sos" || pattern != "... ___ ..." {
		t.Errorf("Reveal = %q %q", word, pattern)
	}
	_, _, _ = tr.Reveal()
	if _, err := tr.Submit("sos"); err != nil {
		t.Fatal(err)
	}
	st := tr.Stats()
	if st.Revealed != 1 || st.Streak != 0 || st.Correct != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTrainer_UpdateSettings(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"cat", "horses"})
	s := DefaultSettings()
	s.MaxWordLength = 3
	if err := tr.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	before, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if before.Rendering.Word != "cat" {
		t.Fatalf("picked %q", before.Rendering.Word)
	}

	s.Speed = 20
	if err := tr.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	after := tr.Current()
	if after == before {
		t.Fatal("settings change kept the old session")
	}
	if after.Rendering.Word != "cat" {
		t.Errorf("word changed to %q although it still fits", after.Rendering.Word)
	}
	if len(after.Rendering.Buffer.PCM) >= len(before.Rendering.Buffer.PCM) {
		t.Error("faster speed did not shorten the buffer")
	}

	bad := s
	bad.Speed = 0
	if err := tr.UpdateSettings(bad); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("UpdateSettings(speed 0): %v", err)
	}
	if tr.Settings().Speed != 20 {
		t.Error("invalid settings were applied")
	}
}

func TestTrainer_UpdateSettingsPicksNewWord(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"horses", "cat"})
	s := DefaultSettings()
	s.MaxWordLength = 6
	if err := tr.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	for tr.Current() == nil || tr.Current().Rendering.Word != "horses" {
		if _, err := tr.Next(); err != nil {
			t.Fatal(err)
		}
	}

	s.MaxWordLength = 3
	if err := tr.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	if w := tr.Current().Rendering.Word; w != "cat" {
		t.Errorf("word = %q, want cat", w)
	}
}

func TestTrainer_UpdateSettingsRecoversFromEmptyList(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"horses"})
	if _, err := tr.Next(); err != nil {
		t.Fatal(err)
	}
	before := tr.Current()

	tooShort := DefaultSettings()
	tooShort.MaxWordLength = 3
	if err := tr.UpdateSettings(tooShort); !errors.Is(err, ErrEmptyWordList) {
		t.Fatalf("UpdateSettings(max 3) = %v, want ErrEmptyWordList", err)
	}
	if tr.Current() != before {
		t.Error("failed update replaced the session")
	}
	if tr.Settings() != DefaultSettings() {
		t.Errorf("failed update applied settings %+v", tr.Settings())
	}

	fixed := DefaultSettings()
	fixed.Speed = 20
	if err := tr.UpdateSettings(fixed); err != nil {
		t.Fatal(err)
	}
	s := tr.Current()
	if s == nil || s.Rendering.Word != "horses" {
		t.Fatalf("no session after a good update: %+v", s)
	}
	if tr.Settings().Speed != 20 {
		t.Errorf("Speed = %d, want 20", tr.Settings().Speed)
	}
}

func TestTrainer_UpdateSettingsWithoutSession(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"cat"})
	if err := tr.UpdateSettings(DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if tr.Current() == nil {
		t.Error("UpdateSettings did not pick a word")
	}
}

func TestTrainer_Close(t *testing.T) {
	tr, _, _ := newTestTrainer(t, []string{"cat"})
	s, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	tr.Close()
	if tr.Current() != nil {
		t.Error("session survived Close")
	}
	if err := s.Timeline.Start(); !errors.Is(err, timeline.ErrDisposed) {
		t.Errorf("timeline not disposed: %v", err)
	}
}
