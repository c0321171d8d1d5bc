package synth

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gigurra/mctrainer/cmd/morse/code"
)

func defaultParams() Params {
	return Params{SampleRate: DefaultSampleRate, Frequency: 800, Speed: 13}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"default", defaultParams(), false},
		{"zero speed", Params{SampleRate: 8000, Frequency: 800, Speed: 0}, true},
		{"negative speed", Params{SampleRate: 8000, Frequency: 800, Speed: -3}, true},
		{"zero sample rate", Params{SampleRate: 0, Frequency: 800, Speed: 13}, true},
		{"zero frequency", Params{SampleRate: 8000, Frequency: 0, Speed: 13}, true},
		{"NaN frequency", Params{SampleRate: 8000, Frequency: math.NaN(), Speed: 13}, true},
		{"infinite frequency", Params{SampleRate: 8000, Frequency: math.Inf(1), Speed: 13}, true},
		{"speed above sample rate", Params{SampleRate: 100, Frequency: 10, Speed: 101}, true},
		{"speed equals sample rate", Params{SampleRate: 100, Frequency: 10, Speed: 100}, false},
	}

	for _, tt := range tests {
		err := tt.params.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%s: error %v is not ErrInvalidSettings", tt.name, err)
		}
	}
}

func TestSynthesize_ZeroSpeed(t *testing.T) {
	_, err := Synthesize(code.Encode("a"), Params{SampleRate: 8000, Frequency: 800, Speed: 0})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestSynthesize_EmptySequence(t *testing.T) {
	_, err := Synthesize(code.Encode(""), defaultParams())
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
}

func TestSynthesize_Length(t *testing.T) {
	tests := []struct {
		word  string
		speed int
	}{
		{"a", 13},
		{"e", 5},
		{"morse", 13},
		{"hello", 7},
		{"q", 8000},
	}

	for _, tt := range tests {
		bits := code.Encode(tt.word)
		params := Params{SampleRate: DefaultSampleRate, Frequency: 800, Speed: tt.speed}
		buf, err := Synthesize(bits, params)
		if err != nil {
			t.Fatalf("Synthesize(%q) error: %v", tt.word, err)
		}

		wantSamples := int(math.Round(float64(DefaultSampleRate) * float64(len(bits)) / float64(tt.speed)))
		if buf.SampleCount() != wantSamples {
			t.Errorf("%q@%d: sample count = %d, want %d", tt.word, tt.speed, buf.SampleCount(), wantSamples)
		}
		if len(buf.PCM)%2 != 0 {
			t.Errorf("%q@%d: odd buffer length %d", tt.word, tt.speed, len(buf.PCM))
		}
		if len(buf.PCM) != 2*wantSamples {
			t.Errorf("%q@%d: byte length = %d, want %d", tt.word, tt.speed, len(buf.PCM), 2*wantSamples)
		}
	}
}

func TestSynthesize_TotalTimeUnits(t *testing.T) {
	bits := code.Encode("a") // 8 units
	buf, err := Synthesize(bits, Params{SampleRate: 8000, Frequency: 800, Speed: 4})
	if err != nil {
		t.Fatal(err)
	}
	// 8 bits at 4 units/s is 2 seconds, scaled by ten.
	if buf.TotalTimeUnits != 20 {
		t.Errorf("TotalTimeUnits = %v, want 20", buf.TotalTimeUnits)
	}
	if buf.Duration().Seconds() != 2 {
		t.Errorf("Duration = %v, want 2s", buf.Duration())
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	bits := code.Encode("trainer")
	a, err := Synthesize(bits, defaultParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Synthesize(bits, defaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.PCM, b.PCM) {
		t.Error("identical inputs produced different buffers")
	}
}

func TestSynthesize_GatedSilence(t *testing.T) {
	// speed 1 at 8 Hz sample rate: one bit spans eight samples.
	params := Params{SampleRate: 8, Frequency: 2, Speed: 1}
	buf, err := Synthesize(code.Bits{0, 1}, params)
	if err != nil {
		t.Fatal(err)
	}
	if buf.SampleCount() != 16 {
		t.Fatalf("sample count = %d, want 16", buf.SampleCount())
	}
	for i := 0; i < 8; i++ {
		if s := buf.Sample(i); s != 0 {
			t.Errorf("sample %d = %d, want silence", i, s)
		}
	}
	// Wave length is 4 samples, so sample 9 sits on a crest and sample 11 on a trough.
	if s := buf.Sample(9); s != 32767 {
		t.Errorf("sample 9 = %d, want 32767", s)
	}
	if s := buf.Sample(11); s != -32767 {
		t.Errorf("sample 11 = %d, want -32767", s)
	}
}

func TestSynthesize_PhaseContinuesAcrossGate(t *testing.T) {
	// The carrier is not restarted when the gate opens: sample i always
	// equals sin(2*pi*i/waveLength) while the gate is on.
	params := Params{SampleRate: 8000, Frequency: 800, Speed: 10}
	bits := code.Bits{0, 1}
	buf, err := Synthesize(bits, params)
	if err != nil {
		t.Fatal(err)
	}
	waveLength := 8000.0 / 800.0
	for i := 800; i < buf.SampleCount(); i++ {
		want := int16(math.Round(math.Sin(2*math.Pi*float64(i)/waveLength) * 32767))
		if got := buf.Sample(i); got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestSynthesize_LittleEndian(t *testing.T) {
	params := Params{SampleRate: 8, Frequency: 2, Speed: 1}
	buf, err := Synthesize(code.Bits{1}, params)
	if err != nil {
		t.Fatal(err)
	}
	// Sample 3 is -32767 = 0x8001.
	if buf.PCM[6] != 0x01 || buf.PCM[7] != 0x80 {
		t.Errorf("sample 3 bytes = %#02x %#02x, want 0x01 0x80", buf.PCM[6], buf.PCM[7])
	}
	// Sample 1 is 32767 = 0x7fff.
	if buf.PCM[2] != 0xff || buf.PCM[3] != 0x7f {
		t.Errorf("sample 1 bytes = %#02x %#02x, want 0xff 0x7f", buf.PCM[2], buf.PCM[3])
	}
}

func TestSynthesize_LastBitClamps(t *testing.T) {
	// 3 bits at speed 2 with sample rate 3 gives round(4.5)=5 samples and
	// one sample per bit, so samples 3 and 4 reuse the last bit.
	params := Params{SampleRate: 3, Frequency: 1, Speed: 2}
	buf, err := Synthesize(code.Bits{0, 0, 1}, params)
	if err != nil {
		t.Fatal(err)
	}
	if buf.SampleCount() != 5 {
		t.Fatalf("sample count = %d, want 5", buf.SampleCount())
	}
	if buf.Sample(0) != 0 || buf.Sample(1) != 0 {
		t.Error("expected first two samples to be gated off")
	}
	if buf.Sample(3) == 0 && buf.Sample(4) == 0 {
		t.Error("expected clamped samples to carry the last bit's tone")
	}
}
