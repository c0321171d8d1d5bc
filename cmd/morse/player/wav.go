package player

import (
	"fmt"
	"io"

	"github.com/gigurra/mctrainer/cmd/morse/synth"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Format describes rendered buffers: mono, 16 bit.
func Format(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
}

// WriteWAV encodes buf as a mono 16-bit WAV file.
func WriteWAV(w io.WriteSeeker, buf synth.Buffer) error {
	if err := wav.Encode(w, NewPCMStream(buf.PCM), Format(buf.SampleRate)); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}

// WriteRaw writes the PCM bytes unchanged.
func WriteRaw(w io.Writer, buf synth.Buffer) error {
	_, err := w.Write(buf.PCM)
	return err
}
