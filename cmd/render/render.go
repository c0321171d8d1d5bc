package render

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse/player"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
	"github.com/spf13/cobra"
)

type Params struct {
	Text      []string `pos:"true" help:"Text to render."`
	Output    string   `short:"o" help:"Output file. Defaults to <text>.wav, or <text>.pcm with --raw." default:""`
	Raw       bool     `short:"r" help:"Write headerless 16-bit little-endian mono PCM instead of WAV." default:"false"`
	Speed     int      `short:"s" help:"Units per second. 0 uses the config." default:"0"`
	Frequency float64  `short:"f" help:"Tone frequency in Hz. 0 uses the config." default:"0"`
	Force     bool     `help:"Overwrite an existing output file." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "render",
		Short:       "Write Morse audio to a file",
		Long:        "Render text as a Morse tone and save it as a WAV file or raw PCM samples.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "render: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	text := strings.Join(params.Text, " ")
	_, settings, err := common.LoadSettings(common.SettingsFlags{
		Speed:     params.Speed,
		Frequency: params.Frequency,
	})
	if err != nil {
		return err
	}
	r, err := trainer.Render(text, settings)
	if err != nil {
		return err
	}

	out := params.Output
	if out == "" {
		out = defaultOutput(r.Word, params.Raw)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !params.Force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(out, flags, 0644)
	if err != nil {
		return err
	}

	if params.Raw {
		err = player.WriteRaw(f, r.Buffer)
	} else {
		err = player.WriteWAV(f, r.Buffer)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out)
		return fmt.Errorf("writing %s: %w", out, err)
	}

	slog.Debug("rendered", "file", out, "samples", r.Buffer.SampleCount())
	fmt.Fprintf(stdout, "%s  %s  (%s, %d samples at %d Hz)\n",
		out, r.Pattern(), r.Buffer.Duration().Round(time.Millisecond), r.Buffer.SampleCount(), r.Buffer.SampleRate)
	return nil
}

// defaultOutput derives a file name from the rendered text.
func defaultOutput(word string, raw bool) string {
	name := strings.Join(strings.Fields(word), "_")
	if name == "" {
		name = "morse"
	}
	if raw {
		return name + ".pcm"
	}
	return name + ".wav"
}
