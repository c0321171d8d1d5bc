package morse

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse/code"
	"github.com/gigurra/mctrainer/cmd/morse/player"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
	"github.com/spf13/cobra"
)

type Params struct {
	Text      []string `pos:"true" optional:"true" help:"Text to encode/decode. If none provided, reads from stdin."`
	Decode    bool     `short:"d" help:"Decode patterns (dots and underscores) to text." default:"false"`
	Bits      bool     `short:"b" help:"Print the tone-gate bit sequence instead of patterns." default:"false"`
	Beep      bool     `short:"p" help:"Play the encoded text (requires CGO on Linux)." default:"false"`
	Speed     int      `short:"s" help:"Units per second for playback. 0 uses the config." default:"0"`
	Frequency float64  `short:"f" help:"Tone frequency in Hz for playback. 0 uses the config." default:"0"`
}

var fromPattern map[string]rune

func init() {
	fromPattern = make(map[string]rune)
	for _, sym := range code.Symbols() {
		if sym.Char != code.Space {
			fromPattern[sym.Pattern] = sym.Char
		}
	}
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "morse",
		Short:       "Encode/decode Morse code",
		Long:        "Convert text to Morse patterns or bit sequences, or decode patterns back to text. Use -p to hear it.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "morse: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params) error {
	if len(params.Text) > 0 {
		return handle(params, strings.Join(params.Text, " "))
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := handle(params, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func handle(params *Params, text string) error {
	if params.Decode {
		fmt.Println(decode(text))
		return nil
	}
	text = strings.ToLower(text)
	if params.Bits {
		fmt.Println(code.Encode(text))
	} else {
		fmt.Println(code.Patterns(text))
	}
	if params.Beep {
		return play(params, text)
	}
	return nil
}

func play(params *Params, text string) error {
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
	if !player.AudioAvailable {
		fmt.Println("(Audio requires CGO on Linux. Playing silently...)")
	}
	spk := player.NewSpeaker()
	if err := spk.Play(r.Buffer.PCM, r.Buffer.SampleRate); err != nil {
		return err
	}
	spk.Wait()
	return nil
}

// decode reads space separated patterns, with "/" between words.
func decode(patterns string) string {
	var result strings.Builder
	words := strings.Split(patterns, "/")
	for i, word := range words {
		if i > 0 {
			result.WriteRune(' ')
		}
		for _, p := range strings.Fields(word) {
			if r, ok := fromPattern[strings.ReplaceAll(p, "-", "_")]; ok {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}
