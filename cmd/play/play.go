package play

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse/player"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
	"github.com/spf13/cobra"
)

type Params struct {
	Rounds        int     `short:"r" help:"Number of words to get right before stopping." default:"5"`
	Speed         int     `short:"s" help:"Units per second. 0 uses the config." default:"0"`
	Frequency     float64 `short:"f" help:"Tone frequency in Hz. 0 uses the config." default:"0"`
	MaxWordLength int     `short:"m" help:"Longest word to practice. 0 uses the config." default:"0"`
	Words         string  `short:"w" help:"Word list file, one word per line." default:""`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "play",
		Short: "Quick listening quiz without the full screen UI",
		Long: `Plays random words in Morse code and reads your answers line by line.

  <word>   - Guess
  (empty)  - Replay the word
  ?        - Give up and show the word
  q        - Quit`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params) error {
	cfg, settings, err := common.LoadSettings(common.SettingsFlags{
		Speed:         params.Speed,
		Frequency:     params.Frequency,
		MaxWordLength: params.MaxWordLength,
		WordsFile:     params.Words,
	})
	if err != nil {
		return err
	}
	words, err := cfg.Words()
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}

	if !player.AudioAvailable {
		fmt.Println("(Audio requires CGO on Linux. Playing silently...)")
	}

	done := make(chan struct{}, 1)
	tr, err := trainer.New(words, settings, trainer.Options{
		Sink:       player.NewSpeaker(),
		OnProgress: func(p int) { fmt.Fprintf(os.Stderr, "\r%s", progressBar(p, 30)) },
		OnComplete: func() {
			fmt.Fprintf(os.Stderr, "\r%s\n", progressBar(100, 30))
			signal(done)
		},
	})
	if err != nil {
		return err
	}
	defer tr.Close()

	if _, err := tr.Next(); err != nil {
		return err
	}

	fmt.Printf("📻 %d units/s, %.0f Hz, up to %d letters. Empty line replays, ? gives up, q quits.\n\n",
		settings.Speed, settings.Frequency, settings.MaxWordLength)

	q := &quiz{tr: tr, done: done, in: bufio.NewReader(os.Stdin), out: os.Stdout}
	if err := q.run(params.Rounds); err != nil {
		return err
	}

	stats := tr.Stats()
	fmt.Printf("\n✅ %d/%d correct, best streak %d, revealed %d\n",
		stats.Correct, stats.Attempts, stats.BestStreak, stats.Revealed)
	return nil
}

type quiz struct {
	tr   *trainer.Trainer
	done chan struct{}
	in   *bufio.Reader
	out  io.Writer
}

// run plays words until rounds answers were right, input ends or the user
// quits.
func (q *quiz) run(rounds int) error {
	if err := q.start(q.tr.Play); err != nil {
		return err
	}
	correct := 0
	for rounds <= 0 || correct < rounds {
		<-q.done

		fmt.Fprint(q.out, "> ")
		line, err := q.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}
		answer := strings.TrimSpace(line)

		switch answer {
		case "q":
			return nil

		case "":
			if err := q.start(q.tr.Replay); err != nil {
				return err
			}

		case "?":
			word, pattern, err := q.tr.Reveal()
			if err != nil {
				return err
			}
			fmt.Fprintf(q.out, "👀 %s   %s\n\n", word, pattern)
			if _, err := q.tr.Next(); err != nil {
				return err
			}
			if err := q.start(q.tr.Play); err != nil {
				return err
			}

		default:
			q.drain()
			ok, err := q.tr.Submit(answer)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(q.out, "❌ Nope. Empty line to listen again.")
				signal(q.done)
				continue
			}
			correct++
			if rounds > 0 {
				fmt.Fprintf(q.out, "🎉 Correct! (%d/%d)\n\n", correct, rounds)
			} else {
				fmt.Fprintf(q.out, "🎉 Correct! (%d)\n\n", correct)
			}
		}
	}
	return nil
}

// start drains any stale completion and runs a playback action.
func (q *quiz) start(fn func() error) error {
	q.drain()
	return fn()
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (q *quiz) drain() {
	select {
	case <-q.done:
	default:
	}
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %3d%%", percent)
}
