package train

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/common/config"
	"github.com/gigurra/mctrainer/cmd/morse/player"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
	"github.com/spf13/cobra"
)

type Params struct {
	Speed         int     `short:"s" help:"Units per second. 0 uses the config." default:"0"`
	Frequency     float64 `short:"f" help:"Tone frequency in Hz. 0 uses the config." default:"0"`
	MaxWordLength int     `short:"m" help:"Longest word to practice. 0 uses the config." default:"0"`
	Words         string  `short:"w" help:"Word list file, one word per line. Empty uses the config or the built-in list." default:""`
	Notify        bool    `short:"n" help:"Show a desktop notification for correct answers." default:"false"`
	Verbose       bool    `short:"v" help:"Debug logging to the log file in the cache dir." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "train",
		Short: "Practice copying Morse code by ear",
		Long: `Listen to a random word in Morse code and type what you hear.

Controls:
  ENTER          - Submit answer
  TAB            - Pause/resume
  CTRL+R         - Replay from the start
  SHIFT+←/→      - Seek 10%
  CTRL+N         - Skip to a new word
  CTRL+G         - Give up and show the word
  ESC or CTRL+C  - Quit

Editing the config file while training applies the new settings right away.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "train: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func (p *Params) flags() common.SettingsFlags {
	return common.SettingsFlags{
		Speed:         p.Speed,
		Frequency:     p.Frequency,
		MaxWordLength: p.MaxWordLength,
		WordsFile:     p.Words,
	}
}

func Run(params *Params) error {
	cfg, settings, err := common.LoadSettings(params.flags())
	if err != nil {
		return err
	}
	words, err := cfg.Words()
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}

	closeLog, err := common.LogToFile("train.log", params.Verbose)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	if !player.AudioAvailable {
		fmt.Println("(Audio requires CGO on Linux. Training without sound...)")
	}

	ev := make(events, 64)
	var notifier trainer.Notifier
	if params.Notify {
		notifier = trainer.DesktopNotifier{}
	}
	tr, err := trainer.New(words, settings, trainer.Options{
		Sink:       player.NewSpeaker(),
		Notifier:   notifier,
		OnProgress: func(p int) { ev.send(progressMsg(p)) },
		OnComplete: func() { ev.send(completeMsg{}) },
	})
	if err != nil {
		return err
	}
	defer tr.Close()

	if _, err := tr.Next(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = watchFile(ctx, config.ConfigPath(), func() {
		ev.send(reloadSettings(tr, params.flags()))
	})
	if err != nil {
		slog.Warn("config changes will not be picked up", "error", err)
	}

	slog.Info("training started", "words", len(words), "speed", settings.Speed, "frequency", settings.Frequency)
	_, err = tea.NewProgram(newModel(tr, ev), tea.WithAltScreen()).Run()
	stats := tr.Stats()
	slog.Info("training finished", "attempts", stats.Attempts, "correct", stats.Correct, "best_streak", stats.BestStreak)
	return err
}

// reloadSettings re-reads the config and applies it, keeping command-line
// flags on top.
func reloadSettings(tr *trainer.Trainer, flags common.SettingsFlags) settingsMsg {
	_, settings, err := common.LoadSettings(flags)
	if err != nil {
		slog.Warn("ignoring invalid config", "error", err)
		return settingsMsg{err: err}
	}
	if settings == tr.Settings() {
		return settingsMsg{settings: settings}
	}
	if err := tr.UpdateSettings(settings); err != nil {
		return settingsMsg{err: err}
	}
	return settingsMsg{settings: settings}
}
