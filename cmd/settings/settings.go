// Package settings provides the config command for viewing and editing the
// trainer settings file.
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/common/config"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "config",
		Short: "Show or change saved settings",
		Long: "Settings live in " + config.ConfigPath() + ".\n" +
			"MCTRAINER_SPEED, MCTRAINER_FREQUENCY, MCTRAINER_MAX_WORD_LENGTH and MCTRAINER_WORDS override the file.",
		SubCmds: []*cobra.Command{
			showCmd(),
			setCmd(),
			resetCmd(),
			pathCmd(),
		},
	}.ToCobra()
}

type ShowParams struct {
	File bool `help:"Show only what is saved in the file, ignoring environment overrides." default:"false"`
}

func showCmd() *cobra.Command {
	return boa.CmdT[ShowParams]{
		Use:         "show",
		Short:       "Print the effective settings as JSON",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ShowParams, cmd *cobra.Command, args []string) {
			if err := Show(os.Stdout, config.ConfigPath(), params.File); err != nil {
				fmt.Fprintf(os.Stderr, "config show: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

type SetParams struct {
	Speed         int     `short:"s" help:"Units per second." default:"0"`
	Frequency     float64 `short:"f" help:"Tone frequency in Hz." default:"0"`
	MaxWordLength int     `short:"m" help:"Longest word to practice." default:"0"`
	Words         string  `short:"w" help:"Word list file. Use - to go back to the built-in list." default:""`
}

func setCmd() *cobra.Command {
	return boa.CmdT[SetParams]{
		Use:         "set",
		Short:       "Change saved settings",
		Long:        "Update the given settings and save them. A running trainer picks up the change immediately.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SetParams, cmd *cobra.Command, args []string) {
			if err := Set(os.Stdout, config.ConfigPath(), params); err != nil {
				fmt.Fprintf(os.Stderr, "config set: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func resetCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "reset",
		Short: "Restore default settings",
		RunFunc: func(_ *boa.NoParams, cmd *cobra.Command, args []string) {
			if err := config.Save(config.DefaultConfig()); err != nil {
				fmt.Fprintf(os.Stderr, "config reset: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Settings reset to defaults.")
		},
	}.ToCobra()
}

func pathCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "path",
		Short: "Print the settings file location",
		RunFunc: func(_ *boa.NoParams, cmd *cobra.Command, args []string) {
			fmt.Println(config.ConfigPath())
		},
	}.ToCobra()
}

func Show(w io.Writer, path string, fileOnly bool) error {
	var cfg *config.Config
	var err error
	if fileOnly {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFrom(path)
	}
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// Set applies the non-zero fields of params to the file at path. The result
// is validated before anything is written.
func Set(w io.Writer, path string, params *SetParams) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	flags := common.SettingsFlags{
		Speed:         params.Speed,
		Frequency:     params.Frequency,
		MaxWordLength: params.MaxWordLength,
		WordsFile:     params.Words,
	}
	cfg = flags.Resolve(cfg)
	if params.Words == "-" {
		cfg.WordsFile = ""
	}

	if err := cfg.Settings().Validate(); err != nil {
		return err
	}
	if cfg.WordsFile != "" {
		if _, err := cfg.Words(); err != nil {
			return fmt.Errorf("checking word list: %w", err)
		}
	}

	if err := config.SaveTo(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s\n", path)
	return nil
}
