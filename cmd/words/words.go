package words

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse/code"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type Params struct {
	MaxWordLength int    `short:"m" help:"Only list words up to this many letters. 0 uses the config." default:"0"`
	Words         string `short:"w" help:"Word list file, one word per line. Empty uses the config or the built-in list." default:""`
	Speed         int    `short:"s" help:"Units per second used for the duration column. 0 uses the config." default:"0"`
	Sort          string `help:"Sort by: list, alpha, length or duration." default:"list" alts:"list,alpha,length,duration"`
	Plain         bool   `short:"p" help:"Print one word per line without the table." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "words",
		Short:       "List the words the trainer picks from",
		Long:        "Show the practice word list after the max word length filter, with each word's pattern and playback time.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "words: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

type entry struct {
	word string
	bits code.Bits
}

func Run(params *Params, w io.Writer) error {
	cfg, settings, err := common.LoadSettings(common.SettingsFlags{
		Speed:         params.Speed,
		MaxWordLength: params.MaxWordLength,
		WordsFile:     params.Words,
	})
	if err != nil {
		return err
	}
	all, err := cfg.Words()
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}
	filtered := trainer.FilterWords(all, settings.MaxWordLength)
	if len(filtered) == 0 {
		return fmt.Errorf("%w (max %d, %d words)", trainer.ErrEmptyWordList, settings.MaxWordLength, len(all))
	}

	entries := make([]entry, len(filtered))
	for i, word := range filtered {
		entries[i] = entry{word: word, bits: code.Encode(word)}
	}
	sortEntries(entries, params.Sort)

	if params.Plain {
		for _, e := range entries {
			fmt.Fprintln(w, e.word)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Word", "Letters", "Pattern", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.word,
			utf8.RuneCountInString(e.word),
			code.Patterns(e.word),
			e.bits.Duration(settings.Speed).Round(time.Millisecond).String(),
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d of %d", len(filtered), len(all)), "", "", fmt.Sprintf("%d units/s", settings.Speed)})
	t.Render()
	return nil
}

func sortEntries(entries []entry, by string) {
	switch by {
	case "alpha":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].word < entries[j].word })
	case "length":
		sort.SliceStable(entries, func(i, j int) bool {
			return utf8.RuneCountInString(entries[i].word) < utf8.RuneCountInString(entries[j].word)
		})
	case "duration":
		sort.SliceStable(entries, func(i, j int) bool { return len(entries[i].bits) < len(entries[j].bits) })
	}
}
