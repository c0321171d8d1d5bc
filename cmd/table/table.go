package table

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse/code"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type Params struct {
	Format string `short:"o" help:"Output format: table, markdown or csv." default:"table" alts:"table,markdown,csv"`
	Speed  int    `short:"s" help:"Units per second used for the duration column. 0 uses the config." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "table",
		Short:       "Show the Morse symbol table",
		Long:        "List every supported character with its pattern, tone-gate bits and length.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "table: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, w io.Writer) error {
	_, settings, err := common.LoadSettings(common.SettingsFlags{Speed: params.Speed})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Char", "Pattern", "Bits", "Units", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, sym := range code.Symbols() {
		bits := code.Encode(string(sym.Char))
		char := string(sym.Char)
		pattern := sym.Pattern
		if sym.Char == code.Space {
			char = "space"
			pattern = "/"
		}
		t.AppendRow(table.Row{char, pattern, bits.String(), len(bits), bits.Duration(settings.Speed).String()})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d units/s", settings.Speed)})

	switch params.Format {
	case "markdown":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
	default:
		t.Render()
	}
	return nil
}
