package main

import (
	"os"
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/mctrainer/cmd/common"
	"github.com/gigurra/mctrainer/cmd/morse"
	"github.com/gigurra/mctrainer/cmd/play"
	"github.com/gigurra/mctrainer/cmd/render"
	"github.com/gigurra/mctrainer/cmd/settings"
	"github.com/gigurra/mctrainer/cmd/table"
	"github.com/gigurra/mctrainer/cmd/train"
	"github.com/gigurra/mctrainer/cmd/words"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupPractice  = "practice"
	groupReference = "reference"
	groupAudio     = "audio"
	groupSetup     = "setup"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	common.SetupLogging(os.Stderr, os.Getenv("MCTRAINER_DEBUG") != "")

	boa.CmdT[boa.NoParams]{
		Use:     "mctrainer",
		Short:   "Morse code listening trainer",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupPractice, Title: "Practice:"},
			{ID: groupReference, Title: "Reference:"},
			{ID: groupAudio, Title: "Audio:"},
			{ID: groupSetup, Title: "Setup:"},
		},
		SubCmds: []*cobra.Command{
			withGroup(train.Cmd(), groupPractice),
			withGroup(play.Cmd(), groupPractice),

			withGroup(morse.Cmd(), groupReference),
			withGroup(table.Cmd(), groupReference),
			withGroup(words.Cmd(), groupReference),

			withGroup(render.Cmd(), groupAudio),

			withGroup(settings.Cmd(), groupSetup),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
