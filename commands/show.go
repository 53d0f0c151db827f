package commands

import (
	"os"

	"github.com/penwyp/cydconf/internal/presentation/formatter"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <project|dir|headers...>",
	Short: "Print a project summary with secrets masked",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}

	color := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		color = util.IsTerminal(f) && !noColor
	}
	return formatter.NewSummaryFormatter(color).Format(cmd.OutOrStdout(), in.project)
}
