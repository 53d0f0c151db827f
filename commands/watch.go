package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/cydconf/internal/application/watch"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <project|dir|headers...>",
	Short: "Re-validate whenever the configuration changes",
	Long: `Validates once, then again after every change to the project file (and its
.env) or the headers. Clean results update the last-known-good snapshot.
Stops on Ctrl+C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"Quiet period before re-validating after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	in, err := loadInput(args)
	if err != nil {
		return err
	}
	store, err := newStore()
	if err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(in.files)
	if err != nil {
		return err
	}
	defer fw.Close()

	check := func(ctx context.Context) (*model.Project, *model.Report, error) {
		in, err := loadInput(args)
		if err != nil {
			return nil, nil, err
		}
		report, err := validateInput(in)
		return in.project, report, err
	}

	out := cmd.OutOrStdout()
	onResult := func(r watch.Result) {
		fmt.Fprintf(out, "\n[%s] %s\n", r.At.Format("15:04:05"), r.Trigger)
		if r.Err != nil {
			fmt.Fprintf(out, "error: %v\n", r.Err)
			return
		}
		if err := writeReport(cmd, r.Report); err != nil {
			util.LogError("failed to write report: " + err.Error())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controller := watch.NewController(fw.Events(), check, onResult,
		watch.WithDebounce(watchDebounce),
		watch.WithSnapshot(store, in.source))

	util.LogInfo("watching", util.F("files", len(in.files)))
	fmt.Fprintf(out, "Watching %d files (Ctrl+C to stop)\n", len(in.files))

	if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
