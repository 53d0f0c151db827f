package commands

import (
	"errors"
	"fmt"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/render"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

var (
	renderDir          string
	renderForce        bool
	renderFromSnapshot bool
)

var renderCmd = &cobra.Command{
	Use:   "render [project|dir|headers...]",
	Short: "Generate the configuration headers",
	Long: `Writes User_Setup.h, lv_conf.h and config.h for every section of the
project. Projects with validation errors are refused unless --force is given.
With --from-snapshot the last-known-good project is rendered instead.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderDir, "dir", "d", ".",
		"Output directory")
	renderCmd.Flags().BoolVar(&renderForce, "force", false,
		"Render even when validation reports errors")
	renderCmd.Flags().BoolVar(&renderFromSnapshot, "from-snapshot", false,
		"Render the last-known-good snapshot")
}

func runRender(cmd *cobra.Command, args []string) error {
	var project *model.Project

	switch {
	case renderFromSnapshot:
		if len(args) > 0 {
			return errors.New("--from-snapshot takes no arguments")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		snap, err := store.Load()
		if err != nil {
			return err
		}
		util.LogInfo("rendering snapshot", util.F("source", snap.Source), util.F("saved_at", snap.SavedAt))
		project = snap.Project

	case len(args) == 0:
		return errors.New("no project given (or use --from-snapshot)")

	default:
		in, err := loadInput(args)
		if err != nil {
			return err
		}
		report, err := validateInput(in)
		if err != nil {
			return err
		}
		if report.HasErrors() {
			if !renderForce {
				if err := writeReport(cmd, report); err != nil {
					return err
				}
				return fmt.Errorf("%w: refusing to render (use --force)", ErrValidationFailed)
			}
			util.LogWarn("rendering project with errors", util.F("errors", report.Count(model.SeverityError)))
		}
		project = in.project
	}

	dir := util.ExpandPath(renderDir)
	if err := util.EnsureDir(dir); err != nil {
		return err
	}
	written, err := render.Project(dir, project)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return errors.New("project has no sections to render")
	}

	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
