package commands

import (
	"errors"
	"fmt"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/scanner"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

var (
	noSnapshot bool
	recursive  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <project|dir|headers...>",
	Short: "Check a project or existing headers",
	Long: `Runs every rule against a project file or a set of headers and prints the
findings. Exits non-zero when any finding is an error. A clean project is
stored as the last-known-good snapshot.

With --recursive every sketch directory below the given directory is
validated on its own.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false,
		"Do not update the last-known-good snapshot")
	validateCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Validate every sketch directory below the given directory")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if recursive {
		return runValidateTree(cmd, args)
	}

	in, err := loadInput(args)
	if err != nil {
		return err
	}

	report, err := validateInput(in)
	if err != nil {
		return err
	}
	if err := writeReport(cmd, report); err != nil {
		return err
	}

	if !report.HasErrors() && !noSnapshot {
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Save(in.source, in.project, report); err != nil {
			util.LogWarn("failed to save snapshot", util.F("error", err.Error()))
		}
	}

	return failIfErrors(report)
}

// runValidateTree validates each sketch directory found below args[0].
// Snapshots are not written since there is no single project.
func runValidateTree(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("--recursive takes exactly one directory")
	}

	sketches, err := scanner.NewSketchScanner(args[0]).Scan()
	if err != nil {
		return err
	}
	if len(sketches) == 0 {
		return fmt.Errorf("no sketch directories below %s", args[0])
	}

	failed := 0
	for _, sketch := range sketches {
		in, err := loadInput(sketch.Headers)
		if err != nil {
			return fmt.Errorf("%s: %w", sketch.Path, err)
		}
		in.project.Name = projectNameFor(sketch.Path)

		report, err := validateInput(in)
		if err != nil {
			return err
		}
		if err := writeReport(cmd, report); err != nil {
			return err
		}
		if report.HasErrors() {
			failed++
		}
		util.LogDebug("validated sketch", util.F("path", sketch.Path), util.F("errors", report.Count(model.SeverityError)))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d sketches have errors", ErrValidationFailed, failed, len(sketches))
	}
	return nil
}
