package commands

import (
	"fmt"

	"github.com/penwyp/cydconf/internal/data/loader"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

var (
	importFile  string
	importName  string
	importForce bool
)

var importCmd = &cobra.Command{
	Use:   "import <dir|headers...>",
	Short: "Recover a project file from existing headers",
	Long: `Parses User_Setup.h, lv_conf.h and config.h and writes the values as a
project file. Values that cannot be read and a recipient count that does not
match the recipient list are reported. Without --file the project is printed
as YAML.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "",
		"Project file to write (.yaml, .yml or .json)")
	importCmd.Flags().StringVar(&importName, "name", "",
		"Project name (default: directory name)")
	importCmd.Flags().BoolVar(&importForce, "force", false,
		"Overwrite an existing project file")
}

func runImport(cmd *cobra.Command, args []string) error {
	paths, err := headerPaths(args)
	if err != nil {
		return err
	}
	in, err := loadInput(paths)
	if err != nil {
		return err
	}
	if importName != "" {
		in.project.Name = importName
	}

	report, err := validateInput(in)
	if err != nil {
		return err
	}

	if importFile == "" {
		data, err := loader.Encode(in.project, loader.FormatYAML)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		if err != nil {
			return err
		}
		return failIfErrors(report)
	}

	if fileExists(importFile) && !importForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", importFile)
	}
	if err := loader.Save(importFile, in.project); err != nil {
		return err
	}
	util.LogInfo("imported project", util.F("file", importFile), util.F("headers", len(in.files)))

	if err := writeReport(cmd, report); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s from %d headers\n", importFile, len(in.files))
	return nil
}
