package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/loader"
	"github.com/spf13/cobra"
)

var (
	initFile     string
	initName     string
	initSections []string
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project file with stock CYD values",
	Long: `Writes a project with the values shipped with the stock CYD sketches. The
monitor section starts with placeholder credentials, which validate reports
until they are replaced (or supplied through .env / CYD_* variables).`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initFile, "file", "f", "project.yaml",
		"Project file to write (.yaml, .yml or .json)")
	initCmd.Flags().StringVar(&initName, "name", "",
		"Project name (default: file name)")
	initCmd.Flags().StringSliceVar(&initSections, "sections",
		[]string{model.SectionDisplay, model.SectionUI, model.SectionMonitor},
		"Sections to include")
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := loader.FormatFor(initFile); err != nil {
		return err
	}
	if fileExists(initFile) && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initFile)
	}

	name := initName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(initFile), filepath.Ext(initFile))
	}

	full := model.DefaultProject(name)
	project := &model.Project{Name: name}
	for _, section := range initSections {
		switch section {
		case model.SectionDisplay:
			project.Display = full.Display
		case model.SectionUI:
			project.UI = full.UI
		case model.SectionMonitor:
			project.Monitor = full.Monitor
		default:
			return fmt.Errorf("unknown section %q (want display, ui or monitor)", section)
		}
	}

	if err := loader.Save(initFile, project); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", initFile, strings.Join(project.Sections(), ", "))
	return nil
}
