package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/core/rules"
	"github.com/penwyp/cydconf/internal/data/header"
	"github.com/penwyp/cydconf/internal/data/loader"
	"github.com/penwyp/cydconf/internal/data/snapshot"
	"github.com/penwyp/cydconf/internal/presentation/formatter"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned when a report contains errors
var ErrValidationFailed = errors.New("validation failed")

var (
	// Logging related
	debug   bool
	logFile string

	// Output related
	outputFormat string
	noColor      bool

	// Validation
	skipRules []string

	// Secrets and state
	envFile  string
	noEnv    bool
	stateDir string

	rootCmd = &cobra.Command{
		Use:   "cydconf",
		Short: "Configuration toolkit for CYD (ESP32-2432S028) builds",
		Long: `cydconf models, validates and generates the compile-time configuration of
CYD appliance-monitor and dashboard sketches: the display driver setup
(User_Setup.h), the UI library table (lv_conf.h) and the monitor secrets and
thresholds (config.h).

Examples:
  cydconf init -f project.yaml                 # Write a project with stock values
  cydconf validate project.yaml                # Check a project
  cydconf validate ./sketch                    # Check existing headers in a directory
  cydconf import ./sketch -f project.yaml      # Recover a project from headers
  cydconf render project.yaml -d ./sketch      # Generate the three headers
  cydconf watch project.yaml                   # Re-validate on every save
  cydconf publish project.yaml --broker tcp://localhost:1883`,
		SilenceUsage:      true,
		PersistentPreRunE: initLogging,
	}
)

const (
	defaultStateDir = "~/.cydconf"
	defaultLogFile  = "~/.cydconf/logs/cydconf.log"
)

func init() {
	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode (also logs to stderr)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path (empty disables file logging)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatter.FormatTable,
		"Report format (table, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Validation
	rootCmd.PersistentFlags().StringSliceVar(&skipRules, "skip", nil,
		"Rules to skip (comma separated, see 'cydconf rules')")

	// Secrets and state
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"Secrets file (default: .env next to the project file)")
	rootCmd.PersistentFlags().BoolVar(&noEnv, "no-env", false,
		"Ignore .env files and CYD_* environment variables")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultStateDir,
		"Directory for the last-known-good snapshot")
}

func Execute() error {
	return rootCmd.Execute()
}

func initLogging(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	path := ""
	if logFile != "" {
		path = util.ExpandPath(logFile)
		if err := util.EnsureDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := util.InitLogger(logLevel, path, debug); err != nil {
		return err
	}
	util.LogDebug("command started", util.F("command", cmd.CommandPath()), util.F("args", strings.Join(args, " ")))
	return nil
}

// input is a project resolved from the command line, either a project
// file or a set of headers
type input struct {
	source   string
	project  *model.Project
	findings []model.Finding
	files    []string
}

// loadInput resolves args into a project. A single .yaml/.yml/.json arg
// is a project file; a directory means the canonical headers inside it;
// anything else is a list of header files.
func loadInput(args []string) (*input, error) {
	if len(args) == 0 {
		return nil, errors.New("no project file or headers given")
	}

	if len(args) == 1 {
		if _, err := loader.FormatFor(args[0]); err == nil {
			p, err := loader.Load(args[0], loader.Options{EnvFile: envFile, NoEnv: noEnv})
			if err != nil {
				return nil, err
			}
			files := []string{args[0]}
			if env := filepath.Join(filepath.Dir(args[0]), ".env"); fileExists(env) && !noEnv {
				files = append(files, env)
			}
			return &input{source: args[0], project: p, files: files}, nil
		}
	}

	paths, err := headerPaths(args)
	if err != nil {
		return nil, err
	}
	p, findings, err := header.DecodeFiles(paths...)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = projectNameFor(args[0])
	}
	return &input{
		source:   strings.Join(args, ","),
		project:  p,
		findings: findings,
		files:    paths,
	}, nil
}

// headerPaths expands directories into the canonical headers they contain
func headerPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found := 0
		for _, name := range []string{header.FileDisplay, header.FileUI, header.FileMonitor} {
			path := filepath.Join(arg, name)
			if fileExists(path) {
				paths = append(paths, path)
				found++
			}
		}
		if found == 0 {
			return nil, fmt.Errorf("no %s, %s or %s in %s", header.FileDisplay, header.FileUI, header.FileMonitor, arg)
		}
	}
	return paths, nil
}

func projectNameFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return filepath.Base(abs)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// newRegistry returns the default rules minus --skip
func newRegistry() (*rules.Registry, error) {
	registry := rules.DefaultRegistry()
	if err := registry.Disable(skipRules...); err != nil {
		return nil, err
	}
	return registry, nil
}

func validateInput(in *input) (*model.Report, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, err
	}
	return registry.Validate(in.project, in.findings...), nil
}

func newStore() (*snapshot.Store, error) {
	return snapshot.NewStore(util.ExpandPath(stateDir))
}

// writeReport prints report in the selected format
func writeReport(cmd *cobra.Command, report *model.Report) error {
	out := cmd.OutOrStdout()
	opts := formatter.Options{}
	if f, ok := out.(*os.File); ok && util.IsTerminal(f) {
		opts.Color = !noColor
		opts.Width = util.TerminalWidth(f, 120)
	}

	f, err := formatter.New(outputFormat, opts)
	if err != nil {
		return err
	}
	return f.Format(out, report)
}

func failIfErrors(report *model.Report) error {
	if n := report.Count(model.SeverityError); n > 0 {
		return fmt.Errorf("%w: %d errors", ErrValidationFailed, n)
	}
	return nil
}
