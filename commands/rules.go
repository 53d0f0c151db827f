package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List validation rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	registry, err := newRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tSECTION\tSTATUS\tDESCRIPTION")
	for _, rule := range registry.Rules() {
		status := "on"
		if !registry.IsEnabled(rule.Name()) {
			status = "skipped"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rule.Name(), rule.Section(), status, rule.Description())
	}
	return w.Flush()
}
