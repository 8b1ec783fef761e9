package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/analyzer/rule"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List known rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := map[finding.RuleID]bool{}
			for _, id := range finding.DefaultRules() {
				enabled[id] = true
			}
			for _, r := range rule.All() {
				state := "opt-in"
				if enabled[r.ID()] {
					state = "default"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-7s %-8s %s\n", r.ID(), r.DefaultSeverity(), state, r.Description()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
