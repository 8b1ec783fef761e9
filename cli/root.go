package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wasmguard [command]",
		SilenceUsage:  true,
		SilenceErrors: true,
		Short:         "Static analysis of Rust functions exported across the WebAssembly boundary",
		Long: `wasmguard inspects Rust sources for functions exported with #[wasm_bindgen]
that perform unsafe memory operations in their own body or return a fallible
Result that crosses the host/guest boundary.`,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newRulesCommand())
	return cmd
}
