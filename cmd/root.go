// root.go defines the root command and CLI execution entry point.
//
// Design: subcommand outcomes are not all errors. The sorter reports
// "rewritten" as exit 1 and "structurally invalid" as exit 2, neither of
// which is a Go error. Commands record their outcome in exitCode and
// Execute returns it to main, which passes it to os.Exit. Genuine errors
// (bad usage, unreadable file) exit -1.

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "popdata",
	Short: "Maintain the site metadata file",
	Long: `Maintenance tools for the comma-delimited site metadata file
(header row plus one record per site, first column is the key).

  popdata sort sites.csv    # canonicalise record order
  popdata check sites.csv   # enforce bio/topics content rules`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// exitCode is set by subcommands whose outcomes map to non-zero exit
// codes without being errors (see package comment).
var exitCode int

// Execute runs the root command and returns the process exit code.
// Errors (usage, I/O) exit -1 unless the command already recorded a more
// specific code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil && exitCode == 0 {
		return -1
	}
	return exitCode
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
