// check.go implements the "popdata check" command.
//
// Every record is checked against the bio/topics content rules and every
// violation is reported, not just the first - one run surfaces everything
// there is to fix. Exit codes: 0 when clean, 1 when any violation exists
// or a required column is missing from the header.

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/darekkay/hn-popularity-contest-data/internal/validate"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <csv-file>",
		Short: "Check bio and topics content rules",
		Long: `Check every record of the metadata file against the content rules
for the bio and topics columns (length limits, topic count, ", " separator)
and report every violation found.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(c *cobra.Command, args []string) error {
	c.SilenceUsage = true

	w := Out()
	if JSON() {
		w = io.Discard
	}

	path := args[0]
	report, err := validate.File(path)
	if err != nil {
		// A missing required column is a check failure (exit 1); anything
		// else is an I/O error (exit -1). PrintJSONError swallows the
		// error in JSON mode, so the exit code must be recorded first.
		if errors.Is(err, validate.ErrColumnMissing) {
			exitCode = 1
		} else {
			exitCode = -1
		}
		return PrintJSONError(fmt.Errorf("check %s: %w", path, err))
	}

	report.Render(w)
	if !report.OK() {
		exitCode = 1
	}

	return PrintJSON(report.ToJSON())
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
