// sort.go implements the "popdata sort" command.
//
// Exit codes: 0 when the file is already sorted, 1 when it was rewritten
// in sorted order, 2 when a record's field count differs from the header
// (nothing written). These map the sorter's outcomes, not errors.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/darekkay/hn-popularity-contest-data/internal/sorter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSortCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sort <csv-file>",
		Short: "Sort records by the key column",
		Long: `Sort the data records of the metadata file by the first column,
case-insensitively and stably. The file is rewritten only when the order
actually changed, so running sort twice never touches the file twice.`,
		Args: cobra.ExactArgs(1),
		RunE: runSort,
	}
	c.Flags().BoolP("dry-run", "n", false, "Report the outcome without writing")
	c.Flags().BoolP("diff", "d", false, "Show a diff of the reordering")
	return c
}

func runSort(c *cobra.Command, args []string) error {
	// Past this point errors are runtime errors, not usage mistakes.
	c.SilenceUsage = true

	opts := sorter.Options{}
	opts.DryRun, _ = c.Flags().GetBool("dry-run")
	opts.ShowDiff, _ = c.Flags().GetBool("diff")
	opts.Colour = term.IsTerminal(int(os.Stdout.Fd()))

	w := Out()
	if JSON() {
		w = io.Discard
	}

	path := args[0]
	result, err := sorter.Run(w, path, opts)
	if err != nil {
		// PrintJSONError swallows the error in JSON mode; record the
		// exit code first so the process boundary still reports failure.
		exitCode = -1
		return PrintJSONError(fmt.Errorf("sort %s: %w", path, err))
	}

	switch result.Outcome {
	case sorter.OutcomeResorted:
		exitCode = 1
	case sorter.OutcomeInvalid:
		exitCode = 2
	}

	return PrintJSON(result.ToJSON(path))
}

func init() {
	rootCmd.AddCommand(newSortCmd())
}
