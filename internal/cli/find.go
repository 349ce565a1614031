package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/labelstore/internal/index"
)

// findResult is the JSON shape for the find command.
type findResult struct {
	Label     string              `json:"label"`
	Documents []index.DocumentRef `json:"documents"`
}

// NewFindCommand creates the find command.
func NewFindCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <label>",
		Short: "List documents carrying a label",
		Long: `Scan every stored record and list the documents whose label sequence
contains the given label (exact, case-sensitive match). The scan itself
returns documents in no particular order; the CLI sorts them by title
for display.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			label := args[0]

			e, err := openEnv(opts)
			if err != nil {
				formatter.Error(ErrCodeCommand, err.Error())
				return err
			}
			defer e.Close()

			refs, err := e.index().FindDocumentsWithLabel(cmd.Context(), label, e.currentDocID())
			if err != nil {
				formatter.Error(ErrCodeStorage, err.Error())
				return WrapExitError(ExitFailure, "scan failed", err)
			}
			sortRefs(refs)

			if done, err := formatter.JSON(findResult{Label: label, Documents: refs}); done {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No documents carry %q.\n", label)
				return nil
			}
			for _, ref := range refs {
				marker := " "
				if ref.IsCurrent {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, ref.Title, ref.URL)
			}
			return nil
		},
	}
	return cmd
}

// sortRefs orders scan hits by title, then ID, using language-neutral
// collation so display order is stable regardless of substrate enumeration.
func sortRefs(refs []index.DocumentRef) {
	c := collate.New(language.Und)
	sort.SliceStable(refs, func(i, j int) bool {
		if cmp := c.CompareString(refs[i].Title, refs[j].Title); cmp != 0 {
			return cmp < 0
		}
		return refs[i].ID < refs[j].ID
	})
}
