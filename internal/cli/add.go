package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Append a label to the active document",
		Long: `Append a label to the end of the active document's label sequence.
Multiple arguments are joined with spaces; surrounding whitespace is
trimmed. Adding only whitespace is a no-op. Duplicates are allowed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			e, err := openEnv(opts)
			if err != nil {
				formatter.Error(ErrCodeCommand, err.Error())
				return err
			}
			defer e.Close()

			sess, err := e.requireSession()
			if err != nil {
				formatter.Error(ErrCodeCommand, err.Error())
				return err
			}

			store := e.labelStore(sess)
			rec := store.Load(cmd.Context())
			before := len(rec.Labels)
			rec = store.Add(cmd.Context(), rec, strings.Join(args, " "))

			if done, err := formatter.JSON(listResult{Document: sess.DocID, Labels: rec.Labels}); done {
				return err
			}
			if len(rec.Labels) == before {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to add.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q at position %d.\n", rec.Labels[len(rec.Labels)-1], len(rec.Labels)-1)
			return nil
		},
	}
	return cmd
}
