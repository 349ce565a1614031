package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listResult is the JSON shape for the list command.
type listResult struct {
	Document string   `json:"document"`
	Labels   []string `json:"labels"`
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the active document's labels in order",
		Args:  cobra.NoArgs,
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

			rec := e.labelStore(sess).Load(cmd.Context())
			formatter.VerboseLog("session %s loaded %d label(s)", sess.Token, len(rec.Labels))

			if done, err := formatter.JSON(listResult{Document: sess.DocID, Labels: rec.Labels}); done {
				return err
			}
			if len(rec.Labels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no labels)")
				return nil
			}
			for i, label := range rec.Labels {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i, label)
			}
			return nil
		},
	}
	return cmd
}
