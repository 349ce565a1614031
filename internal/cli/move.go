package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/labelstore/internal/labels"
)

// NewMoveCommand creates the move command.
func NewMoveCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a label to another position",
		Long: `Move the label at position from to position to.
The move is a remove followed by an insert: to addresses the sequence
after the label has been taken out. move i j followed by move j i
restores the original order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			from, err := strconv.Atoi(args[0])
			if err != nil {
				wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("from %q is not a number", args[0]), err)
				formatter.Error(ErrCodeCommand, wrapped.Error())
				return wrapped
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("to %q is not a number", args[1]), err)
				formatter.Error(ErrCodeCommand, wrapped.Error())
				return wrapped
			}

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
			rec, rerr := store.Reorder(cmd.Context(), rec, from, to)
			if rerr != nil {
				if labels.IsRangeError(rerr) {
					formatter.Error(labels.ErrCodeIndexOutOfRange, rerr.Error())
				} else {
					formatter.Error(ErrCodeCommand, rerr.Error())
				}
				return WrapExitError(ExitFailure, "move failed", rerr)
			}

			if done, err := formatter.JSON(listResult{Document: sess.DocID, Labels: rec.Labels}); done {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved label from %d to %d.\n", from, to)
			return nil
		},
	}
	return cmd
}
