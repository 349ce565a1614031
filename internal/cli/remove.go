package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/labelstore/internal/labels"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Delete the label at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			index, err := strconv.Atoi(args[0])
			if err != nil {
				wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("index %q is not a number", args[0]), err)
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
			rec, rerr := store.Remove(cmd.Context(), rec, index)
			if rerr != nil {
				if labels.IsRangeError(rerr) {
					formatter.Error(labels.ErrCodeIndexOutOfRange, rerr.Error())
				} else {
					formatter.Error(ErrCodeCommand, rerr.Error())
				}
				return WrapExitError(ExitFailure, "remove failed", rerr)
			}

			if done, err := formatter.JSON(listResult{Document: sess.DocID, Labels: rec.Labels}); done {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed label at position %d; %d remaining.\n", index, len(rec.Labels))
			return nil
		},
	}
	return cmd
}
