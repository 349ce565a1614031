package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/labelstore/internal/share"
)

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Merge a portable payload into the substrate",
		Long: `Read a payload (from a file, or stdin when no file is given) and merge
its label into the addressed documents. The merge is additive and
idempotent: documents already carrying the label are left alone, and
re-importing the same payload is a no-op. Entries without a usable URL
are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
				if err != nil {
					wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", args[0]), err)
					formatter.Error(ErrCodeCommand, wrapped.Error())
					return wrapped
				}
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					wrapped := WrapExitError(ExitCommandError, "cannot read stdin", err)
					formatter.Error(ErrCodeCommand, wrapped.Error())
					return wrapped
				}
			}

			e, err := openEnv(opts)
			if err != nil {
				formatter.Error(ErrCodeCommand, err.Error())
				return err
			}
			defer e.Close()

			result := e.shareCodec().Import(cmd.Context(), raw)
			if !result.Success {
				formatter.Error(share.ErrCodeInvalidFormat, result.Message)
				return NewExitError(ExitFailure, result.Message)
			}

			if done, err := formatter.JSON(result); done {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	return cmd
}
