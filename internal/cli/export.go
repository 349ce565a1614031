package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/labelstore/internal/share"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <label>",
		Short: "Write a label's document set as a portable payload",
		Long: `Export every document carrying the given label as a JSON payload
suitable for import into another substrate. The payload carries titles
and URLs only; document IDs are re-derived from URLs on import.`,
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

			payload, err := share.Export(cmd.Context(), e.index(), label, e.currentDocID())
			if err != nil {
				formatter.Error(ErrCodeStorage, err.Error())
				return WrapExitError(ExitFailure, "export failed", err)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("cannot create %s", outputPath), err)
					formatter.Error(ErrCodeCommand, wrapped.Error())
					return wrapped
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(payload); err != nil {
				return WrapExitError(ExitFailure, "encode payload", err)
			}
			formatter.VerboseLog("exported %q with %d document(s)", label, len(payload.Documents))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write payload to a file instead of stdout")
	return cmd
}
