// Package cli implements the labelstore command line interface.
//
// The CLI is a thin driver over the engine packages: it wires a substrate, a
// host and a session from flags, runs one operation, and renders the result.
// It owns everything the engine refuses to own - display sorting, the watch
// loop's timer, exit codes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string // substrate database path
	Base    string // document namespace base URL
	Doc     string // active document URL (optional for find/export/import)
	Title   string // active document title
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the labelstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "labelstore",
		Short: "labelstore - ordered labels for documents over a shared substrate",
		Long: `labelstore keeps an ordered label list per document in a SQLite substrate
shared by every session on the machine, with a reverse index (label to
documents), a portable export/import format, and divergence detection
against external writers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "labelstore.db", "substrate database path")
	cmd.PersistentFlags().StringVar(&opts.Base, "base", "https://notes.example/d/", "document namespace base URL")
	cmd.PersistentFlags().StringVar(&opts.Doc, "doc", "", "active document URL")
	cmd.PersistentFlags().StringVar(&opts.Title, "title", "", "active document title")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewMoveCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
