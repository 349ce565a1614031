package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
//
// The watcher itself owns no timer; this command is the driver loop the
// engine expects, rechecking on a fixed interval until interrupted.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	var (
		interval time.Duration
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report external changes to the active document's labels",
		Long: `Load the active document's labels as a baseline, then recheck the
substrate on an interval and report whenever another writer changed
the label sequence. Any number of external writes between two rechecks
collapses into one report. With --once, a single recheck is performed
and the command exits.`,
		Args: cobra.NoArgs,
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

			// Load establishes the baseline snapshot the watcher compares
			// against.
			rec := e.labelStore(sess).Load(cmd.Context())
			formatter.VerboseLog("watching %s, baseline of %d label(s)", sess.DocID, len(rec.Labels))

			w := e.watcher(sess)
			w.OnExternalChange(func(labels []string) {
				if f, ferr := formatter.JSON(listResult{Document: sess.DocID, Labels: labels}); f || ferr != nil {
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "External change: %d label(s)\n", len(labels))
				for i, label := range labels {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i, label)
				}
			})

			recheck := func() error {
				if _, err := w.Recheck(cmd.Context()); err != nil {
					formatter.Error(ErrCodeStorage, err.Error())
					return WrapExitError(ExitFailure, "recheck failed", err)
				}
				return nil
			}

			if once {
				return recheck()
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
					if err := recheck(); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "recheck interval")
	cmd.Flags().BoolVar(&once, "once", false, "recheck once and exit")
	return cmd
}
