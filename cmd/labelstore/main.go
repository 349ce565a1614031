package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/labelstore/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	cmd.SilenceUsage = true
	// Commands render their own errors through the formatter; ExitErrors
	// reaching this point have already been shown.
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and argument errors from cobra itself.
			fmt.Fprintf(os.Stderr, "labelstore: %v\n", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
