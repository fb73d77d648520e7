// Command pffbench benchmarks integer-factorization algorithms and reports
// the Prime Factorization Frequency metric. The heavy lifting lives in
// internal/app; main stays a thin shell so every mode is testable.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/pffbench/internal/app"
	apperrors "github.com/agbru/pffbench/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Handle --version in any position before flag parsing
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
