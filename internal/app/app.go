package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/pffbench/internal/benchmark"
	"github.com/agbru/pffbench/internal/cli"
	"github.com/agbru/pffbench/internal/config"
	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/logging"
	"github.com/agbru/pffbench/internal/numtheory"
	"github.com/agbru/pffbench/internal/orchestration"
	"github.com/agbru/pffbench/internal/server"
	"github.com/agbru/pffbench/internal/ui"
)

// Application represents the pffbench application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (single benchmark, comparison,
// scaling analysis, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the factorization algorithm implementations.
	// Uses the interface type for better testability and dependency injection.
	Factory factoring.Factory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := factoring.GlobalFactory()
	availableAlgos := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "pffbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server, scaling analysis,
// comparison, or single benchmark).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.SetColorEnabled(!a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Scaling analysis mode
	if a.Config.ScalingMode() {
		return a.runScaling(ctx, out)
	}

	// Multi-algorithm comparison mode
	if a.Config.Algo == "all" {
		return a.runComparison(ctx, out)
	}

	// Single benchmark mode
	return a.runBenchmark(ctx, out)
}

// newLogger builds the run logger. Benchmark internals stay silent unless
// verbose mode is requested, so log lines never fight the progress spinner.
func (a *Application) newLogger() logging.Logger {
	if !a.Config.Verbose || a.Config.Quiet {
		return logging.NewNopLogger()
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: a.ErrWriter}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// newEngine builds a benchmark engine from the configuration, wiring in the
// seeded generator and any observers.
func (a *Application) newEngine(logger logging.Logger, observers ...benchmark.TrialObserver) *benchmark.Engine {
	opts := []benchmark.Option{benchmark.WithLogger(logger)}
	if a.Config.Seed != 0 {
		opts = append(opts, benchmark.WithGenerator(numtheory.NewGenerator(a.Config.Seed)))
	}
	for _, obs := range observers {
		opts = append(opts, benchmark.WithObserver(obs))
	}
	return benchmark.NewEngine(opts...)
}

// printRunHeader announces the run parameters before a benchmark starts.
func (a *Application) printRunHeader(out io.Writer, mode string) {
	if a.Config.Quiet || a.Config.JSONOutput {
		return
	}
	fmt.Fprintf(out, "%s%s%s | algorithm=%s backend=%s trials=%d semiprime=%v\n",
		ui.ColorBold(), mode, ui.ColorReset(),
		a.Config.Algo, a.Config.Backend, a.Config.Trials, a.Config.Semiprime)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBenchmark executes a single-algorithm benchmark at the configured size.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	alg, err := a.Factory.Create(a.Config.Algo, a.Config.ToAlgorithmConfig())
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	a.printRunHeader(out, fmt.Sprintf("PFF benchmark (s=%d)", a.Config.Bits))

	progress := cli.NewProgressReporter(out, a.Config.Quiet || a.Config.JSONOutput)
	engine := a.newEngine(a.newLogger(), progress)

	progress.Start()
	start := time.Now()
	result, err := engine.Run(ctx, a.Config.Bits, alg, a.Config.Trials, a.Config.Semiprime)
	duration := time.Since(start)
	progress.Stop()

	if err != nil {
		return apperrors.HandleBenchmarkError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}

	if err := cli.DisplayBenchmarkResult(out, result, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runScaling executes a scaling analysis over the configured sizes.
func (a *Application) runScaling(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	sizes, err := a.Config.ParseSizes()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.Algo == "all" {
		fmt.Fprintln(a.ErrWriter, "Configuration error: scaling mode requires a single algorithm, not 'all'")
		return apperrors.ExitErrorConfig
	}

	alg, err := a.Factory.Create(a.Config.Algo, a.Config.ToAlgorithmConfig())
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	a.printRunHeader(out, fmt.Sprintf("Scaling analysis (sizes=%v)", sizes))

	progress := cli.NewProgressReporter(out, a.Config.Quiet || a.Config.JSONOutput)
	engine := a.newEngine(a.newLogger(), progress)

	progress.Start()
	start := time.Now()
	result, err := engine.RunScaling(ctx, alg, sizes, a.Config.Trials, a.Config.Semiprime)
	duration := time.Since(start)
	progress.Stop()

	if err != nil {
		return apperrors.HandleBenchmarkError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}

	if err := cli.DisplayScalingResult(out, result, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runComparison benchmarks every registered algorithm and reports the
// comparative results.
func (a *Application) runComparison(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	names := a.Factory.List()
	a.printRunHeader(out, fmt.Sprintf("PFF comparison (s=%d)", a.Config.Bits))

	results := orchestration.RunComparison(ctx, a.Factory, names, a.Config, a.newLogger())

	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config, out)
}

// outputConfig derives the CLI output configuration from the app config.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		JSONOutput: a.Config.JSONOutput,
		Quiet:      a.Config.Quiet,
	}
}

// jsonComparisonResult represents a single comparison entry in JSON format.
type jsonComparisonResult struct {
	Algorithm string         `json:"algorithm"`
	Duration  string         `json:"duration"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// printJSONResults formats the comparison results as a JSON array and writes
// them to the output. This is useful for programmatic consumption.
func printJSONResults(results []orchestration.ComparisonResult, out io.Writer) int {
	output := make([]jsonComparisonResult, len(results))
	for i, res := range results {
		jr := jsonComparisonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.Result = res.Result.Serialize()
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
