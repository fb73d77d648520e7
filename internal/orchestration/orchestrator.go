// Package orchestration coordinates multi-algorithm benchmark runs and
// produces the comparative report. It is the concurrency layer between the
// application entry point and the benchmark engine.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/pffbench/internal/benchmark"
	"github.com/agbru/pffbench/internal/cli"
	"github.com/agbru/pffbench/internal/config"
	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/logging"
	"github.com/agbru/pffbench/internal/numtheory"
	"github.com/agbru/pffbench/internal/ui"
)

// ComparisonResult encapsulates the outcome of benchmarking one algorithm.
// It serves as a standardized container for results from different
// algorithms, facilitating comparison and reporting.
type ComparisonResult struct {
	// Name is the identifier of the algorithm benchmarked (e.g., "classical").
	Name string
	// Result is the benchmark result. It is nil if an error occurred.
	Result *benchmark.BenchmarkResult
	// Duration is the wall-clock time of the whole benchmark run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// RunComparison benchmarks every named algorithm concurrently and collects
// their results. Each algorithm gets its own engine with a derived seed so
// runs are independent yet reproducible from the configured base seed.
// Individual failures are recorded per result and never abort the other
// runs; only context cancellation stops everything.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - factory: The algorithm factory used to instantiate each algorithm.
//   - names: The algorithm names to benchmark.
//   - cfg: The application configuration (size, trials, seeds, etc.).
//   - logger: The logger shared by the engines.
//
// Returns:
//   - []ComparisonResult: A slice containing the result of each run, in the
//     order of names.
func RunComparison(ctx context.Context, factory factoring.Factory, names []string, cfg config.AppConfig, logger logging.Logger) []ComparisonResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ComparisonResult, len(names))

	for i, name := range names {
		idx, algoName := i, name
		g.Go(func() error {
			startTime := time.Now()
			result, err := runOne(ctx, factory, algoName, idx, cfg, logger)
			results[idx] = ComparisonResult{
				Name: algoName, Result: result, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	return results
}

// runOne benchmarks a single algorithm with its own engine and derived seed.
func runOne(ctx context.Context, factory factoring.Factory, name string, index int, cfg config.AppConfig, logger logging.Logger) (*benchmark.BenchmarkResult, error) {
	alg, err := factory.Create(name, cfg.ToAlgorithmConfig())
	if err != nil {
		return nil, err
	}

	opts := []benchmark.Option{benchmark.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, benchmark.WithGenerator(numtheory.NewGenerator(cfg.Seed+int64(index))))
	}
	engine := benchmark.NewEngine(opts...)
	return engine.Run(ctx, cfg.Bits, alg, cfg.Trials, cfg.Semiprime)
}

// AnalyzeComparisonResults processes the results from multiple algorithms
// and generates a summary report.
//
// It sorts the results by PFF score, displays a comparative table, and
// determines global success or failure from the individual outcomes. The
// highest-scoring algorithm is reported as the winner.
//
// Parameters:
//   - results: The slice of comparison results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []ComparisonResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		if results[i].Err != nil {
			return results[i].Name < results[j].Name
		}
		return results[i].Result.PFF > results[j].Result.PFF
	})

	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary (s=%d, %d trials) ---\n", cfg.Bits, cfg.Trials)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sAlgorithm%s\t%sPFF (per year)%s\t%sAvg Time%s\t%sSuccess%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		if res.Err != nil {
			if firstError == nil {
				firstError = res.Err
			}
			fmt.Fprintf(tw, "%s%s%s\t-\t-\t-\t%s❌ Failure (%v)%s\n",
				ui.ColorBlue(), res.Name, ui.ColorReset(),
				ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		successCount++
		fmt.Fprintf(tw, "%s%s%s\t%s%.0f%s\t%s%.6fs%s\t%.1f%%\t%s✅ Success%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), res.Result.PFF, ui.ColorReset(),
			ui.ColorYellow(), res.Result.AvgTime, ui.ColorReset(),
			res.Result.SuccessRate()*100,
			ui.ColorGreen(), ui.ColorReset())
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm completed its benchmark.\n")
		return apperrors.HandleBenchmarkError(firstError, 0, out, cli.CLIColorProvider{})
	}

	winner := results[0]
	fmt.Fprintf(out, "\nGlobal Status: Success. Fastest algorithm: %s%s%s (PFF=%.0f).\n",
		ui.ColorGreen(), winner.Name, ui.ColorReset(), winner.Result.PFF)
	return apperrors.ExitSuccess
}
