// Package cli provides output utilities for exporting benchmark results.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/pffbench/internal/benchmark"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// JSONOutput emits the canonical serialized form instead of the summary.
	JSONOutput bool
	// Quiet mode suppresses everything except the PFF value.
	Quiet bool
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// DisplayBenchmarkResult renders a benchmark result according to the output
// configuration: quiet mode prints the bare PFF value for scripting, JSON
// mode prints the canonical serialized form, and the default mode prints the
// human-readable summary.
//
// Parameters:
//   - out: The output writer.
//   - result: The benchmark result to display.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding or file output fails.
func DisplayBenchmarkResult(out io.Writer, result *benchmark.BenchmarkResult, config OutputConfig) error {
	if err := renderBenchmark(out, result, config); err != nil {
		return err
	}
	if config.OutputFile != "" {
		if err := writeSerialized(config.OutputFile, result.Serialize()); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%sResult saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}
	return nil
}

func renderBenchmark(out io.Writer, result *benchmark.BenchmarkResult, config OutputConfig) error {
	if config.Quiet {
		fmt.Fprintf(out, "%.0f\n", result.PFF)
		return nil
	}
	if config.JSONOutput {
		return encodeJSON(out, result.Serialize())
	}
	fmt.Fprintln(out, result.Summary())
	return nil
}

// DisplayScalingResult renders a scaling analysis according to the output
// configuration, following the same mode selection as
// DisplayBenchmarkResult. Quiet mode prints one "size pff" line per size.
//
// Parameters:
//   - out: The output writer.
//   - result: The scaling result to display.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding or file output fails.
func DisplayScalingResult(out io.Writer, result *benchmark.ScalingResult, config OutputConfig) error {
	if err := renderScaling(out, result, config); err != nil {
		return err
	}
	if config.OutputFile != "" {
		if err := writeSerialized(config.OutputFile, result.Serialize()); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%sResult saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}
	return nil
}

func renderScaling(out io.Writer, result *benchmark.ScalingResult, config OutputConfig) error {
	if config.Quiet {
		series := result.PFFSeries()
		for _, size := range result.Sizes {
			fmt.Fprintf(out, "%d %.0f\n", size, series[size])
		}
		return nil
	}
	if config.JSONOutput {
		return encodeJSON(out, result.Serialize())
	}
	fmt.Fprintln(out, result.Summary())
	return nil
}

// encodeJSON writes v as indented JSON followed by a newline.
func encodeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSerialized saves the serialized form of a result to a file as JSON,
// creating parent directories as needed.
func writeSerialized(path string, v any) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return encodeJSON(file, v)
}
