// Package config provides the configuration management for the pffbench
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
)

const (
	// EnvPrefix is the prefix for all environment variables used by pffbench.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "PFFBENCH_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultBits is the default integer size s, in bits.
	DefaultBits = 8
	// DefaultTrials is the default number of benchmark trials.
	DefaultTrials = 20
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "classical"
	// DefaultBackend is the default period-oracle backend.
	DefaultBackend = factoring.DefaultBackend
	// DefaultShots is the default number of oracle sampling repetitions.
	DefaultShots = factoring.DefaultShots
	// DefaultMaxIterations is the default period-finding attempt budget.
	DefaultMaxIterations = factoring.DefaultMaxIterations
	// DefaultTimeout is the default overall run timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"

	// MinBits and MaxBits bound the supported integer size. Above MaxBits the
	// simulated period oracle becomes impractically slow, mirroring the memory
	// wall of statevector simulation.
	MinBits = 2
	MaxBits = 20
	// MaxTrials bounds the trial count of a single benchmark run.
	MaxTrials = 1000
	// MaxScalingTrials bounds the per-size trial count of a scaling run.
	MaxScalingTrials = 500
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the integer size to benchmark, to oracle-tuning parameters.
type AppConfig struct {
	// Bits is the size s, in bits, of the integers to factor.
	Bits int
	// Trials is the number of factorization trials per benchmark run.
	Trials int
	// Algo specifies the algorithm to use ("all", "classical", "shor").
	Algo string
	// Backend identifies the period-oracle backend for quantum-style runs.
	Backend string
	// Shots is the number of sampling repetitions per oracle call.
	Shots int
	// MaxIterations caps the period-finding attempt loop.
	MaxIterations int
	// Semiprime, if true, restricts generated inputs to products of exactly
	// two distinct primes.
	Semiprime bool
	// Seed seeds the input generators for reproducible runs. 0 means
	// time-seeded.
	Seed int64
	// Sizes, if non-empty, switches to scaling mode over the listed bit
	// sizes (comma-separated, e.g. "4,6,8").
	Sizes string
	// Timeout sets the maximum duration for the whole run.
	Timeout time.Duration
	// OracleTimeout bounds a single period-oracle call. 0 means no bound.
	OracleTimeout time.Duration
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress spinners, banners, and informational messages.
	Quiet bool
	// Verbose, if true, enables debug-level logging.
	Verbose bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
}

// ToAlgorithmConfig converts the application configuration into
// factoring.Config for use by the algorithm factory.
func (c AppConfig) ToAlgorithmConfig() factoring.Config {
	return factoring.Config{
		Backend:       c.Backend,
		Shots:         c.Shots,
		MaxIterations: c.MaxIterations,
		OracleTimeout: c.OracleTimeout,
	}
}

// ScalingMode reports whether the configuration requests a scaling analysis
// rather than a single-size benchmark.
func (c AppConfig) ScalingMode() bool {
	return strings.TrimSpace(c.Sizes) != ""
}

// ParseSizes parses the Sizes field into an ordered list of bit sizes.
//
// Returns:
//   - []int: The parsed sizes, in the order given.
//   - error: A ConfigError when an entry is not an integer or a duplicate.
func (c AppConfig) ParseSizes() ([]int, error) {
	parts := strings.Split(c.Sizes, ",")
	sizes := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s, err := strconv.Atoi(part)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid size '%s' in -sizes: must be an integer", part)
		}
		if seen[s] {
			return nil, apperrors.NewConfigError("duplicate size %d in -sizes", s)
		}
		seen[s] = true
		sizes = append(sizes, s)
	}
	if len(sizes) == 0 {
		return nil, apperrors.NewConfigError("-sizes must list at least one size")
	}
	return sizes, nil
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen algorithm is supported.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid algorithm names
//     (e.g., ["classical", "shor"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Bits < MinBits || c.Bits > MaxBits {
		return apperrors.NewConfigError("integer size must be between %d and %d bits, got %d", MinBits, MaxBits, c.Bits)
	}
	if c.Trials < 1 {
		return apperrors.NewConfigError("number of trials must be at least 1, got %d", c.Trials)
	}
	if c.ScalingMode() {
		if c.Trials > MaxScalingTrials {
			return apperrors.NewConfigError("scaling runs allow at most %d trials per size, got %d", MaxScalingTrials, c.Trials)
		}
		sizes, err := c.ParseSizes()
		if err != nil {
			return err
		}
		for _, s := range sizes {
			if s < MinBits || s > MaxBits {
				return apperrors.NewConfigError("size %d in -sizes is out of range [%d, %d]", s, MinBits, MaxBits)
			}
		}
	} else if c.Trials > MaxTrials {
		return apperrors.NewConfigError("number of trials must be at most %d, got %d", MaxTrials, c.Trials)
	}
	if c.Shots <= 0 {
		return apperrors.NewConfigError("shots must be strictly positive, got %d", c.Shots)
	}
	if c.MaxIterations < 1 {
		return apperrors.NewConfigError("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.OracleTimeout < 0 {
		return apperrors.NewConfigError("oracle timeout cannot be negative")
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		sorted := append([]string(nil), availableAlgos...)
		sort.Strings(sorted)
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(sorted, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid algorithm names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to benchmark: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.IntVar(&config.Bits, "s", DefaultBits, "Size s (in bits) of the integers to factor.")
	fs.IntVar(&config.Trials, "trials", DefaultTrials, "Number of factorization trials per benchmark run.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.StringVar(&config.Backend, "backend", DefaultBackend, "Period-oracle backend for quantum-style runs.")
	fs.IntVar(&config.Shots, "shots", DefaultShots, "Number of sampling repetitions per oracle call.")
	fs.IntVar(&config.MaxIterations, "max-iterations", DefaultMaxIterations, "Attempt budget of the period-finding loop.")
	fs.BoolVar(&config.Semiprime, "semiprime", true, "Restrict inputs to products of two distinct primes.")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed for reproducible input generation (0 = time-seeded).")
	fs.StringVar(&config.Sizes, "sizes", "", "Comma-separated bit sizes for scaling analysis (e.g. '4,6,8').")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the whole run.")
	fs.DurationVar(&config.OracleTimeout, "oracle-timeout", 0, "Maximum duration of a single period-oracle call (0 = unbounded).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug-level logging.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
