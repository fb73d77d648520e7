// Package config provides the configuration management for the pffbench
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int64, or the default value if not set
// or invalid.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - PFFBENCH_S: Size of the integers to factor, in bits (int)
//   - PFFBENCH_TRIALS: Number of trials per benchmark run (int)
//   - PFFBENCH_ALGO: Algorithm to benchmark (string: classical, shor, all)
//   - PFFBENCH_BACKEND: Period-oracle backend (string)
//   - PFFBENCH_SHOTS: Sampling repetitions per oracle call (int)
//   - PFFBENCH_MAX_ITERATIONS: Period-finding attempt budget (int)
//   - PFFBENCH_SEED: Input-generation seed (int64)
//   - PFFBENCH_SIZES: Scaling sizes, comma-separated (string)
//   - PFFBENCH_TIMEOUT: Run timeout (duration: "5m", "30s")
//   - PFFBENCH_ORACLE_TIMEOUT: Per-oracle-call timeout (duration)
//   - PFFBENCH_PORT: Port for server mode (string)
//   - PFFBENCH_OUTPUT: Output file path (string)
//   - PFFBENCH_SEMIPRIME: Restrict inputs to semiprimes (bool)
//   - PFFBENCH_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - PFFBENCH_JSON: Enable JSON output (bool)
//   - PFFBENCH_VERBOSE: Enable debug logging (bool)
//   - PFFBENCH_QUIET: Enable quiet mode (bool)
//   - PFFBENCH_NO_COLOR: Disable colored output (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "s") {
		config.Bits = getEnvInt("S", config.Bits)
	}
	if !isFlagSet(fs, "trials") {
		config.Trials = getEnvInt("TRIALS", config.Trials)
	}
	if !isFlagSet(fs, "shots") {
		config.Shots = getEnvInt("SHOTS", config.Shots)
	}
	if !isFlagSet(fs, "max-iterations") {
		config.MaxIterations = getEnvInt("MAX_ITERATIONS", config.MaxIterations)
	}
	if !isFlagSet(fs, "seed") {
		config.Seed = getEnvInt64("SEED", config.Seed)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "oracle-timeout") {
		config.OracleTimeout = getEnvDuration("ORACLE_TIMEOUT", config.OracleTimeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "backend") {
		config.Backend = getEnvString("BACKEND", config.Backend)
	}
	if !isFlagSet(fs, "sizes") {
		config.Sizes = getEnvString("SIZES", config.Sizes)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "semiprime") {
		config.Semiprime = getEnvBool("SEMIPRIME", config.Semiprime)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
