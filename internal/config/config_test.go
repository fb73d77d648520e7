package config

import (
	"bytes"
	"testing"
	"time"
)

var testAlgos = []string{"classical", "shor"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var buf bytes.Buffer
	return ParseConfig("pffbench-test", args, &buf, testAlgos)
}

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Bits != DefaultBits {
			t.Errorf("Bits = %d, want %d", cfg.Bits, DefaultBits)
		}
		if cfg.Trials != DefaultTrials {
			t.Errorf("Trials = %d, want %d", cfg.Trials, DefaultTrials)
		}
		if cfg.Algo != DefaultAlgo {
			t.Errorf("Algo = %q, want %q", cfg.Algo, DefaultAlgo)
		}
		if cfg.Backend != DefaultBackend {
			t.Errorf("Backend = %q, want %q", cfg.Backend, DefaultBackend)
		}
		if !cfg.Semiprime {
			t.Error("Semiprime must default to true")
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
		}
		if cfg.Port != DefaultPort {
			t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		cfg, err := parse(t,
			"-s", "12", "-trials", "50", "-algo", "shor",
			"-shots", "2048", "-max-iterations", "15",
			"-seed", "99", "-timeout", "1m", "-json", "-quiet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Bits != 12 || cfg.Trials != 50 || cfg.Algo != "shor" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.Shots != 2048 || cfg.MaxIterations != 15 || cfg.Seed != 99 {
			t.Errorf("unexpected oracle settings: %+v", cfg)
		}
		if cfg.Timeout != time.Minute || !cfg.JSONOutput || !cfg.Quiet {
			t.Errorf("unexpected run settings: %+v", cfg)
		}
	})

	t.Run("AlgoIsLowercased", func(t *testing.T) {
		cfg, err := parse(t, "-algo", "Shor")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Algo != "shor" {
			t.Errorf("Algo = %q, want shor", cfg.Algo)
		}
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		if _, err := parse(t, "-bogus"); err == nil {
			t.Error("expected an error for an unknown flag")
		}
	})
}

func TestParseConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"BitsTooSmall", []string{"-s", "1"}},
		{"BitsTooLarge", []string{"-s", "25"}},
		{"ZeroTrials", []string{"-trials", "0"}},
		{"TooManyTrials", []string{"-trials", "2000"}},
		{"UnknownAlgo", []string{"-algo", "grover"}},
		{"ZeroShots", []string{"-shots", "0"}},
		{"ZeroIterations", []string{"-max-iterations", "0"}},
		{"ZeroTimeout", []string{"-timeout", "0s"}},
		{"NegativeOracleTimeout", []string{"-oracle-timeout", "-1s"}},
		{"ScalingTooManyTrials", []string{"-sizes", "4,6", "-trials", "501"}},
		{"ScalingSizeOutOfRange", []string{"-sizes", "4,30"}},
		{"ScalingDuplicateSize", []string{"-sizes", "4,4"}},
		{"ScalingMalformedSize", []string{"-sizes", "4,six"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse(t, tc.args...); err == nil {
				t.Errorf("expected args %v to be rejected", tc.args)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("EnvApplies", func(t *testing.T) {
		t.Setenv("PFFBENCH_S", "10")
		t.Setenv("PFFBENCH_TRIALS", "5")
		t.Setenv("PFFBENCH_ALGO", "shor")
		t.Setenv("PFFBENCH_JSON", "true")
		t.Setenv("PFFBENCH_TIMEOUT", "90s")

		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Bits != 10 || cfg.Trials != 5 || cfg.Algo != "shor" {
			t.Errorf("env overrides not applied: %+v", cfg)
		}
		if !cfg.JSONOutput || cfg.Timeout != 90*time.Second {
			t.Errorf("env overrides not applied: %+v", cfg)
		}
	})

	t.Run("FlagBeatsEnv", func(t *testing.T) {
		t.Setenv("PFFBENCH_S", "10")
		cfg, err := parse(t, "-s", "6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Bits != 6 {
			t.Errorf("explicit flag must win over env, got Bits=%d", cfg.Bits)
		}
	})

	t.Run("MalformedEnvIgnored", func(t *testing.T) {
		t.Setenv("PFFBENCH_S", "not-a-number")
		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Bits != DefaultBits {
			t.Errorf("malformed env must be ignored, got Bits=%d", cfg.Bits)
		}
	})
}

func TestParseSizes(t *testing.T) {
	t.Run("Ordered", func(t *testing.T) {
		cfg := AppConfig{Sizes: "8, 4 ,6"}
		sizes, err := cfg.ParseSizes()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []int{8, 4, 6}
		if len(sizes) != len(want) {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
		for i := range want {
			if sizes[i] != want[i] {
				t.Errorf("sizes[%d] = %d, want %d", i, sizes[i], want[i])
			}
		}
	})

	t.Run("OnlyCommas", func(t *testing.T) {
		cfg := AppConfig{Sizes: ",,"}
		if _, err := cfg.ParseSizes(); err == nil {
			t.Error("expected an error for an empty size list")
		}
	})
}

func TestScalingMode(t *testing.T) {
	if (AppConfig{}).ScalingMode() {
		t.Error("empty Sizes must not enable scaling mode")
	}
	if !(AppConfig{Sizes: "4,6"}).ScalingMode() {
		t.Error("non-empty Sizes must enable scaling mode")
	}
	if (AppConfig{Sizes: "   "}).ScalingMode() {
		t.Error("whitespace-only Sizes must not enable scaling mode")
	}
}

func TestToAlgorithmConfig(t *testing.T) {
	cfg := AppConfig{
		Backend:       "simulator",
		Shots:         512,
		MaxIterations: 7,
		OracleTimeout: 3 * time.Second,
	}
	got := cfg.ToAlgorithmConfig()
	if got.Backend != "simulator" || got.Shots != 512 {
		t.Errorf("unexpected backend settings: %+v", got)
	}
	if got.MaxIterations != 7 || got.OracleTimeout != 3*time.Second {
		t.Errorf("unexpected oracle settings: %+v", got)
	}
}
