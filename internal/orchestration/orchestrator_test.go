package orchestration

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pffbench/internal/benchmark"
	"github.com/agbru/pffbench/internal/config"
	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/logging"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Bits:          6,
		Trials:        3,
		Backend:       config.DefaultBackend,
		Shots:         config.DefaultShots,
		MaxIterations: config.DefaultMaxIterations,
		Semiprime:     true,
		Seed:          42,
		Timeout:       config.DefaultTimeout,
	}
}

func TestRunComparison(t *testing.T) {
	factory := factoring.NewDefaultFactory()
	results := RunComparison(context.Background(), factory,
		[]string{"classical", "shor"}, testConfig(), logging.NewNopLogger())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "classical" || results[1].Name != "shor" {
		t.Errorf("results out of input order: %s, %s", results[0].Name, results[1].Name)
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s failed: %v", res.Name, res.Err)
			continue
		}
		if res.Result == nil || res.Result.PFF <= 0 {
			t.Errorf("%s produced no usable result", res.Name)
		}
		if res.Duration <= 0 {
			t.Errorf("%s reported a non-positive duration", res.Name)
		}
	}
}

func TestRunComparisonUnknownAlgorithm(t *testing.T) {
	factory := factoring.NewDefaultFactory()
	results := RunComparison(context.Background(), factory,
		[]string{"grover"}, testConfig(), logging.NewNopLogger())

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Run("AllSucceeded", func(t *testing.T) {
		var out bytes.Buffer
		results := []ComparisonResult{
			{
				Name:     "classical",
				Result:   &benchmark.BenchmarkResult{PFF: 1000, AvgTime: 0.1, Trials: 3, SuccessfulTrials: 3},
				Duration: time.Second,
			},
			{
				Name:     "shor",
				Result:   &benchmark.BenchmarkResult{PFF: 5000, AvgTime: 0.02, Trials: 3, SuccessfulTrials: 3},
				Duration: time.Second,
			},
		}

		code := AnalyzeComparisonResults(results, testConfig(), &out)
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, want 0", code)
		}
		if !strings.Contains(out.String(), "Fastest algorithm: ") || !strings.Contains(out.String(), "shor") {
			t.Errorf("report does not name the winner:\n%s", out.String())
		}
	})

	t.Run("AllFailed", func(t *testing.T) {
		var out bytes.Buffer
		results := []ComparisonResult{
			{Name: "classical", Err: apperrors.NoSuccessfulTrialsError{Trials: 3}},
			{Name: "shor", Err: errors.New("boom")},
		}

		code := AnalyzeComparisonResults(results, testConfig(), &out)
		if code == apperrors.ExitSuccess {
			t.Fatal("expected a failure exit code")
		}
		if !strings.Contains(out.String(), "No algorithm completed") {
			t.Errorf("report missing the global failure line:\n%s", out.String())
		}
	})

	t.Run("PartialSuccess", func(t *testing.T) {
		var out bytes.Buffer
		results := []ComparisonResult{
			{Name: "shor", Err: apperrors.NoSuccessfulTrialsError{Trials: 3}},
			{
				Name:     "classical",
				Result:   &benchmark.BenchmarkResult{PFF: 1000, AvgTime: 0.1, Trials: 3, SuccessfulTrials: 3},
				Duration: time.Second,
			},
		}

		if code := AnalyzeComparisonResults(results, testConfig(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("one success must yield exit 0, got %d", code)
		}
		if !strings.Contains(out.String(), "classical") {
			t.Errorf("report does not name the winner:\n%s", out.String())
		}
	})
}
