package cli

import (
	"io"
	"math/big"
	"testing"

	"github.com/agbru/pffbench/internal/benchmark"
)

// fakeSpinner records the control calls it receives.
type fakeSpinner struct {
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start()                    { f.started = true }
func (f *fakeSpinner) Stop()                     { f.stopped = true }
func (f *fakeSpinner) UpdateSuffix(suffix string) { f.suffixes = append(f.suffixes, suffix) }

func TestProgressReporter(t *testing.T) {
	fake := &fakeSpinner{}
	reporter := &ProgressReporter{spinner: fake}

	reporter.Start()
	reporter.TrialStarted(1, 3, big.NewInt(15))
	reporter.TrialFinished(1, 3, benchmark.TrialOutcome{Success: true})
	reporter.TrialStarted(2, 3, big.NewInt(21))
	reporter.TrialFinished(2, 3, benchmark.TrialOutcome{Success: false})
	reporter.Stop()

	if !fake.started || !fake.stopped {
		t.Error("reporter must start and stop its spinner")
	}
	if reporter.succeeded != 1 || reporter.failed != 1 {
		t.Errorf("tally = %d ok / %d failed, want 1/1", reporter.succeeded, reporter.failed)
	}
	if len(fake.suffixes) != 4 {
		t.Fatalf("expected 4 suffix updates, got %d", len(fake.suffixes))
	}
	if fake.suffixes[0] != " Trial 1/3: factoring N=15 (4 bits)" {
		t.Errorf("unexpected first suffix: %q", fake.suffixes[0])
	}
	if fake.suffixes[3] != " Trial 2/3 done (1 ok, 1 failed)" {
		t.Errorf("unexpected last suffix: %q", fake.suffixes[3])
	}
}

func TestNewProgressReporterQuiet(t *testing.T) {
	reporter := NewProgressReporter(io.Discard, true)
	if _, ok := reporter.spinner.(noopSpinner); !ok {
		t.Error("quiet mode must use the inert spinner")
	}

	// The inert reporter must be safe to drive end to end.
	reporter.Start()
	reporter.TrialStarted(1, 1, big.NewInt(15))
	reporter.TrialFinished(1, 1, benchmark.TrialOutcome{Success: true})
	reporter.Stop()
}
