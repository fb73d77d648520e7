package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/agbru/pffbench/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("ValidArgs", func(t *testing.T) {
		var errBuf bytes.Buffer
		application, err := New([]string{"pffbench", "-s", "6", "-trials", "2"}, &errBuf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if application.Config.Bits != 6 || application.Config.Trials != 2 {
			t.Errorf("unexpected config: %+v", application.Config)
		}
		if application.Factory == nil {
			t.Error("factory must be populated")
		}
	})

	t.Run("InvalidFlag", func(t *testing.T) {
		var errBuf bytes.Buffer
		if _, err := New([]string{"pffbench", "-bogus"}, &errBuf); err == nil {
			t.Error("expected an error for an unknown flag")
		}
	})

	t.Run("InvalidValue", func(t *testing.T) {
		var errBuf bytes.Buffer
		if _, err := New([]string{"pffbench", "-s", "99"}, &errBuf); err == nil {
			t.Error("expected an error for an out-of-range size")
		}
		if !strings.Contains(errBuf.String(), "Configuration error") {
			t.Errorf("error output missing explanation:\n%s", errBuf.String())
		}
	})

	t.Run("HelpRequested", func(t *testing.T) {
		var errBuf bytes.Buffer
		_, err := New([]string{"pffbench", "-h"}, &errBuf)
		if !IsHelpError(err) {
			t.Errorf("expected a help error, got %v", err)
		}
	})
}

func TestIsHelpError(t *testing.T) {
	if !IsHelpError(flag.ErrHelp) {
		t.Error("flag.ErrHelp must be recognized")
	}
	if IsHelpError(errors.New("other")) || IsHelpError(nil) {
		t.Error("unrelated errors must not be recognized as help errors")
	}
}

func TestRunQuietBenchmark(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{
		"pffbench", "-s", "6", "-trials", "2", "-algo", "classical",
		"-quiet", "-seed", "1",
	}, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errBuf.String())
	}

	// Quiet mode prints exactly the PFF value.
	line := strings.TrimSpace(out.String())
	if _, err := strconv.ParseFloat(line, 64); err != nil {
		t.Errorf("quiet output is not a bare number: %q", line)
	}
}

func TestRunQuietScaling(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{
		"pffbench", "-sizes", "4,6", "-trials", "2", "-algo", "classical",
		"-quiet", "-seed", "1",
	}, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errBuf.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per size, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "4 ") || !strings.HasPrefix(lines[1], "6 ") {
		t.Errorf("scaling lines must lead with the size: %q", lines)
	}
}

func TestRunScalingRejectsAll(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{
		"pffbench", "-sizes", "4,6", "-trials", "2", "-algo", "all", "-quiet",
	}, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "single algorithm") {
		t.Errorf("error output missing explanation:\n%s", errBuf.String())
	}
}

func TestRunJSONBenchmark(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{
		"pffbench", "-s", "6", "-trials", "2", "-algo", "classical",
		"-json", "-seed", "1",
	}, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), `"pff"`) {
		t.Errorf("JSON output missing the pff field:\n%s", out.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	cases := []struct {
		args []string
		want bool
	}{
		{[]string{"pffbench", "--version"}, true},
		{[]string{"pffbench", "-version"}, true},
		{[]string{"pffbench", "-V"}, true},
		{[]string{"pffbench", "-s", "8"}, false},
		{[]string{"pffbench"}, false},
	}
	for _, tc := range cases {
		if got := HasVersionFlag(tc.args); got != tc.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version == "" {
		t.Error("version must never be empty")
	}
}
