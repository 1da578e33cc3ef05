package errors

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("course not found"), "Error: course not found"},
		{"wrapped error", fmt.Errorf("failed to save app data: %w", errors.New("disk full")), "Error: failed to save app data: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no generator", fmt.Errorf("generate course: %w", state.ErrNoGenerator), "learnai config secret set api-key"},
		{"generation failure", fmt.Errorf("%w: status 429", generator.ErrGeneration), "learnai doctor"},
		{"keyring", keyring.ErrKeyringUnavailable, "LEARNAI_"},
		{"unrelated", errors.New("course not found"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf strings.Builder
	Report(&buf, fmt.Errorf("generate article: %w", state.ErrNoGenerator))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected error and hint lines, got %q", buf.String())
	}
	if lines[0] != "Error: generate article: no generation service configured" {
		t.Errorf("first line = %q", lines[0])
	}

	buf.Reset()
	Report(&buf, errors.New("boom"))
	if buf.String() != "Error: boom\n" {
		t.Errorf("Report() without hint = %q", buf.String())
	}

	buf.Reset()
	Report(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("LEARNAI_TEST_FATAL") == "1" {
		Fatal(errors.New("fatal failure"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "LEARNAI_TEST_FATAL=1")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Error: fatal failure") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
