package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
)

// hints maps errors the user can resolve to the next step to take.
var hints = []struct {
	target error
	hint   string
}{
	{state.ErrNoGenerator, "Store an API key with 'learnai config secret set api-key' or set LEARNAI_AI_API_KEY."},
	{generator.ErrGeneration, "Run 'learnai doctor' to check the generation settings, then try again."},
	{keyring.ErrKeyringUnavailable, "Set secrets through LEARNAI_ environment variables instead."},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns the suggested next step for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Report writes the formatted error and its hint to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(w, hint)
	}
}

// Fatal logs an error, reports it on stderr and exits with code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
