package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"input error", InputError("missing").Build(), 2},
		{"no content", NoContentError("empty").Build(), 3},
		{"config error", ConfigError("bad").Build(), 7},
		{"output error", OutputError("write").Build(), 11},
		{"internal error", InternalError("bug").Build(), 10},
		{"warning category falls back", NewError(CategoryAsset, "copy").Build(), 1},
		{"unclassified error", errors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := WrapError(cause, CategoryInput, "source folder not found").
		Fatal().
		WithContext("path", "/nope").
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	if got := quiet.FormatError(err); got != "Error: source folder not found: no such file or directory" {
		t.Errorf("unexpected message %q", got)
	}

	verbose := NewCLIErrorAdapter(true, slog.Default())
	if got := verbose.FormatError(err); !strings.Contains(got, "context=") {
		t.Errorf("expected verbose message to include context, got %q", got)
	}

	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	code := -1

	adapter := NewCLIErrorAdapter(false, slog.Default())
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(NoContentError("the folder is empty").Build())

	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if !strings.Contains(out.String(), "the folder is empty") {
		t.Errorf("expected message on output, got %q", out.String())
	}
}
