package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersNoopOnNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "fetch failed", errors.New("boom"), FieldTerm, "zelda")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "term=zelda") {
		t.Fatalf("expected error and term fields, got %s", out)
	}
}
