// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"k":"v"`) {
		t.Errorf("output missing field: %s", out)
	}
}

func TestCtxAttachesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("tagged")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("output missing request id: %s", buf.String())
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("untagged")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("output has request id without one in context: %s", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	if id == "" {
		t.Fatal("empty request id")
	}
	ctx := ContextWithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Errorf("RequestIDFromContext = %q, want %q", got, id)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext on bare context = %q, want empty", got)
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf)
	slogger := slog.New(NewSlogHandlerWithLogger(zl))

	slogger.Info("service started", "name", "http", "attempt", int64(2))

	out := buf.String()
	if !strings.Contains(out, `"message":"service started"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"name":"http"`) || !strings.Contains(out, `"attempt":2`) {
		t.Errorf("output missing attributes: %s", out)
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf)
	slogger := slog.New(NewSlogHandlerWithLogger(zl)).WithGroup("svc").With("name", "model")

	slogger.Warn("restarting")

	if !strings.Contains(buf.String(), `"svc.name":"model"`) {
		t.Errorf("output missing grouped attribute: %s", buf.String())
	}
}

func TestSlogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf).Level(zerolog.WarnLevel)
	h := NewSlogHandlerWithLogger(zl)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled with warn-level backend")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled with warn-level backend")
	}
}
