package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/platdetect/internal/errors"
)

// stampHandler adds an attribute to every record it sees before recording it.
type stampHandler struct {
	stamp string
	seen  []slog.Record
	err   error
}

func (h *stampHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *stampHandler) Handle(_ context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("stamp", h.stamp))
	h.seen = append(h.seen, r)
	return h.err
}

func (h *stampHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *stampHandler) WithGroup(string) slog.Handler      { return h }

func recordAttrs(r slog.Record) map[string]string {
	attrs := map[string]string{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	return attrs
}

func TestMultiHandler_IsolatesRecords(t *testing.T) {
	first := &stampHandler{stamp: "first"}
	second := &stampHandler{stamp: "second"}
	logger := slog.New(NewMultiHandler(first, nil, second))

	logger.Info("detected", "platform", "python", "a", "1", "b", "2", "c", "3", "d", "4", "e", "5")

	if len(first.seen) != 1 || len(second.seen) != 1 {
		t.Fatalf("records seen = %d, %d, want 1, 1", len(first.seen), len(second.seen))
	}
	if got := recordAttrs(first.seen[0])["stamp"]; got != "first" {
		t.Errorf("first handler stamp = %q, want first (record leaked between handlers)", got)
	}
	if got := recordAttrs(second.seen[0])["stamp"]; got != "second" {
		t.Errorf("second handler stamp = %q, want second (record leaked between handlers)", got)
	}
	if got := recordAttrs(second.seen[0]); got["platform"] != "python" {
		t.Errorf("second handler attrs = %v, want platform=python", got)
	}
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	errDisk := errors.New("disk full")
	errPipe := errors.New("broken pipe")
	first := &stampHandler{stamp: "first", err: errDisk}
	second := &stampHandler{stamp: "second", err: errPipe}

	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "catalog stale", 0)
	err := NewMultiHandler(first, second).Handle(t.Context(), r)

	if !errors.Is(err, errDisk) || !errors.Is(err, errPipe) {
		t.Errorf("Handle() error = %v, want both handler errors", err)
	}
	if len(second.seen) != 1 {
		t.Error("a failing handler must not stop the next one")
	}
}

func TestMultiHandler_Tee(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("platform", "php").WithGroup("catalog")

	if !h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("Enabled(Debug) should be true when any handler accepts it")
	}

	logger.Debug("cache hit", "source", "local")

	if text.Len() != 0 {
		t.Errorf("text handler should filter debug, got %q", text.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(js.Bytes(), &rec); err != nil {
		t.Fatalf("json output: %v\n%s", err, js.String())
	}
	if rec["platform"] != "php" {
		t.Errorf("json platform = %v, want php", rec["platform"])
	}
	if group, ok := rec["catalog"].(map[string]any); !ok || group["source"] != "local" {
		t.Errorf("json catalog group = %v, want source=local", rec["catalog"])
	}

	logger.Warn("slow load")
	if !strings.Contains(text.String(), "platform=php") {
		t.Errorf("text output = %q, want platform=php", text.String())
	}
}
