package platform

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

// fakeResolver resolves against a fixed list and records the last constraint.
type fakeResolver struct {
	supported []string
	def       string
	last      string
}

func (f *fakeResolver) Resolve(_ context.Context, constraint string) (string, error) {
	f.last = constraint
	if constraint == "" {
		constraint = f.def
	}
	return resolver.Resolve(constraint, f.supported)
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name           string
		preset         map[string]string
		hints          []string
		wantConstraint string
		wantVersion    string
		wantStatus     Status
	}{
		{name: "default", wantConstraint: "", wantVersion: "12.16.1", wantStatus: StatusMatched},
		{name: "first hint", hints: []string{"", " ^14 ", "8"}, wantConstraint: "^14", wantVersion: "14.3.0", wantStatus: StatusMatched},
		{
			name:           "preset wins",
			preset:         map[string]string{"nodejs": "8"},
			hints:          []string{"^14"},
			wantConstraint: "8",
			wantVersion:    "8.17.0",
			wantStatus:     StatusMatched,
		},
		{
			name:           "preset for other platform ignored",
			preset:         map[string]string{"python": "3"},
			hints:          []string{"^14"},
			wantConstraint: "^14",
			wantVersion:    "14.3.0",
			wantStatus:     StatusMatched,
		},
		{name: "unsupported", hints: []string{"99"}, wantConstraint: "99", wantStatus: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeResolver{supported: []string{"8.17.0", "12.16.1", "14.3.0"}, def: "12.16.1"}
			dctx := &DetectionContext{ResolvedVersions: tt.preset}

			res := ResolveVersion(context.Background(), f, dctx, "nodejs", logging.ForTest(t), tt.hints...)
			if res.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v (err %v)", res.Status, tt.wantStatus, res.Err)
			}
			if f.last != tt.wantConstraint {
				t.Errorf("constraint = %q, want %q", f.last, tt.wantConstraint)
			}
			if res.Constraint != tt.wantConstraint {
				t.Errorf("Result.Constraint = %q, want %q", res.Constraint, tt.wantConstraint)
			}
			if res.Platform != "nodejs" {
				t.Errorf("Platform = %q, want nodejs", res.Platform)
			}
			if tt.wantStatus == StatusFailed {
				if !errors.Is(res.Err, errors.ErrUnsupportedVersion) {
					t.Errorf("Err = %v, want ErrUnsupportedVersion", res.Err)
				}
				return
			}
			if res.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", res.Version, tt.wantVersion)
			}
		})
	}
}

func TestResolveVersion_LogsPlatformOnce(t *testing.T) {
	tests := []struct {
		name   string
		scoped bool
		preset map[string]string
		hints  []string
	}{
		{name: "scoped logger", scoped: true, hints: []string{"^14"}},
		{name: "scoped logger with preset", scoped: true, preset: map[string]string{"nodejs": "8"}},
		{name: "scoped logger failure", scoped: true, hints: []string{"99"}},
		{name: "context logger", hints: []string{"^14"}},
		{name: "context logger failure", hints: []string{"99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := logging.NewContext(context.Background(), base)

			var logger *slog.Logger
			if tt.scoped {
				logger = base.With("platform", "nodejs")
			}

			f := &fakeResolver{supported: []string{"8.17.0", "12.16.1", "14.3.0"}, def: "12.16.1"}
			ResolveVersion(ctx, f, &DetectionContext{ResolvedVersions: tt.preset}, "nodejs", logger, tt.hints...)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) == 0 || lines[0] == "" {
				t.Fatal("no log output")
			}
			for _, line := range lines {
				if n := strings.Count(line, `"platform":`); n != 1 {
					t.Errorf("platform key appears %d times in %s", n, line)
				}
				if !strings.Contains(line, `"platform":"nodejs"`) {
					t.Errorf("line missing platform=nodejs: %s", line)
				}
			}
		})
	}
}

func TestDetectionContext_ResolvedVersion(t *testing.T) {
	var nilCtx *DetectionContext
	if _, ok := nilCtx.ResolvedVersion("php"); ok {
		t.Error("nil context should have no preset")
	}

	dctx := &DetectionContext{ResolvedVersions: map[string]string{"php": " 7.3 ", "python": "  "}}
	if v, ok := dctx.ResolvedVersion("php"); !ok || v != "7.3" {
		t.Errorf("ResolvedVersion(php) = %q, %v, want 7.3, true", v, ok)
	}
	if _, ok := dctx.ResolvedVersion("python"); ok {
		t.Error("blank preset should be ignored")
	}
}

func TestMalformed(t *testing.T) {
	err := Malformed(errors.New("unexpected end of JSON input"), "package.json")
	if !errors.Is(err, errors.ErrMalformedManifest) {
		t.Errorf("Malformed() = %v, want ErrMalformedManifest mark", err)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusNoMatch, "no_match"},
		{StatusMatched, "matched"},
		{StatusFailed, "failed"},
		{Status(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
