package platform

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/trace"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/telemetry"
)

// Detection is a successful pass result.
type Detection struct {
	Platform string `json:"platform" yaml:"platform"`
	Version  string `json:"version" yaml:"version"`
}

// Orchestrator runs detectors in a fixed order.
type Orchestrator struct {
	detectors []Detector
	logger    *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator trying detectors in the given order.
func NewOrchestrator(detectors []Detector, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		detectors: slices.Clone(detectors),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewOrchestratorFromRegistry creates an orchestrator over every registered
// detector in detection order.
func NewOrchestratorFromRegistry(r *Registry, opts ...OrchestratorOption) *Orchestrator {
	return NewOrchestrator(r.All(), opts...)
}

// Detectors returns the detectors in the order they are tried.
func (o *Orchestrator) Detectors() []Detector {
	return slices.Clone(o.detectors)
}

// Only returns an orchestrator restricted to the named platforms, keeping
// the original order. Naming a platform without a detector is an error.
func (o *Orchestrator) Only(names ...string) (*Orchestrator, error) {
	if len(names) == 0 {
		return o, nil
	}

	var kept []Detector
	for _, name := range names {
		idx := slices.IndexFunc(o.detectors, func(d Detector) bool { return d.Name() == name })
		if idx < 0 {
			return nil, errors.Wrapf(ErrUnknownPlatform, "%q", name)
		}
	}
	for _, d := range o.detectors {
		if slices.Contains(names, d.Name()) {
			kept = append(kept, d)
		}
	}

	return &Orchestrator{detectors: kept, logger: o.logger}, nil
}

// Detect returns the first detector result that is not a NoMatch. A nil
// Detection with a nil error means no detector matched.
//
// A failed detector ends the pass: its error is returned and the remaining
// detectors are not run.
func (o *Orchestrator) Detect(ctx context.Context, dctx *DetectionContext) (*Detection, error) {
	ctx, span := o.startPass(ctx, dctx, "detect.pass")

	for _, d := range o.detectors {
		res := o.run(ctx, d, dctx)
		switch res.Status {
		case StatusMatched:
			o.endPass(span, telemetry.OutcomeMatched, nil)
			return &Detection{Platform: res.Platform, Version: res.Version}, nil
		case StatusFailed:
			err := errors.Wrapf(res.Err, "detecting %s", d.Name())
			o.endPass(span, telemetry.OutcomeFailed, err)
			return nil, err
		}
	}

	o.log(ctx).Debug("no platform detected")
	o.endPass(span, telemetry.OutcomeUndetermined, nil)
	return nil, nil
}

// DetectAll runs every detector and returns all matches in detection order.
// A failed detector still ends the pass.
func (o *Orchestrator) DetectAll(ctx context.Context, dctx *DetectionContext) ([]Detection, error) {
	ctx, span := o.startPass(ctx, dctx, "detect.all")

	var found []Detection
	for _, d := range o.detectors {
		res := o.run(ctx, d, dctx)
		switch res.Status {
		case StatusMatched:
			found = append(found, Detection{Platform: res.Platform, Version: res.Version})
		case StatusFailed:
			err := errors.Wrapf(res.Err, "detecting %s", d.Name())
			o.endPass(span, telemetry.OutcomeFailed, err)
			return nil, err
		}
	}

	outcome := telemetry.OutcomeMatched
	if len(found) == 0 {
		outcome = telemetry.OutcomeUndetermined
	}
	o.endPass(span, outcome, nil)
	return found, nil
}

func (o *Orchestrator) run(ctx context.Context, d Detector, dctx *DetectionContext) Result {
	name := d.Name()
	ctx, span := telemetry.StartSpan(ctx, "detect."+name, telemetry.AttrPlatform.String(name))

	o.log(ctx).Debug("running detector", "platform", name)
	res := d.Detect(ctx, dctx)
	if res.Platform == "" {
		res.Platform = name
	}

	telemetry.RecordDetection(name, res.Status.String())
	span.SetAttributes(telemetry.AttrOutcome.String(res.Status.String()))
	if res.Status != StatusNoMatch {
		span.SetAttributes(telemetry.AttrConstraint.String(res.Constraint))
	}
	if res.Status == StatusMatched {
		span.SetAttributes(telemetry.AttrVersion.String(res.Version))
		o.log(ctx).Info("platform detected", "platform", name, "version", res.Version)
	}
	telemetry.EndSpan(span, res.Err)
	return res
}

func (o *Orchestrator) startPass(ctx context.Context, dctx *DetectionContext, name string) (context.Context, trace.Span) {
	root := ""
	if dctx != nil && dctx.Repo != nil {
		root = dctx.Repo.Root()
	}
	return telemetry.StartSpan(ctx, name, telemetry.AttrRoot.String(root))
}

func (o *Orchestrator) endPass(span trace.Span, outcome string, err error) {
	telemetry.RecordPass(outcome)
	span.SetAttributes(telemetry.AttrOutcome.String(outcome))
	telemetry.EndSpan(span, err)
}

func (o *Orchestrator) log(ctx context.Context) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logging.FromContext(ctx)
}
