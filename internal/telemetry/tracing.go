package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/thoreinstein/platdetect/internal/errors"
)

const tracerName = "github.com/thoreinstein/platdetect"

// Span attribute keys.
var (
	AttrPlatform   = attribute.Key("platdetect.platform")
	AttrSource     = attribute.Key("platdetect.catalog.source")
	AttrVersion    = attribute.Key("platdetect.version")
	AttrConstraint = attribute.Key("platdetect.constraint")
	AttrOutcome    = attribute.Key("platdetect.outcome")
	AttrRoot       = attribute.Key("platdetect.source_root")
)

// TracerProvider owns an sdk tracer provider installed as the global provider.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
}

// NewTracerProvider installs a tracer provider exporting spans as JSON to w.
func NewTracerProvider(w io.Writer, serviceVersion string) (*TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace exporter")
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", "platdetect"),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace resource")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &TracerProvider{provider: provider}, nil
}

// Shutdown flushes and stops the provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.provider.Shutdown(ctx)
}

// Tracer returns the platdetect tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a span named name.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
