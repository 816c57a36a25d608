package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
)

// Option configures Setup.
type Option func(*[]sdktrace.TracerProviderOption) error

// WithBridge registers a span processor, typically a Bridge.
func WithBridge(p sdktrace.SpanProcessor) Option {
	return func(opts *[]sdktrace.TracerProviderOption) error {
		*opts = append(*opts, sdktrace.WithSpanProcessor(p))
		return nil
	}
}

// WithTraceWriter exports every finished span as JSON to w.
func WithTraceWriter(w io.Writer) Option {
	return func(opts *[]sdktrace.TracerProviderOption) error {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return zerr.Wrap(err, "failed to create trace exporter")
		}
		*opts = append(*opts, sdktrace.WithSyncer(exp))
		return nil
	}
}

// Setup installs a global tracer provider. The returned function flushes and
// shuts it down.
func Setup(opts ...Option) (func(context.Context) error, error) {
	var tpOpts []sdktrace.TracerProviderOption
	for _, opt := range opts {
		if err := opt(&tpOpts); err != nil {
			return nil, err
		}
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
