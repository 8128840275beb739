package di

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/sghaida/typereg/event"
)

// tracerName is the instrumentation scope for build spans.
const tracerName = "github.com/sghaida/typereg/di"

// Span and attribute names emitted by BuildContext.
const (
	SpanBuild = "di.build"

	AttrComponent    = "di.component"
	AttrOutput       = "di.output"
	AttrDependencies = "di.dependencies"
	AttrHandle       = "di.handle"
	AttrReplaced     = "di.replaced"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger for build outcomes. Successful builds log at Debug,
// failed builds at Warn. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracerProvider records one span per build using tp. Defaults to a no-op provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Container) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithDispatcher triggers Built and BuildFailed events on d.
func WithDispatcher(d *event.Dispatcher) Option {
	return func(c *Container) { c.events = d }
}
