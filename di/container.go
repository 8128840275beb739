package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/sghaida/typereg/event"
	"github.com/sghaida/typereg/hmap"
	"github.com/sghaida/typereg/typeid"
)

// Container tracks the current handle per component output type.
//
// A Container is meant to be wired by one caller during bootstrap. Build,
// Supply, Get and Has do not lock; callers that wire from several goroutines
// must serialize those calls themselves. The handles it returns are safe for
// concurrent use.
type Container struct {
	handles hmap.Map // typeid.Of[*Handle[T]]() -> *Handle[T]

	logger *slog.Logger
	tracer trace.Tracer
	events *event.Dispatcher
}

// New creates an empty Container.
func New(opts ...Option) *Container {
	c := &Container{
		logger: slog.New(slog.DiscardHandler),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build is BuildContext with context.Background().
func Build[T any](c *Container, d *Descriptor[T]) (*Handle[T], error) {
	return BuildContext(context.Background(), c, d)
}

// BuildContext builds d against the handles currently tracked in c.
//
// Every declared dependency must already have a tracked handle; the container
// never builds dependencies on its own. If one is missing, BuildContext returns
// MissingDependencyError for the first missing one in declaration order and c
// is left unchanged. Otherwise the constructor runs, its result is wrapped in a
// new Handle, and that handle becomes the tracked handle for T.
//
// Building T again replaces the tracked handle. Handles obtained earlier, and
// components built against them, keep the previous instance.
//
// ctx carries the build span and logging context; construction itself is not
// cancellable.
func BuildContext[T any](ctx context.Context, c *Container, d *Descriptor[T]) (*Handle[T], error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	output := typeid.Of[T]()

	ctx, span := c.tracer.Start(ctx, SpanBuild,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrComponent, d.name),
			attribute.String(AttrOutput, output.String()),
			attribute.StringSlice(AttrDependencies, idStrings(d.deps)),
		),
	)
	defer span.End()

	bound, err := d.resolve(&c.handles)
	if err != nil {
		return nil, c.failed(ctx, span, d.name, output, err)
	}
	val, err := construct(d.name, bound)
	if err != nil {
		return nil, c.failed(ctx, span, d.name, output, err)
	}

	h := newHandle(val)
	replaced := track(c, h)

	span.SetAttributes(
		attribute.String(AttrHandle, h.id.String()),
		attribute.String(AttrReplaced, replaced.String()),
	)
	span.SetStatus(codes.Ok, "")
	c.logger.DebugContext(ctx, "component built",
		"component", d.name,
		"type", output.String(),
		"handle", h.id.String(),
		"rebuild", replaced != uuid.Nil)
	c.trigger(Built{Component: d.name, Type: output, Handle: h.id, Replaced: replaced})
	return h, nil
}

// failed records a build failure on every channel and returns err unchanged.
func (c *Container) failed(ctx context.Context, span trace.Span, name string, output typeid.ID, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.WarnContext(ctx, "component build failed",
		"component", name,
		"type", output.String(),
		"error", err.Error())
	if c.events != nil {
		event.Trigger(c.events, BuildFailed{Component: name, Type: output, Err: err})
	}
	return err
}

// Supply makes v the tracked instance of T without a descriptor, replacing any
// previous handle for T. It is how configuration values and instances built
// outside the container enter it, and how a dependency cycle can be broken.
func Supply[T any](c *Container, v T) *Handle[T] {
	h := newHandle(v)
	replaced := track(c, h)

	c.logger.Debug("component supplied",
		"type", h.Type().String(),
		"handle", h.id.String(),
		"rebuild", replaced != uuid.Nil)
	c.trigger(Built{Type: h.Type(), Handle: h.id, Replaced: replaced, Supplied: true})
	return h
}

// Get returns the tracked handle for T without building anything.
func Get[T any](c *Container) (*Handle[T], error) {
	return lookup[T](&c.handles)
}

// Has reports whether T has a tracked handle.
func Has[T any](c *Container) bool {
	return hmap.Has[*Handle[T]](&c.handles)
}

// Len returns the number of component types with a tracked handle.
func (c *Container) Len() int { return c.handles.Len() }

// track stores h as the handle for T and returns the ID of the handle it replaced.
func track[T any](c *Container, h *Handle[T]) uuid.UUID {
	replaced := uuid.Nil
	if prev, ok := hmap.Get[*Handle[T]](&c.handles); ok {
		replaced = prev.id
	}
	hmap.Set(&c.handles, h)
	return replaced
}

func (c *Container) trigger(b Built) {
	if c.events != nil {
		event.Trigger(c.events, b)
	}
}

// construct runs the bound constructor, converting a panic into an error so a
// failed construction leaves the container untouched.
func construct[T any](name string, fn func() T) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: component %q: %v", ErrConstructorPanic, name, rec)
		}
	}()
	return fn(), nil
}

func idStrings(ids []typeid.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
