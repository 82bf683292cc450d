// Package tracing reports reactive runtime activity as OpenTelemetry spans.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sig "github.com/AnatoleLucet/signals"
)

// Default tracer name.
const defaultTracerName = "github.com/AnatoleLucet/signals"

type Config struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// RunSpans adds a span per memo and effect run. Disabled by default,
	// a busy graph produces a lot of them.
	RunSpans bool

	// Context is the parent of every span.
	Context context.Context
}

type Option func(*Config)

func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

func WithRunSpans(enabled bool) Option {
	return func(c *Config) {
		c.RunSpans = enabled
	}
}

func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

func defaultConfig() Config {
	return Config{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
}

// Tracer implements sig.Hooks. Hooks are called once the work is done, so
// spans are started in the past from the reported duration.
type Tracer struct {
	tracer   trace.Tracer
	ctx      context.Context
	runSpans bool
}

var _ sig.Hooks = (*Tracer)(nil)

func New(opts ...Option) *Tracer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Tracer{
		tracer:   tp.Tracer(config.TracerName),
		ctx:      config.Context,
		runSpans: config.RunSpans,
	}
}

func (t *Tracer) OnRun(name string, kind sig.Kind, d time.Duration) {
	if !t.runSpans {
		return
	}

	end := time.Now()
	_, span := t.tracer.Start(t.ctx, "sig.run", trace.WithTimestamp(end.Add(-d)))
	span.SetAttributes(
		attribute.String("sig.node", name),
		attribute.String("sig.kind", kind.String()),
	)
	span.End(trace.WithTimestamp(end))
}

func (t *Tracer) OnError(name string, kind sig.Kind, err error) {
	_, span := t.tracer.Start(t.ctx, "sig.error")
	span.SetAttributes(
		attribute.String("sig.node", name),
		attribute.String("sig.kind", kind.String()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func (t *Tracer) OnFlush(passes, effects int, d time.Duration) {
	end := time.Now()
	_, span := t.tracer.Start(t.ctx, "sig.flush", trace.WithTimestamp(end.Add(-d)))
	span.SetAttributes(
		attribute.Int("sig.flush.passes", passes),
		attribute.Int("sig.flush.effects", effects),
	)
	span.End(trace.WithTimestamp(end))
}
