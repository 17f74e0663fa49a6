package tracing

import (
	"context"
	"errors"
	"net/http"

	"github.com/nuts-foundation/cds-hooks-ice/component"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

var _ component.Lifecycle = (*Component)(nil)

const defaultServiceName = "cds-hooks-ice"

type Config struct {
	OTLPEndpoint   string `koanf:"otlpendpoint"`
	Insecure       bool   `koanf:"insecure"`
	ServiceName    string `koanf:"servicename"`
	ServiceVersion string
}

func DefaultConfig() Config {
	return Config{
		Insecure:    true,
		ServiceName: defaultServiceName,
	}
}

func (c Config) Enabled() bool {
	return c.OTLPEndpoint != ""
}

type Component struct {
	config         Config
	tracerProvider *trace.TracerProvider
	shutdownFuncs  []func(context.Context) error
}

func New(cfg Config) *Component {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	return &Component{config: cfg}
}

func (c *Component) Start() error {
	if !c.config.Enabled() {
		log.Info().Msg("No OTLP endpoint configured, tracing disabled")
		return nil
	}

	ctx := context.Background()

	// W3C Trace Context + Baggage, so spans of the EHR, this service and the upstreams are correlated
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(c.config.ServiceName),
			semconv.ServiceVersionKey.String(c.config.ServiceVersion),
		),
	)
	if err != nil {
		return err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.config.OTLPEndpoint),
	}
	if c.config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	traceExporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return err
	}
	c.shutdownFuncs = append(c.shutdownFuncs, traceExporter.Shutdown)

	c.tracerProvider = trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)
	c.shutdownFuncs = append(c.shutdownFuncs, c.tracerProvider.Shutdown)
	otel.SetTracerProvider(c.tracerProvider)

	log.Info().
		Str("endpoint", c.config.OTLPEndpoint).
		Str("service", c.config.ServiceName).
		Msg("OpenTelemetry tracing initialized")
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	if len(c.shutdownFuncs) == 0 {
		return nil
	}

	log.Info().Msg("Shutting down OpenTelemetry tracing")

	var errs error
	// Provider first, so it flushes spans through the exporter before that is shut down.
	for i := len(c.shutdownFuncs) - 1; i >= 0; i-- {
		if err := c.shutdownFuncs[i](ctx); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	c.shutdownFuncs = nil
	return errs
}

func (c *Component) RegisterHttpHandlers(_ *http.ServeMux, _ *http.ServeMux) {
	// Tracing component doesn't expose HTTP endpoints
}

// WrapTransport wraps an http.RoundTripper with OpenTelemetry instrumentation.
// If transport is nil, http.DefaultTransport is used.
func WrapTransport(transport http.RoundTripper) http.RoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return otelhttp.NewTransport(transport)
}
