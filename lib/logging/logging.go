package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Field names used across the service, so log queries don't depend on which component logged.
const (
	FieldComponent    = "component"
	FieldFHIRServer   = "fhir_server"
	FieldICEEndpoint  = "ice_endpoint"
	FieldHookInstance = "hook_instance"
	FieldPatientID    = "patient_id"
	FieldTraceID      = "trace_id"
	FieldSpanID       = "span_id"
)

type Config struct {
	// Level is the minimum zerolog level that is written, e.g. debug, info, warn.
	Level string `koanf:"level"`
}

func DefaultConfig() Config {
	return Config{
		Level: "info",
	}
}

// Init configures the global zerolog logger: JSON to stdout, RFC3339 timestamps and trace context injection.
func Init(config Config) error {
	return initWriter(config, os.Stdout)
}

func initWriter(config Config, writer io.Writer) error {
	level := zerolog.InfoLevel
	if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return err
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(writer).
		Level(level).
		With().Timestamp().Logger().
		Hook(TraceContextHook{})
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// TraceContextHook adds trace_id and span_id to events that are logged with a context holding a valid OpenTelemetry span.
type TraceContextHook struct{}

func (TraceContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		e.Str(FieldTraceID, spanCtx.TraceID().String())
		e.Str(FieldSpanID, spanCtx.SpanID().String())
	}
}
