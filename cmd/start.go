package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nuts-foundation/cds-hooks-ice/component"
	"github.com/nuts-foundation/cds-hooks-ice/component/cdshooks"
	libHTTPComponent "github.com/nuts-foundation/cds-hooks-ice/component/http"
	"github.com/nuts-foundation/cds-hooks-ice/component/status"
	"github.com/nuts-foundation/cds-hooks-ice/component/tracing"
	"github.com/nuts-foundation/cds-hooks-ice/lib/logging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// shutdownTimeout bounds how long in-flight requests may take to complete on shutdown.
const shutdownTimeout = 10 * time.Second

func Start(ctx context.Context, config Config) error {
	if err := logging.Init(config.Logging); err != nil {
		return errors.Wrap(err, "failed to initialize logging")
	}
	if !config.StrictMode {
		log.Ctx(ctx).Warn().Msg("Strict mode is disabled. This is NOT recommended for production environments!")
	}

	publicMux := http.NewServeMux()
	internalMux := http.NewServeMux()

	// Tracing must be started first, so the transports and handlers created by the other components export spans.
	config.Tracing.ServiceVersion = status.Version()
	tracingComponent := tracing.New(config.Tracing)
	if err := tracingComponent.Start(); err != nil {
		return errors.Wrap(err, "failed to start tracing component")
	}

	cdsHooksComponent, err := cdshooks.New(config.CDSHooks, config.ICE, config.Config)
	if err != nil {
		return errors.Wrap(err, "failed to create CDS Hooks component")
	}
	components := []component.Lifecycle{
		cdsHooksComponent,
		status.New(),
		libHTTPComponent.New(config.HTTP, publicMux, internalMux),
	}

	// Components: RegisterHandlers()
	for _, cmp := range components {
		cmp.RegisterHttpHandlers(publicMux, internalMux)
	}

	// Components: Start()
	for _, cmp := range components {
		log.Ctx(ctx).Debug().Str(logging.FieldComponent, fmt.Sprintf("%T", cmp)).Msg("Starting component")
		if err := cmp.Start(); err != nil {
			return errors.Wrapf(err, "failed to start component: %T", cmp)
		}
		log.Ctx(ctx).Debug().Str(logging.FieldComponent, fmt.Sprintf("%T", cmp)).Msg("Component started")
	}

	log.Ctx(ctx).Info().Msgf("System started (%s), waiting for shutdown...", status.Version())
	<-ctx.Done()

	// Components: Stop()
	log.Ctx(ctx).Debug().Msg("Shutdown signalled, stopping components...")
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	for _, cmp := range components {
		log.Ctx(ctx).Debug().Str(logging.FieldComponent, fmt.Sprintf("%T", cmp)).Msg("Stopping component")
		if err := cmp.Stop(stopCtx); err != nil {
			log.Ctx(ctx).Error().Err(err).Str(logging.FieldComponent, fmt.Sprintf("%T", cmp)).Msg("Error stopping component")
		}
		log.Ctx(ctx).Debug().Str(logging.FieldComponent, fmt.Sprintf("%T", cmp)).Msg("Component stopped")
	}
	log.Ctx(ctx).Info().Msg("Goodbye!")

	// Stop tracing last, so spans of in-flight requests are still exported
	if err := tracingComponent.Stop(stopCtx); err != nil {
		fmt.Printf("Error stopping tracing component: %v\n", err)
	}
	return nil
}
