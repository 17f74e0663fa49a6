package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/nuts-foundation/cds-hooks-ice/component"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var _ component.Lifecycle = (*Component)(nil)

type InterfaceConfig struct {
	Listener string `koanf:"listener"`
}

type Config struct {
	PublicInterface   InterfaceConfig `koanf:"public"`
	InternalInterface InterfaceConfig `koanf:"internal"`
}

func DefaultConfig() Config {
	return Config{
		PublicInterface: InterfaceConfig{
			Listener: ":8080",
		},
		InternalInterface: InterfaceConfig{
			Listener: ":8081",
		},
	}
}

type Component struct {
	config         Config
	publicMux      *http.ServeMux
	publicServer   *http.Server
	internalMux    *http.ServeMux
	internalServer *http.Server
}

// New creates an instance of the HTTP component, which handles the HTTP interfaces for the application.
func New(config Config, publicMux *http.ServeMux, internalMux *http.ServeMux) *Component {
	return &Component{
		config:      config,
		publicMux:   publicMux,
		internalMux: internalMux,
	}
}

func (c *Component) Start() error {
	c.publicServer = newServer(otelhttp.NewHandler(c.publicMux, "cds-hooks"))
	c.internalServer = newServer(c.internalMux)
	publicListener, err := net.Listen("tcp", c.config.PublicInterface.Listener)
	if err != nil {
		return fmt.Errorf("public HTTP interface: %w", err)
	}
	internalListener, err := net.Listen("tcp", c.config.InternalInterface.Listener)
	if err != nil {
		_ = publicListener.Close()
		return fmt.Errorf("internal HTTP interface: %w", err)
	}
	log.Info().Msgf("Starting HTTP servers (public-address: %s, internal-address: %s)", publicListener.Addr(), internalListener.Addr())
	go serve(c.publicServer, publicListener, "public")
	go serve(c.internalServer, internalListener, "internal")
	return nil
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serve(server *http.Server, listener net.Listener, name string) {
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Err(err).Msgf("Failed to serve %s HTTP interface", name)
	}
}

func (c *Component) Stop(ctx context.Context) error {
	if c.publicServer != nil {
		if err := c.publicServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown public HTTP server: %w", err)
		}
	}
	if c.internalServer != nil {
		if err := c.internalServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown internal HTTP server: %w", err)
		}
	}
	return nil
}

func (c *Component) RegisterHttpHandlers(_ *http.ServeMux, _ *http.ServeMux) {
	// Nothing to do here
}
