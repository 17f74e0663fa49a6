package cdshooks

import (
	"net/http"
	"time"

	"github.com/nuts-foundation/cds-hooks-ice/component/tracing"
	"github.com/nuts-foundation/cds-hooks-ice/lib/tlsutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// FHIRServer is the FHIR base URL used when a hook request doesn't specify fhirServer.
	FHIRServer string `koanf:"fhirserver"`
	// Timeout bounds every call to an upstream server (FHIR server, ICE).
	Timeout time.Duration `koanf:"timeout"`
	// TLS optionally configures a client certificate and/or CA for upstream connections.
	TLS tlsutil.Config `koanf:"tls"`
}

func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
	}
}

// newUpstreamTransport creates the transport shared by all upstream calls: optional mTLS, traced.
func newUpstreamTransport(config Config) (http.RoundTripper, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.TLS.Enabled() {
		tlsConfig, err := tlsutil.CreateTLSConfig(config.TLS)
		if err != nil {
			// Fail early when TLS is explicitly configured but setup fails
			return nil, errors.Wrap(err, "TLS is configured but failed to load")
		}
		transport.TLSClientConfig = tlsConfig
		log.Info().Msg("Configured TLS for upstream connections")
	}
	return tracing.WrapTransport(transport), nil
}
