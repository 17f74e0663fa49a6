// Package ice is a client for the version endpoint of the ICE immunization forecasting engine.
package ice

import (
	"context"
	"net/http"
	"strings"

	"github.com/nuts-foundation/cds-hooks-ice/lib/from"
	"github.com/nuts-foundation/cds-hooks-ice/lib/httpauth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// UnknownVersion is reported when the engine can't be reached or doesn't report its version.
const UnknownVersion = "Unknown"

type Config struct {
	// Endpoint is the URL of the ICE version/status endpoint.
	Endpoint string `koanf:"endpoint"`
	// OAuth2 optionally configures client credentials authentication towards ICE.
	OAuth2 httpauth.OAuth2Config `koanf:"oauth2"`
}

// EngineInfo is the version information of the forecasting engine.
type EngineInfo struct {
	Version string
}

// UnknownEngineInfo is the EngineInfo to use when the engine couldn't be queried.
func UnknownEngineInfo() EngineInfo {
	return EngineInfo{Version: UnknownVersion}
}

type versionResponse struct {
	ICEVersion *string `json:"iceVersion"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func New(endpoint string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

func (c Client) Endpoint() string {
	return c.endpoint
}

// EngineInfo retrieves the engine version. The call is attempted once; on failure the error is returned
// together with UnknownEngineInfo, so callers can always use the returned value.
// A response without iceVersion is not an error, the version is then reported as unknown.
func (c Client) EngineInfo(ctx context.Context) (EngineInfo, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return UnknownEngineInfo(), errors.Wrap(err, "invalid ICE request")
	}
	httpRequest.Header.Set("Accept", "application/json")
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return UnknownEngineInfo(), errors.Wrap(err, "ICE request failed")
	}
	defer httpResponse.Body.Close()
	response, err := from.JSONResponse[versionResponse](httpResponse)
	if err != nil {
		return UnknownEngineInfo(), errors.Wrap(err, "invalid ICE response")
	}
	if response.ICEVersion == nil || strings.TrimSpace(*response.ICEVersion) == "" {
		log.Ctx(ctx).Debug().Msgf("ICE response does not contain iceVersion (url=%s)", c.endpoint)
		return UnknownEngineInfo(), nil
	}
	return EngineInfo{Version: *response.ICEVersion}, nil
}
