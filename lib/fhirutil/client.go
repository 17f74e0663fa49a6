package fhirutil

import (
	"net/http"

	"github.com/SanteonNL/go-fhir-client"
	"github.com/rs/zerolog/log"
)

// maxLoggedResponseBody limits how much of an error response from a FHIR server ends up in the logs.
const maxLoggedResponseBody = 512

// ClientConfig returns the FHIR client configuration for reading from EHR FHIR servers.
// Responses are never served from intermediate caches, since the EHR may have updated the record moments ago.
func ClientConfig() *fhirclient.Config {
	config := fhirclient.DefaultConfig()
	config.DefaultOptions = []fhirclient.Option{
		fhirclient.RequestHeaders(map[string][]string{
			"Accept":        {"application/fhir+json"},
			"Cache-Control": {"no-cache"},
		}),
	}
	config.Non2xxStatusHandler = logNon2xxResponse
	return &config
}

func logNon2xxResponse(response *http.Response, responseBody []byte) {
	if len(responseBody) > maxLoggedResponseBody {
		responseBody = responseBody[:maxLoggedResponseBody]
	}
	logger := log.Debug()
	if response.Request != nil {
		logger = log.Ctx(response.Request.Context()).Debug().
			Str("method", response.Request.Method).
			Stringer("url", response.Request.URL)
	}
	logger.Int("status", response.StatusCode).
		Bytes("body", responseBody).
		Msg("Non-2xx status code from FHIR server")
}
