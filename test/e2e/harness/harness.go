package harness

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nuts-foundation/cds-hooks-ice/cmd"
	"github.com/nuts-foundation/cds-hooks-ice/cmd/core"
	libHTTPComponent "github.com/nuts-foundation/cds-hooks-ice/component/http"
	"github.com/stretchr/testify/require"
)

const ICEVersion = "1.37.0"

type Details struct {
	ServiceBaseURL *url.URL
	// FHIRBaseURL is the FHIR server the service is configured with. Requests to it are recorded by FHIRRequests.
	FHIRBaseURL  *url.URL
	FHIRRequests *Recorder
	PatientID    string
}

func Start(t *testing.T) Details {
	t.Helper()

	hapiBaseURL := startHAPI(t)
	patientID, err := loadTestData(t.Context(), hapiBaseURL)
	require.NoError(t, err, "failed to load test data into HAPI FHIR server")
	fhirRequests, fhirBaseURL := startRecorder(t, hapiBaseURL)

	iceServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"iceVersion":"` + ICEVersion + `"}`))
	}))
	t.Cleanup(iceServer.Close)

	config := cmd.DefaultConfig()
	config.Config = core.Config{StrictMode: false}
	config.HTTP = libHTTPComponent.TestConfig()
	config.CDSHooks.FHIRServer = fhirBaseURL.String()
	config.ICE.Endpoint = iceServer.URL
	return Details{
		ServiceBaseURL: startService(t, config),
		FHIRBaseURL:    fhirBaseURL,
		FHIRRequests:   fhirRequests,
		PatientID:      patientID,
	}
}
