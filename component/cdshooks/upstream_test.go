package cdshooks

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/nuts-foundation/cds-hooks-ice/cmd/core"
	"github.com/nuts-foundation/cds-hooks-ice/lib/ice"
	"github.com/stretchr/testify/require"
)

// fakeFHIRServer serves Patient/123 and the Immunization search for patient 123, from testdata.
type fakeFHIRServer struct {
	*httptest.Server
	requests      atomic.Int32
	authorization atomic.Value
	patient       []byte
	searchSet     []byte
	// failStatus overrides the status of every response when set
	failStatus atomic.Int32
}

func newFHIRServer(t *testing.T) *fakeFHIRServer {
	t.Helper()
	patient, err := os.ReadFile("testdata/patient.json")
	require.NoError(t, err)
	searchSet, err := os.ReadFile("testdata/immunizations.json")
	require.NoError(t, err)
	result := &fakeFHIRServer{
		patient:   patient,
		searchSet: searchSet,
	}
	result.authorization.Store("")

	mux := http.NewServeMux()
	mux.HandleFunc("/fhir/Patient/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "123" {
			result.write(w, http.StatusNotFound, []byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"not-found"}]}`))
			return
		}
		result.write(w, http.StatusOK, result.patient)
	})
	searchHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("patient") != "123" {
			result.write(w, http.StatusOK, []byte(`{"resourceType":"Bundle","type":"searchset","total":0}`))
			return
		}
		result.write(w, http.StatusOK, result.searchSet)
	}
	mux.HandleFunc("/fhir/Immunization", searchHandler)
	mux.HandleFunc("/fhir/Immunization/_search", searchHandler)
	result.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result.requests.Add(1)
		result.authorization.Store(r.Header.Get("Authorization"))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(result.Close)
	return result
}

func (f *fakeFHIRServer) BaseURL() string {
	return f.URL + "/fhir"
}

func (f *fakeFHIRServer) write(w http.ResponseWriter, status int, body []byte) {
	if failStatus := int(f.failStatus.Load()); failStatus != 0 {
		status = failStatus
		body = []byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"exception"}]}`)
	}
	w.Header().Set("Content-Type", "application/fhir+json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// fakeICEServer serves the ICE version endpoint.
type fakeICEServer struct {
	*httptest.Server
	requests atomic.Int32
}

func newICEServer(t *testing.T, status int, body string) *fakeICEServer {
	t.Helper()
	result := &fakeICEServer{}
	result.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result.requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(result.Close)
	return result
}

// newTestComponent creates a component with strict mode disabled, since the test servers don't use HTTPS.
func newTestComponent(t *testing.T, defaultFHIRServer string, iceEndpoint string) *Component {
	t.Helper()
	config := DefaultConfig()
	config.FHIRServer = defaultFHIRServer
	instance, err := New(config, ice.Config{Endpoint: iceEndpoint}, core.Config{StrictMode: false})
	require.NoError(t, err)
	return instance
}
