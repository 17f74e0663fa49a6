package status

import (
	"context"
	"net/http"

	"github.com/nuts-foundation/cds-hooks-ice/component"
)

var _ component.Lifecycle = (*Component)(nil)

// Component serves the liveness probe and build information on the internal interface.
// Both are static: the service is considered alive when it serves HTTP, regardless of the state of the FHIR server or ICE.
type Component struct {
}

func New() *Component {
	return &Component{}
}

func (c Component) Start() error {
	return nil
}

func (c Component) Stop(_ context.Context) error {
	return nil
}

func (c Component) RegisterHttpHandlers(_ *http.ServeMux, internalMux *http.ServeMux) {
	internalMux.HandleFunc("GET /status", writePlainText("OK"))
	internalMux.HandleFunc("GET /status/info", writePlainText(BuildInfo()))
}

func writePlainText(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}
