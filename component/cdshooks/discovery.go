package cdshooks

import (
	"encoding/json"
	"net/http"

	"github.com/nuts-foundation/cds-hooks-ice/lib/cdsapi"
	"github.com/nuts-foundation/cds-hooks-ice/lib/cdshooks"
)

const ServiceID = "ice-immunization-forecast"

var service = cdshooks.Service{
	ID:          ServiceID,
	Hook:        cdshooks.HookPatientView,
	Title:       "Immunization Forecast by ICE",
	Description: "Provides immunization recommendations using ICE engine",
}

// discoveryDocument is rendered once, so every discovery response is byte-identical.
var discoveryDocument = mustMarshal(cdshooks.Discovery{
	Services: []cdshooks.Service{service},
})

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func (c *Component) handleDiscovery(httpResponse http.ResponseWriter, httpRequest *http.Request) {
	cdsapi.SendResponse(httpRequest.Context(), httpResponse, http.StatusOK, discoveryDocument)
}
