package harness

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startHAPI(t *testing.T) *url.URL {
	t.Log("Starting HAPI FHIR server...")
	ctx := t.Context()
	req := testcontainers.ContainerRequest{
		Name:         "cds-hooks-ice-e2e-fhirstore",
		Image:        "hapiproject/hapi:latest",
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"hapi.fhir.fhir_version":       "R4",
			"hapi.fhir.server_id_strategy": "UUID",
			"hapi.fhir.client_id_strategy": "ANY",
		},
		WaitingFor: wait.ForHTTP("/fhir/metadata"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		Reuse:            true,
	})
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "http")
	require.NoError(t, err)
	u, err := url.Parse(endpoint)
	require.NoError(t, err)
	return u.JoinPath("fhir")
}
