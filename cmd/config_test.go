package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirWithConfigFile changes the working directory to a temporary directory containing the given config file.
func chdirWithConfigFile(t *testing.T, yamlContent string) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "cds-hooks-ice.yml"), []byte(yamlContent), 0644))
	t.Chdir(tempDir)
}

func TestLoadConfig_Default(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.StrictMode)
	assert.Equal(t, ":8080", config.HTTP.PublicInterface.Listener)
	assert.Equal(t, ":8081", config.HTTP.InternalInterface.Listener)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 10*time.Second, config.CDSHooks.Timeout)
	assert.Equal(t, "cds-hooks-ice", config.Tracing.ServiceName)
	assert.Empty(t, config.CDSHooks.FHIRServer)
	assert.Empty(t, config.ICE.Endpoint)
}

func TestLoadConfig_FromYAML(t *testing.T) {
	chdirWithConfigFile(t, `
core:
  strictmode: false
http:
  public:
    listener: ":9090"
cdshooks:
  fhirserver: "http://localhost:9091/fhir"
  timeout: 5s
  tls:
    cafile: "/etc/ssl/ca.pem"
ice:
  endpoint: "http://localhost:9092/opencds-decision-support-service/evaluate"
  oauth2:
    tokenendpoint: "http://localhost:9093/token"
    clientid: "cds-hooks-ice"
    clientsecret: "secret"
    scopes: ["ice"]
`)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, config.StrictMode)
	assert.Equal(t, ":9090", config.HTTP.PublicInterface.Listener)
	assert.Equal(t, ":8081", config.HTTP.InternalInterface.Listener, "default is kept")
	assert.Equal(t, "http://localhost:9091/fhir", config.CDSHooks.FHIRServer)
	assert.Equal(t, 5*time.Second, config.CDSHooks.Timeout)
	assert.Equal(t, "/etc/ssl/ca.pem", config.CDSHooks.TLS.CAFile)
	assert.Equal(t, "http://localhost:9092/opencds-decision-support-service/evaluate", config.ICE.Endpoint)
	assert.Equal(t, "http://localhost:9093/token", config.ICE.OAuth2.TokenEndpoint)
	assert.Equal(t, []string{"ice"}, config.ICE.OAuth2.Scopes)
}

func TestLoadConfig_FromEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CDSICE_CORE_STRICTMODE", "false")
	t.Setenv("CDSICE_ICE_ENDPOINT", "http://env-test:8080/ice")
	t.Setenv("CDSICE_CDSHOOKS_TIMEOUT", "3s")
	t.Setenv("CDSICE_LOGGING_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, config.StrictMode)
	assert.Equal(t, "http://env-test:8080/ice", config.ICE.Endpoint)
	assert.Equal(t, 3*time.Second, config.CDSHooks.Timeout)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	chdirWithConfigFile(t, `
cdshooks:
  fhirserver: "http://yaml:8080/fhir"
ice:
  endpoint: "http://yaml:8080/ice"
`)
	t.Setenv("CDSICE_CDSHOOKS_FHIRSERVER", "http://env:8080/fhir")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://env:8080/fhir", config.CDSHooks.FHIRServer)
	assert.Equal(t, "http://yaml:8080/ice", config.ICE.Endpoint)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	chdirWithConfigFile(t, "ice: [")

	_, err := LoadConfig()

	require.ErrorContains(t, err, "failed to load config file")
}
