package core

// Config contains settings that apply to the service as a whole.
type Config struct {
	// StrictMode disables behavior that is only acceptable in development and test environments,
	// such as forwarding the EHR's access token to a FHIR server over plain HTTP.
	StrictMode bool `koanf:"strictmode"`
}

func DefaultConfig() Config {
	return Config{
		StrictMode: true,
	}
}
