package cmd

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/nuts-foundation/cds-hooks-ice/cmd/core"
	"github.com/nuts-foundation/cds-hooks-ice/component/cdshooks"
	"github.com/nuts-foundation/cds-hooks-ice/component/http"
	"github.com/nuts-foundation/cds-hooks-ice/component/tracing"
	"github.com/nuts-foundation/cds-hooks-ice/lib/ice"
	"github.com/nuts-foundation/cds-hooks-ice/lib/logging"
	"github.com/pkg/errors"
)

const (
	// ConfigFile is read relative to the working directory, if it exists.
	ConfigFile = "config/cds-hooks-ice.yml"
	// EnvPrefix is the prefix of environment variables that override configuration,
	// e.g. CDSICE_ICE_ENDPOINT sets ice.endpoint.
	EnvPrefix = "CDSICE_"
)

type Config struct {
	core.Config `koanf:"core"`
	HTTP        http.Config     `koanf:"http"`
	Logging     logging.Config  `koanf:"logging"`
	Tracing     tracing.Config  `koanf:"tracing"`
	CDSHooks    cdshooks.Config `koanf:"cdshooks"`
	ICE         ice.Config      `koanf:"ice"`
}

func DefaultConfig() Config {
	return Config{
		Config:   core.DefaultConfig(),
		HTTP:     http.DefaultConfig(),
		Logging:  logging.DefaultConfig(),
		Tracing:  tracing.DefaultConfig(),
		CDSHooks: cdshooks.DefaultConfig(),
	}
}

// LoadConfig loads the configuration in order of precedence: defaults, the YAML config file, environment variables.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, errors.Wrap(err, "failed to load default config")
	}

	if _, err := os.Stat(ConfigFile); err == nil {
		if err := k.Load(file.Provider(ConfigFile), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "failed to load config file (path=%s)", ConfigFile)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "failed to stat config file (path=%s)", ConfigFile)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to load config from environment")
	}

	var result Config
	if err := k.UnmarshalWithConf("", &result, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return result, nil
}
