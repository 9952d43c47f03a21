package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smartenergy/aeos-ml/api"
	"github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/infra/mqtt"
)

// Config is the root configuration of the service.
type Config struct {
	Server  api.ServerConfig `json:"server"`
	Model   ModelConfig      `json:"model"`
	Metrics metrics.Config   `json:"metrics"`
	MQTT    mqtt.Config      `json:"mqtt"`
	Logging LoggingConfig    `json:"logging"`
}

// ModelConfig locates the prediction model artifact.
type ModelConfig struct {
	// Path points at a JSON model artifact. Empty means run without a model.
	Path string `json:"path"`
}

// Load reads the configuration file at path, applies AEOS_ environment
// overrides and fills in defaults. An empty path yields a default
// configuration with only environment overrides applied.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides, e.g. AEOS_SERVER__PORT=8002.
	if err := k.Load(env.Provider("AEOS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "aeos_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
