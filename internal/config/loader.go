package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads, validates and defaults the application configuration.
// Unlike a global config object, the result is returned and injected into
// the components that need it, so the destination table is never ambient
// state.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	for name, commute := range cfg.Commutes {
		if err := v.Struct(commute); err != nil {
			return nil, fmt.Errorf("invalid commute %q: %w", name, err)
		}
		if _, ok := cfg.Directions[commute.Direction]; !ok {
			return nil, fmt.Errorf("commute %q references unknown direction %q", name, commute.Direction)
		}
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.OVAPI.BaseURL == "" {
		cfg.OVAPI.BaseURL = "http://v0.ovapi.nl/"
	}
	if cfg.OVAPI.UserAgent == "" {
		cfg.OVAPI.UserAgent = "github.com/ovcommute/ovcommute_core"
	}
	if cfg.OVAPI.TimeoutMS == 0 {
		cfg.OVAPI.TimeoutMS = 10000
	}
	if cfg.OVAPI.RetryAttempts == 0 {
		cfg.OVAPI.RetryAttempts = 3
	}
	if cfg.OVAPI.RetryBackoffMS == 0 {
		cfg.OVAPI.RetryBackoffMS = 500
	}
	if cfg.OVAPI.CacheTTLSeconds == 0 {
		cfg.OVAPI.CacheTTLSeconds = 60
	}
}
