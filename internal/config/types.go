package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// OVAPIConfig contains upstream OVapi client configuration
type OVAPIConfig struct {
	BaseURL         string `yaml:"baseURL" validate:"omitempty,url"`
	UserAgent       string `yaml:"userAgent"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
	RetryAttempts   int    `yaml:"retryAttempts" validate:"gte=0,lte=10"`
	RetryBackoffMS  int    `yaml:"retryBackoffMS" validate:"gte=0"`
	CacheTTLSeconds int    `yaml:"cacheTTLSeconds" validate:"gte=0"`
}

// Commute is a named (stop area, line, direction) triple, e.g. the
// morning ride from Bdp on line E heading Southbound.
type Commute struct {
	Stop      string `yaml:"stop" validate:"required"`
	Line      string `yaml:"line" validate:"required"`
	Direction string `yaml:"direction" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig        `yaml:"server"`
	OVAPI      OVAPIConfig         `yaml:"ovapi"`
	Directions map[string][]string `yaml:"directions" validate:"required,min=1"`
	Commutes   map[string]Commute  `yaml:"commutes"`
}

// Timeout returns the upstream request timeout.
func (c OVAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RetryBackoff returns the base backoff between fetch retries.
func (c OVAPIConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// CacheTTL returns how long upstream responses are reused.
func (c OVAPIConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
