// internal/common/config/config.go
package config

import (
	"fmt"
	"net"
	"strconv"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Recommender   RecommenderConfig   `mapstructure:"recommender"`
	Session       SessionConfig       `mapstructure:"session"`
	I18n          I18nConfig          `mapstructure:"i18n"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecommenderConfig points at the external matching service.
type RecommenderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// SessionConfig holds the visitor session store settings.
type SessionConfig struct {
	Redis      RedisConfig `mapstructure:"redis"`
	CookieName string      `mapstructure:"cookie_name"`
	TTL        int         `mapstructure:"ttl"`         // milliseconds of inactivity before a session expires
	PendingTTL int         `mapstructure:"pending_ttl"` // milliseconds
	Backend    string      `mapstructure:"backend"`     // redis | memory
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// I18nConfig selects the fallback language.
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ObservabilityConfig controls metrics and tracing exporters.
type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

func (c *Config) String() string {
	return fmt.Sprintf("%s@%s (%s) listening on %s, recommender %s",
		c.App.Name, c.App.Version, c.App.Environment, c.Server.Addr(), c.Recommender.BaseURL)
}
