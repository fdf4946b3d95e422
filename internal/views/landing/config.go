// internal/views/landing/config.go
package landing

// No settings yet; kept so every view is constructed the same way.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
