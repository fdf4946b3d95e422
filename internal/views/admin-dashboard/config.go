// internal/views/admin-dashboard/config.go
package admindashboard

import "time"

type Config struct {
	CallTimeout time.Duration
	MaxSkills   int
}

func LoadConfig() *Config {
	return &Config{
		CallTimeout: 15 * time.Second,
		MaxSkills:   3,
	}
}
