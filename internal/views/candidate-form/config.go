// internal/views/candidate-form/config.go
package candidateform

import "time"

type Config struct {
	// SubmitTimeout bounds the recommendation call made on submit.
	SubmitTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SubmitTimeout: 15 * time.Second,
	}
}
