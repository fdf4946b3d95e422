// internal/views/recommendation-list/config.go
package recommendationlist

type Config struct {
	// MaxSkills is how many required skills a card lists before "+N more".
	MaxSkills int
}

func LoadConfig() *Config {
	return &Config{
		MaxSkills: 4,
	}
}
