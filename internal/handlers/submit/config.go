// internal/handlers/submit/config.go
package submit

import "time"

type Config struct {
	DatabaseID string
	Timeout    time.Duration
}

func LoadConfig(databaseID string) *Config {
	return &Config{
		DatabaseID: databaseID,
		Timeout:    10 * time.Second,
	}
}
