// internal/handlers/status/config.go
package status

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
