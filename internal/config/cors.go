package config

import (
	"fmt"
	"strings"
)

// CORSConfig holds cross-origin resource sharing configuration.
// The pitch-side display and signup frontend run on a different origin
// than the API, so browsers need these headers to talk to us.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to call the API.
	AllowedOrigins []string
}

// LoadCORSConfigFromEnv loads CORS configuration from environment variables.
// ALLOWED_ORIGINS is a comma-separated list.
func LoadCORSConfigFromEnv() CORSConfig {
	return CORSConfig{
		AllowedOrigins: GetEnvList("ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
	}
}

// Validate validates CORS configuration.
func (c CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("AllowedOrigins must not be empty")
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid origin %q (must start with http:// or https://)", origin)
		}
	}
	return nil
}
