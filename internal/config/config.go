package config

import (
	"os"

	"github.com/joho/godotenv"
)

const DefaultEndpoint = "http://localhost:8080"

// LoadEnv pulls environment overrides from a .env file in the working
// directory, when one exists. Real environment variables win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Endpoint returns the Label Studio URL from DLC2LS_ENDPOINT,
// falling back to DefaultEndpoint.
func Endpoint() string {
	if env := os.Getenv("DLC2LS_ENDPOINT"); env != "" {
		return env
	}
	return DefaultEndpoint
}

// APIKey returns the Label Studio access token from DLC2LS_API_KEY
func APIKey() string {
	return os.Getenv("DLC2LS_API_KEY")
}
