package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment. It is built once
// at startup and handed to the components that need it, so nothing reaches for
// os.Getenv at request time.
type Config struct {
	Port        string
	DatabaseURL string

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string

	// GeocodeAPIKey authenticates against the forward-geocoding provider.
	// GeocodeBaseURL is overridable so tests can point at a local server.
	GeocodeAPIKey  string
	GeocodeBaseURL string

	// UploadDir is where uploaded images land; served under /uploads/images.
	UploadDir string
}

// Load reads the environment (and a .env file when present) into a Config.
func Load() *Config {
	// Ignore the error: no .env file is normal in production.
	_ = godotenv.Load()

	connString := getEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + getEnv("POSTGRES_USER", "postgres") + ":" +
			getEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			getEnv("POSTGRES_HOST", "localhost") + ":" +
			getEnv("POSTGRES_PORT", "5432") + "/" +
			getEnv("POSTGRES_DB", "placesdb") + "?sslmode=disable"
	}

	return &Config{
		Port:           getEnv("PORT", "5000"),
		DatabaseURL:    connString,
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		GeocodeAPIKey:  getEnv("GEOCODE_API_KEY", ""),
		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "http://api.positionstack.com"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads/images"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
