package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the process environment. An optional
// .env file in the working directory is loaded first; a missing file is not
// an error.
//
// Recognized variables:
//
//	TODOLIST_ADDRESS    HTTP bind address (e.g., ":3000")
//	TODOLIST_DB         PostgreSQL DSN
//	SECRET_KEY          JWT HMAC secret key
//	TOKEN_TTL_MINUTES   access token validity, minutes
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TODOLIST_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("TODOLIST_DB"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}
