package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full process configuration. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	HTTPHost string
	HTTPPort string
	MySQLDSN string
	JWT      JWTConfig
	Log      LogConfig
}

// JWTConfig carries the signing secret and the claims every issued token is
// stamped with. Tokens carrying a different issuer or audience are rejected
// at validation time.
type JWTConfig struct {
	Secret          string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		HTTPHost: getEnv("HTTP_HOST", ""),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		MySQLDSN: mysqlDSN,
		JWT: JWTConfig{
			Secret:          jwtSecret,
			Issuer:          getEnv("JWT_ISSUER", "notes-auth"),
			Audience:        getEnv("JWT_AUDIENCE", "notes-api"),
			AccessTokenTTL:  getDurationEnv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 5*time.Minute),
			RefreshTokenTTL: getDurationEnv("JWT_REFRESH_TOKEN_EXPIRY_MINUTES", 60*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads an integer number of minutes.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
