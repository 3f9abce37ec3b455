package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int

	// DatabaseDriver selects the store backend: "sqlite" or "postgres".
	DatabaseDriver string
	// DatabasePath is the sqlite file path when the sqlite driver is used.
	DatabasePath string
	// DatabaseURL is the postgres connection string when the postgres
	// driver is used.
	DatabaseURL string

	JWTSecret       string
	TokenExpireDays int
	BcryptCost      int

	AllowSelfMessages bool
	CORSOrigins       []string
	Debug             bool
}

// Load reads configuration from the environment. A .env file is honoured
// when present for local development. JWT_SECRET is mandatory: there is no
// fallback secret, a deployment without one must not come up.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "College Connect API"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "0.0.0.0"),
		Port:    getEnvAsInt("HTTP_PORT", 5000),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabasePath:   getEnv("DATABASE_PATH", "college_connect.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenExpireDays: getEnvAsInt("TOKEN_EXPIRE_DAYS", 7),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 0),

		AllowSelfMessages: getEnvAsBool("ALLOW_SELF_MESSAGES", true),
		Debug:             getEnvAsBool("DEBUG", true),
	}

	cors := getEnv("CORS_ORIGINS", "")
	if cors != "" {
		parts := strings.Split(cors, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.TokenExpireDays <= 0 {
		return nil, fmt.Errorf("TOKEN_EXPIRE_DAYS must be positive")
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
