package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Env          string
	ClientOrigin string
	JWTSecret    string
	JWTExpiry    time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var expiry string

	fs := flag.NewFlagSet("whatsforlunch", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.Env, "e", "", "Environment (development or production)")
	fs.StringVar(&cfg.ClientOrigin, "client-origin", "", "Allowed CORS origin")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&expiry, "jwt-expiry", "", "JWT expiry duration, e.g. 12h")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.Env == "" {
		cfg.Env = os.Getenv("ENV")
		if cfg.Env == "" {
			cfg.Env = "development"
		}
	}

	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = os.Getenv("CLIENT_ORIGIN")
		if cfg.ClientOrigin == "" {
			cfg.ClientOrigin = "http://localhost:3000"
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if expiry == "" {
		expiry = os.Getenv("JWT_EXPIRY")
	}
	if expiry == "" {
		cfg.JWTExpiry = 12 * time.Hour
	} else {
		d, err := time.ParseDuration(expiry)
		if err != nil {
			return Config{}, errors.New("invalid JWT_EXPIRY duration")
		}
		cfg.JWTExpiry = d
	}

	return cfg, nil
}
