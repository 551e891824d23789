package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	MongoURL       string
	DBName         string
	Port           string
	Store          string
	CORSOrigins    []string
	SeedCatalog    bool
	RequestTimeout time.Duration
	LogLevel       string
	Tracing        bool

	// Admin auth is enabled when AdminJWTSecret is set.
	AdminJWTSecret    string
	AdminEmail        string
	AdminPasswordHash string
}

// Load reads an optional .env file, then the environment, applying defaults
// suitable for local use.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		MongoURL:          env("MONGO_URL", "mongodb://localhost:27017"),
		DBName:            env("DB_NAME", "ecommerce_db"),
		Port:              env("PORT", "8001"),
		Store:             env("STORE", StoreMongo),
		LogLevel:          env("LOG_LEVEL", "info"),
		AdminJWTSecret:    getenv("ADMIN_JWT_SECRET"),
		AdminEmail:        env("ADMIN_EMAIL", ""),
		AdminPasswordHash: env("ADMIN_PASSWORD_HASH", ""),
	}

	for _, o := range strings.Split(env("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	var err error
	if cfg.SeedCatalog, err = strconv.ParseBool(env("SEED_CATALOG", "true")); err != nil {
		return cfg, fmt.Errorf("SEED_CATALOG: %w", err)
	}
	if cfg.Tracing, err = strconv.ParseBool(env("TRACING", "false")); err != nil {
		return cfg, fmt.Errorf("TRACING: %w", err)
	}
	if cfg.RequestTimeout, err = time.ParseDuration(env("REQUEST_TIMEOUT", "10s")); err != nil {
		return cfg, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}

	switch cfg.Store {
	case StoreMongo, StoreMemory:
	default:
		return cfg, fmt.Errorf("STORE: unknown store %q", cfg.Store)
	}
	if cfg.AdminJWTSecret != "" && (cfg.AdminEmail == "" || cfg.AdminPasswordHash == "") {
		return cfg, fmt.Errorf("ADMIN_JWT_SECRET requires ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
	}
	return cfg, nil
}

// AdminAuth reports whether admin routes require a token.
func (c Config) AdminAuth() bool {
	return c.AdminJWTSecret != ""
}
