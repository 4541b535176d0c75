package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values. Everything here is
// read once at startup and treated as read-only afterwards; no other
// process-wide mutable state exists.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	MongoURI     string        // MongoDB connection string
	MongoDB      string        // database name
	MongoMaxPool uint64        // connection pool ceiling
	JWTSecret    string        // secret used to sign tokens
	AccessTTL    time.Duration // access token lifetime
	RefreshTTL   time.Duration // refresh token lifetime
	BcryptCost   int           // bcrypt work factor for password hashing
	CORSOrigins  []string      // allowed CORS origins
	AllowedHosts []string      // allowed Host header values (empty = any)
}

// Load reads configuration from environment variables. Required
// variables are enforced by must() and missing or inconsistent values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8000"),
		MongoURI:     must("MONGODB_URL"),
		MongoDB:      envStr("MONGODB_DATABASE", "marslanding"),
		MongoMaxPool: uint64(envInt("MONGODB_MAX_CONNECTIONS", 10)),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTL:    time.Duration(mustInt("ACCESS_TOKEN_TTL_MIN")) * time.Minute,
		RefreshTTL:   time.Duration(mustInt("REFRESH_TOKEN_TTL_DAYS")) * 24 * time.Hour,
		BcryptCost:   envInt("BCRYPT_COST", bcrypt.DefaultCost),
		CORSOrigins:  splitList(envStr("CORS_ORIGINS", "http://localhost:3000")),
		AllowedHosts: splitList(os.Getenv("ALLOWED_HOSTS")),
	}

	// Access tokens must expire before the refresh tokens that renew
	// them, otherwise the refresh flow is dead weight.
	if cfg.AccessTTL >= cfg.RefreshTTL {
		log.Fatalf("ACCESS_TOKEN_TTL_MIN (%s) must be shorter than REFRESH_TOKEN_TTL_DAYS (%s)",
			cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Fatalf("BCRYPT_COST %d out of range [%d,%d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
