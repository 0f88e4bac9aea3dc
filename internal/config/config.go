// Package config reads process configuration from the environment, after
// loading .env files that never override variables already set.
package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Addr        string
	Env         string
	DatabaseDSN string
	Store       string
	DBTimeout   time.Duration

	AdminPassword     string
	AdminPasswordHash string
	RequireAdmin      bool

	OpenLibraryBaseURL string
	OpenLibraryRPS     int
	SearchRateRPS      float64
	SearchRateBurst    int
	// TrustedProxies are the peers whose X-Forwarded-For header is believed.
	TrustedProxies []netip.Prefix

	EnableHSTS   bool
	MaxBodyBytes int64
}

// Production reports whether the strict script policy applies.
func (c Config) Production() bool {
	return c.Env == "production"
}

// LoadEnvFiles loads .env and .env.local into the process environment.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the environment. It fails only on values that are present but
// malformed.
func Load() (Config, error) {
	LoadEnvFiles()

	cfg := Config{
		Addr:               ":" + getEnv("PORT", "3000"),
		Env:                strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", "development"))),
		DatabaseDSN:        databaseDSN(),
		Store:              strings.ToLower(getEnv("BOOKS_STORE", StorePostgres)),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		OpenLibraryBaseURL: getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org"),
	}
	if v := os.Getenv("APP_ADDR"); v != "" {
		cfg.Addr = v
	}

	var err error
	if cfg.DBTimeout, err = getDuration("DB_QUERY_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RequireAdmin, err = getBool("REQUIRE_ADMIN_FOR_WRITES", false); err != nil {
		return Config{}, err
	}
	if cfg.EnableHSTS, err = getBool("ENABLE_HSTS", false); err != nil {
		return Config{}, err
	}
	if cfg.OpenLibraryRPS, err = getInt("OPENLIBRARY_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.SearchRateBurst, err = getInt("SEARCH_RATE_LIMIT_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.SearchRateRPS, err = getFloat("SEARCH_RATE_LIMIT_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.TrustedProxies, err = getPrefixes("TRUSTED_PROXIES"); err != nil {
		return Config{}, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 64<<10)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	switch cfg.Store {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("BOOKS_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.Store)
	}
	if cfg.RequireAdmin && cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("REQUIRE_ADMIN_FOR_WRITES needs ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	return cfg, nil
}

// databaseDSN prefers DB_DSN and otherwise assembles one from the libpq
// variables.
func databaseDSN() string {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getEnv("PGUSER", "postgres"), getEnv("PGPASSWORD", "password")),
		Host:   getEnv("PGHOST", "localhost") + ":" + getEnv("PGPORT", "5432"),
		Path:   "/" + getEnv("PGDATABASE", "library"),
	}
	return u.String()
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// getPrefixes reads a comma-separated list of IPs or CIDRs. A bare IP is a
// single-address prefix.
func getPrefixes(key string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
