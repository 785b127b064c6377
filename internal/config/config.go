// Package config loads runtime settings from the environment. A .env file in
// the working directory, when present, is loaded first; real environment
// variables always win over it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAccessTokenTTL is the token lifetime when ACCESS_TOKEN_EXPIRE_MINUTES
// is unset: eight days.
const DefaultAccessTokenTTL = 8 * 24 * time.Hour

type Config struct {
	Host               string
	Port               int
	DatabaseURL        string
	SecretKey          string
	AccessTokenTTL     time.Duration
	BcryptCost         int
	CORSAllowedOrigins []string
	LoginRatePerMinute int
	LogLevel           slog.Level
	MetricsEnabled     bool
}

// Addr is the listen address for net/http.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads .env files (missing files are ignored) and then the process
// environment. envFiles defaults to ".env".
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Host:               getEnv("HOST", "0.0.0.0"),
		DatabaseURL:        getEnv("DATABASE_URL", "data/reconnect.db"),
		SecretKey:          os.Getenv("SECRET_KEY"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8000); err != nil {
		return Config{}, err
	}
	minutes, err := getInt("ACCESS_TOKEN_EXPIRE_MINUTES", int(DefaultAccessTokenTTL/time.Minute))
	if err != nil {
		return Config{}, err
	}
	if minutes <= 0 {
		return Config{}, fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 12); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.LoginRatePerMinute, err = getInt("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return Config{}, err
	}
	if cfg.LoginRatePerMinute < 0 {
		return Config{}, fmt.Errorf("config: LOGIN_RATE_PER_MINUTE must not be negative")
	}
	if cfg.MetricsEnabled, err = getBool("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	if len(cfg.SecretKey) < 16 {
		return Config{}, errors.New("config: SECRET_KEY must be set and at least 16 characters")
	}
	return cfg, nil
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
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
