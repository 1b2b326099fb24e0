package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	FrontendURL          string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	BcryptCost           int
	ShutdownTimeout      time.Duration
	APIRateLimit         int
	AuthRateLimit        int
	RateLimitWindow      time.Duration
	LogLevel             string
}

const (
	defaultRunAddress           = ":5000"
	defaultFrontendURL          = "http://localhost:3000"
	defaultSessionTTL           = time.Hour
	defaultSessionSweepInterval = 10 * time.Minute
	defaultBcryptCost           = 12
	minBcryptCost               = 10
	defaultShutdownTimeout      = 10 * time.Second
	defaultAPIRateLimit         = 100
	defaultAuthRateLimit        = 5
	defaultRateLimitWindow      = 15 * time.Minute
	defaultLogLevel             = "info"
	defaultEnvFile              = ".env"
)

// Load parses configuration from flags and environment variables. Keys missing
// from the environment are looked up in the dotenv file named by ENV_FILE
// (".env" by default) when it exists.
func Load() (*Config, error) {
	path := defaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		path = v
	}
	fileEnv, err := readEnvFile(path)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], withFallback(os.LookupEnv, fileEnv))
}

type envLookup func(string) (string, bool)

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func withFallback(primary envLookup, fallback map[string]string) envLookup {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RedisAddr:            getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:        getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:              getInt(lookup, "REDIS_DB", 0),
		FrontendURL:          getString(lookup, "FRONTEND_URL", defaultFrontendURL),
		SessionTTL:           getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SessionSweepInterval: getDuration(lookup, "SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval),
		BcryptCost:           getInt(lookup, "BCRYPT_COST", defaultBcryptCost),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		APIRateLimit:         getInt(lookup, "API_RATE_LIMIT", defaultAPIRateLimit),
		AuthRateLimit:        getInt(lookup, "AUTH_RATE_LIMIT", defaultAuthRateLimit),
		RateLimitWindow:      getDuration(lookup, "RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("salonbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		sweepIntervalStr   = cfg.SessionSweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN, in-memory storage when empty")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for session storage")
	fs.StringVar(&cfg.FrontendURL, "frontend-url", cfg.FrontendURL, "Allowed CORS origin")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.StringVar(&sweepIntervalStr, "session-sweep", sweepIntervalStr, "Interval between expired session purges")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor")
	fs.IntVar(&cfg.APIRateLimit, "api-rate-limit", cfg.APIRateLimit, "Requests per window per client on /api")
	fs.IntVar(&cfg.AuthRateLimit, "auth-rate-limit", cfg.AuthRateLimit, "Failed auth attempts per window per client")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.SessionSweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid session sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if passwordFile, ok := lookup("REDIS_PASSWORD_FILE"); ok && passwordFile != "" {
		content, err := os.ReadFile(passwordFile)
		if err != nil {
			return nil, fmt.Errorf("read redis password file: %w", err)
		}
		cfg.RedisPassword = strings.TrimSpace(string(content))
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SessionSweepInterval <= 0 {
		cfg.SessionSweepInterval = defaultSessionSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = defaultBcryptCost
	}

	if cfg.APIRateLimit <= 0 {
		cfg.APIRateLimit = defaultAPIRateLimit
	}

	if cfg.AuthRateLimit <= 0 {
		cfg.AuthRateLimit = defaultAuthRateLimit
	}

	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}

	if cfg.BcryptCost < minBcryptCost {
		return nil, fmt.Errorf("bcrypt cost must be at least %d", minBcryptCost)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
