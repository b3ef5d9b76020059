package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	JWTSecret   string
	TokenTTL    time.Duration
	BcryptCost  int
	LogLevel    string

	StripeAPIKey  string
	StripeAPIURL  string
	RefundTimeout time.Duration

	RedisAddress string
	LockTTL      time.Duration

	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatch        int
	WorkerPoolSize     int

	ShutdownTimeout time.Duration

	AdminLogin    string
	AdminPassword string
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultLogLevel           = "info"
	defaultTokenTTL           = 24 * time.Hour
	defaultRefundTimeout      = 10 * time.Second
	defaultLockTTL            = 30 * time.Second
	defaultKafkaTopic         = "order-events"
	defaultOutboxPollInterval = 2 * time.Second
	defaultOutboxBatch        = 50
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		BcryptCost:         getInt(lookup, "BCRYPT_COST", 0),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		StripeAPIKey:       getString(lookup, "STRIPE_API_KEY", ""),
		StripeAPIURL:       getString(lookup, "STRIPE_API_URL", ""),
		RefundTimeout:      getDuration(lookup, "REFUND_TIMEOUT", defaultRefundTimeout),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		LockTTL:            getDuration(lookup, "LOCK_TTL", defaultLockTTL),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		OutboxPollInterval: getDuration(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval),
		OutboxBatch:        getInt(lookup, "OUTBOX_BATCH", defaultOutboxBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AdminLogin:         getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:      getString(lookup, "ADMIN_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("ordermart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokers            = getString(lookup, "KAFKA_BROKERS", "")
		pollIntervalStr    = cfg.OutboxPollInterval.String()
		refundTimeoutStr   = cfg.RefundTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.StripeAPIKey, "stripe-key", cfg.StripeAPIKey, "Stripe secret key used for refunds")
	fs.StringVar(&cfg.StripeAPIURL, "stripe-url", cfg.StripeAPIURL, "Override of the Stripe API base URL")
	fs.StringVar(&refundTimeoutStr, "refund-timeout", refundTimeoutStr, "Upper bound for a refund request")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for distributed order locks")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "Comma separated Kafka brokers for order events")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for order events")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent event publishers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.OutboxBatch, "poll-batch", cfg.OutboxBatch, "Maximum events per outbox poll")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OutboxPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.RefundTimeout, err = time.ParseDuration(refundTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid refund timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokers)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.OutboxBatch <= 0 {
		cfg.OutboxBatch = defaultOutboxBatch
	}

	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaultOutboxPollInterval
	}

	if cfg.RefundTimeout <= 0 {
		cfg.RefundTimeout = defaultRefundTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddress != "" && cfg.LockTTL <= cfg.RefundTimeout {
		return nil, fmt.Errorf("lock ttl %v must exceed refund timeout %v", cfg.LockTTL, cfg.RefundTimeout)
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
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

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
