package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	// AuthDisabled skips bearer-token validation; the deployment then relies
	// entirely on the upstream gateway having authenticated the caller.
	AuthDisabled bool
}

// Postgres captures connection settings for the relational stores.
// An empty URL selects the in-memory stores.
type Postgres struct {
	URL string
}

// Redis captures connection settings for the rate limiter backend.
// An empty URL disables rate limiting.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures the audit sink settings. No brokers means audit events stay
// in the local store only.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// RateLimit configures the per-org fixed window.
type RateLimit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// Config is the full runtime configuration assembled from the environment.
type Config struct {
	Server    Server
	Postgres  Postgres
	Redis     Redis
	Kafka     Kafka
	RateLimit RateLimit
}

// FromEnv builds the configuration from environment variables so main stays
// lean.
func FromEnv() Config {
	addr := os.Getenv("CAREBASE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("CAREBASE_JWT_SIGNING_KEY")
	authDisabled := jwtSigningKey == ""

	var brokers []string
	if raw := os.Getenv("CAREBASE_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("CAREBASE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "carebase.audit.events"
	}

	return Config{
		Server: Server{
			Addr:          addr,
			JWTSigningKey: jwtSigningKey,
			AuthDisabled:  authDisabled,
		},
		Postgres: Postgres{
			URL: os.Getenv("CAREBASE_POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("CAREBASE_REDIS_URL"),
			PoolSize:     envInt("CAREBASE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CAREBASE_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
		RateLimit: RateLimit{
			RequestsPerWindow: envInt("CAREBASE_RATE_LIMIT_REQUESTS", 300),
			Window:            time.Minute,
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
