package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the connection string for pgx.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-event intake settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// AMQP stores notification gateway settings. Empty URL disables publishing.
type AMQP struct {
	URL      string
	Exchange string
}

// Assignment stores the engine's timing and retry policy.
type Assignment struct {
	Window        time.Duration
	MaxAttempts   int
	SweepInterval time.Duration
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores pprof endpoint credentials for non-loopback access.
type Pprof struct {
	User string
	Pass string
}

// Store stores the transient-store-error retry policy.
type Store struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Config stores service settings.
type Config struct {
	Port       int
	DB         DB
	Kafka      Kafka
	AMQP       AMQP
	Assignment Assignment
	RateLimit  RateLimit
	Pprof      Pprof
	Store      Store
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:       defaultPort,
		DB:         DefaultDB(),
		Kafka:      DefaultKafka(),
		AMQP:       DefaultAMQP(),
		Assignment: DefaultAssignment(),
		RateLimit:  DefaultRateLimit(),
		Store:      DefaultStore(),
	}

	cfg.Port = envInt("PORT", cfg.Port)

	cfg.DB.Host = envStr("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envStr("DB_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("DB_PASS", cfg.DB.Pass)
	cfg.DB.Name = envStr("DB_NAME", cfg.DB.Name)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.Topic = envStr("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.AMQP.URL = envStr("AMQP_URL", cfg.AMQP.URL)
	cfg.AMQP.Exchange = envStr("AMQP_EXCHANGE", cfg.AMQP.Exchange)

	cfg.Assignment.Window = envDuration("ASSIGNMENT_WINDOW", cfg.Assignment.Window)
	cfg.Assignment.MaxAttempts = envInt("ASSIGNMENT_MAX_ATTEMPTS", cfg.Assignment.MaxAttempts)
	cfg.Assignment.SweepInterval = envDuration("ASSIGNMENT_SWEEP_INTERVAL", cfg.Assignment.SweepInterval)

	cfg.RateLimit.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)

	cfg.Pprof.User = os.Getenv("PPROF_USER")
	cfg.Pprof.Pass = os.Getenv("PPROF_PASS")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.DurationVar(&cfg.Assignment.Window, "assignment-window", cfg.Assignment.Window, "per-assignment response window")
	pflag.IntVar(&cfg.Assignment.MaxAttempts, "max-attempts", cfg.Assignment.MaxAttempts, "max assignment attempts per order")
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Assignment.Window <= 0 {
		return fmt.Errorf("invalid assignment window: %s", c.Assignment.Window)
	}
	if c.Assignment.MaxAttempts <= 0 {
		return fmt.Errorf("invalid max attempts: %d", c.Assignment.MaxAttempts)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
