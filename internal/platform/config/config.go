package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. Values come from
// the environment so main stays lean; sub-structs group per-backend settings.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Email       EmailConfig
	Documents   DocumentsConfig
	Kafka       KafkaConfig

	// CheckInterval and SnapshotInterval drive the background scheduler.
	// Both default to 24h; RunOnStart triggers a cycle immediately at boot.
	CheckInterval    time.Duration
	SnapshotInterval time.Duration
	RunOnStart       bool

	// UserCheckTimeout bounds the work done for a single member during a
	// compliance cycle so one hung dependency cannot stall the whole batch.
	UserCheckTimeout time.Duration
}

// RedisConfig holds connection settings for the optional Redis instance used
// for cycle locks and snapshot caching. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// EmailConfig configures the SES notification dispatcher. An empty Sender
// selects the log-only dispatcher.
type EmailConfig struct {
	Sender string
	Region string
}

// DocumentsConfig configures the S3 bucket for certification proof files.
// An empty bucket selects the in-memory store.
type DocumentsConfig struct {
	Bucket string
	Region string
}

// KafkaConfig configures the optional audit event publisher. No brokers means
// audit events are persisted locally only.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:             envOr("RESCUEOPS_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CheckInterval:    envDuration("CHECK_INTERVAL", 24*time.Hour),
		SnapshotInterval: envDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		RunOnStart:       os.Getenv("RUN_ON_START") == "true",
		UserCheckTimeout: envDuration("USER_CHECK_TIMEOUT", 30*time.Second),
	}

	cfg.Redis = RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     envInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}

	cfg.Email = EmailConfig{
		Sender: os.Getenv("EMAIL_SENDER"),
		Region: envOr("AWS_REGION", "us-east-1"),
	}

	cfg.Documents = DocumentsConfig{
		Bucket: os.Getenv("DOCUMENTS_BUCKET"),
		Region: envOr("AWS_REGION", "us-east-1"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka = KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "rescueops.audit"),
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
