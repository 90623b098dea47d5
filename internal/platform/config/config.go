package config

import (
	"os"
	"strconv"
)

// Config captures everything the service reads from the environment.
type Config struct {
	Addr string

	// DatabaseURL enables the PostgreSQL store; empty falls back to the
	// in-memory store (dev only).
	DatabaseURL string

	// RedisURL enables rate limiting; empty disables it.
	RedisURL string

	AdminUsername string
	// AdminPassword is either plaintext or a bcrypt hash; empty disables
	// admin login entirely.
	AdminPassword string
	JWTSigningKey string

	// SESRegion/SenderEmail enable the confirmation mailer; empty region
	// disables sending.
	SESRegion   string
	SenderEmail string

	// LegacySnapshotPath points at the old flat-file submissions.json for
	// reconciliation during migration; empty disables it.
	LegacySnapshotPath string

	RateLimitPerMinute int
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:               envOr("PTZ_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AdminUsername:      envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		JWTSigningKey:      envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SESRegion:          os.Getenv("SES_REGION"),
		SenderEmail:        os.Getenv("SENDER_EMAIL"),
		LegacySnapshotPath: os.Getenv("LEGACY_SNAPSHOT_PATH"),
		RateLimitPerMinute: envIntOr("RATE_LIMIT_PER_MINUTE", 10),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
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
