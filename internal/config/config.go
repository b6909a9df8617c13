package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	KeywordsFile string // path to a keywords.yaml override (optional, empty = built-in tables)

	ProbeTimeout        time.Duration // timeout for a single link health probe (default: 5s)
	ProbeDelay          time.Duration // delay between probes during a full sweep (default: 200ms)
	HealthSweepInterval time.Duration // interval between automatic health sweeps (default: 24h)

	PruneInterval      time.Duration // interval between reminder prune runs (default: 1h)
	CompletedRetention time.Duration // how long completed reminders are kept (default: 24h)

	// Redis. Empty addr selects the in-memory store (nothing survives
	// a restart; fine for trying things out).
	RedisAddr           string        // ex: "localhost:6379", empty = in-memory store
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKDECK_PRETTY_LOG", true),

		// Heuristics
		KeywordsFile: getenv("LINKDECK_KEYWORDS_FILE", ""),

		// Health checks
		ProbeTimeout:        mustDuration("LINKDECK_PROBE_TIMEOUT", 5*time.Second),
		ProbeDelay:          mustDuration("LINKDECK_PROBE_DELAY", 200*time.Millisecond),
		HealthSweepInterval: mustDuration("LINKDECK_HEALTH_SWEEP_INTERVAL", 24*time.Hour),

		// Reminder pruning
		PruneInterval:      mustDuration("LINKDECK_PRUNE_INTERVAL", time.Hour),
		CompletedRetention: mustDuration("LINKDECK_COMPLETED_RETENTION", 24*time.Hour),

		// Redis settings
		RedisAddr:           getenv("LINKDECK_REDIS_ADDR", ""),
		RedisPassword:       getenv("LINKDECK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKDECK_REDIS_DB", 0),
		RedisDT:             mustDuration("LINKDECK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("LINKDECK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("LINKDECK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("LINKDECK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("LINKDECK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("LINKDECK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("LINKDECK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("LINKDECK_REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
