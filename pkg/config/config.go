// Package config loads the small set of environment-driven tunables the
// rest of the module needs at process startup: logging, default buffer
// sizes for buffered/replay observers, the subject registry's eviction
// size, and the optional Redis address backing the distributed publish
// bridge.
package config

import (
	"os"
	"strconv"

	"github.com/ling-streams/rx/pkg/logger"
)

// Config is the top-level process configuration.
type Config struct {
	Mode string `env:"MODE"`
	Log  logger.LogConfig

	// DefaultBufferedQueueWarnSize is a backlog size for Buffered
	// observers. It is loaded but not read by any package: the Buffered
	// queue logs no warning at any size.
	DefaultBufferedQueueWarnSize int `env:"BUFFERED_QUEUE_WARN_SIZE"`

	// DefaultReplayCapacity is a replay cache size. It is loaded but not
	// read by any package: NewReplaySubject always takes its capacity as
	// an argument.
	DefaultReplayCapacity int `env:"REPLAY_DEFAULT_CAPACITY"`

	// SubjectRegistrySize bounds the number of keyed subjects the registry
	// keeps alive at once before evicting the least recently used one.
	SubjectRegistrySize int `env:"SUBJECT_REGISTRY_SIZE"`

	// RedisAddr, when non-empty, enables the distributed PublishSubject
	// bridge against a Redis pub/sub channel.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
}

// GlobalConfig is populated by Load and read by process entry points.
var GlobalConfig *Config

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() error {
	GlobalConfig = &Config{
		Mode: getStringOrDefault("MODE", "development"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/rx.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		DefaultBufferedQueueWarnSize: getIntOrDefault("BUFFERED_QUEUE_WARN_SIZE", 10000),
		DefaultReplayCapacity:        getIntOrDefault("REPLAY_DEFAULT_CAPACITY", 256),
		SubjectRegistrySize:          getIntOrDefault("SUBJECT_REGISTRY_SIZE", 1024),
		RedisAddr:                    getStringOrDefault("REDIS_ADDR", ""),
		RedisPassword:                getStringOrDefault("REDIS_PASSWORD", ""),
		RedisDB:                      getIntOrDefault("REDIS_DB", 0),
	}
	return nil
}

func getStringOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
