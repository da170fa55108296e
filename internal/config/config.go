// Package config provides configuration helpers for Aura commands.
package config

import (
	"os"
	"strconv"
)

// Default process configuration.
const (
	DefaultPort         = "8090"
	DefaultLogLevel     = "info"
	DefaultFrameRate    = 60
	DefaultMaxParticles = 1200
)

// Port returns the preview server port from AURA_PORT.
// Falls back to the provided default if not set.
func Port(defaultPort string) string {
	if port := os.Getenv("AURA_PORT"); port != "" {
		return port
	}
	return defaultPort
}

// LogLevel returns the log level from AURA_LOG_LEVEL or the default.
func LogLevel() string {
	if level := os.Getenv("AURA_LOG_LEVEL"); level != "" {
		return level
	}
	return DefaultLogLevel
}

// FrameRate returns the simulation tick rate from AURA_FPS.
// Non-numeric or non-positive values fall back to the default.
func FrameRate() int {
	return positiveInt("AURA_FPS", DefaultFrameRate)
}

// MaxParticles returns the particle cap from AURA_MAX_PARTICLES.
func MaxParticles() int {
	return positiveInt("AURA_MAX_PARTICLES", DefaultMaxParticles)
}

// Seed returns the random seed from AURA_SEED. Zero means "seed from the clock".
func Seed() uint64 {
	v := os.Getenv("AURA_SEED")
	if v == "" {
		return 0
	}
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

func positiveInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
