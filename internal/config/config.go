// Package config reads process settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Port the host serves its feed on.
	Port int
	// Feed is the host a viewer connects to. Empty means browse mDNS.
	Feed string
	// Advertise announces the host over mDNS.
	Advertise bool
	LogLevel  slog.Level
	ExportDir string
	// PanOnEmpty pans the view on a move-tool press over empty canvas.
	PanOnEmpty bool
}

// Load reads the configuration. Unparseable values keep their defaults.
func Load() *Config {
	return &Config{
		Port:       getEnvAsInt("MENTORCANVAS_PORT", 8888),
		Feed:       getEnv("MENTORCANVAS_FEED", ""),
		Advertise:  getEnvAsBool("MENTORCANVAS_ADVERTISE", true),
		LogLevel:   getEnvAsLevel("MENTORCANVAS_LOG_LEVEL", slog.LevelInfo),
		ExportDir:  getEnv("MENTORCANVAS_EXPORT_DIR", "."),
		PanOnEmpty: getEnvAsBool("MENTORCANVAS_PAN_ON_EMPTY", false),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsLevel(key string, defaultVal slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv(key)))); err != nil {
		return defaultVal
	}
	return level
}
