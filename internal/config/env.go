package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv layers environment overrides onto a loaded config. Every knob has a
// TASKPAD_ variable so a container can run without a config file at all.
func FromEnv(c *Config) *Config {
	if c == nil {
		c = Default()
	}

	if host, ok := os.LookupEnv("TASKPAD_HOST"); ok {
		c.Server.Host = strings.TrimSpace(host)
	}
	if port := getEnvInt("TASKPAD_PORT"); port > 0 {
		c.Server.Port = port
	}
	if backend := os.Getenv("TASKPAD_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = strings.ToLower(strings.TrimSpace(backend))
	}
	if dir := os.Getenv("TASKPAD_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if v, ok := getEnvBool("TASKPAD_SEED_DISABLED"); ok {
		c.Seed.Disabled = v
	}

	return c
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return false, false
	}
	return b, true
}
