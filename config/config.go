// Package config reads settings from the process environment (populated
// from .env by main). Getters fall back to their default when a key is
// missing, blank or unparseable.
package config

import (
	"os"
	"strconv"
	"strings"
)

func New() map[string]string {
	environ := os.Environ()
	c := make(map[string]string, len(environ))
	for _, entry := range environ {
		if key, value, _ := strings.Cut(entry, "="); key != "" {
			c[key] = value
		}
	}
	return c
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if val := strings.TrimSpace(config[key]); val != "" {
		return val
	}
	return defaultValue
}

func parsed[T any](config map[string]string, key string, defaultValue T, parse func(string) (T, error)) T {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}
	v, err := parse(s)
	if err != nil {
		return defaultValue
	}
	return v
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	return parsed(config, key, defaultValue, strconv.Atoi)
}

func GetInt64(config map[string]string, key string, defaultValue int64) int64 {
	return parsed(config, key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	return parsed(config, key, defaultValue, strconv.ParseBool)
}

// GetStrings splits a comma separated value, dropping empty entries.
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	var values []string
	for _, part := range strings.Split(GetString(config, key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
