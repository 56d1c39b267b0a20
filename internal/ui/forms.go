package ui

import (
	"strconv"
	"strings"
)

func formString(values map[string][]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

func formInt(values map[string][]string, key string, fallback int) int {
	v := formString(values, key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func formFloat(values map[string][]string, key string, fallback float64) float64 {
	v := formString(values, key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func formBool(values map[string][]string, key string) bool {
	v := strings.ToLower(formString(values, key))
	return v == "true" || v == "1" || v == "on" || v == "yes"
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
