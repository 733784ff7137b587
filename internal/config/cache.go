package config

import (
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache placed in front of the
// public catalogue endpoints (aircraft, airports, routes, flights).
// Order endpoints are never cached.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
	// VaryQuery adds the raw query string to the key, so that
	// /v1/routes?source=KBP and /v1/routes?source=LWO do not collide.
	VaryQuery bool
	Methods   map[string]bool
}

// LoadCacheConfig reads CACHE_* variables.  Flight availability changes with
// every order, so the default TTL is kept short.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 15*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "catalog"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
		VaryQuery:    envBool("CACHE_VARY_QUERY", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
