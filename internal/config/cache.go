package config

import "time"

// CacheConfig defines settings for the listing-cache middleware. When
// Enabled is false or no Redis client is configured, caching is
// disabled. TTL bounds how stale a cached listing can be; MaxBodyBytes
// caps the size of responses worth storing.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int64
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:       getenv("CACHE_PREFIX", "showbill:cache"),
		MaxBodyBytes: int64(atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576"))),
	}
}
