package config

import "time"

// TimeoutConfig holds timeout settings for various operations.
// These can be configured via CLI flags to tune performance for different environments.
type TimeoutConfig struct {
	// Request is the per-request deadline applied by the router. Store calls
	// run with the request context, so a hung query is cancelled with the
	// request instead of blocking forever. Default: 30s
	Request time.Duration

	// Shutdown is how long in-flight requests get to finish on SIGTERM.
	// Default: 30s
	Shutdown time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		Request:  30 * time.Second,
		Shutdown: 30 * time.Second,
	}
}

// global instance that can be set at startup
var globalTimeouts = DefaultTimeoutConfig()

// SetGlobalTimeouts sets the global timeout configuration
func SetGlobalTimeouts(cfg *TimeoutConfig) {
	globalTimeouts = cfg
}

// GetTimeouts returns the global timeout configuration
func GetTimeouts() *TimeoutConfig {
	return globalTimeouts
}
