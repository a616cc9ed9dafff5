package scene

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs of the scene loop.
// Set via EnableDebugLogging() from main after parsing log_level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick debug logging.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick debug logging is enabled.
// Use this to guard expensive debug log calls:
//
//	if scene.IsDebugEnabled() {
//	    slog.Debug("tick", "angle", sim.Angle())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
