package tether

import (
	"fmt"
	"os"
	"time"
)

// dispatchStats holds per-drain dispatch counters and timings.
// Only populated when the system's debug mode is on.
type dispatchStats struct {
	events        int
	activations   int
	performs      int
	deactivations int
	dispatchTime  time.Duration
	updateTime    time.Duration
}

// SetDebugMode enables or disables debug mode. When enabled, per-drain
// dispatch stats are logged to stderr after every ProcessEvents call that
// handled at least one event.
func (s *ToolSystem) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugLog prints dispatch counters and timings to stderr.
func (s *ToolSystem) debugLog(stats dispatchStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tether] events: %d | activations: %d | performs: %d | deactivations: %d\n",
		stats.events, stats.activations, stats.performs, stats.deactivations)
	_, _ = fmt.Fprintf(os.Stderr,
		"[tether] dispatch: %v | updateMaps: %v\n",
		stats.dispatchTime, stats.updateTime)
}

// debugError prints a non-fatal error encountered on a teardown path.
func (s *ToolSystem) debugError(op string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[tether] %s: %v\n", op, err)
}
