package spiralkeys

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set debug flag so that registry
// mutations (which lack a Piano pointer) can check it cheaply.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, invariant
// violations in the segment registry panic with a descriptive message and
// per-tick stats are logged to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugStats holds per-tick metrics. Only populated in debug mode.
type debugStats struct {
	liveTasks   int
	paintedSegs int
	advanceTime time.Duration
	drawTime    time.Duration
}

// debugLog prints tick stats to stderr.
func debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[spiralkeys] tasks: %d | painted: %d | advance: %v | draw: %v\n",
		stats.liveTasks, stats.paintedSegs, stats.advanceTime, stats.drawTime)
}
