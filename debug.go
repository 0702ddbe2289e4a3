package festive

import (
	"fmt"
	"os"
	"time"
)

// debugInterval is how often frame stats are printed in debug mode, in
// seconds of simulated time.
const debugInterval = 1.0

// frameStats accumulates per-frame timing between debug reports.
// Only populated when Scene.debug is true.
type frameStats struct {
	tickTime time.Duration
	drawTime time.Duration
	ticks    int
	elapsed  float64
}

// debugf prints a message to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[festive] "+format+"\n", args...)
}

// logf prints a message to stderr unconditionally. Used for failures the
// scene recovers from, such as a detector that will not start.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[festive] "+format+"\n", args...)
}

// debugLog prints the accumulated frame stats and resets them.
func (s *Scene) debugLog() {
	st := s.stats
	s.stats = frameStats{}
	if !s.debug || st.ticks == 0 {
		return
	}
	n := time.Duration(st.ticks)
	mean, spread := s.engine.Convergence()
	_, _ = fmt.Fprintf(os.Stderr,
		"[festive] ticks: %d | tick: %v | draw: %v | gesture: %s\n",
		st.ticks, st.tickTime/n, st.drawTime/n, s.engine.Gesture())
	_, _ = fmt.Fprintf(os.Stderr,
		"[festive] distance to target: mean %.4f | stddev %.4f | particles: %d\n",
		mean, spread, s.engine.Buffer().Len())
}
