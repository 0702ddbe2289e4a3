package festive

import (
	"context"
	"errors"
)

// ErrDetectorUnavailable is returned by Detector.Start when the camera or the
// landmark model cannot be opened, including when permission is denied.
var ErrDetectorUnavailable = errors.New("festive: hand detector unavailable")

// ErrDetectorRunning is returned by Detector.Start when it is already started.
var ErrDetectorRunning = errors.New("festive: hand detector already running")

// HandHandler receives one call per processed camera frame. hand is nil when
// no hand was found.
type HandHandler func(hand *Hand)

// Detector is a hand-landmark source. Implementations call the handler from
// their own goroutine.
type Detector interface {
	// Start begins delivering frames to handle until ctx is done or Stop is
	// called. It returns without blocking.
	Start(ctx context.Context, handle HandHandler) error
	// Stop ends delivery and releases the camera. No handler call happens
	// after Stop returns.
	Stop() error
}
