package festive

import (
	"math"
	"sync/atomic"
)

// Pose is a single frame's raw hand classification.
type Pose uint8

const (
	PoseNoHand Pose = iota // no hand in frame
	PoseClosed             // fist
	PoseOpen               // spread palm
)

// String returns the pose name.
func (p Pose) String() string {
	switch p {
	case PoseNoHand:
		return "no-hand"
	case PoseClosed:
		return "closed"
	case PoseOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Gesture is the debounced gesture state the engine morphs toward.
type Gesture int32

const (
	GestureNone Gesture = iota // nothing stabilized yet; rendered as the tree
	GestureTree                // closed hand
	GestureText                // open hand
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "NONE"
	case GestureTree:
		return "TREE"
	case GestureText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// ShowsTree reports whether g renders the tree with its ribbon and lights.
// Only GestureText does not.
func (g Gesture) ShowsTree() bool {
	return g != GestureText
}

// DefaultHistorySize is the number of recent poses the stabilizer votes over.
const DefaultHistorySize = 3

// Stabilizer debounces noisy per-frame poses into a Gesture by strict
// majority over a short sliding window. Not safe for concurrent use; the
// detector callback path owns it.
type Stabilizer struct {
	history []Pose
	next    int
	filled  int
	stable  Gesture

	// OnChange, if set, is called once each time the stable gesture changes.
	OnChange func(Gesture)
}

// NewStabilizer creates a Stabilizer voting over the last window poses.
// A window <= 0 uses DefaultHistorySize.
func NewStabilizer(window int) *Stabilizer {
	if window <= 0 {
		window = DefaultHistorySize
	}
	return &Stabilizer{history: make([]Pose, window)}
}

// Window returns the capacity of the voting window.
func (s *Stabilizer) Window() int {
	return len(s.history)
}

// Stable returns the current debounced gesture.
func (s *Stabilizer) Stable() Gesture {
	return s.stable
}

// Observe records one raw pose and reports the stable gesture afterwards and
// whether it changed. A pose wins when its count exceeds half the window
// capacity; CLOSED is checked first and OPEN second, so OPEN would win if both
// qualified. PoseNoHand counts as PoseClosed.
func (s *Stabilizer) Observe(p Pose) (Gesture, bool) {
	if p == PoseNoHand {
		p = PoseClosed
	}
	s.history[s.next] = p
	s.next = (s.next + 1) % len(s.history)
	if s.filled < len(s.history) {
		s.filled++
	}

	var closed, open int
	for _, h := range s.history[:s.filled] {
		switch h {
		case PoseClosed:
			closed++
		case PoseOpen:
			open++
		}
	}

	window := len(s.history)
	candidate := s.stable
	if closed*2 > window {
		candidate = GestureTree
	}
	if open*2 > window {
		candidate = GestureText
	}
	if candidate == s.stable {
		return s.stable, false
	}
	s.stable = candidate
	if s.OnChange != nil {
		s.OnChange(candidate)
	}
	return candidate, true
}

// Reset clears the voting window. The stable gesture is kept.
func (s *Stabilizer) Reset() {
	clear(s.history)
	s.next = 0
	s.filled = 0
}

// Seed clears the voting window and makes g the stable gesture without
// calling OnChange. Use it when the gesture was set from outside the
// stabilizer, so the next majority is measured against what is on screen.
func (s *Stabilizer) Seed(g Gesture) {
	s.Reset()
	s.stable = g
}

// LandmarkCount is the number of landmarks in a detected hand.
const LandmarkCount = 21

// Landmark indices used by ClassifyHand.
const (
	LandmarkThumbMCP  = 2
	LandmarkThumbTip  = 4
	LandmarkIndexPIP  = 6
	LandmarkIndexTip  = 8
	LandmarkMiddlePIP = 10
	LandmarkMiddleTip = 12
	LandmarkRingPIP   = 14
	LandmarkRingTip   = 16
	LandmarkPinkyPIP  = 18
	LandmarkPinkyTip  = 20
)

const (
	// thumbSpread is the horizontal tip-to-base separation, as a fraction of
	// the normalized frame width, above which the thumb counts as extended.
	thumbSpread = 0.05
	// openDigits is the number of extended digits that makes a palm open.
	openDigits = 3
)

// Landmark is one normalized hand landmark. X and Y are in [0, 1] of the
// frame with Y growing downward; Z is relative depth.
type Landmark struct {
	X, Y, Z float64
}

// Hand is a single detected hand.
type Hand struct {
	Landmarks [LandmarkCount]Landmark
}

var fingerJoints = [4][2]int{
	{LandmarkIndexTip, LandmarkIndexPIP},
	{LandmarkMiddleTip, LandmarkMiddlePIP},
	{LandmarkRingTip, LandmarkRingPIP},
	{LandmarkPinkyTip, LandmarkPinkyPIP},
}

// ClassifyHand maps one frame's detection to a Pose. No hand classifies as
// PoseClosed so the default tree stays up. A finger is extended when its tip
// sits above its PIP joint in the frame; the thumb is extended when its tip
// is far enough sideways from its base.
func ClassifyHand(h *Hand) Pose {
	if h == nil {
		return PoseClosed
	}
	extended := 0
	for _, j := range fingerJoints {
		if h.Landmarks[j[0]].Y < h.Landmarks[j[1]].Y {
			extended++
		}
	}
	if math.Abs(h.Landmarks[LandmarkThumbTip].X-h.Landmarks[LandmarkThumbMCP].X) > thumbSpread {
		extended++
	}
	if extended >= openDigits {
		return PoseOpen
	}
	return PoseClosed
}

// GestureCell holds the latest stable gesture for handoff from the detector
// callback path to the render loop. The zero value holds GestureNone.
type GestureCell struct {
	v atomic.Int32
}

// Store publishes g.
func (c *GestureCell) Store(g Gesture) {
	c.v.Store(int32(g))
}

// Load returns the most recently stored gesture.
func (c *GestureCell) Load() Gesture {
	return Gesture(c.v.Load())
}
