package festive

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// scriptStep represents a single action in a detector script.
type scriptStep struct {
	Action    string       `json:"action"`
	Label     string       `json:"label,omitempty"`
	Frames    int          `json:"frames,omitempty"`
	Landmarks [][3]float64 `json:"landmarks,omitempty"`
	From      [2]float64   `json:"from,omitempty"`
	To        [2]float64   `json:"to,omitempty"`
}

// script is the top-level JSON structure for a detector script.
type script struct {
	FrameRate float64      `json:"frameRate,omitempty"`
	Loop      bool         `json:"loop,omitempty"`
	Steps     []scriptStep `json:"steps"`
}

// DefaultScriptFrameRate is the replay rate used when a script sets none.
const DefaultScriptFrameRate = 30

// ScriptDetector is a Detector that replays recorded or hand-written frames
// instead of reading a camera. Steps:
//
//	{"action": "open", "frames": 10}        open palm for 10 frames
//	{"action": "fist", "frames": 10}        closed fist
//	{"action": "none", "frames": 10}        no hand in view
//	{"action": "hand", "landmarks": [...]}  one frame of 21 [x,y,z] landmarks
//	{"action": "wait", "frames": 30}        no callbacks for 30 frames
//	{"action": "screenshot", "label": "x"}  ask for a capture via OnScreenshot
//	{"action": "drag", "from": [x, y], "to": [x, y], "frames": 20}
//	                                        orbit the camera via OnDrag
type ScriptDetector struct {
	steps     []scriptStep
	frameRate float64
	loop      bool

	// OnScreenshot, if set, is called for screenshot steps.
	OnScreenshot func(label string)
	// OnDrag, if set, is called for drag steps with screen coordinates.
	OnDrag func(fromX, fromY, toX, toY float64, frames int)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// LoadScript parses a JSON detector script.
func LoadScript(jsonData []byte) (*ScriptDetector, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse detector script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse detector script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "open", "fist", "none", "wait", "screenshot", "drag":
		case "hand":
			if len(st.Landmarks) != LandmarkCount {
				return nil, fmt.Errorf("parse detector script: step %d: want %d landmarks, got %d",
					i, LandmarkCount, len(st.Landmarks))
			}
		default:
			return nil, fmt.Errorf("parse detector script: step %d: unknown action %q", i, st.Action)
		}
	}
	rate := sc.FrameRate
	if rate <= 0 {
		rate = DefaultScriptFrameRate
	}
	return &ScriptDetector{steps: sc.Steps, frameRate: rate, loop: sc.Loop}, nil
}

// FrameRate returns the replay rate in frames per second.
func (d *ScriptDetector) FrameRate() float64 {
	return d.frameRate
}

// Start replays the script on a new goroutine, one frame per tick of the
// frame rate, until the script ends, ctx is done or Stop is called.
func (d *ScriptDetector) Start(ctx context.Context, handle HandHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return ErrDetectorRunning
	}
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	go d.run(ctx, handle, d.done)
	return nil
}

// Stop cancels the replay and waits for the goroutine to exit.
func (d *ScriptDetector) Stop() error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (d *ScriptDetector) run(ctx context.Context, handle HandHandler, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / d.frameRate))
	defer ticker.Stop()

	wait := func() bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		}
	}
	for {
		if !d.replay(handle, wait) || !d.loop {
			return
		}
	}
}

// Replay runs the whole script synchronously, without frame pacing.
func (d *ScriptDetector) Replay(handle HandHandler) {
	d.replay(handle, func() bool { return true })
}

// replay walks the steps once. wait is called before every frame and returns
// false to abort.
func (d *ScriptDetector) replay(handle HandHandler, wait func() bool) bool {
	for _, st := range d.steps {
		switch st.Action {
		case "screenshot":
			if d.OnScreenshot != nil {
				d.OnScreenshot(st.Label)
			}
			continue
		case "drag":
			if d.OnDrag != nil {
				d.OnDrag(st.From[0], st.From[1], st.To[0], st.To[1], max(st.Frames, 2))
			}
			continue
		case "hand":
			if !wait() {
				return false
			}
			handle(handFromLandmarks(st.Landmarks))
			continue
		}

		frames := max(st.Frames, 1)
		var hand *Hand
		switch st.Action {
		case "open":
			hand = OpenHand()
		case "fist":
			hand = FistHand()
		}
		for range frames {
			if !wait() {
				return false
			}
			if st.Action != "wait" {
				handle(hand)
			}
		}
	}
	return true
}

func handFromLandmarks(pts [][3]float64) *Hand {
	h := &Hand{}
	for i := range min(len(pts), LandmarkCount) {
		h.Landmarks[i] = Landmark{X: pts[i][0], Y: pts[i][1], Z: pts[i][2]}
	}
	return h
}

// FistHand returns a synthetic closed hand: every fingertip folded below its
// PIP joint and the thumb tucked against its base.
func FistHand() *Hand {
	h := neutralHand()
	for _, j := range fingerJoints {
		h.Landmarks[j[0]].Y = h.Landmarks[j[1]].Y + 0.03
	}
	h.Landmarks[LandmarkThumbTip].X = h.Landmarks[LandmarkThumbMCP].X + 0.01
	return h
}

// OpenHand returns a synthetic spread palm: every fingertip above its PIP
// joint and the thumb pointing away from the palm.
func OpenHand() *Hand {
	h := neutralHand()
	for _, j := range fingerJoints {
		h.Landmarks[j[0]].Y = h.Landmarks[j[1]].Y - 0.1
	}
	h.Landmarks[LandmarkThumbTip].X = h.Landmarks[LandmarkThumbMCP].X - 0.12
	return h
}

// neutralHand lays the 21 landmarks out as a relaxed hand centered in frame.
func neutralHand() *Hand {
	h := &Hand{}
	h.Landmarks[0] = Landmark{X: 0.5, Y: 0.8}
	for finger := 0; finger < 5; finger++ {
		x := 0.38 + float64(finger)*0.06
		for joint := 0; joint < 4; joint++ {
			h.Landmarks[1+finger*4+joint] = Landmark{X: x, Y: 0.7 - float64(joint)*0.05}
		}
	}
	return h
}
