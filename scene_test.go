package festive

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func newTestScene() *Scene {
	return NewScene(testConfig(500))
}

// fakeDetector records its handler so tests can drive frames by hand.
type fakeDetector struct {
	startErr error
	handle   HandHandler
	ctx      context.Context
	starts   int
	stops    int
}

func (d *fakeDetector) Start(ctx context.Context, handle HandHandler) error {
	d.starts++
	if d.startErr != nil {
		return d.startErr
	}
	d.ctx = ctx
	d.handle = handle
	return nil
}

func (d *fakeDetector) Stop() error {
	d.stops++
	d.handle = nil
	return nil
}

// recordingSink collects emitted gesture events.
type recordingSink struct {
	events []GestureEvent
}

func (r *recordingSink) EmitGesture(e GestureEvent) {
	r.events = append(r.events, e)
}

func TestNewSceneDefaults(t *testing.T) {
	s := newTestScene()
	if s.Engine() == nil || s.Camera() == nil {
		t.Fatal("scene should own an engine and a camera")
	}
	if s.Gesture() != GestureNone {
		t.Errorf("Gesture() = %v, want NONE", s.Gesture())
	}
	if s.DetectionEnabled() || s.DetectionActive() {
		t.Error("detection should start off")
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", s.ScreenshotDir)
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := newTestScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be on")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be off")
	}
}

func TestSceneDetectorFailureKeepsRunning(t *testing.T) {
	s := newTestScene()
	d := &fakeDetector{startErr: fmt.Errorf("camera: %w", ErrDetectorUnavailable)}
	s.SetDetector(d)
	s.SetDetection(true)

	if !s.DetectionEnabled() {
		t.Error("detection should stay enabled")
	}
	if s.DetectionActive() {
		t.Error("failed detector should not be active")
	}
	for i := 0; i < 10; i++ {
		s.update(frame)
	}
	if s.Engine().Gesture() != GestureNone {
		t.Errorf("gesture = %v, want NONE", s.Engine().Gesture())
	}
	if s.Engine().Time() == 0 {
		t.Error("animation should keep running without a detector")
	}

	s.SetDetection(false)
	if d.stops != 0 {
		t.Error("a detector that never started should not be stopped")
	}
}

func TestSceneNoDetector(t *testing.T) {
	s := newTestScene()
	s.SetDetection(true)
	if s.DetectionActive() {
		t.Error("no detector should mean inactive detection")
	}
	s.update(frame)
}

func TestSceneHandlerPath(t *testing.T) {
	s := newTestScene()
	sink := &recordingSink{}
	s.SetGestureSink(sink)
	d := &fakeDetector{}
	s.SetDetector(d)
	s.SetDetection(true)
	if !s.DetectionActive() || d.handle == nil {
		t.Fatal("detector should be started with a handler")
	}

	d.handle(OpenHand())
	if s.Gesture() != GestureNone {
		t.Error("one open frame should not stabilize")
	}
	d.handle(OpenHand())
	if s.Gesture() != GestureText {
		t.Fatalf("Gesture() = %v, want TEXT", s.Gesture())
	}
	if s.Engine().Gesture() != GestureNone {
		t.Error("engine should only change on the next update")
	}

	s.update(frame)
	if s.Engine().Gesture() != GestureText {
		t.Errorf("engine gesture = %v, want TEXT", s.Engine().Gesture())
	}
	if !s.Camera().Framing() {
		t.Error("gesture change should reframe the camera")
	}
	if len(sink.events) != 1 {
		t.Fatalf("sink got %d events, want 1", len(sink.events))
	}
	if e := sink.events[0]; e.Previous != GestureNone || e.Current != GestureText {
		t.Errorf("event = %+v", e)
	}

	s.update(frame)
	if len(sink.events) != 1 {
		t.Error("no event should fire without a change")
	}

	d.handle(nil)
	d.handle(nil)
	s.update(frame)
	if s.Engine().Gesture() != GestureTree {
		t.Errorf("losing the hand should show the tree, got %v", s.Engine().Gesture())
	}
}

func TestSceneDetectionOffKeepsGesture(t *testing.T) {
	s := newTestScene()
	d := &fakeDetector{}
	s.SetDetector(d)
	s.SetDetection(true)
	ctx := d.ctx
	d.handle(OpenHand())
	d.handle(OpenHand())
	s.update(frame)

	s.SetDetection(false)
	if d.stops != 1 {
		t.Errorf("Stop called %d times, want 1", d.stops)
	}
	if ctx.Err() == nil {
		t.Error("switching off should cancel the detector context")
	}
	s.update(frame)
	if s.Engine().Gesture() != GestureText {
		t.Errorf("gesture = %v, want the last one kept", s.Engine().Gesture())
	}

	// The stabilizer window was cleared: one frame is not a majority.
	s.SetDetection(true)
	d.handle(FistHand())
	if s.Gesture() != GestureText {
		t.Error("a single frame after restart should not change the gesture")
	}
}

func TestSceneKeyboardOverrideThenDetection(t *testing.T) {
	s := newTestScene()
	d := &fakeDetector{}
	s.SetDetector(d)
	s.SetDetection(true)
	d.handle(OpenHand())
	d.handle(OpenHand())
	s.update(frame)
	if s.Engine().Gesture() != GestureText {
		t.Fatalf("engine gesture = %v, want TEXT", s.Engine().Gesture())
	}

	s.SetDetection(false)
	s.SetGesture(GestureTree)
	s.update(frame)
	if s.Engine().Gesture() != GestureTree {
		t.Fatalf("engine gesture = %v after T, want TREE", s.Engine().Gesture())
	}

	// The same open palm that was stable before the override must win again.
	s.SetDetection(true)
	for i := 0; i < 10; i++ {
		d.handle(OpenHand())
	}
	s.update(frame)
	if s.Gesture() != GestureText || s.Engine().Gesture() != GestureText {
		t.Errorf("cell %v, engine %v after open frames, want TEXT", s.Gesture(), s.Engine().Gesture())
	}
}

func TestSceneSinkFiresFromUpdate(t *testing.T) {
	s := newTestScene()
	sink := &recordingSink{}
	s.SetGestureSink(sink)
	d := &fakeDetector{}
	s.SetDetector(d)
	s.SetDetection(true)

	// Flip back and forth between two updates: the handler never emits, and
	// the update reports only the latest gesture against the engine's.
	d.handle(OpenHand())
	d.handle(OpenHand())
	d.handle(FistHand())
	d.handle(FistHand())
	if len(sink.events) != 0 {
		t.Fatalf("handler emitted %d events, want 0", len(sink.events))
	}
	s.update(frame)
	if len(sink.events) != 1 {
		t.Fatalf("update emitted %d events, want 1", len(sink.events))
	}
	if e := sink.events[0]; e.Previous != GestureNone || e.Current != GestureTree || e.Time != 0 {
		t.Errorf("event = %+v, want NONE -> TREE at time 0", e)
	}
}

func TestSceneSetDetectorRestarts(t *testing.T) {
	s := newTestScene()
	a := &fakeDetector{}
	b := &fakeDetector{}
	s.SetDetector(a)
	s.SetDetection(true)
	s.SetDetector(b)
	if a.stops != 1 {
		t.Error("old detector should be stopped")
	}
	if b.starts != 1 || !s.DetectionActive() {
		t.Error("new detector should be started")
	}
}

func TestSceneKeyboardGesture(t *testing.T) {
	s := newTestScene()
	s.SetGesture(GestureText)
	s.update(frame)
	if s.Engine().Gesture() != GestureText {
		t.Errorf("engine gesture = %v, want TEXT", s.Engine().Gesture())
	}
}

func TestSceneScriptDetectorEndToEnd(t *testing.T) {
	s := newTestScene()
	d, err := LoadScript([]byte(`{"steps": [
		{"action": "open", "frames": 3},
		{"action": "screenshot", "label": "greeting"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d.OnScreenshot = s.Screenshot
	d.Replay(s.handleHand)
	s.update(frame)
	if s.Engine().Gesture() != GestureText {
		t.Errorf("engine gesture = %v, want TEXT", s.Engine().Gesture())
	}
	if labels := s.takeScreenshots(); len(labels) != 1 || labels[0] != "greeting" {
		t.Errorf("queued screenshots = %v", labels)
	}
}

func TestSceneConcurrentHandler(t *testing.T) {
	s := newTestScene()
	d := &fakeDetector{}
	s.SetDetector(d)
	s.SetDetection(true)
	handle := d.handle

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%20 < 10 {
				handle(OpenHand())
			} else {
				handle(FistHand())
			}
		}
	}()
	for i := 0; i < 50; i++ {
		s.update(frame)
	}
	wg.Wait()
	s.update(frame)
	if s.Engine().Gesture() != GestureTree {
		t.Errorf("engine gesture = %v, want TREE after the last fists", s.Engine().Gesture())
	}
}

func TestSceneLayout(t *testing.T) {
	s := newTestScene()
	w, h := s.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	w, h = s.Layout(0, -5)
	if w != 1 || h != 1 {
		t.Errorf("degenerate Layout = %dx%d, want 1x1", w, h)
	}
}

func TestSceneToggleMute(t *testing.T) {
	s := newTestScene()
	s.ToggleMute() // no jingle: no-op

	j := &Jingle{volume: DefaultJingleVolume}
	s.SetJingle(j)
	s.ToggleMute()
	if !j.Muted() {
		t.Error("ToggleMute should mute")
	}
	if st := s.hudState(); !st.hasMusic || !st.muted {
		t.Errorf("hud state = %+v", st)
	}
	s.ToggleMute()
	if j.Muted() {
		t.Error("ToggleMute should unmute")
	}
}

func TestSceneDebugLog(t *testing.T) {
	s := newTestScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	out := captureStderr(t, func() {
		for i := 0; i < ReferenceFPS+1; i++ {
			s.update(frame)
		}
	})
	if !strings.Contains(out, "[festive] ticks:") || !strings.Contains(out, "distance to target") {
		t.Errorf("expected frame stats in stderr, got: %q", out)
	}
}
