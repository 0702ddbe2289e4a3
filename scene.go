package festive

import (
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GestureEvent describes a change of the gesture the engine renders.
type GestureEvent struct {
	Previous Gesture
	Current  Gesture
	// Time is the engine's animation clock when the change was applied.
	Time float32
}

// GestureSink is the interface for optional ECS integration.
// When set on a Scene, gesture changes are forwarded to it.
type GestureSink interface {
	EmitGesture(event GestureEvent)
}

// Scene hosts the engine: it runs the per-frame update, owns the camera and
// the hand detector pipeline, and draws everything. It implements ebiten.Game.
type Scene struct {
	engine     *Engine
	camera     *Camera
	stabilizer *Stabilizer
	cell       GestureCell
	sink       GestureSink
	debug      bool

	// ClearColor fills the screen before the scene is drawn.
	ClearColor Color
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	// Detection state. The detector calls back on its own goroutine; only
	// cell crosses over to the render loop.
	detector      Detector
	detecting     bool
	cancelDetect  context.CancelFunc
	detectStarted bool

	jingle *Jingle

	width, height int
	showFPS       bool
	input         inputState
	hud           *hud
	hudFailed     bool
	points        pointRenderer
	sets          []pointSet
	glow          *glowPass
	stats         frameStats

	screenshotMu    sync.Mutex
	screenshotQueue []string

	injectMu    sync.Mutex
	injectQueue []syntheticPointerEvent
}

// NewScene creates a scene and its engine. Target shapes are generated here,
// so this is the expensive call.
func NewScene(cfg Config) *Scene {
	return &Scene{
		engine:        NewEngine(cfg, nil),
		camera:        NewCamera(),
		stabilizer:    NewStabilizer(cfg.HistorySize),
		ScreenshotDir: "screenshots",
		input:         inputState{deadZone: DefaultDragDeadZone},
		glow:          newGlowPass(cfg.Glow, cfg.GlowRadius),
		width:         1,
		height:        1,
	}
}

// Engine returns the scene's particle engine.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Gesture returns the latest stable gesture published to the render loop.
func (s *Scene) Gesture() Gesture {
	return s.cell.Load()
}

// SetGesture publishes g as if the detector had stabilized on it. Used for
// keyboard control while no detector is running.
func (s *Scene) SetGesture(g Gesture) {
	s.cell.Store(g)
}

// SetGestureSink sets the optional ECS bridge.
func (s *Scene) SetGestureSink(sink GestureSink) {
	s.sink = sink
}

// SetDragDeadZone sets the distance in pixels a press must travel before it
// orbits the camera.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.input.deadZone = pixels
}

// SetShowFPS toggles the FPS/TPS overlay.
func (s *Scene) SetShowFPS(show bool) {
	s.showFPS = show
}

// SetJingle attaches background music. The scene toggles it on mute.
func (s *Scene) SetJingle(j *Jingle) {
	s.jingle = j
}

// Jingle returns the attached music, or nil.
func (s *Scene) Jingle() *Jingle {
	return s.jingle
}

// SetDebugMode enables or disables debug mode. When enabled, gesture changes
// and once-per-second frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that code
// without a Scene pointer (shape generation) can check it cheaply.
var globalDebug bool

// SetDetector sets the hand detector. Any running detector is stopped first.
func (s *Scene) SetDetector(d Detector) {
	wasOn := s.detecting
	s.SetDetection(false)
	s.detector = d
	if wasOn {
		s.SetDetection(true)
	}
}

// DetectionEnabled reports whether detection is switched on.
func (s *Scene) DetectionEnabled() bool {
	return s.detecting
}

// DetectionActive reports whether the detector actually started. Detection
// can be enabled but inactive when the camera is unavailable.
func (s *Scene) DetectionActive() bool {
	return s.detecting && s.detectStarted
}

// SetDetection switches hand detection on or off. A detector that fails to
// start is logged and the scene keeps rendering the last gesture. Switching
// off stops the detector before returning; the gesture stays where it was.
func (s *Scene) SetDetection(on bool) {
	if on == s.detecting {
		return
	}
	s.detecting = on
	if !on {
		if s.cancelDetect != nil {
			s.cancelDetect()
			s.cancelDetect = nil
		}
		if s.detector != nil && s.detectStarted {
			if err := s.detector.Stop(); err != nil {
				logf("stop detector: %v", err)
			}
		}
		s.detectStarted = false
		s.stabilizer.Reset()
		return
	}

	if s.detector == nil {
		logf("detection: %v", ErrDetectorUnavailable)
		return
	}
	// Keyboard overrides while detection was off only touched the cell.
	s.stabilizer.Seed(s.cell.Load())
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.detector.Start(ctx, s.handleHand); err != nil {
		cancel()
		logf("start detector: %v", err)
		return
	}
	s.cancelDetect = cancel
	s.detectStarted = true
}

// handleHand is the detector callback. It runs on the detector's goroutine
// and touches only the stabilizer and the gesture cell.
func (s *Scene) handleHand(h *Hand) {
	if g, changed := s.stabilizer.Observe(ClassifyHand(h)); changed {
		s.cell.Store(g)
	}
}

// Close stops detection and music.
func (s *Scene) Close() {
	s.SetDetection(false)
	if s.jingle != nil {
		s.jingle.Close()
	}
}

// Update processes input and advances the animation by one tick.
func (s *Scene) Update() error {
	s.processInput()
	s.update(1.0 / float64(ebiten.TPS()))
	return nil
}

// update applies the latest gesture and advances the engine and camera by dt.
func (s *Scene) update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if g := s.cell.Load(); g != s.engine.Gesture() {
		prev := s.engine.Gesture()
		s.engine.SetGesture(g)
		s.camera.FrameGesture(g)
		if s.sink != nil {
			s.sink.EmitGesture(GestureEvent{Previous: prev, Current: g, Time: s.engine.Time()})
		}
		debugf("gesture: %s -> %s", prev, g)
	}
	s.engine.Tick(dt)
	s.camera.update(float32(dt))

	if s.debug {
		s.stats.tickTime += time.Since(t0)
		s.stats.ticks++
		s.stats.elapsed += dt
		if s.stats.elapsed >= debugInterval {
			s.debugLog()
		}
	}
}

// Draw renders the cloud, decorations and HUD to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())
	view := s.camera.View(s.width, s.height)
	s.glow.draw(screen, func(target *ebiten.Image) {
		s.drawScene(target, view)
	})

	if s.hud == nil && !s.hudFailed {
		h, err := newHUD()
		if err != nil {
			logf("hud: %v", err)
			s.hudFailed = true
		}
		s.hud = h
	}
	if s.hud != nil {
		s.hud.draw(screen, s.hudState())
	}

	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime += time.Since(t0)
	}
}

// Layout tracks the window size so the projection keeps the viewport's
// aspect ratio.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width = max(outsideWidth, 1)
	s.height = max(outsideHeight, 1)
	return s.width, s.height
}

func (s *Scene) hudState() hudState {
	st := hudState{
		gesture:   s.engine.Gesture(),
		detecting: s.detecting,
		active:    s.DetectionActive(),
		showFPS:   s.showFPS,
	}
	if s.jingle != nil {
		st.hasMusic = true
		st.muted = s.jingle.Muted()
	}
	return st
}
