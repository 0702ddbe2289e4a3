package festive

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input tuning.
const (
	// DefaultDragDeadZone is the distance in pixels a pointer must travel
	// before a press becomes an orbit drag.
	DefaultDragDeadZone = 4.0
	// orbitSpeed is the queued rotation in radians per dragged pixel.
	orbitSpeed = 0.01
	// wheelZoomStep is the distance factor per wheel notch toward the target.
	wheelZoomStep = 0.9
	// scatterExtent is the half-size of the cube R throws the cloud into.
	scatterExtent = 30.0
)

// pointerState tracks a single pointer between frames.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// move feeds one pointer sample. It returns the movement since the last
// sample once the pointer has left the dead zone while held.
func (p *pointerState) move(x, y float64, pressed bool, deadZone float64) (dx, dy float64, dragging bool) {
	switch {
	case pressed && !p.down:
		*p = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
		return 0, 0, false
	case !pressed:
		p.down = false
		p.dragging = false
		p.lastX, p.lastY = x, y
		return 0, 0, false
	}

	if !p.dragging {
		ddx := x - p.startX
		ddy := y - p.startY
		if math.Sqrt(ddx*ddx+ddy*ddy) > deadZone {
			p.dragging = true
		}
	}
	dx, dy = x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	if !p.dragging {
		return 0, 0, false
	}
	return dx, dy, true
}

// pinchState tracks the distance between two touches.
type pinchState struct {
	active bool
	dist   float64
}

// update feeds the current touch distance and returns the zoom factor to
// apply. Spreading the fingers moves the camera closer.
func (p *pinchState) update(dist float64, ok bool) float32 {
	if !ok || dist <= 0 {
		p.active = false
		return 1
	}
	if !p.active {
		p.active = true
		p.dist = dist
		return 1
	}
	factor := float32(p.dist / dist)
	p.dist = dist
	return factor
}

// inputState is the scene's pointer bookkeeping.
type inputState struct {
	mouse    pointerState
	touch    pointerState
	pinch    pinchState
	touchIDs []ebiten.TouchID
	deadZone float64
}

// wheelZoom converts a vertical wheel offset to a zoom factor.
func wheelZoom(wheelY float64) float32 {
	return float32(math.Pow(wheelZoomStep, wheelY))
}

// orbitFromDrag queues a camera orbit for a drag of (dx, dy) pixels.
func (s *Scene) orbitFromDrag(dx, dy float64) {
	s.camera.Orbit(float32(-dx*orbitSpeed), float32(dy*orbitSpeed))
}

// processInput is called from Scene.Update() to handle keys, mouse and touch.
func (s *Scene) processInput() {
	s.processKeys()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if evt, ok := s.popInjected(); ok {
		x, y, pressed = evt.x, evt.y, evt.pressed
	}
	s.processPointer(x, y, pressed)
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.Zoom(wheelZoom(wy))
	}

	s.processTouches()
}

// processPointer feeds one mouse sample, orbiting once it becomes a drag.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	if dx, dy, ok := s.input.mouse.move(x, y, pressed, s.input.deadZone); ok {
		s.orbitFromDrag(dx, dy)
	}
}

// processTouches orbits with one finger and zooms with two.
func (s *Scene) processTouches() {
	in := &s.input
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	switch len(in.touchIDs) {
	case 1:
		in.pinch.update(0, false)
		tx, ty := ebiten.TouchPosition(in.touchIDs[0])
		if dx, dy, ok := in.touch.move(float64(tx), float64(ty), true, in.deadZone); ok {
			s.orbitFromDrag(dx, dy)
		}
	case 2:
		in.touch.move(in.touch.lastX, in.touch.lastY, false, in.deadZone)
		ax, ay := ebiten.TouchPosition(in.touchIDs[0])
		bx, by := ebiten.TouchPosition(in.touchIDs[1])
		dist := math.Hypot(float64(bx-ax), float64(by-ay))
		if f := in.pinch.update(dist, true); f != 1 {
			s.camera.Zoom(f)
		}
	default:
		in.touch.move(in.touch.lastX, in.touch.lastY, false, in.deadZone)
		in.pinch.update(0, false)
	}
}

// processKeys handles the keyboard shortcuts.
func (s *Scene) processKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.SetDetection(!s.detecting)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.overrideGesture(GestureTree)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.overrideGesture(GestureText)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		s.camera.ResetView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.engine.Scatter(scatterExtent)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.Screenshot("capture")
	}
}

// overrideGesture sets g from the keyboard unless a running detector owns
// the gesture. Detection that is switched on but failed to start does not
// count, so a denied camera leaves keyboard control working.
func (s *Scene) overrideGesture(g Gesture) bool {
	if s.DetectionActive() {
		return false
	}
	s.SetGesture(g)
	return true
}

// ToggleMute mutes or unmutes the jingle, if any.
func (s *Scene) ToggleMute() {
	if s.jingle != nil {
		s.jingle.SetMuted(!s.jingle.Muted())
	}
}
