package festive

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's processInput call. Safe to call from
// any goroutine.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.injectMu.Lock()
	defer s.injectMu.Unlock()
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: fromX, y: fromY, pressed: true})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
			x:       fromX + (toX-fromX)*t,
			y:       fromY + (toY-fromY)*t,
			pressed: true,
		})
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: toX, y: toY, pressed: false})
}

func (s *Scene) inject(evt syntheticPointerEvent) {
	s.injectMu.Lock()
	s.injectQueue = append(s.injectQueue, evt)
	s.injectMu.Unlock()
}

// popInjected removes and returns the oldest queued event. While events are
// queued, real mouse input is ignored.
func (s *Scene) popInjected() (syntheticPointerEvent, bool) {
	s.injectMu.Lock()
	defer s.injectMu.Unlock()
	if len(s.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return evt, true
}
