package festive

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	DefaultFOV         = 75.0 // vertical field of view in degrees
	DefaultNear        = 0.1
	DefaultDamping     = 0.05
	DefaultMinDistance = 10.0
	DefaultMaxDistance = 60.0

	// framingDuration is how long the camera takes to reframe after a
	// gesture change, in seconds.
	framingDuration = 1.2
	// resetDuration is how long ResetView takes to return home, in seconds.
	resetDuration = 0.8
	maxPitch      = 1.5 // just short of straight up or down
)

// homeEye is where a new camera sits relative to its target.
var homeEye = Vec3{0, 2, 25}

// Camera framings per gesture. The greeting is framed slightly higher than the tree.
var (
	FramingTree = Vec3{0, 0, 0}
	FramingText = Vec3{0, 0.5, 0}
)

// Camera is an orbiting perspective camera looking at Target from Distance
// away. Orbit and zoom input is damped over several frames.
type Camera struct {
	// Target is the point the camera looks at.
	Target Vec3
	// Distance is the distance from Target to the eye.
	Distance float32
	// Yaw is the rotation around the vertical axis in radians; zero looks
	// down -Z from the +Z side.
	Yaw float32
	// Pitch is the elevation in radians.
	Pitch float32
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near is the near clip distance.
	Near float32
	// Damping is the fraction of pending orbit/zoom input applied per frame.
	Damping float32
	// MinDistance and MaxDistance clamp zoom.
	MinDistance, MaxDistance float32

	yawDelta, pitchDelta float32
	zoomScale            float32

	framing   *TweenGroup
	resetting []*TweenGroup
}

// NewCamera creates a camera at (0, 2, 25) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Distance:    homeEye.Length(),
		Pitch:       math32.Asin(homeEye.Y / homeEye.Length()),
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		Damping:     DefaultDamping,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		zoomScale:   1,
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() Vec3 {
	cp := math32.Cos(c.Pitch)
	return Vec3{
		X: c.Target.X + c.Distance*cp*math32.Sin(c.Yaw),
		Y: c.Target.Y + c.Distance*math32.Sin(c.Pitch),
		Z: c.Target.Z + c.Distance*cp*math32.Cos(c.Yaw),
	}
}

// Orbit queues a rotation by the given yaw and pitch deltas in radians.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.yawDelta += dYaw
	c.pitchDelta += dPitch
}

// Zoom queues a distance change. Factors above 1 move away from the target.
func (c *Camera) Zoom(factor float32) {
	if factor > 0 {
		c.zoomScale *= factor
	}
}

// FrameGesture starts easing the target toward the framing for g.
func (c *Camera) FrameGesture(g Gesture) {
	to := FramingTree
	if !g.ShowsTree() {
		to = FramingText
	}
	c.framing = TweenVec3(&c.Target, to, framingDuration, ease.OutCubic)
}

// ResetView drops pending orbit and zoom input and eases yaw, pitch and
// distance back to where NewCamera starts. Yaw takes the short way round.
func (c *Camera) ResetView() {
	c.yawDelta, c.pitchDelta, c.zoomScale = 0, 0, 1
	turns := math32.Round(c.Yaw / (2 * math32.Pi))
	c.Yaw -= turns * 2 * math32.Pi
	c.resetting = []*TweenGroup{
		TweenFloat(&c.Yaw, 0, resetDuration, ease.InOutQuad),
		TweenFloat(&c.Pitch, math32.Asin(homeEye.Y/homeEye.Length()), resetDuration, ease.InOutQuad),
		TweenFloat(&c.Distance, homeEye.Length(), resetDuration, ease.InOutQuad),
	}
}

// Resetting reports whether a ResetView is in progress.
func (c *Camera) Resetting() bool {
	return len(c.resetting) > 0
}

// Framing reports whether a reframe is in progress.
func (c *Camera) Framing() bool {
	return c.framing != nil
}

// update applies damped input and advances any reframe. Called once per frame.
func (c *Camera) update(dt float32) {
	c.Yaw += c.yawDelta * c.Damping
	c.Pitch += c.pitchDelta * c.Damping
	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch))
	c.yawDelta *= 1 - c.Damping
	c.pitchDelta *= 1 - c.Damping

	if c.zoomScale != 1 {
		step := math32.Pow(c.zoomScale, c.Damping)
		c.Distance *= step
		c.zoomScale /= step
		if math32.Abs(c.zoomScale-1) < 1e-4 {
			c.zoomScale = 1
		}
	}
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))

	if len(c.resetting) > 0 {
		done := true
		for _, g := range c.resetting {
			g.Update(dt)
			done = done && g.Done
		}
		if done {
			c.resetting = nil
		}
	}

	if c.framing != nil {
		c.framing.Update(dt)
		if c.framing.Done {
			c.framing = nil
		}
	}
}

// View returns a projection for a viewport of the given pixel size. It is a
// snapshot: later camera changes need a new View.
func (c *Camera) View(width, height int) View {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normal()
	right := forward.Cross(Vec3{0, 1, 0}).Normal()
	up := right.Cross(forward)

	h := float32(max(height, 1))
	w := float32(max(width, 1))
	focal := (h / 2) / math32.Tan(c.FOV*math32.Pi/360)
	return View{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   focal,
		near:    c.Near,
		cx:      w / 2,
		cy:      h / 2,
		aspect:  w / h,
	}
}

// View projects scene-space points onto a viewport.
type View struct {
	eye, right, up, forward Vec3
	focal, near             float32
	cx, cy                  float32
	aspect                  float32
}

// Aspect returns the viewport's width over height.
func (v View) Aspect() float32 {
	return v.aspect
}

// Project maps p to screen pixels. scale is the size in pixels of one scene
// unit at p's depth. ok is false for points behind the near plane.
func (v View) Project(p Vec3) (sx, sy, scale float32, ok bool) {
	rel := p.Sub(v.eye)
	depth := rel.Dot(v.forward)
	if depth < v.near {
		return 0, 0, 0, false
	}
	scale = v.focal / depth
	sx = v.cx + rel.Dot(v.right)*scale
	sy = v.cy - rel.Dot(v.up)*scale
	return sx, sy, scale, true
}
