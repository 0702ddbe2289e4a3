package festive

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat"
)

// Target colors of the point cloud.
var (
	ColorText  = Color{1.0, 0.85, 0.4}
	ColorStar  = Color{1.0, 0.9, 0.2}
	ColorTrunk = Color{0.35, 0.15, 0.05}
	ColorBody  = Color{0.0, 0.75, 0.65}
)

// Branch sway parameters.
const (
	swayAmplitudeX = 0.2
	swayAmplitudeZ = 0.15
	swayPhase      = 0.5 // radians of phase per unit of target height
	swaySpeedZ     = 0.7
)

// ParticleBuffer holds the live state of the point cloud as interleaved xyz
// positions and rgb colors, ready for upload.
type ParticleBuffer struct {
	Positions []float32
	Colors    []float32
}

func newParticleBuffer(n int) ParticleBuffer {
	return ParticleBuffer{
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
	}
}

// Len returns the number of particles.
func (b *ParticleBuffer) Len() int {
	return len(b.Positions) / 3
}

// Position returns particle i's position.
func (b *ParticleBuffer) Position(i int) Vec3 {
	j := i * 3
	return Vec3{b.Positions[j], b.Positions[j+1], b.Positions[j+2]}
}

// Color returns particle i's color.
func (b *ParticleBuffer) Color(i int) Color {
	j := i * 3
	return Color{b.Colors[j], b.Colors[j+1], b.Colors[j+2]}
}

func (b *ParticleBuffer) setPosition(i int, p Vec3) {
	j := i * 3
	b.Positions[j] = p.X
	b.Positions[j+1] = p.Y
	b.Positions[j+2] = p.Z
}

// Engine morphs the point cloud toward the shape of the current gesture and
// animates the decorative ribbon, lights and snow. Target shapes are
// generated once in NewEngine. Tick and SetGesture belong to the render loop.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	buf    ParticleBuffer
	shapes [3]Shape

	bodyEnd  int // first trunk index
	trunkEnd int // first star index

	gesture Gesture
	time    float32

	ribbon *Ribbon
	lights *Lights
	snow   *Snow

	distBuf []float64
}

// NewEngine creates an engine, generating the tree and greeting shapes. The
// cloud starts on the tree. A nil rng uses an unseeded source.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if cfg.ParticleCount <= 0 {
		cfg.ParticleCount = DefaultParticleCount
	}
	if cfg.Text.CanvasSize == 0 {
		cfg.Text = DefaultTextShapeConfig()
	}
	rng = newRand(rng)
	n := cfg.ParticleCount

	e := &Engine{
		cfg:    cfg,
		rng:    rng,
		buf:    newParticleBuffer(n),
		ribbon: newRibbon(cfg.RibbonCount),
		lights: newLights(cfg.LightCount, rng),
		snow:   newSnow(cfg.SnowCount, rng),
	}
	body, trunk, _ := TreeSegments(n)
	e.bodyEnd = body
	e.trunkEnd = body + trunk

	e.shapes[GestureNone] = GenerateTreeShape(n, rng)
	e.shapes[GestureTree] = GenerateTreeShape(n, rng)
	e.shapes[GestureText] = cfg.Text.Generate(cfg.Greeting, n, rng)

	for i, p := range e.shapes[GestureTree] {
		e.buf.setPosition(i, p)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Buffer returns the live point cloud. Callers must treat it as read-only.
func (e *Engine) Buffer() *ParticleBuffer {
	return &e.buf
}

// Ribbon returns the garland set.
func (e *Engine) Ribbon() *Ribbon {
	return e.ribbon
}

// Lights returns the twinkling lights set.
func (e *Engine) Lights() *Lights {
	return e.lights
}

// Snow returns the ambient snow set.
func (e *Engine) Snow() *Snow {
	return e.snow
}

// Time returns the animation clock.
func (e *Engine) Time() float32 {
	return e.time
}

// Gesture returns the gesture the cloud is morphing toward.
func (e *Engine) Gesture() Gesture {
	return e.gesture
}

// SetGesture selects the target shape used from the next Tick on.
func (e *Engine) SetGesture(g Gesture) {
	e.gesture = g
}

// Target returns the shape for the current gesture.
func (e *Engine) Target() Shape {
	return e.shapeFor(e.gesture)
}

// shapeFor maps a gesture to its shape. Anything unrecognized gets the tree.
func (e *Engine) shapeFor(g Gesture) Shape {
	switch g {
	case GestureNone:
		return e.shapes[GestureNone]
	case GestureText:
		return e.shapes[GestureText]
	default:
		return e.shapes[GestureTree]
	}
}

// Scatter throws every particle to a random point inside a cube of the given
// half-extent around the origin. The next ticks pull them back into shape.
func (e *Engine) Scatter(extent float32) {
	for i := 0; i < e.buf.Len(); i++ {
		e.buf.setPosition(i, Vec3{
			X: jitter(e.rng, 2*extent),
			Y: jitter(e.rng, 2*extent),
			Z: jitter(e.rng, 2*extent),
		})
	}
}

// Tick advances the animation by dt seconds.
func (e *Engine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	frames := float32(dt * ReferenceFPS)
	e.time += e.cfg.TimeStep * frames

	tree := e.gesture.ShowsTree()
	e.morph(frames, tree)
	e.ribbon.update(e.time, frames, tree)
	e.lights.update(e.time, tree, e.buf.Positions, e.bodyEnd)
	e.snow.update(e.time, float32(dt))
}

// morph moves every particle toward its target point and color.
func (e *Engine) morph(frames float32, tree bool) {
	target := e.shapeFor(e.gesture)
	far := easeFactor(e.cfg.FarRate, frames)
	near := easeFactor(e.cfg.NearRate, frames)
	colorRate := easeFactor(e.cfg.ColorRate, frames)
	drift := e.cfg.Drift
	sway := e.cfg.Sway
	t := e.time

	pos := e.buf.Positions
	col := e.buf.Colors
	n := min(len(target), e.buf.Len())
	for i := 0; i < n; i++ {
		j := i * 3
		tp := target[i]
		dx := tp.X - pos[j]
		dy := tp.Y - pos[j+1]
		dz := tp.Z - pos[j+2]
		distSq := dx*dx + dy*dy + dz*dz

		rate := near
		if distSq > e.cfg.FarDistanceSq {
			rate = far
		}

		var driftX, driftY, driftZ float32
		if drift > 0 && distSq > e.cfg.DriftDistanceSq {
			driftX = jitter(e.rng, drift)
			driftY = jitter(e.rng, drift)
			driftZ = jitter(e.rng, drift)
		}

		var swayX, swayZ float32
		if tree && sway != 0 && i < e.bodyEnd {
			h := (tp.Y - treeBaseY) / treeHeight
			phase := tp.Y * swayPhase
			swayX = math32.Sin(t+phase) * swayAmplitudeX * h * sway
			swayZ = math32.Cos(t*swaySpeedZ+phase) * swayAmplitudeZ * h * sway
		}

		pos[j] += (tp.X + swayX + driftX - pos[j]) * rate
		pos[j+1] += (tp.Y + driftY - pos[j+1]) * rate
		pos[j+2] += (tp.Z + swayZ + driftZ - pos[j+2]) * rate

		c := e.targetColor(i, tree)
		col[j] += (c.R - col[j]) * colorRate
		col[j+1] += (c.G - col[j+1]) * colorRate
		col[j+2] += (c.B - col[j+2]) * colorRate
	}
}

// targetColor is the color particle i eases toward. On the tree it depends on
// the particle's segment in generation order.
func (e *Engine) targetColor(i int, tree bool) Color {
	switch {
	case !tree:
		return ColorText
	case i >= e.trunkEnd:
		return ColorStar
	case i >= e.bodyEnd:
		return ColorTrunk
	default:
		return ColorBody
	}
}

// Convergence returns the mean and standard deviation of the particles'
// distances to their current target points, ignoring sway.
func (e *Engine) Convergence() (mean, stddev float64) {
	target := e.shapeFor(e.gesture)
	n := min(len(target), e.buf.Len())
	if n == 0 {
		return 0, 0
	}
	if cap(e.distBuf) < n {
		e.distBuf = make([]float64, n)
	}
	d := e.distBuf[:n]
	for i := range d {
		d[i] = float64(e.buf.Position(i).Sub(target[i]).Length())
	}
	return stat.MeanStdDev(d, nil)
}

// easeFactor converts a per-reference-frame approach rate into the fraction
// covered over the given number of reference frames.
func easeFactor(rate, frames float32) float32 {
	if frames == 1 {
		return rate
	}
	return 1 - math32.Pow(1-rate, frames)
}
