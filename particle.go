package festive

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// ColorRibbon is the garland color.
var ColorRibbon = Color{1.0, 0.9, 0.3}

const (
	ribbonOpacity     = 0.8
	ribbonFadeIn      = 0.04
	ribbonFadeOut     = 0.92 // opacity multiplier per frame while hidden
	ribbonSpread      = 1.05 // horizontal growth per frame while hidden
	ribbonRise        = 0.12 // upward drift per frame while hidden
	ribbonHeight      = 16.0
	ribbonBaseRadius  = 7.5
	ribbonWobble      = 0.4
	ribbonWobblePhase = 0.05
	ribbonSpin        = 2.5
	ribbonTurns       = 5.0
	ribbonMinOpacity  = 0.005
)

// Ribbon is a garland that spirals around the tree. When the tree goes away
// it fades out while flying outward and upward.
type Ribbon struct {
	// Positions holds interleaved xyz per point.
	Positions []float32
	Color     Color
	Opacity   float32
}

func newRibbon(n int) *Ribbon {
	return &Ribbon{
		Positions: make([]float32, max(n, 0)*3),
		Color:     ColorRibbon,
	}
}

// Len returns the number of ribbon points.
func (r *Ribbon) Len() int {
	return len(r.Positions) / 3
}

// Visible reports whether the ribbon is opaque enough to draw.
func (r *Ribbon) Visible() bool {
	return r.Opacity > ribbonMinOpacity
}

func (r *Ribbon) update(t, frames float32, tree bool) {
	n := r.Len()
	if n == 0 {
		return
	}
	if tree {
		r.Opacity += (ribbonOpacity - r.Opacity) * easeFactor(ribbonFadeIn, frames)
		for i := 0; i < n; i++ {
			ratio := float32(i) / float32(n)
			h := ratio*ribbonHeight - ribbonHeight/2
			radius := (1-ratio)*ribbonBaseRadius + math32.Sin(t+float32(i)*ribbonWobblePhase)*ribbonWobble
			angle := t*ribbonSpin + ratio*math32.Pi*2*ribbonTurns
			j := i * 3
			r.Positions[j] = math32.Cos(angle) * radius
			r.Positions[j+1] = h
			r.Positions[j+2] = math32.Sin(angle) * radius
		}
		return
	}

	// Once faded there is nothing left to animate, and stopping keeps the
	// outward growth from overflowing.
	if !r.Visible() {
		r.Opacity = 0
		return
	}
	r.Opacity *= math32.Pow(ribbonFadeOut, frames)
	spread := math32.Pow(ribbonSpread, frames)
	rise := ribbonRise * frames
	for j := 0; j < len(r.Positions); j += 3 {
		r.Positions[j] *= spread
		r.Positions[j+1] += rise
		r.Positions[j+2] *= spread
	}
}

// LightPalette is the set of bulb colors lights are drawn from.
var LightPalette = []Color{
	{1.0, 0.067, 0.067},
	{1.0, 1.0, 0.267},
	{0.067, 1.0, 1.0},
	{1.0, 0.267, 1.0},
	{1.0, 1.0, 1.0},
}

const (
	lightBaseOpacity  = 0.4
	lightPulseOpacity = 0.6
	lightPulseSpeed   = 1.5
)

// Lights are bulbs pinned to evenly spaced tree body particles, pulsing
// together. They are hidden unless the tree is shown.
type Lights struct {
	// Positions and Colors hold interleaved xyz and rgb per bulb.
	Positions []float32
	Colors    []float32
	Opacity   float32
	Visible   bool
}

func newLights(n int, rng *rand.Rand) *Lights {
	n = max(n, 0)
	l := &Lights{
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
	}
	for i := 0; i < n; i++ {
		c := LightPalette[rng.IntN(len(LightPalette))]
		l.Colors[i*3] = c.R
		l.Colors[i*3+1] = c.G
		l.Colors[i*3+2] = c.B
	}
	return l
}

// Len returns the number of bulbs.
func (l *Lights) Len() int {
	return len(l.Positions) / 3
}

// update pins bulb i to body particle i*bodyCount/n of the live cloud.
func (l *Lights) update(t float32, tree bool, cloud []float32, bodyCount int) {
	l.Visible = tree
	if !tree {
		return
	}
	l.Opacity = lightBaseOpacity + math32.Abs(math32.Sin(t*lightPulseSpeed))*lightPulseOpacity
	n := l.Len()
	for i := 0; i < n; i++ {
		src := (i * bodyCount / n) * 3
		if src+2 >= len(cloud) {
			continue
		}
		copy(l.Positions[i*3:i*3+3], cloud[src:src+3])
	}
}

// Snow parameters. The snow box is a cube centered on the origin.
const (
	snowExtent  = 60.0
	snowOpacity = 0.25
	snowSway    = 0.3
)

// SnowFallSpeed is the range of per-flake fall speeds in units per second.
var SnowFallSpeed = Range{Min: 0.6, Max: 2.0}

// Snow is an ambient field of falling flakes that wrap back to the top. It
// ignores the gesture.
type Snow struct {
	// Positions holds interleaved xyz per flake.
	Positions []float32
	Opacity   float32

	speeds []float32
	phases []float32
	rng    *rand.Rand
}

func newSnow(n int, rng *rand.Rand) *Snow {
	n = max(n, 0)
	s := &Snow{
		Positions: make([]float32, n*3),
		Opacity:   snowOpacity,
		speeds:    make([]float32, n),
		phases:    make([]float32, n),
		rng:       rng,
	}
	for i := 0; i < n; i++ {
		j := i * 3
		s.Positions[j] = jitter(rng, 2*snowExtent)
		s.Positions[j+1] = jitter(rng, 2*snowExtent)
		s.Positions[j+2] = jitter(rng, 2*snowExtent)
		s.speeds[i] = SnowFallSpeed.Random(rng)
		s.phases[i] = rng.Float32() * 2 * math32.Pi
	}
	return s
}

// Len returns the number of flakes.
func (s *Snow) Len() int {
	return len(s.Positions) / 3
}

func (s *Snow) update(t, dt float32) {
	for i := 0; i < s.Len(); i++ {
		j := i * 3
		s.Positions[j] += math32.Sin(t+s.phases[i]) * snowSway * dt
		s.Positions[j+1] -= s.speeds[i] * dt
		if s.Positions[j+1] < -snowExtent {
			s.Positions[j] = jitter(s.rng, 2*snowExtent)
			s.Positions[j+1] += 2 * snowExtent
			s.Positions[j+2] = jitter(s.rng, 2*snowExtent)
		}
	}
}
