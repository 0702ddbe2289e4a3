package festive

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a rendered layer.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed: bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// blurPasses returns the number of halvings for a radius: log2(radius),
// minimum 1.
func blurPasses(radius int) int {
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply renders a Kawase blur from src into dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := blurPasses(f.Radius)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	// The downscale chain is reused for the way back up.
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	f.scaleInto(dst, current)
}

// scaleInto draws src stretched over all of dst with linear filtering.
func (f *BlurFilter) scaleInto(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw, sh := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	tw, th := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// glowPass renders the particles into an offscreen layer, composites it,
// and adds a blurred copy on top so bright clusters bleed light.
type glowPass struct {
	strength float32
	filter   Filter
	layer    *ebiten.Image
	blurred  *ebiten.Image
	op       ebiten.DrawImageOptions
}

func newGlowPass(strength float32, radius int) *glowPass {
	return &glowPass{strength: strength, filter: NewBlurFilter(radius)}
}

// enabled reports whether the pass does anything beyond a plain draw.
func (g *glowPass) enabled() bool {
	return g != nil && g.strength > 0
}

// ensure (re)allocates the offscreen images to match the screen.
func (g *glowPass) ensure(w, h int) {
	if g.layer != nil && g.layer.Bounds().Dx() == w && g.layer.Bounds().Dy() == h {
		g.layer.Clear()
		g.blurred.Clear()
		return
	}
	if g.layer != nil {
		g.layer.Deallocate()
		g.blurred.Deallocate()
	}
	g.layer = ebiten.NewImage(w, h)
	g.blurred = ebiten.NewImage(w, h)
}

// draw calls render with the layer to fill, then composites onto screen.
func (g *glowPass) draw(screen *ebiten.Image, render func(target *ebiten.Image)) {
	if !g.enabled() {
		render(screen)
		return
	}
	b := screen.Bounds()
	g.ensure(b.Dx(), b.Dy())
	render(g.layer)
	g.filter.Apply(g.layer, g.blurred)

	op := &g.op
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = BlendAdd.EbitenBlend()
	screen.DrawImage(g.layer, op)
	op.ColorScale.ScaleAlpha(g.strength)
	screen.DrawImage(g.blurred, op)
}
