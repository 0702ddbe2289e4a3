package festive

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Point sizes in scene units and opacities of each point set.
const (
	CloudPointSize  = 0.11
	CloudOpacity    = 0.85
	LightPointSize  = 0.3
	RibbonPointSize = 0.12
	SnowPointSize   = 0.04
)

const (
	// dotImageSize is the side of the generated soft-dot sprite in pixels.
	dotImageSize = 32
	// maxPointsPerCall splits very large point sets across DrawTriangles32
	// calls.
	maxPointsPerCall = 16384
	// minPointPixels keeps far points from vanishing entirely.
	minPointPixels = 1.0
)

// pointSet is one group of points drawn with a single size, opacity and
// blend mode. colors may be nil, in which case every point uses tint.
type pointSet struct {
	positions []float32
	colors    []float32
	tint      Color
	opacity   float32
	size      float32
	blend     BlendMode
}

// pointRenderer draws point sets as additive camera-facing quads textured
// with a soft dot.
type pointRenderer struct {
	dot   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint32
}

// dotImage lazily creates the soft-dot sprite.
func (r *pointRenderer) dotImage() *ebiten.Image {
	if r.dot == nil {
		r.dot = ebiten.NewImage(dotImageSize, dotImageSize)
		r.dot.WritePixels(dotPixels(dotImageSize))
	}
	return r.dot
}

// dotPixels returns premultiplied RGBA pixels of a white dot whose alpha
// falls off quadratically from the center to the edge.
func dotPixels(size int) []byte {
	pix := make([]byte, size*size*4)
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - half) / half
			dy := (float32(y) + 0.5 - half) / half
			d := math32.Sqrt(dx*dx + dy*dy)
			a := clamp01(1 - d)
			a *= a
			v := byte(a * 255)
			i := (y*size + x) * 4
			pix[i] = v
			pix[i+1] = v
			pix[i+2] = v
			pix[i+3] = v
		}
	}
	return pix
}

// draw submits one point set to target.
func (r *pointRenderer) draw(target *ebiten.Image, view View, set pointSet) {
	if set.opacity <= 0 || len(set.positions) == 0 {
		return
	}
	img := r.dotImage()
	n := len(set.positions) / 3
	for start := 0; start < n; start += maxPointsPerCall {
		end := min(start+maxPointsPerCall, n)
		chunk := set
		chunk.positions = set.positions[start*3 : end*3]
		if set.colors != nil {
			chunk.colors = set.colors[start*3 : end*3]
		}
		r.verts, r.inds = appendPoints(r.verts[:0], r.inds[:0], view, chunk, dotImageSize)
		if len(r.verts) == 0 {
			continue
		}
		var triOp ebiten.DrawTrianglesOptions
		triOp.Blend = set.blend.EbitenBlend()
		triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		target.DrawTriangles32(r.verts, r.inds, img, &triOp)
	}
}

// appendPoints appends one projected quad per visible point. Points behind
// the near plane are skipped. srcSize is the side of the source sprite.
func appendPoints(verts []ebiten.Vertex, inds []uint32, view View, set pointSet, srcSize int) ([]ebiten.Vertex, []uint32) {
	src := float32(srcSize)
	n := len(set.positions) / 3
	for i := 0; i < n; i++ {
		j := i * 3
		p := Vec3{set.positions[j], set.positions[j+1], set.positions[j+2]}
		sx, sy, scale, ok := view.Project(p)
		if !ok {
			continue
		}
		half := math32.Max(set.size*scale, minPointPixels) / 2

		c := set.tint
		if set.colors != nil {
			c = Color{set.colors[j], set.colors[j+1], set.colors[j+2]}
		}
		a := set.opacity
		cr, cg, cb := c.R*a, c.G*a, c.B*a

		base := uint32(len(verts))
		lx := [4]float32{-half, half, -half, half}
		ly := [4]float32{-half, -half, half, half}
		u := [4]float32{0, src, 0, src}
		v := [4]float32{0, 0, src, src}
		for k := 0; k < 4; k++ {
			verts = append(verts, ebiten.Vertex{
				DstX:   sx + lx[k],
				DstY:   sy + ly[k],
				SrcX:   u[k],
				SrcY:   v[k],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: a,
			})
		}
		// Two triangles: TL-TR-BL, TR-BR-BL
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds
}

// pointSets returns the sets to draw this frame, back to front: snow, the
// cloud, then the ribbon and lights when shown. Snow is blended normally so
// it stays a faint veil; everything else adds light.
func (s *Scene) pointSets() []pointSet {
	e := s.engine
	snow := e.Snow()
	buf := e.Buffer()
	sets := append(s.sets[:0],
		pointSet{
			positions: snow.Positions,
			tint:      ColorWhite,
			opacity:   snow.Opacity,
			size:      SnowPointSize,
			blend:     BlendNormal,
		},
		pointSet{
			positions: buf.Positions,
			colors:    buf.Colors,
			opacity:   CloudOpacity,
			size:      CloudPointSize,
			blend:     BlendAdd,
		},
	)
	if r := e.Ribbon(); r.Visible() {
		sets = append(sets, pointSet{
			positions: r.Positions,
			tint:      r.Color,
			opacity:   r.Opacity,
			size:      RibbonPointSize,
			blend:     BlendAdd,
		})
	}
	if l := e.Lights(); l.Visible {
		sets = append(sets, pointSet{
			positions: l.Positions,
			colors:    l.Colors,
			opacity:   l.Opacity,
			size:      LightPointSize,
			blend:     BlendAdd,
		})
	}
	s.sets = sets
	return sets
}

// drawScene submits every point set to target.
func (s *Scene) drawScene(target *ebiten.Image, view View) {
	for _, set := range s.pointSets() {
		s.points.draw(target, view, set)
	}
}
