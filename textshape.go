package festive

import (
	"fmt"
	"image"
	"math/rand/v2"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultGreeting is the caption rendered by the text shape, one phrase per line.
const DefaultGreeting = "Merry\nChristmas\nMr. Wei"

// TextShapeConfig controls how a caption is rasterized and sampled into a
// point cloud.
type TextShapeConfig struct {
	// Font is the face used for rasterizing. nil uses Go Bold.
	Font *opentype.Font
	// FontSize is the glyph size in raster pixels. Zero or negative
	// produces no lit pixels.
	FontSize float64
	// CanvasSize is the width and height of the square off-screen raster.
	CanvasSize int
	// FirstLineY is the raster y of the first line's vertical center.
	FirstLineY int
	// LineSpacing is the distance between consecutive line centers.
	LineSpacing int
	// Stride is the scan step in both raster axes.
	Stride int
	// Threshold is the luminance a pixel must exceed to count as lit.
	Threshold uint8
	// Scale converts raster pixels to scene units.
	Scale float32
	// Depth is the width of the random z offset given to each lit pixel.
	Depth float32
	// Jitter is the per-axis width of the perturbation applied to every sample.
	Jitter Vec3
}

// DefaultTextShapeConfig returns the raster settings used for the greeting.
func DefaultTextShapeConfig() TextShapeConfig {
	return TextShapeConfig{
		FontSize:    140,
		CanvasSize:  1000,
		FirstLineY:  350,
		LineSpacing: 160,
		Stride:      4,
		Threshold:   128,
		Scale:       0.025,
		Depth:       0.4,
		Jitter:      Vec3{0.15, 0.15, 0.1},
	}
}

// GenerateTextShape samples count points from text rendered with the default
// raster settings. Lines are separated by '\n'.
func GenerateTextShape(text string, count int, rng *rand.Rand) Shape {
	return DefaultTextShapeConfig().Generate(text, count, rng)
}

// Generate returns count points drawn with replacement from the lit pixels of
// text, each perturbed by Jitter. Several particles may land near the same
// glyph pixel. When nothing is lit every point is the origin.
func (c TextShapeConfig) Generate(text string, count int, rng *rand.Rand) Shape {
	rng = newRand(rng)
	if count < 0 {
		count = 0
	}
	lit := c.Rasterize(text, rng)
	points := make(Shape, count)
	if len(lit) == 0 {
		return points
	}
	for i := range points {
		p := lit[rng.IntN(len(lit))]
		points[i] = Vec3{
			X: p.X + jitter(rng, c.Jitter.X),
			Y: p.Y + jitter(rng, c.Jitter.Y),
			Z: p.Z + jitter(rng, c.Jitter.Z),
		}
	}
	return points
}

// Rasterize draws text onto an off-screen canvas, scans it every Stride
// pixels and returns the scene-space position of each lit pixel. Raster y
// grows downward while scene y grows upward, so the vertical axis is flipped
// around the canvas center. A failure to build the face yields no pixels.
func (c TextShapeConfig) Rasterize(text string, rng *rand.Rand) []Vec3 {
	rng = newRand(rng)
	if c.FontSize <= 0 || c.CanvasSize <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	canvas, err := c.draw(text)
	if err != nil {
		debugf("text shape: %v", err)
		return nil
	}

	stride := c.Stride
	if stride <= 0 {
		stride = 1
	}
	half := c.CanvasSize / 2
	var lit []Vec3
	for y := 0; y < c.CanvasSize; y += stride {
		for x := 0; x < c.CanvasSize; x += stride {
			if canvas.GrayAt(x, y).Y <= c.Threshold {
				continue
			}
			lit = append(lit, Vec3{
				X: float32(x-half) * c.Scale,
				Y: float32(half-y) * c.Scale,
				Z: jitter(rng, c.Depth),
			})
		}
	}
	return lit
}

// draw renders each line centered horizontally, with lines stacked from
// FirstLineY at LineSpacing intervals.
func (c TextShapeConfig) draw(text string) (*image.Gray, error) {
	f := c.Font
	if f == nil {
		parsed, err := opentype.Parse(gobold.TTF)
		if err != nil {
			return nil, fmt.Errorf("festive: parse font: %w", err)
		}
		f = parsed
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    c.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("festive: new face: %w", err)
	}
	defer face.Close()

	canvas := image.NewGray(image.Rect(0, 0, c.CanvasSize, c.CanvasSize))
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
	}

	// Place the baseline so the line's ink is vertically centered on its
	// line center.
	m := face.Metrics()
	middle := (m.Ascent - m.Descent) / 2

	for i, line := range strings.Split(text, "\n") {
		adv := d.MeasureString(line)
		cx := fixed.I(c.CanvasSize / 2)
		cy := fixed.I(c.FirstLineY + i*c.LineSpacing)
		d.Dot = fixed.Point26_6{X: cx - adv/2, Y: cy + middle}
		d.DrawString(line)
	}
	return canvas, nil
}
