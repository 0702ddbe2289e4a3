package festive

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestGenerateTextShapeCount(t *testing.T) {
	for _, n := range []int{0, 1, 100, 2000} {
		if got := len(GenerateTextShape("A", n, testRand(1))); got != n {
			t.Errorf("len(GenerateTextShape(A, %d)) = %d", n, got)
		}
	}
}

func TestRasterizeLitPixels(t *testing.T) {
	cfg := DefaultTextShapeConfig()
	lit := cfg.Rasterize("A", testRand(1))
	if len(lit) == 0 {
		t.Fatal("rasterizing A lit no pixels")
	}
	half := float32(cfg.CanvasSize/2) * cfg.Scale
	for i, p := range lit {
		if math32.Abs(p.X) > half || math32.Abs(p.Y) > half {
			t.Fatalf("lit pixel %d = %+v outside the canvas", i, p)
		}
		if math32.Abs(p.Z) > cfg.Depth/2 {
			t.Fatalf("lit pixel %d depth %v exceeds %v", i, p.Z, cfg.Depth/2)
		}
	}
}

func TestGenerateTextShapeNearLitPixels(t *testing.T) {
	cfg := DefaultTextShapeConfig()
	lit := cfg.Rasterize("A", testRand(1))
	points := cfg.Generate("A", 200, testRand(2))

	// Lit x,y sit on the scan grid regardless of the source, so the x,y of
	// every sample must be within jitter of one of them.
	jx := cfg.Jitter.X/2 + 1e-4
	jy := cfg.Jitter.Y/2 + 1e-4
	maxZ := cfg.Depth/2 + cfg.Jitter.Z/2 + 1e-4
	for i, p := range points {
		found := false
		for _, l := range lit {
			if math32.Abs(p.X-l.X) <= jx && math32.Abs(p.Y-l.Y) <= jy {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("point %d = %+v is not within jitter of any lit pixel", i, p)
		}
		if math32.Abs(p.Z) > maxZ {
			t.Fatalf("point %d depth %v exceeds %v", i, p.Z, maxZ)
		}
	}
}

func TestGenerateTextShapeZeroSizeFallsBackToOrigin(t *testing.T) {
	cfg := DefaultTextShapeConfig()
	cfg.FontSize = 0
	points := cfg.Generate("A", 100, testRand(1))
	if len(points) != 100 {
		t.Fatalf("len = %d, want 100", len(points))
	}
	for i, p := range points {
		if p != (Vec3{}) {
			t.Fatalf("point %d = %+v, want origin", i, p)
		}
	}
}

func TestGenerateTextShapeBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n"} {
		points := GenerateTextShape(text, 10, testRand(1))
		for i, p := range points {
			if p != (Vec3{}) {
				t.Errorf("text %q point %d = %+v, want origin", text, i, p)
			}
		}
	}
}

func TestRasterizeCentersLines(t *testing.T) {
	cfg := DefaultTextShapeConfig()
	lit := cfg.Rasterize("Merry", testRand(1))
	if len(lit) == 0 {
		t.Fatal("no lit pixels")
	}
	var sumX float32
	for _, p := range lit {
		sumX += p.X
	}
	if mean := sumX / float32(len(lit)); math32.Abs(mean) > 1 {
		t.Errorf("mean x = %v, want the line centered near 0", mean)
	}
}

func TestRasterizeGreetingSpansLines(t *testing.T) {
	cfg := DefaultTextShapeConfig()
	lit := cfg.Rasterize(DefaultGreeting, testRand(1))
	if len(lit) == 0 {
		t.Fatal("no lit pixels")
	}
	lo, hi := lit[0].Y, lit[0].Y
	for _, p := range lit {
		lo = min(lo, p.Y)
		hi = max(hi, p.Y)
	}
	// Line centers sit at scene y 3.75, -0.25 and -4.25.
	if hi < 2.5 || lo > -3 {
		t.Errorf("greeting spans y [%v, %v], want the first and last lines present", lo, hi)
	}
}

func TestGenerateTextShapeSeeded(t *testing.T) {
	a := GenerateTextShape("Hi", 300, testRand(5))
	b := GenerateTextShape("Hi", 300, testRand(5))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs for equal seeds", i)
		}
	}
}
