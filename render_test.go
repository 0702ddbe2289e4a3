package festive

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestAppendPointsQuad(t *testing.T) {
	v := NewCamera().View(800, 600)
	set := pointSet{
		positions: []float32{0, 0, 0},
		tint:      Color{1, 0.5, 0},
		opacity:   0.5,
		size:      1,
	}
	verts, inds := appendPoints(nil, nil, v, set, dotImageSize)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts / %d indices, want 4 / 6", len(verts), len(inds))
	}

	sx, sy, scale, _ := v.Project(Vec3{})
	half := scale / 2
	assertNear(t, "TL x", float64(verts[0].DstX), float64(sx-half))
	assertNear(t, "TL y", float64(verts[0].DstY), float64(sy-half))
	assertNear(t, "BR x", float64(verts[3].DstX), float64(sx+half))
	assertNear(t, "BR y", float64(verts[3].DstY), float64(sy+half))
	if verts[3].SrcX != dotImageSize || verts[3].SrcY != dotImageSize {
		t.Errorf("BR uv = (%v, %v), want the sprite corner", verts[3].SrcX, verts[3].SrcY)
	}

	// Premultiplied by opacity.
	vx := verts[0]
	assertNear(t, "ColorR", float64(vx.ColorR), 0.5)
	assertNear(t, "ColorG", float64(vx.ColorG), 0.25)
	assertNear(t, "ColorB", float64(vx.ColorB), 0)
	assertNear(t, "ColorA", float64(vx.ColorA), 0.5)

	want := []uint32{0, 1, 2, 1, 3, 2}
	for i := range want {
		if inds[i] != want[i] {
			t.Errorf("inds = %v, want %v", inds, want)
			break
		}
	}
}

func TestAppendPointsPerPointColors(t *testing.T) {
	v := NewCamera().View(800, 600)
	set := pointSet{
		positions: []float32{0, 0, 0, 1, 1, 1},
		colors:    []float32{1, 0, 0, 0, 0, 1},
		opacity:   1,
		size:      0.1,
	}
	verts, inds := appendPoints(nil, nil, v, set, dotImageSize)
	if len(verts) != 8 {
		t.Fatalf("got %d verts, want 8", len(verts))
	}
	if verts[0].ColorR != 1 || verts[0].ColorB != 0 {
		t.Errorf("first point color = (%v, %v, %v)", verts[0].ColorR, verts[0].ColorG, verts[0].ColorB)
	}
	if verts[4].ColorR != 0 || verts[4].ColorB != 1 {
		t.Errorf("second point color = (%v, %v, %v)", verts[4].ColorR, verts[4].ColorG, verts[4].ColorB)
	}
	if inds[6] != 4 {
		t.Errorf("second quad starts at index %d, want 4", inds[6])
	}
}

func TestAppendPointsSkipsBehindCamera(t *testing.T) {
	v := NewCamera().View(800, 600)
	set := pointSet{
		positions: []float32{0, 0, 100, 0, 0, 0},
		tint:      ColorWhite,
		opacity:   1,
		size:      0.1,
	}
	verts, _ := appendPoints(nil, nil, v, set, dotImageSize)
	if len(verts) != 4 {
		t.Errorf("got %d verts, want only the visible point", len(verts))
	}
}

func TestAppendPointsMinimumSize(t *testing.T) {
	v := NewCamera().View(800, 600)
	set := pointSet{
		positions: []float32{0, 0, -900},
		tint:      ColorWhite,
		opacity:   1,
		size:      0.001,
	}
	verts, _ := appendPoints(nil, nil, v, set, dotImageSize)
	if len(verts) != 4 {
		t.Fatalf("got %d verts", len(verts))
	}
	if w := verts[1].DstX - verts[0].DstX; w < minPointPixels-1e-4 {
		t.Errorf("quad width = %v, want at least %v", w, minPointPixels)
	}
}

func TestAppendPointsReusesBuffers(t *testing.T) {
	v := NewCamera().View(800, 600)
	set := pointSet{positions: make([]float32, 300), tint: ColorWhite, opacity: 1, size: 0.1}
	verts := make([]ebiten.Vertex, 0, 400)
	inds := make([]uint32, 0, 600)
	gotV, gotI := appendPoints(verts, inds, v, set, dotImageSize)
	if &gotV[0] != &verts[:1][0] || &gotI[0] != &inds[:1][0] {
		t.Error("appendPoints should fill the given buffers when they have room")
	}
}

func TestDotPixels(t *testing.T) {
	const size = 16
	pix := dotPixels(size)
	if len(pix) != size*size*4 {
		t.Fatalf("len = %d", len(pix))
	}
	center := ((size/2)*size + size/2) * 4
	if pix[center+3] < 200 {
		t.Errorf("center alpha = %d, want nearly opaque", pix[center+3])
	}
	if pix[3] != 0 {
		t.Errorf("corner alpha = %d, want 0", pix[3])
	}
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != pix[i+3] {
			t.Fatalf("pixel %d not premultiplied white: %v", i/4, pix[i:i+4])
		}
	}
}

func TestScenePointSets(t *testing.T) {
	s := newTestScene()
	if got := len(s.pointSets()); got != 2 {
		t.Fatalf("got %d sets before the first update, want snow and cloud", got)
	}

	s.update(frame)
	sets := s.pointSets()
	wantSizes := []float32{SnowPointSize, CloudPointSize, RibbonPointSize, LightPointSize}
	if len(sets) != len(wantSizes) {
		t.Fatalf("got %d sets with the tree shown, want %d", len(sets), len(wantSizes))
	}
	for i, set := range sets {
		if set.size != wantSizes[i] {
			t.Errorf("set %d size = %v, want %v", i, set.size, wantSizes[i])
		}
	}
	if sets[0].blend != BlendNormal {
		t.Error("snow should blend normally")
	}
	for _, set := range sets[1:] {
		if set.blend != BlendAdd {
			t.Errorf("set of size %v should blend additively", set.size)
		}
	}

	s.SetGesture(GestureText)
	s.update(frame)
	for _, set := range s.pointSets() {
		if set.size == LightPointSize {
			t.Error("lights should not be drawn with the greeting")
		}
	}
}
