package festive

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// HUD text.
const (
	HUDTitle = "Merry Christmas"
	hudHelp  = "C camera  M mute  T tree  Space greeting  V home view  R scatter  F12 screenshot"

	hudTitleSize  = 36
	hudStatusSize = 14
	hudMargin     = 16
)

var (
	hudTitleColor  = Color{1.0, 0.85, 0.4}
	hudStatusColor = Color{0.85, 0.9, 0.9}
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("festive: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// hudState is the snapshot of scene state the HUD shows.
type hudState struct {
	gesture   Gesture
	detecting bool
	active    bool
	hasMusic  bool
	muted     bool
	showFPS   bool
}

// statusLines returns the status text, one entry per line.
func (st hudState) statusLines() []string {
	cam := "off"
	switch {
	case st.detecting && st.active:
		cam = "tracking"
	case st.detecting:
		cam = "unavailable"
	}
	lines := []string{
		"Gesture: " + gestureLabel(st.gesture),
		"Camera: " + cam,
	}
	if st.hasMusic {
		music := "on"
		if st.muted {
			music = "muted"
		}
		lines = append(lines, "Music: "+music)
	}
	return append(lines, hudHelp)
}

// gestureLabel names what the cloud is showing.
func gestureLabel(g Gesture) string {
	switch g {
	case GestureText:
		return "open palm (greeting)"
	case GestureTree:
		return "fist (tree)"
	default:
		return "none (tree)"
	}
}

// hud draws the title, status block and optional FPS overlay.
type hud struct {
	title  *TTFFont
	status *TTFFont
	fpsBg  *ebiten.Image
}

func newHUD() (*hud, error) {
	title, err := LoadTTFFont(gobold.TTF, hudTitleSize)
	if err != nil {
		return nil, err
	}
	status, err := LoadTTFFont(goregular.TTF, hudStatusSize)
	if err != nil {
		return nil, err
	}
	return &hud{title: title, status: status}, nil
}

func (h *hud) draw(screen *ebiten.Image, st hudState) {
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())

	tw, _ := h.title.MeasureString(HUDTitle)
	op := &text.DrawOptions{}
	op.GeoM.Translate((sw-tw)/2, hudMargin)
	op.ColorScale.ScaleWithColor(hudTitleColor.toRGBA())
	text.Draw(screen, HUDTitle, h.title.Face(), op)

	lines := st.statusLines()
	block := strings.Join(lines, "\n")
	op = &text.DrawOptions{}
	op.LineSpacing = h.status.LineHeight()
	op.GeoM.Translate(hudMargin, sh-hudMargin-float64(len(lines))*h.status.LineHeight())
	op.ColorScale.ScaleWithColor(hudStatusColor.toRGBA())
	text.Draw(screen, block, h.status.Face(), op)

	if st.showFPS {
		h.drawFPS(screen)
	}
}

// drawFPS prints FPS and TPS over a semi-transparent background in the top
// left corner.
func (h *hud) drawFPS(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	if h.fpsBg == nil {
		h.fpsBg = ebiten.NewImage(100, 32)
		h.fpsBg.Fill(color.RGBA{0, 0, 0, 128})
	}
	screen.DrawImage(h.fpsBg, nil)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 0, 0)
}
