package festive

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the projection follows.
	Resizable bool
}

// Run opens a window and runs the scene until the window is closed. The
// scene is closed on return, which stops detection and music.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.SetShowFPS(cfg.ShowFPS)
	defer scene.Close()

	if err := ebiten.RunGame(scene); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
