package parallax

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Resizable     bool
	ShowHUD       bool
}

// Run opens a window and drives p until the window closes or p is disposed.
// It blocks and must be called from the main goroutine.
func Run(p *Presentation, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	p.SetHUDVisible(cfg.ShowHUD)
	defer p.Dispose()
	if err := ebiten.RunGame(p); err != nil {
		return fmt.Errorf("parallax: run: %w", err)
	}
	return nil
}
