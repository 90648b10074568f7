package tether

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// OnDraw, when set, is called every frame with the screen image.
	// Rendering itself is outside tether's scope; this is just the hook.
	OnDraw func(screen *ebiten.Image)
}

// Run creates a window and game loop that polls the system's devices and
// drains its event queue once per tick. It blocks until the window closes or
// a tool callback returns an error through Update.
//
// For full control, implement [ebiten.Game] yourself and call
// [ToolSystem.Update] from your own Update method.
func Run(sys *ToolSystem, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{sys: sys, cfg: cfg})
}

// game adapts a ToolSystem to the ebiten.Game loop.
type game struct {
	sys *ToolSystem
	cfg RunConfig
}

func (g *game) Update() error {
	return g.sys.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.OnDraw != nil {
		g.cfg.OnDraw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
