package tilegrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen before the scene is drawn.
	ClearColor Color
	// ShowFPS prints FPS/TPS and the pointer tile of Watch in the corner.
	ShowFPS bool
	// Watch, if set, is the map whose pointer tile ShowFPS reports.
	Watch *TileMap
	// OnUpdate runs after the scene update each frame.
	OnUpdate func() error
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != (Color{}) {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if g.cfg.Watch != nil {
			msg += fmt.Sprintf("\nTile: %v", g.cfg.Watch.PointerTile().Tile)
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene with Ebitengine's game loop until the
// window closes or OnUpdate returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("tilegrid: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	return ebiten.RunGame(&game{scene: scene, cfg: cfg})
}
