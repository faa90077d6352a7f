package galleria

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// ShowFPS overlays an FPS/TPS counter.
	ShowFPS bool
	// Debug turns on scene debug mode (timing stats and checks on stderr).
	Debug bool
}

// Run opens a resizable window and drives scene with Ebitengine's game loop
// until the window closes or the scene's update func returns an error.
// Live mouse and keyboard input is installed automatically.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	scene.SetDebugMode(cfg.Debug)
	if scene.input == nil {
		scene.SetInputSource(&EbitenInput{})
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	return ebiten.RunGame(&game{scene: scene})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	g.scene.Update()
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout uses the window's size as the logical screen size so the layout
// reflows on resize and fullscreen changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
