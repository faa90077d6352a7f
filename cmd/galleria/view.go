package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/galleria"
	"github.com/spf13/cobra"
)

var (
	viewSource     sourceFlags
	viewFullscreen bool
	viewFPS        bool
	viewScript     string
)

var viewCmd = &cobra.Command{
	Use:   "view [page.html|dir|catalog.db]",
	Short: "Open the viewer window",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	viewSource.register(viewCmd)
	viewCmd.Flags().BoolVar(&viewFullscreen, "fullscreen", false, "start fullscreen")
	viewCmd.Flags().BoolVar(&viewFPS, "fps", false, "show the FPS counter")
	viewCmd.Flags().StringVar(&viewScript, "script", "", "run a JSON input script, then exit")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := viewSource.apply(cfg, args); err != nil {
		return err
	}
	if viewFullscreen {
		cfg.Window.Fullscreen = true
	}
	if viewFPS {
		cfg.Window.ShowFPS = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	photos, err := loadPhotos(cmd.Context(), cfg.Source)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		warnf("no photos found in %s", cfg.Source.Path)
	}

	scene := galleria.NewScene()
	quit := false
	page := galleria.NewPage(scene, galleria.PageConfig{
		ThumbnailSize: float64(cfg.Thumbnails.Size),
		PulseInterval: cfg.PulseInterval(),
		OnBack:        func() { quit = true },
	})
	defer page.Close()

	loader := galleria.NewLoader(galleria.FileDecoder{}, cfg.Workers)
	defer loader.Close()

	v, err := galleria.New(scene, photos, page.Elements(), galleria.Options{
		Zoom: galleria.ZoomConfig{
			Min:  cfg.Zoom.Min,
			Max:  cfg.Zoom.Max,
			Step: cfg.Zoom.Step,
		},
		SettleDelay:        cfg.SettleDelay(),
		Loader:             loader,
		ThumbnailSize:      float64(cfg.Thumbnails.Size),
		ThumbnailGap:       float64(cfg.Thumbnails.Gap),
		OnFullscreenChange: page.SetFullscreen,
		Events: galleria.ViewerEventFunc(func(ev galleria.ViewerEvent) {
			scene.Logf("%s: photo %d, zoom %.1f, fullscreen %t", ev.Type, ev.Index, ev.Zoom, ev.Fullscreen)
		}),
	})
	if err != nil {
		return err
	}
	defer v.Close()

	var runner *galleria.TestRunner
	if viewScript != "" {
		data, err := os.ReadFile(viewScript)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		if runner, err = galleria.LoadTestScript(data); err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	// Leave one extra frame after the script so its last screenshot is drawn.
	drained := false
	scene.SetUpdateFunc(func() error {
		if quit {
			return ebiten.Termination
		}
		if runner != nil && runner.Done() {
			if drained {
				return ebiten.Termination
			}
			drained = true
		}
		return nil
	})

	return galleria.Run(scene, galleria.RunConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		ShowFPS:    cfg.Window.ShowFPS,
		Debug:      cfg.Debug,
	})
}
