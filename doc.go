// Package galleria is a zoomable photo viewer for [Ebitengine].
//
// Galleria shows one photo at a time from an ordered list. The photo is
// fitted inside its zoom area, zooms about the point under the cursor with
// the mouse wheel, and is navigated with buttons, thumbnails or the
// keyboard. Fullscreen state is mirrored from the platform.
//
// # Quick start
//
// [NewPage] builds a ready-made layout and [New] binds a [Viewer] to it:
//
//	scene := galleria.NewScene()
//	page := galleria.NewPage(scene, galleria.PageConfig{})
//	v, err := galleria.New(scene, photos, page.Elements(), galleria.Options{
//		OnFullscreenChange: page.SetFullscreen,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer v.Close()
//	galleria.Run(scene, galleria.RunConfig{Title: "Gallery", Width: 1280, Height: 800})
//
// To use your own layout, build the nodes yourself and pass them in an
// [Elements]. Every field is required.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Create nodes with [NewContainer], [NewSprite], [NewRect] and [NewText].
//
// # Zoom
//
// The zoom factor runs from [ZoomConfig.Min] to [ZoomConfig.Max] in steps of
// [ZoomConfig.Step], 1 to 5 by 0.2 by default. While the pointer is over the
// zoom area its position becomes the focal point, in percent of the photo,
// and zooming keeps that point fixed. Loading a photo resets the zoom and
// re-measures the layout once [Options.SettleDelay] has passed.
//
// # Keyboard
//
//	ArrowLeft / ArrowRight   previous / next photo, wrapping at the ends
//	+ or =                   zoom in
//	-                        zoom out
//	0                        reset zoom
//	f or F                   toggle fullscreen
//	Escape                   leave fullscreen
//
// # Loading
//
// Photos are decoded off the update loop by a [Loader] and delivered on it.
// A load that finishes after another photo was requested is discarded.
//
// Photo lists can be collected from HTML pages, directory trees or a SQLite
// catalog with the galleria/source package, and viewer events can be
// published into a Donburi world with galleria/ecs.
//
// [Ebitengine]: https://ebitengine.org
package galleria
