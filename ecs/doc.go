// Package ecs bridges galleria into a [Donburi] world.
//
// [NewDonburiStore] forwards scene interaction events (pointer, click,
// wheel, key) as [InteractionEventType]. [NewViewerSink] forwards viewer
// transitions as [ViewerEventType].
//
// Usage:
//
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	v, err := galleria.New(scene, photos, page.Elements(), galleria.Options{
//		Events: ecs.NewViewerSink(world),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
