package ecs

import (
	"github.com/phanxgames/galleria"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for galleria interaction
// events. Subscribe to it to receive pointer, wheel and key events.
var InteractionEventType = events.NewEventType[galleria.InteractionEvent]()

// ViewerEventType is the Donburi event type for viewer transitions: photo
// loaded, zoom changed and fullscreen changed.
var ViewerEventType = events.NewEventType[galleria.ViewerEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) galleria.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event galleria.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

type viewerSink struct {
	world donburi.World
}

// NewViewerSink returns a sink for Options.Events that publishes to
// ViewerEventType in world.
func NewViewerSink(world donburi.World) galleria.ViewerEventSink {
	return &viewerSink{world: world}
}

func (s *viewerSink) HandleViewerEvent(ev galleria.ViewerEvent) {
	ViewerEventType.Publish(s.world, ev)
}
