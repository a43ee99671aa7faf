package ecs

import (
	"github.com/phanxgames/krait"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for completed loop iterations.
// Subscribe to this in your ECS systems to receive per-frame statistics.
var FrameEventType = events.NewEventType[krait.FrameStats]()

// StopEvent reports the end of a run.
type StopEvent struct {
	Frames uint64 // iterations completed before the stop
	Err    error  // nil when the run reached its frame limit
}

// StopEventType is the Donburi event type published once when a run ends.
var StopEventType = events.NewEventType[StopEvent]()

type donburiObserver struct {
	world donburi.World
	last  uint64
}

// NewDonburiObserver creates a krait.Observer that publishes into world.
// Events are queued and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiObserver(world donburi.World) krait.Observer {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) ObserveFrame(stats krait.FrameStats) {
	o.last = stats.Frame
	FrameEventType.Publish(o.world, stats)
}

func (o *donburiObserver) ObserveStop(err error) {
	StopEventType.Publish(o.world, StopEvent{Frames: o.last, Err: err})
}
