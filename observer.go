package krait

import "time"

// Observer receives per-frame statistics and the reason a run stopped.
// Observers are called on the loop goroutine and must not block.
type Observer interface {
	ObserveFrame(stats FrameStats)
	ObserveStop(err error)
}

// FrameStats describes one completed loop iteration.
type FrameStats struct {
	Frame    uint64        // 1-based index of the iteration
	Delta    float64       // seconds passed to update
	KeyInput bool          // whether key input was dispatched this frame
	Nodes    int           // number of nodes dispatched to
	Dispatch time.Duration // time spent in key input and update dispatch
	Rate     float64       // pacer's rolling rate estimate, 0 until known
}

// AddObserver registers o for every subsequent frame. Observers are notified in
// registration order.
func (t *Tree) AddObserver(o Observer) {
	if o == nil {
		panic("krait: cannot add nil observer")
	}
	t.observers = append(t.observers, o)
}

func (t *Tree) notifyFrame(stats FrameStats) {
	for _, o := range t.observers {
		o.ObserveFrame(stats)
	}
}

func (t *Tree) notifyStop(err error) {
	for _, o := range t.observers {
		o.ObserveStop(err)
	}
}
