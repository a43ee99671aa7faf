// Package metrics exports krait loop statistics to Prometheus.
package metrics

import (
	"context"
	"errors"

	"github.com/phanxgames/krait"
	"github.com/prometheus/client_golang/prometheus"
)

// Stop reasons used as the "reason" label of krait_stops_total.
const (
	ReasonCompleted = "completed"
	ReasonCancelled = "cancelled"
	ReasonFailed    = "failed"
)

// Collector is a krait.Observer that records every frame.
//
// All metrics use the krait_ prefix.
type Collector struct {
	// FramesTotal counts completed iterations
	FramesTotal prometheus.Counter

	// KeyInputFramesTotal counts iterations that dispatched key input
	KeyInputFramesTotal prometheus.Counter

	// FrameDelta tracks the delta passed to update
	FrameDelta prometheus.Histogram

	// Dispatch tracks time spent in key input and update dispatch
	Dispatch prometheus.Histogram

	// Nodes is the number of nodes dispatched to in the last frame
	Nodes prometheus.Gauge

	// FrameRate is the pacer's rolling rate estimate
	FrameRate prometheus.Gauge

	// StopsTotal counts finished runs by reason
	StopsTotal *prometheus.CounterVec
}

var _ krait.Observer = (*Collector)(nil)

// New creates the collector and registers its metrics with reg.
// Panics if registration fails (expected during initialization only).
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "krait_frames_total",
			Help: "Total loop iterations completed",
		}),
		KeyInputFramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "krait_key_input_frames_total",
			Help: "Total loop iterations that dispatched key input",
		}),
		FrameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "krait_frame_delta_seconds",
			Help:    "Seconds between consecutive iterations as passed to update",
			Buckets: []float64{0.001, 0.004, 0.008, 0.0167, 0.025, 0.0334, 0.05, 0.1, 0.25, 1},
		}),
		Dispatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "krait_dispatch_seconds",
			Help:    "Seconds spent dispatching key input and update per iteration",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "krait_nodes",
			Help: "Number of nodes in the running tree",
		}),
		FrameRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "krait_frame_rate",
			Help: "Measured iterations per second",
		}),
		StopsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "krait_stops_total",
			Help: "Total finished runs by reason",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.FramesTotal,
		c.KeyInputFramesTotal,
		c.FrameDelta,
		c.Dispatch,
		c.Nodes,
		c.FrameRate,
		c.StopsTotal,
	)
	return c
}

// ObserveFrame implements krait.Observer.
func (c *Collector) ObserveFrame(s krait.FrameStats) {
	c.FramesTotal.Inc()
	if s.KeyInput {
		c.KeyInputFramesTotal.Inc()
	}
	c.FrameDelta.Observe(s.Delta)
	c.Dispatch.Observe(s.Dispatch.Seconds())
	c.Nodes.Set(float64(s.Nodes))
	if s.Rate > 0 {
		c.FrameRate.Set(s.Rate)
	}
}

// ObserveStop implements krait.Observer.
func (c *Collector) ObserveStop(err error) {
	c.StopsTotal.WithLabelValues(StopReason(err)).Inc()
}

// StopReason classifies the error a run returned.
func StopReason(err error) string {
	switch {
	case err == nil:
		return ReasonCompleted
	case errors.Is(err, krait.ErrCancelled), errors.Is(err, context.Canceled):
		return ReasonCancelled
	default:
		return ReasonFailed
	}
}
