package krait

import (
	"runtime"
	"time"
)

// defaultReportInterval is how often FramePacer refreshes its rate estimate.
const defaultReportInterval = 500 * time.Millisecond

// Pacer controls loop timing. StartIteration is called at the top of every
// iteration and returns the seconds elapsed since the previous call;
// EndIteration is called at the bottom and may block to hold a target rate.
type Pacer interface {
	StartIteration() float64
	EndIteration()
}

// RateReporter is implemented by pacers that keep a rolling frame-rate
// estimate. ok is false until the first report interval has elapsed.
type RateReporter interface {
	Rate() (rate float64, ok bool)
}

// FramePacer is the default Pacer. With a positive target rate it sleeps at
// the end of each iteration until 1/rate seconds have passed since the
// iteration started; uncapped, it only yields the processor.
type FramePacer struct {
	period time.Duration // zero when uncapped

	now   func() time.Time
	sleep func(time.Duration)

	started   bool
	iterStart time.Time

	reportInterval time.Duration
	reportStart    time.Time
	reportFrames   int
	rate           float64
	hasRate        bool
}

// NewPacer returns a pacer targeting rate iterations per second. A rate of
// zero or less means uncapped.
func NewPacer(rate float64) *FramePacer {
	p := &FramePacer{
		now:            time.Now,
		sleep:          time.Sleep,
		reportInterval: defaultReportInterval,
	}
	if rate > 0 {
		p.period = time.Duration(float64(time.Second) / rate)
	}
	return p
}

// TargetRate returns the configured rate, or 0 when uncapped.
func (p *FramePacer) TargetRate() float64 {
	if p.period == 0 {
		return 0
	}
	return float64(time.Second) / float64(p.period)
}

// StartIteration marks the start of an iteration. The first call returns 0.
func (p *FramePacer) StartIteration() float64 {
	now := p.now()
	if !p.started {
		p.started = true
		p.iterStart = now
		p.reportStart = now
		return 0
	}
	delta := now.Sub(p.iterStart).Seconds()
	p.iterStart = now

	p.reportFrames++
	if elapsed := now.Sub(p.reportStart); elapsed >= p.reportInterval {
		p.rate = float64(p.reportFrames) / elapsed.Seconds()
		p.hasRate = true
		p.reportFrames = 0
		p.reportStart = now
	}
	return delta
}

// EndIteration sleeps off whatever remains of the current period, or yields
// when uncapped.
func (p *FramePacer) EndIteration() {
	if p.period == 0 {
		runtime.Gosched()
		return
	}
	if remaining := p.period - p.now().Sub(p.iterStart); remaining > 0 {
		p.sleep(remaining)
	}
}

// Rate returns the most recent rate estimate in iterations per second.
func (p *FramePacer) Rate() (float64, bool) {
	return p.rate, p.hasRate
}
