package krait

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Tree owns an ordered set of nodes and the loop that drives them. Insertion
// order is dispatch order. Nodes are registered while the tree is idle; once
// started a tree stays running, and there is no way to remove a node.
//
// A Tree is not safe for concurrent use apart from the running guard, which
// lets exactly one Run (or Start) succeed.
type Tree struct {
	nodes     []*Node
	running   atomic.Bool
	input     Input
	observers []Observer
	logger    *slog.Logger
	debug     bool
	frame     uint64
	dropped   int
}

// RunConfig configures Run.
type RunConfig struct {
	// TargetRate is the desired number of iterations per second.
	// Zero or less means uncapped.
	TargetRate float64

	// MaxFrames stops the loop with a nil error after that many iterations.
	// Zero means the loop runs until cancellation or failure.
	MaxFrames uint64

	// Pacer overrides the pacer built from TargetRate.
	Pacer Pacer
}

func (c RunConfig) pacer() Pacer {
	if c.Pacer != nil {
		return c.Pacer
	}
	return NewPacer(c.TargetRate)
}

// NewTree creates an empty, idle tree with no input source and a logger that
// discards everything.
func NewTree() *Tree {
	return &Tree{logger: slog.New(slog.DiscardHandler)}
}

// SetInput sets the input source queried once per frame. A nil input never
// reports a pressed key.
func (t *Tree) SetInput(in Input) {
	t.input = in
}

// Input returns the tree's input source, which may be nil.
func (t *Tree) Input() Input {
	return t.input
}

// SetLogger sets the structured logger. Nil restores the discarding logger.
func (t *Tree) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t.logger = logger
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame dispatch
// timings are logged at debug level and registration warns about very deep
// chains and very large trees.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// AddNode builds one instance with f and registers it. If the instance cannot
// be registered (it is not an Entity, its kind has no layers below BaseKind,
// or the tree is running) it is discarded: a warning is logged and Dropped is
// incremented, but no error reaches the caller. Use TryAddNode to observe the
// error. AddNode returns t for chaining.
func (t *Tree) AddNode(f Factory) *Tree {
	if _, err := t.TryAddNode(f); err != nil {
		t.dropped++
		t.logger.Warn("node dropped", "err", err)
	}
	return t
}

// TryAddNode is AddNode with the registration error reported. On success it
// returns the new node, already attached to t.
// Panics if f is nil.
func (t *Tree) TryAddNode(f Factory) (*Node, error) {
	if f == nil {
		panic("krait: cannot add nil factory")
	}
	if t.running.Load() {
		return nil, ErrRegistrationClosed
	}
	n, err := newNode(f())
	if err != nil {
		return nil, err
	}
	n.tree = t
	n.index = len(t.nodes)
	t.nodes = append(t.nodes, n)

	if t.debug {
		t.debugCheckChainDepth(n)
		t.debugCheckNodeCount()
	}
	t.logger.Debug("node registered", "node", n.Name, "index", n.index, "layers", len(n.chain))
	return n, nil
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NodeAt returns the node at index i, or nil if i is out of range.
func (t *Tree) NodeAt(i int) *Node {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i]
}

// Nodes returns the registered nodes in dispatch order.
// The returned slice MUST NOT be mutated.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Running reports whether the tree has been started.
func (t *Tree) Running() bool {
	return t.running.Load()
}

// Frame returns the number of iterations started so far. Inside update and
// key input hooks it is the 1-based index of the current iteration.
func (t *Tree) Frame() uint64 {
	return t.frame
}

// Dropped returns how many AddNode registrations were discarded.
func (t *Tree) Dropped() int {
	return t.dropped
}

// Run starts the tree and blocks running its loop. Every node's ready chain
// runs once, in insertion order, before the first iteration. Each iteration
// then takes the delta from the pacer, checks ctx, dispatches key input to
// every node if any key is held, dispatches update to every node, and paces.
//
// Run returns ErrAlreadyRunning without side effects if the tree was already
// started, a *DispatchError if a hook fails, an error wrapping ErrCancelled and
// the context's cause once ctx is done, or nil when cfg.MaxFrames is reached.
func (t *Tree) Run(ctx context.Context, cfg RunConfig) error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	t.logger.Info("run started",
		"nodes", len(t.nodes), "target_rate", cfg.TargetRate, "max_frames", cfg.MaxFrames)

	err := t.run(ctx, cfg)
	t.stopped(err)
	return err
}

func (t *Tree) run(ctx context.Context, cfg RunConfig) error {
	if err := t.ready(); err != nil {
		return err
	}

	pacer := cfg.pacer()
	reporter, _ := pacer.(RateReporter)
	for {
		delta := pacer.StartIteration()
		if ctx.Err() != nil {
			return cancelled(ctx)
		}
		var rate float64
		if reporter != nil {
			rate, _ = reporter.Rate()
		}
		if err := t.step(delta, rate); err != nil {
			return err
		}
		if cfg.MaxFrames > 0 && t.frame >= cfg.MaxFrames {
			return nil
		}
		pacer.EndIteration()
	}
}

// Start marks the tree running and runs every node's ready chain, for hosts
// that own the loop and call Step themselves. It fails with ErrAlreadyRunning
// like Run.
func (t *Tree) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return t.ready()
}

// Step runs one iteration's dispatch with the given delta: the input source is
// advanced if it is a FrameAdvancer, key input is dispatched if any key is
// held, and update is dispatched to every node. Pacing and cancellation are
// left to the caller.
func (t *Tree) Step(delta float64) error {
	if !t.running.Load() {
		return ErrNotStarted
	}
	return t.step(delta, 0)
}

func (t *Tree) ready() error {
	for _, n := range t.nodes {
		if err := n.ReadyRecursive(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) step(delta, rate float64) error {
	t.frame++
	if adv, ok := t.input.(FrameAdvancer); ok {
		adv.AdvanceFrame()
	}

	var stats debugStats
	t0 := time.Now()

	if t.input != nil && t.input.AnyKeyPressed() {
		stats.keyInput = true
		for _, n := range t.nodes {
			if err := n.KeyInputRecursive(); err != nil {
				return err
			}
		}
	}
	t1 := time.Now()
	stats.keyInputTime = t1.Sub(t0)

	for _, n := range t.nodes {
		if err := n.UpdateRecursive(delta); err != nil {
			return err
		}
	}
	stats.updateTime = time.Since(t1)

	if t.debug {
		t.debugLog(t.frame, delta, stats)
	}
	t.notifyFrame(FrameStats{
		Frame:    t.frame,
		Delta:    delta,
		KeyInput: stats.keyInput,
		Nodes:    len(t.nodes),
		Dispatch: stats.keyInputTime + stats.updateTime,
		Rate:     rate,
	})
	return nil
}

// stopped logs and reports the end of a run.
func (t *Tree) stopped(err error) {
	switch {
	case err == nil:
		t.logger.Info("run finished", "frames", t.frame)
	case errors.Is(err, ErrCancelled):
		t.logger.Info("run cancelled", "frames", t.frame, "err", err)
	default:
		t.logger.Error("run failed", "frames", t.frame, "err", err)
	}
	t.notifyStop(err)
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}
