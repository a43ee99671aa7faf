package krait

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame dispatch timings. Only populated when the tree is
// in debug mode.
type debugStats struct {
	keyInputTime time.Duration
	updateTime   time.Duration
	keyInput     bool
}

// debugLog writes one frame's timings at debug level.
func (t *Tree) debugLog(frame uint64, delta float64, stats debugStats) {
	if !t.debug {
		return
	}
	t.logger.Debug("frame",
		slog.Uint64("frame", frame),
		slog.Float64("delta", delta),
		slog.Bool("key_input", stats.keyInput),
		slog.Duration("key_input_time", stats.keyInputTime),
		slog.Duration("update_time", stats.updateTime),
		slog.Duration("total", stats.keyInputTime+stats.updateTime),
	)
}

// debugMaxChainDepth is the chain length past which registration warns.
const debugMaxChainDepth = 32

func (t *Tree) debugCheckChainDepth(n *Node) {
	if len(n.chain) > debugMaxChainDepth {
		t.logger.Warn("deep layer chain",
			"node", n.Name, "depth", len(n.chain), "threshold", debugMaxChainDepth)
	}
}

// debugMaxNodeCount is the tree size past which registration warns, once.
const debugMaxNodeCount = 1000

func (t *Tree) debugCheckNodeCount() {
	if len(t.nodes) == debugMaxNodeCount+1 {
		t.logger.Warn("large tree",
			"nodes", len(t.nodes), "threshold", debugMaxNodeCount)
	}
}
