package krait

import (
	"context"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	defaultWindowWidth  = 640
	defaultWindowHeight = 480
)

// WindowConfig configures RunWindowed.
type WindowConfig struct {
	Title         string
	Width, Height int

	// TargetRate is the tick rate handed to Ebitengine. Zero or less ticks
	// once per displayed frame.
	TargetRate float64

	// MaxFrames closes the window after that many ticks. Zero means no limit.
	MaxFrames uint64

	// ShowFPS prints frame and tick rates in the window's corner.
	ShowFPS bool
}

// RunWindowed starts t like Run but lets Ebitengine own the loop: a window is
// opened, Ebitengine paces ticks at cfg.TargetRate, and every tick performs one
// iteration of the tree. If t has no input source, keyboard and cursor state
// come from the window. RunWindowed blocks until the window is closed, ctx is
// done, a hook fails, or cfg.MaxFrames is reached, and returns the same errors
// as Run.
func RunWindowed(ctx context.Context, t *Tree, cfg WindowConfig) error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if t.input == nil {
		t.input = &EbitenInput{}
	}
	t.logger.Info("windowed run started",
		"nodes", len(t.nodes), "target_rate", cfg.TargetRate, "max_frames", cfg.MaxFrames)

	err := t.ready()
	if err == nil {
		g := newHostGame(ctx, t, cfg)
		ebiten.SetWindowTitle(cfg.Title)
		ebiten.SetWindowSize(g.width, g.height)
		if cfg.TargetRate > 0 {
			ebiten.SetTPS(int(math.Round(cfg.TargetRate)))
		} else {
			ebiten.SetTPS(ebiten.SyncWithFPS)
		}
		err = ebiten.RunGame(g)
	}
	t.stopped(err)
	return err
}

// hostGame adapts a started Tree to ebiten.Game.
type hostGame struct {
	ctx           context.Context
	tree          *Tree
	cfg           WindowConfig
	pacer         *FramePacer // measures wall-clock delta; Ebitengine sleeps
	width, height int
}

func newHostGame(ctx context.Context, t *Tree, cfg WindowConfig) *hostGame {
	g := &hostGame{
		ctx:    ctx,
		tree:   t,
		cfg:    cfg,
		pacer:  NewPacer(0),
		width:  cfg.Width,
		height: cfg.Height,
	}
	if g.width <= 0 {
		g.width = defaultWindowWidth
	}
	if g.height <= 0 {
		g.height = defaultWindowHeight
	}
	return g
}

// Update runs one iteration. Returning ebiten.Termination makes RunGame
// return nil.
func (g *hostGame) Update() error {
	delta := g.pacer.StartIteration()
	if g.ctx.Err() != nil {
		return cancelled(g.ctx)
	}
	if err := g.tree.step(delta, ebiten.ActualTPS()); err != nil {
		return err
	}
	if g.cfg.MaxFrames > 0 && g.tree.frame >= g.cfg.MaxFrames {
		return ebiten.Termination
	}
	return nil
}

// Draw renders nothing of the scene; it only prints the rate overlay.
func (g *hostGame) Draw(screen *ebiten.Image) {
	if !g.cfg.ShowFPS {
		return
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nNodes: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.tree.Len()))
}

func (g *hostGame) Layout(int, int) (int, int) {
	return g.width, g.height
}
