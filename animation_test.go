package krait

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := &Node{X: 10, Y: 20}

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenRotationReachesTarget(t *testing.T) {
	node := &Node{}

	g := TweenRotation(node, math.Pi, 0.5, ease.Linear)
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be done halfway")
	}
	if math.Abs(node.Rotation-math.Pi/2) > 0.01 {
		t.Errorf("Rotation halfway = %f, want ~%f", node.Rotation, math.Pi/2)
	}
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.Rotation-math.Pi) > 0.01 {
		t.Errorf("Rotation = %f, want ~%f", node.Rotation, math.Pi)
	}
}

func TestTweenGroupUpdateAfterDoneIsNoop(t *testing.T) {
	node := &Node{}
	g := TweenPosition(node, 50, 50, 0.5, ease.Linear)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}
	node.X = 999
	g.Update(0.5)
	if node.X != 999 {
		t.Errorf("Update after Done wrote X = %f", node.X)
	}
}

func TestAnimateNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil tween group")
		}
	}()
	(&Node{}).Animate(nil)
}

// --- Node2DKind integration ---

type sprite struct{}

var spriteKind = Node2DKind.Extend(Layer{Name: "Sprite"})

func (*sprite) Kind() *Kind { return spriteKind }

func TestNode2DChainComesFirst(t *testing.T) {
	n := newTestNode(t, spriteKind)
	if got := layerNames(n.Chain()); !slices.Equal(got, []string{"Node2D", "Sprite"}) {
		t.Errorf("Chain = %v, want [Node2D Sprite]", got)
	}
}

func TestNode2DAdvancesTweensOnUpdate(t *testing.T) {
	tr := NewTree()
	n, err := tr.TryAddNode(func() any { return &sprite{} })
	if err != nil {
		t.Fatal(err)
	}
	n.Animate(TweenPosition(n, 100, 0, 1.0, ease.Linear))

	// Four frames of 0.25s finish the one-second tween.
	if err := tr.Run(context.Background(), RunConfig{MaxFrames: 4, Pacer: &fixedPacer{delta: 0.25}}); err != nil {
		t.Fatal(err)
	}
	if math.Abs(n.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", n.X)
	}
	if n.Animating() {
		t.Error("finished groups should be detached")
	}
}

func TestNode2DKeepsUnfinishedTweens(t *testing.T) {
	n := newTestNode(t, spriteKind)
	fast := TweenRotation(n, 1, 0.1, ease.Linear)
	slow := TweenPosition(n, 10, 10, 1.0, ease.Linear)
	n.Animate(fast)
	n.Animate(slow)

	if err := n.UpdateRecursive(0.2); err != nil {
		t.Fatal(err)
	}
	if !fast.Done || slow.Done {
		t.Fatalf("fast.Done=%v slow.Done=%v", fast.Done, slow.Done)
	}
	if len(n.tweens) != 1 || n.tweens[0] != slow {
		t.Errorf("tweens = %v, want only the slow group", n.tweens)
	}
}

func TestPositionHelpers(t *testing.T) {
	n := &Node{}
	n.SetPosition(Vec2{3, 4})
	n.Translate(Vec2{1, -1})
	if got := n.Position(); got != (Vec2{4, 3}) {
		t.Errorf("Position = %v, want {4 3}", got)
	}
}
