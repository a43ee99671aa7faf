package krait

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Create one with TweenPosition or TweenRotation and either attach it with
// Node.Animate, in which case Node2DKind's update layer advances it, or call
// Update yourself.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over duration seconds using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value over duration seconds using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.Rotation), float32(to), duration, fn)
	g.fields[0] = &node.Rotation
	return g
}

// Animate attaches g to n. Groups attached to a node whose kind derives from
// Node2DKind advance on every update and are detached once done.
func (n *Node) Animate(g *TweenGroup) {
	if g == nil {
		panic("krait: cannot animate nil tween group")
	}
	n.tweens = append(n.tweens, g)
}

// Animating reports whether n has tween groups still attached.
func (n *Node) Animating() bool {
	return len(n.tweens) > 0
}

// advanceTweens updates every attached group and drops finished ones.
func (n *Node) advanceTweens(delta float64) {
	live := n.tweens[:0]
	for _, g := range n.tweens {
		g.Update(float32(delta))
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(n.tweens); i++ {
		n.tweens[i] = nil
	}
	n.tweens = live
}
