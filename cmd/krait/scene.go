package main

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/krait"
	"github.com/tanema/gween/ease"
)

// moverSpeed is in units per second.
const moverSpeed = 120

// Greeter prints on ready; LoudGreeter extends it, so a loud greeter prints
// both lines, base first.
var (
	greeterKind = krait.NewKind(krait.Layer{
		Name: "Greeter",
		Ready: func(n *krait.Node) error {
			_, err := fmt.Fprintln(krait.As[*greeter](n).out, "Hello,")
			return err
		},
	})
	loudGreeterKind = greeterKind.Extend(krait.Layer{
		Name: "LoudGreeter",
		Ready: func(n *krait.Node) error {
			_, err := fmt.Fprintln(krait.As[*greeter](n).out, "World!")
			return err
		},
	})
)

type greeter struct {
	out io.Writer
}

func (*greeter) Kind() *krait.Kind { return loudGreeterKind }

// Mover walks with the arrow keys and glides home on Space. It reports where
// it stopped each time the keys are let go.
var moverKind = krait.Node2DKind.Extend(krait.Layer{
	Name: "Mover",
	OnKeyInput: func(n *krait.Node) error {
		m := krait.As[*mover](n)
		in := n.Tree().Input()
		m.dir = krait.Vector(in, ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
		if krait.KeyDown(in, ebiten.KeySpace) && !n.Animating() {
			n.Animate(krait.TweenPosition(n, 0, 0, 0.5, ease.OutQuad))
		}
		return nil
	},
	Update: func(n *krait.Node, delta float64) error {
		m := krait.As[*mover](n)
		moving := m.dir != krait.Vec2{}
		if moving {
			n.Translate(krait.Vec2{X: m.dir.X * moverSpeed * delta, Y: m.dir.Y * moverSpeed * delta})
		} else if m.moving {
			fmt.Fprintf(m.out, "mover stopped at (%.1f, %.1f)\n", n.X, n.Y)
		}
		m.moving = moving
		m.dir = krait.Vec2{} // set again by the next key input frame
		return nil
	},
})

type mover struct {
	out    io.Writer
	dir    krait.Vec2
	moving bool
}

func (*mover) Kind() *krait.Kind { return moverKind }

func addDemoScene(tree *krait.Tree, out io.Writer) {
	tree.
		AddNode(func() any { return &greeter{out: out} }).
		AddNode(func() any { return &mover{out: out} })
}
