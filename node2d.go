package krait

// Node2DKind is the built-in kind for nodes with a position and rotation.
// Kinds extending it get a "Node2D" layer first in their chain; that layer's
// update advances the node's attached tween groups.
var Node2DKind = NewKind(Layer{
	Name: "Node2D",
	Update: func(n *Node, delta float64) error {
		if len(n.tweens) > 0 {
			n.advanceTweens(delta)
		}
		return nil
	},
})

// Position returns the node's position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// SetPosition sets the node's position.
func (n *Node) SetPosition(p Vec2) {
	n.X, n.Y = p.X, p.Y
}

// Translate moves the node by d.
func (n *Node) Translate(d Vec2) {
	n.X += d.X
	n.Y += d.Y
}
