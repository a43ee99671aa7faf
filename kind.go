package krait

import "fmt"

// Layer is one level of a kind's derivation chain. Each hook runs for every
// node whose kind includes this layer, independent of what more derived layers
// define. Nil hooks are no-ops, so a layer with no hooks is a legal, inert
// participant.
type Layer struct {
	Name       string
	Ready      func(n *Node) error
	Update     func(n *Node, delta float64) error
	OnKeyInput func(n *Node) error
}

// Kind is a statically declared node type: its own layer plus the kind it
// derives from. Kinds are immutable once created and are normally declared as
// package-level variables:
//
//	var EnemyKind = krait.NewKind(krait.Layer{Name: "Enemy", Update: enemyUpdate})
//	var BossKind = EnemyKind.Extend(krait.Layer{Name: "Boss", Update: bossUpdate})
type Kind struct {
	layer Layer
	base  *Kind
}

// rootKind is the universal root every lineage ends with.
var rootKind = &Kind{layer: Layer{Name: "object"}}

// BaseKind is the common base shared by all nodes. Its layer never receives
// lifecycle calls.
var BaseKind = &Kind{layer: Layer{Name: "Node"}, base: rootKind}

// NewKind declares a kind deriving directly from BaseKind.
func NewKind(layer Layer) *Kind {
	return BaseKind.Extend(layer)
}

// Extend declares a kind deriving from k with the given layer.
// Panics if k is nil.
func (k *Kind) Extend(layer Layer) *Kind {
	if k == nil {
		panic("krait: cannot extend a nil kind")
	}
	return &Kind{layer: layer, base: k}
}

// Name returns the name of the kind's own layer.
func (k *Kind) Name() string {
	return k.layer.Name
}

// Base returns the kind k derives from, or nil for the universal root.
func (k *Kind) Base() *Kind {
	return k.base
}

// Lineage returns k and all of its ancestors, most derived first, ending with
// the universal root.
func (k *Kind) Lineage() []*Kind {
	var out []*Kind
	for p := k; p != nil; p = p.base {
		out = append(out, p)
	}
	return out
}

// ResolveChain turns a lineage (most derived first, ending with the universal
// root) into the dispatch chain: the root and BaseKind entries are dropped and
// the remainder is reversed so layers run from the most general user layer to
// the most specific. The result always holds at least one layer.
func ResolveChain(lineage []*Kind) ([]Layer, error) {
	n := len(lineage)
	if n < 2 || lineage[n-1] != rootKind || lineage[n-2] != BaseKind {
		return nil, fmt.Errorf("%w: lineage does not descend from %s", ErrInvalidNodeType, BaseKind.Name())
	}
	if n == 2 {
		return nil, fmt.Errorf("%w: no layers below %s", ErrInvalidNodeType, BaseKind.Name())
	}
	user := lineage[:n-2]
	chain := make([]Layer, len(user))
	for i, k := range user {
		if k == nil {
			return nil, fmt.Errorf("%w: nil kind in lineage", ErrInvalidNodeType)
		}
		chain[len(user)-1-i] = k.layer
	}
	return chain, nil
}
