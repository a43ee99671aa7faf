package krait

import "fmt"

// Entity is the capability every registered value must have: it names the
// kind whose layers drive it.
type Entity interface {
	Kind() *Kind
}

// Factory constructs one instance for registration. The product must
// implement Entity.
type Factory func() any

// Node is a registered participant in a Tree. A single flat struct is used for
// every kind; per-kind behavior lives in the resolved layer chain and per-kind
// state lives in Value.
type Node struct {
	// Name is the name of the node's most derived layer.
	Name string

	// Value is the factory's product. Use As to recover its concrete type.
	Value any

	// Node2D fields. Only Node2DKind's layer reads them, but any layer may.
	X, Y     float64
	Rotation float64 // radians

	kind   *Kind
	chain  []Layer
	tweens []*TweenGroup

	// Non-owning handle into the tree, fixed at registration.
	tree  *Tree
	index int
}

// As returns n.Value as T. Panics if the value is not a T.
func As[T any](n *Node) T {
	v, ok := n.Value.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("krait: node %q holds %T, not %T", n.Name, n.Value, zero))
	}
	return v
}

// Kind returns the kind the node was registered with.
func (n *Node) Kind() *Kind {
	return n.kind
}

// Chain returns the node's resolved layers in dispatch order.
// The returned slice MUST NOT be mutated.
func (n *Node) Chain() []Layer {
	return n.chain
}

// Tree returns the tree the node is registered in.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Index returns the node's position in its tree, which is also its dispatch
// position.
func (n *Node) Index() int {
	return n.index
}

// ReadyRecursive calls every layer's Ready hook in chain order.
func (n *Node) ReadyRecursive() error {
	for i := range n.chain {
		l := &n.chain[i]
		if l.Ready == nil {
			continue
		}
		if err := n.call(l, HookReady, func() error { return l.Ready(n) }); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRecursive calls every layer's Update hook in chain order, passing the
// same delta to each.
func (n *Node) UpdateRecursive(delta float64) error {
	for i := range n.chain {
		l := &n.chain[i]
		if l.Update == nil {
			continue
		}
		if err := n.call(l, HookUpdate, func() error { return l.Update(n, delta) }); err != nil {
			return err
		}
	}
	return nil
}

// KeyInputRecursive calls every layer's OnKeyInput hook in chain order.
func (n *Node) KeyInputRecursive() error {
	for i := range n.chain {
		l := &n.chain[i]
		if l.OnKeyInput == nil {
			continue
		}
		if err := n.call(l, HookKeyInput, func() error { return l.OnKeyInput(n) }); err != nil {
			return err
		}
	}
	return nil
}

// call runs one hook, converting a returned error or a panic into a
// *DispatchError.
func (n *Node) call(l *Layer, hook Hook, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = n.dispatchError(l, hook, fmt.Errorf("panic: %v", r))
		}
	}()
	if e := fn(); e != nil {
		return n.dispatchError(l, hook, e)
	}
	return nil
}

func (n *Node) dispatchError(l *Layer, hook Hook, err error) *DispatchError {
	return &DispatchError{Node: n.Name, Index: n.index, Layer: l.Name, Hook: hook, Err: err}
}

// newNode resolves v's chain and builds an unattached node.
func newNode(v any) (*Node, error) {
	ent, ok := v.(Entity)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not implement Entity", ErrInvalidNodeType, v)
	}
	kind := ent.Kind()
	chain, err := ResolveChain(kind.Lineage())
	if err != nil {
		return nil, fmt.Errorf("%T: %w", v, err)
	}
	return &Node{
		Name:  kind.Name(),
		Value: v,
		kind:  kind,
		chain: chain,
	}, nil
}
