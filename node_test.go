package krait

import (
	"errors"
	"slices"
	"testing"
)

func newTestNode(t *testing.T, k *Kind) *Node {
	t.Helper()
	n, err := newNode(&testEntity{kind: k})
	if err != nil {
		t.Fatalf("newNode: %v", err)
	}
	return n
}

// --- Construction ---

func TestNewNodeResolvesChain(t *testing.T) {
	base := NewKind(Layer{Name: "Base"})
	a := base.Extend(Layer{Name: "A"})
	n := newTestNode(t, a)

	if n.Name != "A" {
		t.Errorf("Name = %q, want %q", n.Name, "A")
	}
	if n.Kind() != a {
		t.Error("Kind() should be the registered kind")
	}
	if got := layerNames(n.Chain()); !slices.Equal(got, []string{"Base", "A"}) {
		t.Errorf("Chain = %v, want [Base A]", got)
	}
}

func TestNewNodeRejectsNonEntity(t *testing.T) {
	for _, v := range []any{nil, 42, struct{}{}} {
		if _, err := newNode(v); !errors.Is(err, ErrInvalidNodeType) {
			t.Errorf("newNode(%T): err = %v, want ErrInvalidNodeType", v, err)
		}
	}
}

func TestNewNodeRejectsNilKind(t *testing.T) {
	if _, err := newNode(&testEntity{}); !errors.Is(err, ErrInvalidNodeType) {
		t.Errorf("err = %v, want ErrInvalidNodeType", err)
	}
}

func TestAs(t *testing.T) {
	e := &testEntity{kind: NewKind(Layer{Name: "A"})}
	n, err := newNode(e)
	if err != nil {
		t.Fatal(err)
	}
	if As[*testEntity](n) != e {
		t.Error("As should return the factory product")
	}
	if As[Entity](n) != Entity(e) {
		t.Error("As should accept interface types")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong type")
		}
	}()
	As[string](n)
}

// --- Dispatch ---

func TestReadyRecursiveRunsEveryLayerInOrder(t *testing.T) {
	r := &recorder{}
	base := NewKind(r.layer("Base"))
	mid := base.Extend(r.layer("Mid"))
	a := mid.Extend(r.layer("A"))
	n := newTestNode(t, a)

	if err := n.ReadyRecursive(); err != nil {
		t.Fatal(err)
	}
	want := []string{"Base.ready", "Mid.ready", "A.ready"}
	if !slices.Equal(r.log, want) {
		t.Errorf("log = %v, want %v", r.log, want)
	}
}

func TestUpdateRecursivePassesSameDelta(t *testing.T) {
	var deltas []float64
	layer := func(name string) Layer {
		return Layer{Name: name, Update: func(n *Node, delta float64) error {
			deltas = append(deltas, delta)
			return nil
		}}
	}
	k := NewKind(layer("A")).Extend(layer("B")).Extend(layer("C"))
	n := newTestNode(t, k)

	if err := n.UpdateRecursive(0.125); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(deltas, []float64{0.125, 0.125, 0.125}) {
		t.Errorf("deltas = %v, want three calls with 0.125", deltas)
	}
}

func TestKeyInputRecursive(t *testing.T) {
	r := &recorder{}
	k := NewKind(r.layer("A")).Extend(r.layer("B"))
	n := newTestNode(t, k)

	if err := n.KeyInputRecursive(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(r.log, []string{"A.key", "B.key"}) {
		t.Errorf("log = %v", r.log)
	}
}

func TestInertLayersAreSkipped(t *testing.T) {
	r := &recorder{}
	k := NewKind(Layer{Name: "Inert"}).Extend(r.layer("Live")).Extend(Layer{Name: "AlsoInert"})
	n := newTestNode(t, k)

	if err := n.ReadyRecursive(); err != nil {
		t.Fatal(err)
	}
	if err := n.UpdateRecursive(1); err != nil {
		t.Fatal(err)
	}
	if err := n.KeyInputRecursive(); err != nil {
		t.Fatal(err)
	}
	want := []string{"Live.ready", "Live.update(1)", "Live.key"}
	if !slices.Equal(r.log, want) {
		t.Errorf("log = %v, want %v", r.log, want)
	}
}

func TestLayerReceivesNode(t *testing.T) {
	var got *Node
	k := NewKind(Layer{Name: "A", Ready: func(n *Node) error {
		got = n
		return nil
	}})
	n := newTestNode(t, k)
	_ = n.ReadyRecursive()
	if got != n {
		t.Error("hook should receive the dispatching node")
	}
}

func TestFailingHookAbortsChain(t *testing.T) {
	r := &recorder{}
	boom := errors.New("boom")
	failing := Layer{Name: "Mid", Update: func(n *Node, delta float64) error { return boom }}
	k := NewKind(r.layer("Base")).Extend(failing).Extend(r.layer("A"))
	n := newTestNode(t, k)

	err := n.UpdateRecursive(0.5)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("err = %T, want *DispatchError", err)
	}
	if de.Layer != "Mid" || de.Hook != HookUpdate || de.Node != "A" {
		t.Errorf("DispatchError = %+v", de)
	}
	if !slices.Equal(r.log, []string{"Base.update(0.5)"}) {
		t.Errorf("log = %v, layers after the failure must not run", r.log)
	}
}

func TestPanickingHookBecomesDispatchError(t *testing.T) {
	k := NewKind(Layer{Name: "A", OnKeyInput: func(n *Node) error {
		panic("kaboom")
	}})
	n := newTestNode(t, k)

	err := n.KeyInputRecursive()
	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DispatchError", err)
	}
	if de.Hook != HookKeyInput {
		t.Errorf("Hook = %v, want %v", de.Hook, HookKeyInput)
	}
}

func TestHookString(t *testing.T) {
	cases := map[Hook]string{
		HookReady:    "ready",
		HookUpdate:   "update",
		HookKeyInput: "on_key_input",
		Hook(99):     "unknown",
	}
	for h, want := range cases {
		if h.String() != want {
			t.Errorf("Hook(%d).String() = %q, want %q", h, h.String(), want)
		}
	}
}
