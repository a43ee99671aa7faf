package krait

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// setupBenchTree creates a started Tree with n nodes, each with a chain of
// depth layers that all handle update and key input.
func setupBenchTree(n, depth int) *Tree {
	l := Layer{
		Name:       "L",
		Update:     func(*Node, float64) error { return nil },
		OnKeyInput: func(*Node) error { return nil },
	}
	k := NewKind(l)
	for i := 1; i < depth; i++ {
		k = k.Extend(l)
	}
	tr := NewTree()
	f := factoryOf(k)
	for range n {
		tr.AddNode(f)
	}
	if err := tr.Start(); err != nil {
		panic(err)
	}
	return tr
}

// --- Dispatch Benchmarks ---

func BenchmarkStep_1000Nodes_Depth1(b *testing.B) {
	tr := setupBenchTree(1000, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tr.Step(1.0 / 60)
	}
}

func BenchmarkStep_1000Nodes_Depth4(b *testing.B) {
	tr := setupBenchTree(1000, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tr.Step(1.0 / 60)
	}
}

func BenchmarkStep_1000Nodes_KeyHeld(b *testing.B) {
	tr := setupBenchTree(1000, 4)
	in := NewScriptedInput()
	in.Press(ebiten.KeySpace)
	tr.SetInput(in)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tr.Step(1.0 / 60)
	}
}

func BenchmarkStep_1000Nodes_DebugMode(b *testing.B) {
	tr := setupBenchTree(1000, 4)
	tr.SetDebugMode(true)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tr.Step(1.0 / 60)
	}
}

func BenchmarkResolveChain_Depth8(b *testing.B) {
	k := NewKind(Layer{Name: "L"})
	for range 7 {
		k = k.Extend(Layer{Name: "L"})
	}
	lineage := k.Lineage()
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := ResolveChain(lineage); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNode2D_1000Tweening(b *testing.B) {
	tr := NewTree()
	for range 1000 {
		n, err := tr.TryAddNode(func() any { return &sprite{} })
		if err != nil {
			b.Fatal(err)
		}
		// Long enough to stay live for the whole benchmark.
		n.Animate(TweenPosition(n, 1000, 1000, 1e9, ease.InOutQuad))
	}
	if err := tr.Start(); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tr.Step(1.0 / 60)
	}
}
