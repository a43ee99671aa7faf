// Package krait is a scene-graph execution engine: a tree of nodes driven by a
// fixed-cadence loop that dispatches lifecycle events through a precomputed
// chain of behavior layers per node.
//
// # Quick start
//
// Declare kinds as layers stacked on top of each other, register factories,
// and run the tree:
//
//	var GreeterKind = krait.NewKind(krait.Layer{
//		Name:  "Greeter",
//		Ready: func(n *krait.Node) error { fmt.Println("Hello,"); return nil },
//	})
//	var LoudGreeterKind = GreeterKind.Extend(krait.Layer{
//		Name:  "LoudGreeter",
//		Ready: func(n *krait.Node) error { fmt.Println("World!"); return nil },
//	})
//
//	type loudGreeter struct{}
//
//	func (*loudGreeter) Kind() *krait.Kind { return LoudGreeterKind }
//
//	tree := krait.NewTree()
//	tree.AddNode(func() any { return &loudGreeter{} })
//	err := tree.Run(ctx, krait.RunConfig{TargetRate: 60})
//
// # Layers and chains
//
// A [Kind] is one [Layer] plus the kind it extends. Every kind descends from
// [BaseKind]. When a node is registered its kind's lineage is resolved once,
// by [ResolveChain], into a chain ordered from the most general user layer to
// the most specific. Every lifecycle event then runs the matching hook of
// every layer in that order: a derived layer never hides its base's hook, and
// layers never call their base themselves.
//
// # The loop
//
// [Tree.Run] calls every node's ready chain once, in registration order, then
// iterates: the [Pacer] reports the delta, the context is checked, key input
// is dispatched to every node if the [Input] reports any key held, update is
// dispatched to every node, and the pacer sleeps to hold the target rate.
// Everything happens on the calling goroutine.
//
// [RunWindowed] runs the same iterations from an Ebitengine window, with the
// window's keyboard and cursor as input.
//
// # Input
//
// [Input] is a point-in-time view of held keys and the pointer. Helpers such as
// [KeyDown], [ActionHeld], [Vector] and [Modifiers] work with any source.
// [ScriptedInput] replays presses and releases frame by frame, either queued
// from code or loaded from a YAML script with [LoadInputScript].
//
// # Observability
//
// Observers registered with [Tree.AddObserver] receive [FrameStats] for every
// frame. The krait/metrics package exports them to Prometheus and the
// krait/ecs module publishes them into a Donburi world.
package krait
