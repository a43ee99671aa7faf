package krait

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning is returned by Run when the tree has already been started.
	ErrAlreadyRunning = errors.New("krait: tree is already running")

	// ErrInvalidNodeType reports a factory product that is not an Entity, or
	// whose kind does not resolve to at least one layer below BaseKind.
	ErrInvalidNodeType = errors.New("krait: invalid node type")

	// ErrRegistrationClosed is returned when a node is registered on a tree
	// whose loop has started.
	ErrRegistrationClosed = errors.New("krait: cannot register nodes on a running tree")

	// ErrNotStarted is returned by Step on a tree that was never started.
	ErrNotStarted = errors.New("krait: tree has not been started")

	// ErrCancelled ends a run whose context was cancelled. The returned error
	// also wraps the context's cause.
	ErrCancelled = errors.New("krait: run cancelled")
)

// DispatchError describes a lifecycle hook that failed. The remaining layers
// of the node's chain were not invoked for that call.
type DispatchError struct {
	Node  string // node name
	Index int    // node position in the tree
	Layer string // layer whose hook failed
	Hook  Hook
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("krait: %s hook of layer %q on node %q (#%d): %v",
		e.Hook, e.Layer, e.Node, e.Index, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
