package krait

import "slices"

// ScriptedInput is an Input whose state is set by code or by a step script
// instead of a device. Immediate calls (Press, Release, MovePointer) change
// state right away; queued steps are consumed one per frame by AdvanceFrame,
// which the tree calls at the top of every iteration.
type ScriptedInput struct {
	held []Key // sorted, unique
	x, y float64

	steps     []scriptStep
	cursor    int
	waitCount int
}

// NewScriptedInput returns an input with no keys held and the pointer at the
// origin.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{}
}

// AnyKeyPressed reports whether at least one key is held.
func (s *ScriptedInput) AnyKeyPressed() bool {
	return len(s.held) > 0
}

// PressedKeys returns the held keys in ascending order. The returned slice
// MUST NOT be mutated.
func (s *ScriptedInput) PressedKeys() []Key {
	return s.held
}

// PointerPosition returns the last position set by MovePointer.
func (s *ScriptedInput) PointerPosition() (x, y float64) {
	return s.x, s.y
}

// Press marks keys as held. Keys already held stay held.
func (s *ScriptedInput) Press(keys ...Key) {
	for _, k := range keys {
		i, found := slices.BinarySearch(s.held, k)
		if !found {
			s.held = slices.Insert(s.held, i, k)
		}
	}
}

// Release marks keys as no longer held.
func (s *ScriptedInput) Release(keys ...Key) {
	for _, k := range keys {
		if i, found := slices.BinarySearch(s.held, k); found {
			s.held = slices.Delete(s.held, i, i+1)
		}
	}
}

// ReleaseAll releases every held key.
func (s *ScriptedInput) ReleaseAll() {
	s.held = s.held[:0]
}

// MovePointer sets the pointer position.
func (s *ScriptedInput) MovePointer(x, y float64) {
	s.x, s.y = x, y
}

// QueuePress queues a press of keys for a future frame.
func (s *ScriptedInput) QueuePress(keys ...Key) {
	s.steps = append(s.steps, scriptStep{Action: actionPress, keys: keys})
}

// QueueRelease queues a release of keys for a future frame. With no keys, every
// held key is released.
func (s *ScriptedInput) QueueRelease(keys ...Key) {
	s.steps = append(s.steps, scriptStep{Action: actionRelease, keys: keys})
}

// QueueMove queues a pointer move for a future frame.
func (s *ScriptedInput) QueueMove(x, y float64) {
	s.steps = append(s.steps, scriptStep{Action: actionMove, X: x, Y: y})
}

// QueueWait queues a pause of the given number of frames. The frame that
// consumes the wait counts as the first one.
func (s *ScriptedInput) QueueWait(frames int) {
	s.steps = append(s.steps, scriptStep{Action: actionWait, Frames: frames})
}

// QueueTap queues a press of key held for the given number of frames followed
// by its release. Minimum is one frame.
func (s *ScriptedInput) QueueTap(key Key, frames int) {
	if frames < 1 {
		frames = 1
	}
	s.QueuePress(key)
	if frames > 1 {
		s.QueueWait(frames - 1)
	}
	s.QueueRelease(key)
}

// AdvanceFrame consumes at most one queued step.
func (s *ScriptedInput) AdvanceFrame() {
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		return
	}
	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case actionPress:
		s.Press(st.keys...)
	case actionRelease:
		if len(st.keys) == 0 {
			s.ReleaseAll()
		} else {
			s.Release(st.keys...)
		}
	case actionMove:
		s.MovePointer(st.X, st.Y)
	case actionWait:
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
}

// Pending returns the number of queued steps not yet consumed.
func (s *ScriptedInput) Pending() int {
	return len(s.steps) - s.cursor
}

// Done reports whether every queued step has run and no wait is in progress.
func (s *ScriptedInput) Done() bool {
	return s.cursor >= len(s.steps) && s.waitCount == 0
}
