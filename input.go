package krait

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Input is a point-in-time view of the keyboard and pointer. Queries have no
// side effects and there is no event queue: a key is either held or not.
type Input interface {
	AnyKeyPressed() bool
	PressedKeys() []Key
	PointerPosition() (x, y float64)
}

// FrameAdvancer is implemented by input sources that change state once per
// frame. The tree calls AdvanceFrame at the top of every iteration, before
// querying for pressed keys.
type FrameAdvancer interface {
	AdvanceFrame()
}

// Action is a named combination of keys that counts as held only when every
// key in it is held.
type Action []Key

// KeyDown reports whether key is held.
func KeyDown(in Input, key Key) bool {
	if in == nil {
		return false
	}
	return slices.Contains(in.PressedKeys(), key)
}

// ActionHeld reports whether every key of a is held. An empty action is never
// held.
func ActionHeld(in Input, a Action) bool {
	if in == nil || len(a) == 0 {
		return false
	}
	keys := in.PressedKeys()
	for _, k := range a {
		if !slices.Contains(keys, k) {
			return false
		}
	}
	return true
}

// Vector builds a unit direction from four keys. Y grows upward, so holding
// up alone yields (0, 1). Opposing keys cancel out.
func Vector(in Input, up, down, left, right Key) Vec2 {
	v := Vec2{
		X: axis(in, right) - axis(in, left),
		Y: axis(in, up) - axis(in, down),
	}
	return v.Normalized()
}

func axis(in Input, k Key) float64 {
	if KeyDown(in, k) {
		return 1
	}
	return 0
}

// Pointer returns the pointer position as a Vec2.
func Pointer(in Input) Vec2 {
	if in == nil {
		return Vec2{}
	}
	x, y := in.PointerPosition()
	return Vec2{x, y}
}

// RelativePointer returns the pointer position relative to origin.
func RelativePointer(in Input, origin Vec2) Vec2 {
	return Pointer(in).Sub(origin)
}

// Modifiers returns the modifier keys currently held. Either the generic or
// the side-specific key counts.
func Modifiers(in Input) KeyModifiers {
	if in == nil {
		return 0
	}
	var mods KeyModifiers
	for _, k := range in.PressedKeys() {
		switch k {
		case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
			mods |= ModShift
		case ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight:
			mods |= ModCtrl
		case ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight:
			mods |= ModAlt
		case ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
			mods |= ModMeta
		}
	}
	return mods
}

// EbitenInput reads keyboard and cursor state from Ebitengine. Its state only
// changes while an Ebitengine game loop is running (see RunWindowed).
type EbitenInput struct {
	keys []Key // reused buffer
}

// AnyKeyPressed reports whether at least one key is held.
func (e *EbitenInput) AnyKeyPressed() bool {
	return len(e.PressedKeys()) > 0
}

// PressedKeys returns the held keys. The slice is reused across calls and
// MUST NOT be retained.
func (e *EbitenInput) PressedKeys() []Key {
	e.keys = ebiten.AppendPressedKeys(e.keys[:0])
	return e.keys
}

// PointerPosition returns the cursor position in window coordinates.
func (e *EbitenInput) PointerPosition() (x, y float64) {
	cx, cy := ebiten.CursorPosition()
	return float64(cx), float64(cy)
}
