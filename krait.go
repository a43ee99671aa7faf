package krait

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Version is the library version reported by the krait command.
const Version = "0.1.0"

// Vec2 is a 2D vector used for positions, pointer coordinates and input
// directions.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Key identifies a keyboard key. Keys use Ebitengine's names ("A", "Space",
// "ArrowUp", ...) when read from text.
type Key = ebiten.Key

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Hook identifies one of the three lifecycle events a layer can handle.
type Hook uint8

const (
	HookReady    Hook = iota // fires once per node before the first frame
	HookUpdate               // fires every frame with the frame delta
	HookKeyInput             // fires on frames where at least one key is held
)

// String returns the hook's name.
func (h Hook) String() string {
	switch h {
	case HookReady:
		return "ready"
	case HookUpdate:
		return "update"
	case HookKeyInput:
		return "on_key_input"
	default:
		return "unknown"
	}
}
