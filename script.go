package krait

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

const (
	actionPress   = "press"
	actionRelease = "release"
	actionMove    = "move"
	actionWait    = "wait"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `yaml:"action"`
	Keys   []string `yaml:"keys,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	Frames int      `yaml:"frames,omitempty"`

	keys []Key // parsed from Keys
}

// inputScript is the top-level structure of an input script.
type inputScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// LoadInputScript parses a YAML (or JSON) input script and returns a
// ScriptedInput that replays it one step per frame:
//
//	steps:
//	  - {action: press, keys: [ArrowUp]}
//	  - {action: wait, frames: 30}
//	  - {action: release}
//	  - {action: move, x: 120, y: 80}
func LoadInputScript(data []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case actionPress, actionRelease:
			if st.Action == actionPress && len(st.Keys) == 0 {
				return nil, fmt.Errorf("parse input script: step %d: press needs keys", i)
			}
			for _, name := range st.Keys {
				k, err := ParseKey(name)
				if err != nil {
					return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
				}
				st.keys = append(st.keys, k)
			}
		case actionMove, actionWait:
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptedInput{steps: script.Steps}, nil
}

// keyNames maps lower-cased Ebitengine key names to keys.
var keyNames = func() map[string]Key {
	m := make(map[string]Key, int(ebiten.KeyMax)+1)
	for k := Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// ParseKey resolves a key name such as "A", "space" or "ArrowUp".
// Matching is case-insensitive.
func ParseKey(name string) (Key, error) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}
