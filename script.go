package tether

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Slot   string  `json:"slot,omitempty"`
	Value  float64 `json:"value,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON input script one step per frame. It is a
// [Device]: add it with [ToolSystem.AddDevice] and it injects its steps
// through the same queue real devices use, which makes recorded interaction
// sequences replayable in automated tests and demos.
//
// Supported actions: "press", "release", "click" and "axis" (slot events),
// "pointer" (a transform event at x, y) and "wait" (idle for frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script scriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("tether: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("tether: parse input script: no steps")
	}
	for _, st := range script.Steps {
		switch st.Action {
		case "press", "release", "click", "axis", "pointer", "wait":
		default:
			return nil, fmt.Errorf("tether: parse input script: unknown action %q", st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Poll executes the next step. Implements [Device]; the clock parameter is
// unused because steps are frame-based, not time-based.
func (r *ScriptRunner) Poll(sys *ToolSystem, _ time.Time) {
	r.step(sys)
}

// step advances the script by one frame.
func (r *ScriptRunner) step(sys *ToolSystem) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		sys.InjectPress(st.Slot)
	case "release":
		sys.InjectRelease(st.Slot)
	case "click":
		sys.InjectClick(st.Slot)
	case "axis":
		sys.InjectAxis(st.Slot, st.Value)
	case "pointer":
		m := Identity
		m[4], m[5] = st.X, st.Y
		sys.InjectTransform(st.Slot, m)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
