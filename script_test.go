package tether

import (
	"testing"
	"time"
)

const dragScript = `{
	"steps": [
		{"action": "pointer", "slot": "PointerTransformation", "x": 10, "y": 10},
		{"action": "press", "slot": "PrimaryAction"},
		{"action": "pointer", "slot": "PointerTransformation", "x": 25, "y": 14},
		{"action": "wait", "frames": 2},
		{"action": "release", "slot": "PrimaryAction"}
	]
}`

func TestLoadScriptRejectsBadInput(t *testing.T) {
	if _, err := LoadScript([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Fatal("expected error for empty script")
	}
	if _, err := LoadScript([]byte(`{"steps": [{"action": "teleport"}]}`)); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestScriptRunnerDrivesTool(t *testing.T) {
	sys := NewToolSystem(&Config{})
	tool := &recordingTool{
		activation: []string{"PrimaryAction"},
		current:    []string{"PointerTransformation"},
	}
	mustAddTool(t, sys, tool, NewPath(NewNode("root")))

	runner, err := LoadScript([]byte(dragScript))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	sys.AddDevice(runner)

	frames := 0
	for !runner.Done() {
		if err := sys.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
		frames++
		if frames > 20 {
			t.Fatal("script did not finish")
		}
	}

	// pointer, press, pointer, wait(2 frames), release
	if frames != 6 {
		t.Fatalf("frames = %d, want 6", frames)
	}
	if tool.activates != 1 {
		t.Fatalf("activates = %d, want 1", tool.activates)
	}
	if tool.performs != 1 {
		t.Fatalf("performs = %d, want 1", tool.performs)
	}
	if tool.deactivates != 1 {
		t.Fatalf("deactivates = %d, want 1", tool.deactivates)
	}
}

func TestScriptRunnerWaitIdles(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "press", "slot": "PrimaryAction"}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	sys := NewToolSystem(&Config{})
	for i := 0; i < 3; i++ {
		runner.Poll(sys, time.Now())
		if runner.Done() {
			t.Fatalf("done after %d frames, still waiting", i+1)
		}
	}
	runner.Poll(sys, time.Now())
	if !runner.Done() {
		t.Fatal("expected script to be done")
	}
}
