package tether

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestAxisTweenEmitsEasedReadings(t *testing.T) {
	sys := NewToolSystem(&Config{})
	var values []float64
	rt := &recordingTool{current: []string{"Zoom"}}
	rt.onPerform = func(ctx *Context) {
		a, err := ctx.AxisState("Zoom")
		if err != nil {
			t.Fatalf("AxisState: %v", err)
		}
		values = append(values, a.Float())
	}
	mustAddTool(t, sys, rt, NewPath())

	tw := NewAxisTween(sys.Slot("Zoom"), 0, 1, 1.0, ease.Linear)
	t0 := time.Now()
	tw.Poll(sys, t0)                            // establishes the time base, emits 0
	tw.Poll(sys, t0.Add(500*time.Millisecond))  // halfway
	tw.Poll(sys, t0.Add(1500*time.Millisecond)) // past the end, clamps to 1
	mustProcess(t, sys)

	if !tw.Done() {
		t.Error("tween should be done after running past its duration")
	}
	if len(values) != 3 {
		t.Fatalf("performs = %d, want 3", len(values))
	}
	if values[0] != 0 {
		t.Errorf("first reading = %v, want 0", values[0])
	}
	if values[1] < 0.45 || values[1] > 0.55 {
		t.Errorf("halfway reading = %v, want ~0.5", values[1])
	}
	if values[2] != 1 {
		t.Errorf("final reading = %v, want 1", values[2])
	}
}

// A tween ending at 1 lands on the pressed sentinel, so it can gate tools.
func TestAxisTweenReachesPressedSentinel(t *testing.T) {
	sys := NewToolSystem(&Config{})
	rt := &recordingTool{activation: []string{"Zoom"}}
	mustAddTool(t, sys, rt, NewPath())

	tw := NewAxisTween(sys.Slot("Zoom"), 0, 1, 0.5, ease.Linear)
	t0 := time.Now()
	tw.Poll(sys, t0)
	tw.Poll(sys, t0.Add(time.Second))
	mustProcess(t, sys)

	if rt.activates != 1 {
		t.Errorf("activates = %d, want 1 (tween endpoint is an exact press)", rt.activates)
	}
}

func TestAxisTweenDoneStopsEmitting(t *testing.T) {
	sys := NewToolSystem(&Config{})
	tw := NewAxisTween(sys.Slot("Zoom"), 0, 1, 0.1, ease.Linear)
	t0 := time.Now()
	tw.Poll(sys, t0)
	tw.Poll(sys, t0.Add(time.Second))
	if !tw.Done() {
		t.Fatal("tween should be done")
	}
	before := sys.queue.len()
	tw.Poll(sys, t0.Add(2*time.Second))
	if sys.queue.len() != before {
		t.Error("a finished tween must not enqueue")
	}
}
