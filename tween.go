package tether

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AxisTween is a virtual device that eases a slot's axis value toward a
// target over a duration and enqueues the intermediate readings each poll.
// It synthesizes smooth input on a slot no physical device feeds — a scripted
// zoom axis, an attract-mode pointer, a fade parameter.
//
// Values are clamped and quantized through NewAxisState, so a tween ending
// exactly at 1 or -1 lands on the pressed sentinel and can gate tools.
//
// An AxisTween is one-shot: once finished it polls as a no-op. Done reports
// completion; create a new tween to run again.
type AxisTween struct {
	slot  *Slot
	tween *gween.Tween
	prev  time.Time
	done  bool
}

// NewAxisTween eases slot from one axis value to another over duration
// seconds using the given easing function.
func NewAxisTween(slot *Slot, from, to float64, duration float32, fn ease.TweenFunc) *AxisTween {
	return &AxisTween{
		slot:  slot,
		tween: gween.New(float32(from), float32(to), duration, fn),
	}
}

// Done reports whether the tween has emitted its final value.
func (t *AxisTween) Done() bool {
	return t.done
}

// Poll advances the tween by the wall time since the previous poll and
// enqueues the eased reading. The first poll establishes the time base and
// emits the starting value.
func (t *AxisTween) Poll(sys *ToolSystem, now time.Time) {
	if t.done {
		return
	}

	var dt float32
	if !t.prev.IsZero() {
		dt = float32(now.Sub(t.prev).Seconds())
	}
	t.prev = now

	v, finished := t.tween.Update(dt)
	sys.EnqueueAxis(t.slot, NewAxisState(float64(v)))
	t.done = finished
}
