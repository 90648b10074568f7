package tether

import "math"

// axisMax is the quantization ceiling for axis values. A continuous reading
// in [-1, 1] is scaled into [-axisMax, axisMax]; the endpoints double as the
// exact pressed sentinels.
const axisMax = math.MaxInt32

// AxisState is the quantized reading of a button or axis at one instant.
// It is a value object: devices create one per event, nothing mutates it.
//
// Buttons use the three sentinels: [AxisPressed] (+max), [AxisOrigin] (0) and
// [AxisMinusPressed] (-max). Activation and deactivation decisions compare
// against these exactly, never with an epsilon, so quantization can never
// produce a missed or duplicated press/release transition. Continuous axes
// carry any value in between. Whole numbers outside the quantization domain
// are stored verbatim, which lets absolute counters (the system timer) ride
// the same type.
type AxisState struct {
	value int64
}

// Sentinel axis states.
var (
	AxisPressed      = AxisState{value: axisMax}  // button fully pressed
	AxisOrigin       = AxisState{value: 0}        // button released / axis at rest
	AxisMinusPressed = AxisState{value: -axisMax} // axis pressed to its negative stop
)

// NewAxisState quantizes a continuous reading. The input is clamped to
// [-1, 1] first, so 1.0 and -1.0 map exactly onto the pressed sentinels.
func NewAxisState(v float64) AxisState {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return AxisState{value: int64(v * axisMax)}
}

// NewAxisStateInt stores a whole-number reading verbatim. Values inside
// [-axisMax, axisMax] behave like quantized readings; values outside are
// absolute counters and are reported unchanged by Int.
func NewAxisStateInt(v int64) AxisState {
	return AxisState{value: v}
}

// Int returns the raw internal value.
func (a AxisState) Int() int64 {
	return a.value
}

// Float returns the reading scaled back to the continuous domain.
// For absolute counters this exceeds [-1, 1].
func (a AxisState) Float() float64 {
	return float64(a.value) / axisMax
}

// IsPressed reports whether this is exactly the positive or negative
// pressed sentinel.
func (a AxisState) IsPressed() bool {
	return a.value == axisMax || a.value == -axisMax
}

// IsReleased reports whether this is exactly the origin sentinel.
func (a AxisState) IsReleased() bool {
	return a.value == 0
}

// String implements fmt.Stringer.
func (a AxisState) String() string {
	switch {
	case a.value == axisMax:
		return "PRESSED"
	case a.value == -axisMax:
		return "-PRESSED"
	case a.value == 0:
		return "ORIGIN"
	}
	return "axis"
}
