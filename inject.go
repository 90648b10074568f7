package tether

// Synthetic input injection. Injected events go through the same queue and
// dispatch path as device events, so tests and automated drivers exercise
// exactly the code real input does.

// InjectPress enqueues an exact pressed reading on the named slot.
func (s *ToolSystem) InjectPress(slot string) {
	s.EnqueueAxis(s.registry.Slot(slot), AxisPressed)
}

// InjectRelease enqueues an exact released reading on the named slot.
func (s *ToolSystem) InjectRelease(slot string) {
	s.EnqueueAxis(s.registry.Slot(slot), AxisOrigin)
}

// InjectAxis enqueues a continuous reading on the named slot.
// Values outside [-1, 1] are clamped; 1 and -1 land on the pressed sentinels.
func (s *ToolSystem) InjectAxis(slot string, v float64) {
	s.EnqueueAxis(s.registry.Slot(slot), NewAxisState(v))
}

// InjectTransform enqueues a transform reading on the named slot.
func (s *ToolSystem) InjectTransform(slot string, m Matrix) {
	s.EnqueueTransform(s.registry.Slot(slot), m)
}

// InjectClick is a convenience that enqueues a press followed by a release
// on the same slot.
func (s *ToolSystem) InjectClick(slot string) {
	s.InjectPress(slot)
	s.InjectRelease(slot)
}
