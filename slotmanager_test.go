package tether

import (
	"errors"
	"testing"
)

// chainConfig routes RawButtonA → PrimaryAction → ZoomActivation.
func chainConfig() *Config {
	return &Config{Mappings: []SlotMapping{
		{Source: "RawButtonA", Target: "PrimaryAction"},
		{Source: "PrimaryAction", Target: "ZoomActivation"},
	}}
}

func newManager(cfg *Config) (*Registry, *SlotManager) {
	reg := NewRegistry()
	return reg, NewSlotManager(reg, cfg)
}

func assertResolves(t *testing.T, m *SlotManager, slot *Slot, want ...*Slot) {
	t.Helper()
	got, err := m.ResolveSlot(slot)
	if err != nil {
		t.Fatalf("ResolveSlot(%v): %v", slot, err)
	}
	if len(got) != len(want) {
		t.Fatalf("ResolveSlot(%v) = %v, want %v", slot, got, want)
	}
	for _, w := range want {
		if !got.Contains(w) {
			t.Fatalf("ResolveSlot(%v) = %v, missing %v", slot, got, w)
		}
	}
}

// --- resolution ---

func TestResolveUnmappedSlotIsItself(t *testing.T) {
	reg, m := newManager(nil)
	s := reg.Slot("Loose")
	assertResolves(t, m, s, s)
}

func TestResolveChain(t *testing.T) {
	reg, m := newManager(chainConfig())
	a := reg.Slot("RawButtonA")
	b := reg.Slot("PrimaryAction")
	c := reg.Slot("ZoomActivation")

	// The whole chain reduces to the physical trigger; the intermediate
	// virtual slot never appears in any result.
	assertResolves(t, m, c, a)
	assertResolves(t, m, b, a)
	assertResolves(t, m, a, a)
}

func TestResolveMultipleSources(t *testing.T) {
	reg, m := newManager(&Config{Mappings: []SlotMapping{
		{Source: "KeyEnter", Target: "PrimaryAction"},
		{Source: "LeftButton", Target: "PrimaryAction"},
	}})
	assertResolves(t, m, reg.Slot("PrimaryAction"),
		reg.Slot("KeyEnter"), reg.Slot("LeftButton"))
}

func TestResolveCycleErrors(t *testing.T) {
	reg, m := newManager(&Config{Mappings: []SlotMapping{
		{Source: "A", Target: "B"},
		{Source: "B", Target: "A"},
	}})
	_, err := m.ResolveSlot(reg.Slot("A"))
	if err == nil {
		t.Fatal("cyclic mapping should error, not recurse")
	}
	var cyclic *CyclicMappingError
	if !errors.As(err, &cyclic) {
		t.Errorf("error = %T, want *CyclicMappingError", err)
	}
}

func TestResolveSelfCycleErrors(t *testing.T) {
	reg, m := newManager(&Config{Mappings: []SlotMapping{
		{Source: "A", Target: "A"},
	}})
	if _, err := m.ResolveSlot(reg.Slot("A")); err == nil {
		t.Fatal("self-mapping should error")
	}
}

// --- registration ---

func gatedBinding(reg *Registry, activation, current []string) (*Binding, *recordingTool) {
	rt := &recordingTool{activation: activation, current: current}
	b := &Binding{tool: rt}
	for _, name := range activation {
		b.activation = append(b.activation, reg.Slot(name))
	}
	b.alwaysActive = len(activation) == 0
	b.active = b.alwaysActive
	return b, rt
}

func TestRegisterGatedPopulatesActivatable(t *testing.T) {
	reg, m := newManager(chainConfig())
	b, _ := gatedBinding(reg, []string{"ZoomActivation"}, []string{"PointerTransformation"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}

	trigger := reg.Slot("RawButtonA")
	if _, ok := m.activatableAt(trigger)[b]; !ok {
		t.Error("gated binding should be activatable on its resolved trigger")
	}
	if len(m.activeAt(trigger)) != 0 {
		t.Error("gated binding must not be active before activation")
	}
	if got := m.ResolveSlotForTool(b, trigger); got != reg.Slot("ZoomActivation") {
		t.Errorf("forward mapping = %v, want ZoomActivation", got)
	}
}

func TestRegisterAlwaysActivePopulatesActive(t *testing.T) {
	reg, m := newManager(chainConfig())
	b, _ := gatedBinding(reg, nil, []string{"ZoomActivation"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}

	trigger := reg.Slot("RawButtonA")
	if _, ok := m.activeAt(trigger)[b]; !ok {
		t.Error("always-active binding should be in the active index for every trigger")
	}
	if len(m.activatableAt(trigger)) != 0 {
		t.Error("always-active binding must never be activatable")
	}
	if !m.TrackedSlots(b).Contains(trigger) {
		t.Error("tracked set should hold the resolved trigger")
	}
}

func TestRegisterThenUnregisterRestoresIndices(t *testing.T) {
	reg, m := newManager(chainConfig())

	for _, activation := range [][]string{
		{"ZoomActivation"}, // gated
		nil,                // always active
	} {
		b, _ := gatedBinding(reg, activation, []string{"PrimaryAction"})
		if err := m.Register(b); err != nil {
			t.Fatal(err)
		}
		m.Unregister(b)

		if len(m.activatable) != 0 || len(m.active) != 0 || len(m.deactivation) != 0 {
			t.Errorf("activation=%v: slot indices not empty after unregister", activation)
		}
		if len(m.tracked) != 0 || len(m.forward) != 0 || len(m.activationTriggers) != 0 {
			t.Errorf("activation=%v: per-binding bookkeeping not cleared", activation)
		}
	}
}

func TestRegisterCyclicCurrentSlotErrors(t *testing.T) {
	reg, m := newManager(&Config{Mappings: []SlotMapping{
		{Source: "A", Target: "B"},
		{Source: "B", Target: "A"},
	}})
	b, _ := gatedBinding(reg, nil, []string{"A"})
	if err := m.Register(b); err == nil {
		t.Error("registering over a cyclic mapping should error")
	}
}

// --- updateMaps ---

func TestUpdateMapsActivation(t *testing.T) {
	reg, m := newManager(chainConfig())
	b, _ := gatedBinding(reg, []string{"ZoomActivation"}, []string{"PointerTransformation"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}

	b.active = true
	if err := m.UpdateMaps(nil, []*Binding{b}, nil); err != nil {
		t.Fatal(err)
	}

	actTrigger := reg.Slot("RawButtonA")
	curTrigger := reg.Slot("PointerTransformation")

	if len(m.activatableAt(actTrigger)) != 0 {
		t.Error("activated binding should leave the activatable index")
	}
	if _, ok := m.deactivationAt(actTrigger)[b]; !ok {
		t.Error("activated binding should enter the deactivation index")
	}
	if _, ok := m.activeAt(curTrigger)[b]; !ok {
		t.Error("activated binding should be active on its current-slot trigger")
	}
	if !m.TrackedSlots(b).Contains(curTrigger) {
		t.Error("tracked set should snapshot the current-slot triggers")
	}
}

func TestUpdateMapsDeactivation(t *testing.T) {
	reg, m := newManager(chainConfig())
	b, _ := gatedBinding(reg, []string{"ZoomActivation"}, []string{"PointerTransformation"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}
	b.active = true
	if err := m.UpdateMaps(nil, []*Binding{b}, nil); err != nil {
		t.Fatal(err)
	}

	b.active = false
	if err := m.UpdateMaps(nil, nil, []*Binding{b}); err != nil {
		t.Fatal(err)
	}

	actTrigger := reg.Slot("RawButtonA")
	curTrigger := reg.Slot("PointerTransformation")

	if _, ok := m.activatableAt(actTrigger)[b]; !ok {
		t.Error("deactivated binding should return to the activatable index")
	}
	if len(m.deactivationAt(actTrigger)) != 0 {
		t.Error("deactivated binding should leave the deactivation index")
	}
	if len(m.activeAt(curTrigger)) != 0 {
		t.Error("deactivated binding should leave the active index")
	}
	if !m.TrackedSlots(b).Contains(actTrigger) {
		t.Error("tracked set should reset to the activation triggers")
	}
	if got := m.ResolveSlotForTool(b, actTrigger); got != reg.Slot("ZoomActivation") {
		t.Errorf("forward mapping after deactivation = %v, want ZoomActivation", got)
	}
}

func TestUpdateMapsStillActiveDelta(t *testing.T) {
	reg, m := newManager(nil)
	b, rt := gatedBinding(reg, []string{"Gate"}, []string{"AxisOne"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}
	b.active = true
	if err := m.UpdateMaps(nil, []*Binding{b}, nil); err != nil {
		t.Fatal(err)
	}

	one := reg.Slot("AxisOne")
	two := reg.Slot("AxisTwo")
	if _, ok := m.activeAt(one)[b]; !ok {
		t.Fatal("precondition: active on AxisOne")
	}

	// The tool swaps its current slots mid-activation; only the delta is
	// applied.
	rt.current = []string{"AxisTwo"}
	if err := m.UpdateMaps([]*Binding{b}, nil, nil); err != nil {
		t.Fatal(err)
	}

	if len(m.activeAt(one)) != 0 {
		t.Error("removed slot should leave the active index")
	}
	if _, ok := m.activeAt(two)[b]; !ok {
		t.Error("added slot should enter the active index")
	}
	if m.TrackedSlots(b).Contains(one) || !m.TrackedSlots(b).Contains(two) {
		t.Error("tracked set should follow the delta")
	}
	if got := m.ResolveSlotForTool(b, one); got != one {
		t.Errorf("stale forward mapping survived: %v", got)
	}
}

func TestResolveSlotForToolFallback(t *testing.T) {
	reg, m := newManager(nil)
	b, _ := gatedBinding(reg, []string{"Gate"}, nil)
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}
	phys := reg.Slot("Unmapped")
	if got := m.ResolveSlotForTool(b, phys); got != phys {
		t.Errorf("unmapped trigger should fall back to itself, got %v", got)
	}
}

// A gated binding is never in both activatable and active for one trigger.
func TestActivatableActiveDisjoint(t *testing.T) {
	reg, m := newManager(nil)
	// Current slots equal the activation slot: worst case for overlap.
	b, _ := gatedBinding(reg, []string{"Gate"}, []string{"Gate"})
	if err := m.Register(b); err != nil {
		t.Fatal(err)
	}
	gate := reg.Slot("Gate")

	checkDisjoint := func(stage string) {
		t.Helper()
		_, inActivatable := m.activatableAt(gate)[b]
		_, inActive := m.activeAt(gate)[b]
		if inActivatable && inActive {
			t.Errorf("%s: binding in both activatable and active for %v", stage, gate)
		}
	}

	checkDisjoint("registered")
	b.active = true
	if err := m.UpdateMaps(nil, []*Binding{b}, nil); err != nil {
		t.Fatal(err)
	}
	checkDisjoint("activated")
	b.active = false
	if err := m.UpdateMaps(nil, nil, []*Binding{b}); err != nil {
		t.Fatal(err)
	}
	checkDisjoint("deactivated")
}
