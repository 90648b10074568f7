package tether

// SlotSet is a set of slots keyed by interned identity.
type SlotSet map[*Slot]struct{}

// Contains reports whether the set holds slot.
func (s SlotSet) Contains(slot *Slot) bool {
	_, ok := s[slot]
	return ok
}

// bindingSet is a set of bindings.
type bindingSet map[*Binding]struct{}

// SlotManager owns the compiled virtual-mapping graph and the live routing
// indices. It answers two questions for the dispatcher: which physical
// triggers feed a given slot, and which bindings care about a given trigger
// right now.
//
// Four cross-referenced indices are maintained incrementally:
//
//	activatable  trigger → gated bindings currently INACTIVE
//	active       trigger → ACTIVE bindings listening on that trigger
//	deactivation trigger → gated bindings currently ACTIVE awaiting release
//	tracked      binding → the resolved trigger set it is presently under
//
// plus a per-binding forward map from physical trigger to the virtual slot
// the tool believes it is reading.
//
// A single dispatcher mutates these maps between fully-processed events;
// nothing here locks because nothing else may touch them mid-event.
type SlotManager struct {
	registry *Registry

	// Adjacency compiled once from the configuration. The resolver walks
	// sources (target → its source slots); targets is kept for inspection.
	sources map[*Slot]SlotSet
	targets map[*Slot]SlotSet

	activatable  map[*Slot]bindingSet
	active       map[*Slot]bindingSet
	deactivation map[*Slot]bindingSet
	tracked      map[*Binding]SlotSet
	forward      map[*Binding]map[*Slot]*Slot

	// activationTriggers caches each gated binding's resolved activation
	// trigger set. Activation slots are fixed at registration and the
	// mapping graph is static, so this never goes stale.
	activationTriggers map[*Binding]SlotSet
}

// NewSlotManager compiles the configuration's mapping list into both
// adjacency directions and returns a manager with empty indices.
func NewSlotManager(registry *Registry, cfg *Config) *SlotManager {
	m := &SlotManager{
		registry:           registry,
		sources:            make(map[*Slot]SlotSet),
		targets:            make(map[*Slot]SlotSet),
		activatable:        make(map[*Slot]bindingSet),
		active:             make(map[*Slot]bindingSet),
		deactivation:       make(map[*Slot]bindingSet),
		tracked:            make(map[*Binding]SlotSet),
		forward:            make(map[*Binding]map[*Slot]*Slot),
		activationTriggers: make(map[*Binding]SlotSet),
	}
	if cfg != nil {
		for _, mapping := range cfg.Mappings {
			m.addMapping(registry.Slot(mapping.Source), registry.Slot(mapping.Target))
		}
	}
	return m
}

// addMapping records source → target in both adjacency directions.
func (m *SlotManager) addMapping(source, target *Slot) {
	if m.sources[target] == nil {
		m.sources[target] = make(SlotSet)
	}
	m.sources[target][source] = struct{}{}
	if m.targets[source] == nil {
		m.targets[source] = make(SlotSet)
	}
	m.targets[source][target] = struct{}{}
}

// ResolveSlot reduces a slot to the set of physical triggers that feed it.
// A slot with no incoming mapping is its own trigger: the result is exactly
// {slot}. A mapped slot never appears in any result — only its transitive
// trigger ancestors do. A cycle in the mapping configuration yields a
// CyclicMappingError.
func (m *SlotManager) ResolveSlot(slot *Slot) (SlotSet, error) {
	out := make(SlotSet)
	if err := m.resolve(slot, out, make(SlotSet)); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *SlotManager) resolve(slot *Slot, out, visiting SlotSet) error {
	if visiting.Contains(slot) {
		return &CyclicMappingError{Slot: slot}
	}
	srcs := m.sources[slot]
	if len(srcs) == 0 {
		out[slot] = struct{}{}
		return nil
	}
	visiting[slot] = struct{}{}
	for src := range srcs {
		if err := m.resolve(src, out, visiting); err != nil {
			return err
		}
	}
	delete(visiting, slot)
	return nil
}

// resolveInto resolves one virtual slot and, for every trigger found, records
// the binding's forward mapping trigger → virtual and adds the trigger to
// trigs.
func (m *SlotManager) resolveInto(b *Binding, virtual *Slot, trigs SlotSet) error {
	resolved, err := m.ResolveSlot(virtual)
	if err != nil {
		return err
	}
	fw := m.forward[b]
	for t := range resolved {
		fw[t] = virtual
		trigs[t] = struct{}{}
	}
	return nil
}

// currentTriggers resolves the binding's present CurrentSlots into a fresh
// trigger set, updating the forward map along the way.
func (m *SlotManager) currentTriggers(b *Binding) (SlotSet, error) {
	trigs := make(SlotSet)
	for _, virtual := range b.currentSlots(m.registry) {
		if err := m.resolveInto(b, virtual, trigs); err != nil {
			return nil, err
		}
	}
	return trigs, nil
}

// Register adds a binding to the indices according to its kind.
//
// Always-active bindings go straight into the active index for every trigger
// of their current slots. Gated bindings go into the activatable index for
// every trigger of their activation slots.
func (m *SlotManager) Register(b *Binding) error {
	m.forward[b] = make(map[*Slot]*Slot)

	if b.alwaysActive {
		trigs, err := m.currentTriggers(b)
		if err != nil {
			return err
		}
		for t := range trigs {
			m.addIndex(m.active, t, b)
		}
		m.tracked[b] = trigs
		return nil
	}

	trigs := make(SlotSet)
	for _, act := range b.activation {
		if err := m.resolveInto(b, act, trigs); err != nil {
			return err
		}
	}
	for t := range trigs {
		m.addIndex(m.activatable, t, b)
	}
	m.activationTriggers[b] = trigs
	// Until activation, the binding is tracked under its activation triggers.
	m.tracked[b] = copySet(trigs)
	return nil
}

// Unregister removes a binding from every index and clears its bookkeeping,
// restoring the state from before Register.
func (m *SlotManager) Unregister(b *Binding) {
	for t := range m.forward[b] {
		m.removeIndex(m.activatable, t, b)
		m.removeIndex(m.active, t, b)
		m.removeIndex(m.deactivation, t, b)
	}
	// Forward entries for removed current slots are deleted eagerly, so the
	// tracked set may hold triggers the forward map no longer does.
	for t := range m.tracked[b] {
		m.removeIndex(m.activatable, t, b)
		m.removeIndex(m.active, t, b)
		m.removeIndex(m.deactivation, t, b)
	}
	delete(m.tracked, b)
	delete(m.forward, b)
	delete(m.activationTriggers, b)
}

// UpdateMaps reconciles the indices after one event's callbacks have run.
// It is called exactly once per processed event, before the next event is
// read, with three disjoint groups:
//
//  1. activated — bindings that transitioned INACTIVE→ACTIVE this event.
//  2. deactivated — bindings that transitioned ACTIVE→INACTIVE this event.
//  3. stillActive — bindings that stayed ACTIVE; their CurrentSlots may have
//     been mutated by callbacks, so the resolved trigger set is recomputed,
//     diffed against the previous snapshot, and only the delta applied.
func (m *SlotManager) UpdateMaps(stillActive, activated, deactivated []*Binding) error {
	for _, b := range activated {
		trigs, err := m.currentTriggers(b)
		if err != nil {
			return err
		}
		for t := range trigs {
			m.addIndex(m.active, t, b)
		}
		m.tracked[b] = trigs

		// The activation triggers flip roles: no longer activation
		// candidates, now deactivation candidates.
		for t := range m.activationTriggers[b] {
			m.removeIndex(m.activatable, t, b)
			m.addIndex(m.deactivation, t, b)
		}
	}

	for _, b := range deactivated {
		actTrigs := m.activationTriggers[b]
		for t := range m.tracked[b] {
			m.removeIndex(m.active, t, b)
			if !actTrigs.Contains(t) {
				delete(m.forward[b], t)
			}
		}
		for t := range actTrigs {
			m.removeIndex(m.deactivation, t, b)
			m.addIndex(m.activatable, t, b)
		}
		// Re-record forward entries for the activation slots: a shared
		// trigger's entry may have been claimed by a current slot while
		// active.
		fw := m.forward[b]
		for _, act := range b.activation {
			resolved, err := m.ResolveSlot(act)
			if err != nil {
				return err
			}
			for t := range resolved {
				fw[t] = act
			}
		}
		m.tracked[b] = copySet(actTrigs)
	}

	for _, b := range stillActive {
		newTrigs, err := m.currentTriggers(b)
		if err != nil {
			return err
		}
		old := m.tracked[b]
		actTrigs := m.activationTriggers[b]
		for t := range newTrigs {
			if !old.Contains(t) {
				m.addIndex(m.active, t, b)
			}
		}
		for t := range old {
			if !newTrigs.Contains(t) {
				m.removeIndex(m.active, t, b)
				if !actTrigs.Contains(t) {
					delete(m.forward[b], t)
				}
			}
		}
		m.tracked[b] = newTrigs
	}

	return nil
}

// ResolveSlotForTool returns the virtual slot the binding believes it is
// reading when the given physical trigger fires. Falls back to the physical
// slot itself when no forward mapping exists.
func (m *SlotManager) ResolveSlotForTool(b *Binding, physical *Slot) *Slot {
	if fw := m.forward[b]; fw != nil {
		if virtual, ok := fw[physical]; ok {
			return virtual
		}
	}
	return physical
}

// TrackedSlots returns the binding's current resolved trigger snapshot.
// The returned set MUST NOT be mutated by the caller.
func (m *SlotManager) TrackedSlots(b *Binding) SlotSet {
	return m.tracked[b]
}

// --- candidate lookups for the dispatcher ---

func (m *SlotManager) activatableAt(slot *Slot) bindingSet {
	return m.activatable[slot]
}

func (m *SlotManager) activeAt(slot *Slot) bindingSet {
	return m.active[slot]
}

func (m *SlotManager) deactivationAt(slot *Slot) bindingSet {
	return m.deactivation[slot]
}

// --- index helpers ---

func (m *SlotManager) addIndex(index map[*Slot]bindingSet, slot *Slot, b *Binding) {
	set := index[slot]
	if set == nil {
		set = make(bindingSet)
		index[slot] = set
	}
	set[b] = struct{}{}
}

func (m *SlotManager) removeIndex(index map[*Slot]bindingSet, slot *Slot, b *Binding) {
	set := index[slot]
	if set == nil {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(index, slot)
	}
}

func copySet(s SlotSet) SlotSet {
	out := make(SlotSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
