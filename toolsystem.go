package tether

import (
	"fmt"
	"time"
)

// ToolSystem orchestrates tool bindings: it owns the slot registry, the
// compiled routing graph, the event queue and every binding's activation
// state machine.
//
// The system is single-threaded by contract, like the rest of tether: one
// goroutine calls Update (or ProcessEvents) and all tool callbacks run on it
// synchronously. Devices poll and enqueue from that same loop. The routing
// indices are mutated only between fully-processed events, so a concurrent
// caller would have to serialize the whole Update call, not individual
// methods.
type ToolSystem struct {
	registry *Registry
	slots    *SlotManager

	bindings []*Binding
	devices  []Device

	queue      eventQueue
	axisValues map[*Slot]AxisState
	transforms map[*Slot]Matrix

	picker PickSystem
	viewer Viewer

	start time.Time
	debug bool

	// draining guards against re-entrant ProcessEvents from a tool callback.
	draining bool
}

// NewToolSystem creates a system from the given routing configuration.
// A nil cfg uses DefaultConfig. Constant entries are enqueued immediately so
// their values are in place before the first device event is processed.
func NewToolSystem(cfg *Config) *ToolSystem {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	registry := NewRegistry()
	s := &ToolSystem{
		registry:   registry,
		slots:      NewSlotManager(registry, cfg),
		axisValues: make(map[*Slot]AxisState),
		transforms: make(map[*Slot]Matrix),
		start:      time.Now(),
	}
	for _, c := range cfg.Constants {
		s.queue.push(Event{Slot: registry.Slot(c.Slot), Axis: NewAxisState(c.Value)})
	}
	return s
}

// Registry returns the system's slot registry.
func (s *ToolSystem) Registry() *Registry {
	return s.registry
}

// SlotManager returns the system's routing index manager.
func (s *ToolSystem) SlotManager() *SlotManager {
	return s.slots
}

// Slot interns a slot name in the system's registry.
func (s *ToolSystem) Slot(name string) *Slot {
	return s.registry.Slot(name)
}

// Now returns milliseconds since the system was created, the timestamp
// domain of Event.Time.
func (s *ToolSystem) Now() int64 {
	return time.Since(s.start).Milliseconds()
}

// SetPickSystem attaches the external picking collaborator exposed to tools
// through Context.CurrentPick.
func (s *ToolSystem) SetPickSystem(p PickSystem) {
	s.picker = p
}

// SetViewer attaches the external rendering collaborator exposed to tools
// through Context.Viewer.
func (s *ToolSystem) SetViewer(v Viewer) {
	s.viewer = v
}

// AddDevice registers a device to be polled on every Update.
func (s *ToolSystem) AddDevice(d Device) {
	s.devices = append(s.devices, d)
}

// --- binding lifecycle ---

// AddTool binds tool to path and registers the binding with the routing
// indices. The same tool may be added on several distinct paths; each
// addition is an independent binding with its own activation state.
// Adding the same (tool, path) pair twice is an error.
//
// Always-active tools (no activation slots) become ACTIVE immediately and
// stay so until removed.
func (s *ToolSystem) AddTool(tool Tool, path Path) (*Binding, error) {
	if s.findBinding(tool, path) != nil {
		return nil, fmt.Errorf("tether: tool already bound to path %q", path.String())
	}

	names := tool.ActivationSlots()
	b := &Binding{
		tool:         tool,
		path:         path.Clone(),
		alwaysActive: len(names) == 0,
	}
	for _, name := range names {
		b.activation = append(b.activation, s.registry.Slot(name))
	}
	b.active = b.alwaysActive

	if err := s.slots.Register(b); err != nil {
		return nil, err
	}
	s.bindings = append(s.bindings, b)
	return b, nil
}

// RemoveTool removes the binding of tool on path. If the binding is ACTIVE
// and gated, a deactivation is synthesized first — the tool's Deactivate runs
// with a Remove-sourced release event, so no activation state leaks past
// removal. Reports whether a binding was found.
func (s *ToolSystem) RemoveTool(tool Tool, path Path) bool {
	b := s.findBinding(tool, path)
	if b == nil {
		return false
	}

	if b.active && !b.alwaysActive {
		ev := Event{Slot: s.registry.Slot(SlotRemove), Axis: AxisOrigin, Time: s.Now()}
		ctx := &Context{system: s, binding: b, event: ev}
		b.tool.Deactivate(ctx)
		b.active = false
		// Reconcile the remaining bindings' view before tearing down.
		if err := s.slots.UpdateMaps(nil, nil, []*Binding{b}); err != nil && s.debug {
			s.debugError("RemoveTool updateMaps", err)
		}
	}

	s.slots.Unregister(b)
	for i, other := range s.bindings {
		if other == b {
			copy(s.bindings[i:], s.bindings[i+1:])
			s.bindings[len(s.bindings)-1] = nil
			s.bindings = s.bindings[:len(s.bindings)-1]
			break
		}
	}
	return true
}

// findBinding locates the binding for an exact (tool, path) pair.
func (s *ToolSystem) findBinding(tool Tool, path Path) *Binding {
	for _, b := range s.bindings {
		if b.tool == tool && b.path.Equal(path) {
			return b
		}
	}
	return nil
}

// Bindings returns the live bindings. The returned slice MUST NOT be mutated
// by the caller.
func (s *ToolSystem) Bindings() []*Binding {
	return s.bindings
}

// --- event intake ---

// Enqueue appends an event to the queue. Events are dispatched in enqueue
// order by the next ProcessEvents call.
func (s *ToolSystem) Enqueue(ev Event) {
	s.queue.push(ev)
}

// EnqueueAxis enqueues an axis reading on slot, timestamped now.
func (s *ToolSystem) EnqueueAxis(slot *Slot, a AxisState) {
	s.queue.push(Event{Slot: slot, Axis: a, Time: s.Now()})
}

// EnqueueTransform enqueues a transform reading on slot, timestamped now.
func (s *ToolSystem) EnqueueTransform(slot *Slot, m Matrix) {
	s.queue.push(Event{Slot: slot, Transform: &m, Time: s.Now()})
}

// --- dispatch ---

// Update polls every registered device, then drains the event queue.
// Call once per frame from the game loop.
func (s *ToolSystem) Update() error {
	now := time.Now()
	for _, d := range s.devices {
		d.Poll(s, now)
	}
	return s.ProcessEvents()
}

// ProcessEvents drains the queue strictly in arrival order. Each event's
// full dispatch — every eligible tool callback plus the index reconciliation
// — completes before the next event is read. Events enqueued by tool
// callbacks are therefore processed in the same drain, after everything
// already queued.
//
// Tool callback panics are not recovered; they propagate to the caller.
func (s *ToolSystem) ProcessEvents() error {
	if s.draining {
		// A tool callback called back into ProcessEvents; the outer drain
		// will pick up whatever it enqueued.
		return nil
	}
	s.draining = true
	defer func() { s.draining = false }()

	var stats dispatchStats
	var t0 time.Time

	for {
		ev, ok := s.queue.pop()
		if !ok {
			break
		}
		stats.events++

		if s.debug {
			t0 = time.Now()
		}
		if err := s.processEvent(ev, &stats); err != nil {
			return err
		}
		if s.debug {
			stats.dispatchTime += time.Since(t0)
		}
	}

	if s.debug && stats.events > 0 {
		s.debugLog(stats)
	}
	return nil
}

// processEvent dispatches one event to every eligible binding and then
// reconciles the routing indices.
func (s *ToolSystem) processEvent(ev Event, stats *dispatchStats) error {
	// Retain the latest reading for context lookups before dispatch, so the
	// callbacks triggered by this event already see it.
	if ev.isAxis() {
		s.axisValues[ev.Slot] = ev.Axis
	} else {
		s.transforms[ev.Slot] = *ev.Transform
	}

	// Candidates: bindings that could activate, that are active on this
	// trigger, or that are waiting for this trigger's release. Among
	// multiple candidates for one event no dispatch order is promised.
	candidates := make(bindingSet)
	for b := range s.slots.activatableAt(ev.Slot) {
		candidates[b] = struct{}{}
	}
	for b := range s.slots.activeAt(ev.Slot) {
		candidates[b] = struct{}{}
	}
	for b := range s.slots.deactivationAt(ev.Slot) {
		candidates[b] = struct{}{}
	}
	if len(candidates) == 0 {
		return nil
	}

	var activated, deactivated []*Binding

	for b := range candidates {
		ctx := &Context{system: s, binding: b, event: ev}

		// Activation: exact pressed sentinel on an activation trigger of an
		// INACTIVE gated binding.
		if ev.isAxis() && ev.Axis.IsPressed() && !b.active {
			if _, ok := s.slots.activatableAt(ev.Slot)[b]; ok {
				b.tool.Activate(ctx)
				if ctx.rejected {
					continue
				}
				b.active = true
				activated = append(activated, b)
				stats.activations++
				// The activating event is consumed by the transition; Perform
				// starts with the next event.
				continue
			}
		}

		// Perform: the binding is ACTIVE and listening on this trigger.
		if b.active && s.slots.TrackedSlots(b).Contains(ev.Slot) {
			b.tool.Perform(ctx)
			stats.performs++
		}

		// Deactivation: exact released sentinel on an activation trigger of
		// an ACTIVE gated binding.
		if ev.isAxis() && ev.Axis.IsReleased() && b.active && !b.alwaysActive {
			if _, ok := s.slots.deactivationAt(ev.Slot)[b]; ok {
				b.tool.Deactivate(ctx)
				b.active = false
				deactivated = append(deactivated, b)
				stats.deactivations++
			}
		}
	}

	// Reconcile: still-active bindings may have mutated their CurrentSlots
	// during Perform, so their trigger sets are re-resolved and delta-applied.
	var stillActive []*Binding
	for _, b := range s.bindings {
		if b.active && !containsBinding(activated, b) {
			stillActive = append(stillActive, b)
		}
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	err := s.slots.UpdateMaps(stillActive, activated, deactivated)
	if s.debug {
		stats.updateTime += time.Since(t0)
	}
	return err
}

func containsBinding(list []*Binding, b *Binding) bool {
	for _, other := range list {
		if other == b {
			return true
		}
	}
	return false
}
