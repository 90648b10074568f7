package tether

// Tool is a stateful behavior unit attached to scene nodes through a [Path].
// Tools name their input by slot, never by device: a tool listening on
// "PrimaryAction" works the same whether the profile routes a mouse button,
// a key or a synthesized slot into it.
//
// A tool is either gated or always active, decided once at registration:
//
//   - Gated: ActivationSlots returns at least one slot name. The tool starts
//     INACTIVE; when an activation slot's trigger reports exactly
//     [AxisPressed], Activate runs and the tool is ACTIVE until the trigger
//     reports exactly [AxisOrigin], which runs Deactivate. While ACTIVE,
//     events on any slot in CurrentSlots invoke Perform.
//   - Always active: ActivationSlots returns nil. Activate and Deactivate are
//     never called; Perform runs for CurrentSlots events for the whole
//     registered lifetime.
//
// CurrentSlots may change between callbacks; the system re-reads it after
// every processed event and re-routes incrementally.
//
// Callbacks run synchronously on the dispatch goroutine and must not block.
// Panics are not recovered here: a failing tool propagates to the Update
// caller rather than leaving the routing indices silently inconsistent.
type Tool interface {
	// ActivationSlots returns the ordered slot names that gate this tool,
	// or nil for an always-active tool. Read once at registration.
	ActivationSlots() []string

	// CurrentSlots returns the slot names the tool wants to receive while
	// active. Re-read after every processed event.
	CurrentSlots() []string

	// Activate is called on the INACTIVE→ACTIVE transition.
	// Call ctx.Reject to decline the activation.
	Activate(ctx *Context)

	// Perform is called for every event on a current slot while ACTIVE.
	Perform(ctx *Context)

	// Deactivate is called on the ACTIVE→INACTIVE transition.
	Deactivate(ctx *Context)

	// Description returns human-readable documentation for the given slot,
	// or for the tool as a whole when slot is empty.
	Description(slot string) string
}

// Binding pairs one Tool instance with one Path. The activation state machine
// lives here, not on the tool: binding the same Tool to two paths yields two
// bindings that activate and deactivate independently.
type Binding struct {
	tool Tool
	path Path

	// alwaysActive is fixed at registration; the tool kind is never
	// re-derived from slot counts afterwards.
	alwaysActive bool

	// activation holds the interned activation slots, fixed at registration.
	activation []*Slot

	active bool
}

// Tool returns the bound tool.
func (b *Binding) Tool() Tool {
	return b.tool
}

// Path returns the path the tool is bound to.
func (b *Binding) Path() Path {
	return b.path
}

// IsActive reports whether the binding is currently ACTIVE.
// Always-active bindings report true for their entire lifetime.
func (b *Binding) IsActive() bool {
	return b.active
}

// IsAlwaysActive reports whether this binding belongs to an always-active
// tool.
func (b *Binding) IsAlwaysActive() bool {
	return b.alwaysActive
}

// currentSlots interns the tool's present CurrentSlots list.
func (b *Binding) currentSlots(reg *Registry) []*Slot {
	names := b.tool.CurrentSlots()
	slots := make([]*Slot, 0, len(names))
	for _, name := range names {
		slots = append(slots, reg.Slot(name))
	}
	return slots
}
