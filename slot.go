package tether

// Slot is a named logical input channel. A slot is either physical (fed
// directly by a device: a mouse button, a key, the system timer) or virtual
// (fed by another slot through a configured mapping). Tools only ever name
// slots; they never see the device behind them.
//
// Slots are interned by a [Registry]: two lookups of the same name return the
// same pointer, so slots compare and hash by identity. Never construct a Slot
// directly.
type Slot struct {
	name string
}

// Name returns the slot's name.
func (s *Slot) Name() string {
	return s.name
}

// String implements fmt.Stringer.
func (s *Slot) String() string {
	return s.name
}

// Registry interns slots by name. Every ToolSystem owns exactly one Registry;
// there is no process-wide slot table, so two systems can use the same names
// without sharing state.
//
// Slots are created lazily on first lookup and never removed.
type Registry struct {
	slots map[string]*Slot
}

// NewRegistry creates an empty slot registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[string]*Slot)}
}

// Slot returns the canonical slot for name, creating it on first use.
// Idempotent: the same name always yields the same pointer.
func (r *Registry) Slot(name string) *Slot {
	if s, ok := r.slots[name]; ok {
		return s
	}
	s := &Slot{name: name}
	r.slots[name] = s
	return s
}

// Lookup returns the slot for name, or nil if it has never been requested.
// Unlike Slot it does not create.
func (r *Registry) Lookup(name string) *Slot {
	return r.slots[name]
}

// Len returns the number of interned slots.
func (r *Registry) Len() int {
	return len(r.slots)
}

// --- Well-known slot names ---

// Slot names used by the built-in devices and the default mapping profile.
// Tools and configurations are free to use any other names; these are just
// the ones the stock desktop setup emits.
const (
	SlotLeftButton   = "LeftButton"   // primary mouse button
	SlotRightButton  = "RightButton"  // secondary mouse button
	SlotMiddleButton = "MiddleButton" // middle mouse button

	SlotPointerTransformation = "PointerTransformation" // continuous pointer transform

	SlotSystemTime = "SystemTime" // absolute milliseconds since system start

	SlotPrimaryAction   = "PrimaryAction"   // default virtual activation channel
	SlotSecondaryAction = "SecondaryAction" // default virtual secondary channel
	SlotMetaAction      = "MetaAction"      // default virtual tertiary channel

	// SlotRemove is the source slot of the synthetic release event emitted
	// when an active tool is removed from the system.
	SlotRemove = "Remove"
)
