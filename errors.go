package tether

import "fmt"

// MissingSlotError reports a lookup for a slot the system has no value or
// transform for. It signals a configuration bug (a tool asking for input
// nothing produces), so it is surfaced to the caller instead of being
// silently ignored.
type MissingSlotError struct {
	Slot *Slot
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("tether: no value for slot %q", e.Slot.Name())
}

// NoSuchNodeError reports a path operation that referenced a node absent
// from the live hierarchy.
type NoSuchNodeError struct {
	Name string
}

func (e *NoSuchNodeError) Error() string {
	return fmt.Sprintf("tether: no such node %q", e.Name)
}

// CyclicMappingError reports that slot resolution hit a cycle in the
// configured virtual mappings. Cycles are a configuration error; the
// resolver refuses them instead of recursing forever.
type CyclicMappingError struct {
	Slot *Slot
}

func (e *CyclicMappingError) Error() string {
	return fmt.Sprintf("tether: cyclic virtual mapping through slot %q", e.Slot.Name())
}
