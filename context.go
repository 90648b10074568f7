package tether

// Pick is one hit reported by an external picking subsystem: the path to the
// picked node and the pick point in world coordinates.
type Pick struct {
	Path Path
	X, Y float64
}

// PickSystem is the external collaborator that answers "what is under the
// pointer right now". The tool system never computes picks itself; it only
// forwards the current results to tools through the context.
type PickSystem interface {
	Picks() []Pick
}

// Viewer is the external rendering collaborator handed through to tools.
// Tools that trigger redraws call Render; everything else about rendering is
// out of scope here.
type Viewer interface {
	Render()
}

// Context carries everything a tool may ask about the event being dispatched
// to it. A fresh Context is built per (event, binding) dispatch; tools must
// not retain it past the callback.
type Context struct {
	system   *ToolSystem
	binding  *Binding
	event    Event
	rejected bool
}

// Source returns the slot the tool believes caused this event: the virtual
// slot its forward mapping assigns to the physical trigger, or the trigger
// itself when unmapped.
func (c *Context) Source() *Slot {
	return c.system.slots.ResolveSlotForTool(c.binding, c.event.Slot)
}

// Time returns the event timestamp in milliseconds since system start.
func (c *Context) Time() int64 {
	return c.event.Time
}

// AxisState returns the most recent axis reading for the named slot.
// The slot may be virtual: the lookup falls through to the triggers that
// feed it. Returns a MissingSlotError when no reading exists — a tool asking
// for input nothing produces is a configuration bug, not a silent zero.
func (c *Context) AxisState(slot string) (AxisState, error) {
	s := c.system.registry.Slot(slot)
	if v, ok := c.system.axisValues[s]; ok {
		return v, nil
	}
	resolved, err := c.system.slots.ResolveSlot(s)
	if err != nil {
		return AxisState{}, err
	}
	for t := range resolved {
		if v, ok := c.system.axisValues[t]; ok {
			return v, nil
		}
	}
	return AxisState{}, &MissingSlotError{Slot: s}
}

// TransformationMatrix returns the most recent transform for the named slot,
// with the same virtual-slot fallthrough and MissingSlotError behavior as
// AxisState.
func (c *Context) TransformationMatrix(slot string) (Matrix, error) {
	s := c.system.registry.Slot(slot)
	if m, ok := c.system.transforms[s]; ok {
		return m, nil
	}
	resolved, err := c.system.slots.ResolveSlot(s)
	if err != nil {
		return Matrix{}, err
	}
	for t := range resolved {
		if m, ok := c.system.transforms[t]; ok {
			return m, nil
		}
	}
	return Matrix{}, &MissingSlotError{Slot: s}
}

// RootToToolNode returns the path the tool is bound to.
func (c *Context) RootToToolNode() Path {
	return c.binding.path
}

// RootToLocal returns the path to the node the input is local to: the
// current pick path when a pick system reports one, otherwise the tool's
// own path.
func (c *Context) RootToLocal() Path {
	if pick, ok := c.CurrentPick(); ok {
		return pick.Path
	}
	return c.binding.path
}

// CurrentPick returns the frontmost current pick, if any.
func (c *Context) CurrentPick() (Pick, bool) {
	picks := c.CurrentPicks()
	if len(picks) == 0 {
		return Pick{}, false
	}
	return picks[0], true
}

// CurrentPicks returns all current picks, frontmost first. Nil when no pick
// system is attached.
func (c *Context) CurrentPicks() []Pick {
	if c.system.picker == nil {
		return nil
	}
	return c.system.picker.Picks()
}

// Viewer returns the attached rendering collaborator, or nil.
func (c *Context) Viewer() Viewer {
	return c.system.viewer
}

// Reject declines the activation being offered. Only meaningful inside
// Activate: the binding stays INACTIVE and the event remains available to
// other candidates. Calling it elsewhere has no effect.
func (c *Context) Reject() {
	c.rejected = true
}
