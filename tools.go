package tether

// Stock tools. These double as reference implementations of the Tool
// interface; most applications write their own.

// DragTool moves the node at the end of its path with the pointer while the
// primary action is held. It is gated on PrimaryAction and listens on
// PointerTransformation, so it works with any device profile that routes
// into those slots.
//
// Drag origin state lives on the tool instance: create one DragTool per
// binding if the same path layout is bound more than once.
type DragTool struct {
	startPointerX, startPointerY float64
	startNodeX, startNodeY       float64
	dragging                     bool
}

// NewDragTool creates a drag tool.
func NewDragTool() *DragTool {
	return &DragTool{}
}

// ActivationSlots gates the tool on the primary action.
func (t *DragTool) ActivationSlots() []string {
	return []string{SlotPrimaryAction}
}

// CurrentSlots listens on the pointer transform.
func (t *DragTool) CurrentSlots() []string {
	return []string{SlotPointerTransformation}
}

// Activate records the pointer and node positions the drag started from.
// Rejects when no pointer transform has been seen yet.
func (t *DragTool) Activate(ctx *Context) {
	m, err := ctx.TransformationMatrix(SlotPointerTransformation)
	if err != nil {
		ctx.Reject()
		return
	}
	node := ctx.RootToToolNode().Last()
	if node == nil {
		ctx.Reject()
		return
	}
	t.startPointerX, t.startPointerY = m[4], m[5]
	t.startNodeX, t.startNodeY = node.X, node.Y
	t.dragging = true
}

// Perform repositions the node by the pointer's movement since activation.
func (t *DragTool) Perform(ctx *Context) {
	if !t.dragging {
		return
	}
	m, err := ctx.TransformationMatrix(SlotPointerTransformation)
	if err != nil {
		return
	}
	node := ctx.RootToToolNode().Last()
	if node == nil || node.IsDisposed() {
		return
	}
	node.SetPosition(
		t.startNodeX+(m[4]-t.startPointerX),
		t.startNodeY+(m[5]-t.startPointerY),
	)
	if v := ctx.Viewer(); v != nil {
		v.Render()
	}
}

// Deactivate ends the drag.
func (t *DragTool) Deactivate(ctx *Context) {
	t.dragging = false
}

// Description documents the tool's slots.
func (t *DragTool) Description(slot string) string {
	switch slot {
	case SlotPrimaryAction:
		return "hold to drag the node"
	case SlotPointerTransformation:
		return "pointer position driving the drag"
	}
	return "drags the node at the end of the tool's path with the pointer"
}

// TimerTool invokes a callback with the elapsed milliseconds on every system
// timer tick. It is always active: registered once, it runs until removed.
type TimerTool struct {
	OnTick func(ms int64)
}

// ActivationSlots returns nil: the tool is always active.
func (t *TimerTool) ActivationSlots() []string {
	return nil
}

// CurrentSlots listens on the system timer.
func (t *TimerTool) CurrentSlots() []string {
	return []string{SlotSystemTime}
}

// Activate is never called for an always-active tool.
func (t *TimerTool) Activate(ctx *Context) {}

// Perform forwards the tick to the callback.
func (t *TimerTool) Perform(ctx *Context) {
	if t.OnTick == nil {
		return
	}
	a, err := ctx.AxisState(SlotSystemTime)
	if err != nil {
		return
	}
	t.OnTick(a.Int())
}

// Deactivate is never called for an always-active tool.
func (t *TimerTool) Deactivate(ctx *Context) {}

// Description documents the tool.
func (t *TimerTool) Description(slot string) string {
	if slot == SlotSystemTime {
		return "absolute milliseconds since system start"
	}
	return "invokes a callback on every timer tick"
}
