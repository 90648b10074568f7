package tether

// Event is one timestamped reading on a slot. Devices and injection enqueue
// events; the ToolSystem drains them strictly in arrival order.
//
// An event carries either an axis reading or a transform, never both:
// Transform == nil means Axis holds the payload. Transform events never
// participate in activation or deactivation decisions (there is no exact
// pressed/released sentinel for a matrix); they only drive Perform.
type Event struct {
	Slot      *Slot
	Axis      AxisState
	Transform *Matrix
	Time      int64 // milliseconds since system start
}

// isAxis reports whether the event carries an axis reading.
func (e Event) isAxis() bool {
	return e.Transform == nil
}

// eventQueue is a FIFO of pending events. Pop shifts from the front with
// copy+truncate to avoid retaining payload pointers in the backing array.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events[len(q.events)-1] = Event{}
	q.events = q.events[:len(q.events)-1]
	return e, true
}

func (q *eventQueue) len() int {
	return len(q.events)
}
