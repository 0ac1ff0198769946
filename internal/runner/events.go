package runner

// EventKind distinguishes collision outcomes.
type EventKind int

const (
	EventObstacle EventKind = iota
	EventCollectible
)

// Event is a contact reported by the physics step.
type Event struct {
	Kind   EventKind
	Entity *Entity
}

// EventQueue is a bounded FIFO of collision events. Contacts are pushed
// during the physics step and drained once per frame, so they are handled
// one at a time in arrival order.
type EventQueue struct {
	events  []Event
	limit   int
	dropped int
}

// NewEventQueue creates a queue holding at most limit events.
func NewEventQueue(limit int) *EventQueue {
	if limit < 1 {
		limit = 1
	}
	return &EventQueue{
		events: make([]Event, 0, limit),
		limit:  limit,
	}
}

// Push appends an event. When the queue is full the event is dropped and
// Push returns false.
func (q *EventQueue) Push(e Event) bool {
	if len(q.events) >= q.limit {
		q.dropped++
		return false
	}
	q.events = append(q.events, e)
	return true
}

// Drain calls fn for each queued event in order and empties the queue.
// Events pushed by fn are handled in the same drain.
func (q *EventQueue) Drain(fn func(Event)) {
	for i := 0; i < len(q.events); i++ {
		fn(q.events[i])
	}
	clear(q.events)
	q.events = q.events[:0]
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Dropped returns how many events were discarded on overflow.
func (q *EventQueue) Dropped() int {
	return q.dropped
}
