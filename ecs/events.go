package ecs

// TriggerPhase is the edge of a sensor overlap.
type TriggerPhase int

const (
	TriggerEnter TriggerPhase = iota
	TriggerExit
)

func (p TriggerPhase) String() string {
	if p == TriggerEnter {
		return "enter"
	}
	return "exit"
}

// TriggerEvent reports an actor entering or leaving a trigger volume.
type TriggerEvent struct {
	Phase  TriggerPhase
	Actor  Entity
	Volume Entity
}

// AnimationEvent reports a non-looping clip reaching its last frame.
type AnimationEvent struct {
	Entity Entity
	Clip   string
}

// Event is a queued ECS event; Data holds one of the *Event structs above.
type Event struct {
	Type string
	Data any
}

const (
	EventTrigger       = "trigger"
	EventAnimationDone = "animation_done"
)

// EventQueue is a FIFO cleared at the end of every tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// Peek returns the queued events without removing them, so several systems
// can observe the same tick.
func (q *EventQueue) Peek() []Event {
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	q.items = nil
}
