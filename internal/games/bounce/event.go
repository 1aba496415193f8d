package bounce

import (
	"container/heap"
	"fmt"
)

// EventKind identifies a scheduled occurrence.
type EventKind int

const (
	EventPaddleStepLeft EventKind = iota + 1
	EventPaddleStepRight
	EventBounceHorizontal // reflect off a horizontal face (top or bottom)
	EventBounceVertical   // reflect off a vertical face (left or right)
	EventBouncePaddle
	EventGameOver
	EventScoreTick
	EventSpeedRampTick
	EventPaddleSetPosition
	EventReleaseBall
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPaddleStepLeft:
		return "paddle_left"
	case EventPaddleStepRight:
		return "paddle_right"
	case EventBounceHorizontal:
		return "bounce_horizontal"
	case EventBounceVertical:
		return "bounce_vertical"
	case EventBouncePaddle:
		return "bounce_paddle"
	case EventGameOver:
		return "game_over"
	case EventScoreTick:
		return "score_tick"
	case EventSpeedRampTick:
		return "speed_ramp_tick"
	case EventPaddleSetPosition:
		return "paddle_set_position"
	case EventReleaseBall:
		return "release_ball"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// noObstacle marks an event not tied to any obstacle.
const noObstacle = -1

// Event is a scheduled occurrence at an absolute engine time.
type Event struct {
	Kind     EventKind
	Time     float64
	Obstacle int     // obstacle index for bounces, noObstacle otherwise
	X        float64 // target center for EventPaddleSetPosition

	seq uint64
}

// eventQueue is a min-heap on (Time, seq); equal times pop in insertion order.
type eventQueue struct {
	items []Event
	next  uint64
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	if q.items[i].Time != q.items[j].Time {
		return q.items[i].Time < q.items[j].Time
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *eventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *eventQueue) Push(x any) { q.items = append(q.items, x.(Event)) }

func (q *eventQueue) Pop() any {
	n := len(q.items)
	ev := q.items[n-1]
	q.items = q.items[:n-1]
	return ev
}

func (q *eventQueue) push(ev Event) {
	ev.seq = q.next
	q.next++
	heap.Push(q, ev)
}

// peek returns the earliest event without removing it.
func (q *eventQueue) peek() (Event, bool) {
	if len(q.items) == 0 {
		return Event{}, false
	}
	return q.items[0], true
}

func (q *eventQueue) pop() Event {
	return heap.Pop(q).(Event)
}

func (q *eventQueue) reset() {
	q.items = q.items[:0]
	q.next = 0
}

// pending returns a copy of the queued events in dispatch order.
func (q *eventQueue) pending() []Event {
	c := eventQueue{items: append([]Event(nil), q.items...)}
	out := make([]Event, 0, len(c.items))
	for c.Len() > 0 {
		out = append(out, c.pop())
	}
	return out
}
