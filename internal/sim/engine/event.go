package engine

import "container/heap"

// EventKind tags a scheduled point in simulated time.
type EventKind int

const (
	// EventActionReady means the combatant's next basic action is due.
	EventActionReady EventKind = iota
	// EventPeriodicTick is the 1 Hz regeneration tick.
	EventPeriodicTick
	// EventEffectExpiry removes a named timed effect.
	EventEffectExpiry
)

// String returns the kind label used in trace records.
func (k EventKind) String() string {
	switch k {
	case EventActionReady:
		return "action"
	case EventPeriodicTick:
		return "tick"
	case EventEffectExpiry:
		return "expiry"
	default:
		return "unknown"
	}
}

// event is one entry in the simulation queue.
type event struct {
	at       float64
	kind     EventKind
	actor    *Combatant
	effectID string // expiry events only
	gen      uint64 // action events only; stale generations are skipped
	seq      uint64 // insertion order, the final tie-break
}

// priority orders events that share a timestamp. Hunter actions resolve
// before opponent actions, actions before ticks, ticks before expiries, so
// outcomes are deterministic for a fixed random stream.
func (e *event) priority() int {
	switch e.kind {
	case EventActionReady:
		if e.actor.Side == SideHunter {
			return 0
		}
		return 1
	case EventPeriodicTick:
		return 2
	default:
		return 3
	}
}

// eventQueue is a min-heap keyed by (time, priority, seq).
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	pi, pj := q[i].priority(), q[j].priority()
	if pi != pj {
		return pi < pj
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// push schedules ev, assigning its insertion sequence number.
func (e *Engine) push(ev *event) {
	e.seq++
	ev.seq = e.seq
	heap.Push(&e.queue, ev)
}

// pop removes and returns the earliest event, or nil when the queue is
// empty.
func (e *Engine) pop() *event {
	if e.queue.Len() == 0 {
		return nil
	}
	return heap.Pop(&e.queue).(*event)
}
