package desengine

import "container/heap"

// queueEntry wraps a ScheduledEvent with an insertion sequence number so
// that equal-time entries break ties in the order they were pushed. The
// spec leaves tie-breaking unspecified; this package documents and commits
// to insertion order.
type queueEntry struct {
	scheduled ScheduledEvent
	seq       uint64
}

// eventQueue is a time-priority multiset of scheduled entries: a binary
// heap keyed by ascending Time, then ascending seq. It never deduplicates
// by event ID — repeated equal events coexist, as spec.md requires.
type eventQueue struct {
	entries []queueEntry
	nextSeq uint64
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(q)
	return q
}

// extend pushes a batch of scheduled entries onto the queue.
func (q *eventQueue) extend(batch []ScheduledEvent) {
	for _, s := range batch {
		heap.Push(q, queueEntry{scheduled: s, seq: q.nextSeq})
		q.nextSeq++
	}
}

// popMin removes and returns the earliest-time entry, or ok=false if the
// queue is empty.
func (q *eventQueue) popMin() (ScheduledEvent, bool) {
	if q.Len() == 0 {
		return ScheduledEvent{}, false
	}
	entry := heap.Pop(q).(queueEntry)
	return entry.scheduled, true
}

func (q *eventQueue) isEmpty() bool {
	return q.Len() == 0
}

// heap.Interface implementation.

func (q *eventQueue) Len() int { return len(q.entries) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.entries[i], q.entries[j]
	if a.scheduled.Time != b.scheduled.Time {
		return a.scheduled.Time < b.scheduled.Time
	}
	return a.seq < b.seq
}

func (q *eventQueue) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
}

func (q *eventQueue) Push(x interface{}) {
	q.entries = append(q.entries, x.(queueEntry))
}

func (q *eventQueue) Pop() interface{} {
	old := q.entries
	n := len(old)
	entry := old[n-1]
	old[n-1] = queueEntry{}
	q.entries = old[:n-1]
	return entry
}
