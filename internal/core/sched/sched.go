// Package sched provides a cancellable timer queue for a single-threaded
// event loop. Callers arm timers and pump the queue from their loop;
// callbacks fire synchronously inside Advance, so no locking is needed
// anywhere downstream.
package sched

import "time"

// Handle identifies an armed timer. A fired or cancelled handle is inert;
// cancelling it again is a no-op.
type Handle struct {
	deadline time.Time
	fn       func()
	done     bool
}

// Queue is a monotonic timer queue. The zero of its clock is set by the
// first Advance call; Arm before any Advance uses the zero time as now.
type Queue struct {
	now    time.Time
	timers []*Handle
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Arm schedules fn to run d after the queue's current time and returns
// a handle for cancellation. Re-arming a concern always means
// cancelling the previous handle first; the queue never coalesces.
func (q *Queue) Arm(d time.Duration, fn func()) *Handle {
	h := &Handle{deadline: q.now.Add(d), fn: fn}
	q.timers = append(q.timers, h)
	return h
}

// Cancel deactivates h. Safe to call with nil or an already-fired handle.
func (q *Queue) Cancel(h *Handle) {
	if h == nil {
		return
	}
	h.done = true
}

// Advance moves the queue clock to now and fires every due timer, in
// deadline order. It returns the number of callbacks run. Callbacks may
// arm new timers; timers armed during Advance only fire on a later call.
func (q *Queue) Advance(now time.Time) int {
	if now.After(q.now) {
		q.now = now
	}

	due := make([]*Handle, 0, len(q.timers))
	keep := q.timers[:0]
	for _, h := range q.timers {
		switch {
		case h.done:
		case !h.deadline.After(q.now):
			due = append(due, h)
		default:
			keep = append(keep, h)
		}
	}
	q.timers = keep

	sortByDeadline(due)
	fired := 0
	for _, h := range due {
		if h.done {
			continue
		}
		h.done = true
		h.fn()
		fired++
	}
	return fired
}

// Next returns the earliest pending deadline, if any. Event loops use it
// to size their sleep.
func (q *Queue) Next() (time.Time, bool) {
	var best time.Time
	found := false
	for _, h := range q.timers {
		if h.done {
			continue
		}
		if !found || h.deadline.Before(best) {
			best = h.deadline
			found = true
		}
	}
	return best, found
}

// Pending returns the number of live timers.
func (q *Queue) Pending() int {
	n := 0
	for _, h := range q.timers {
		if !h.done {
			n++
		}
	}
	return n
}

func sortByDeadline(hs []*Handle) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && hs[j].deadline.Before(hs[j-1].deadline); j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}
