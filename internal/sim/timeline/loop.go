// Package timeline runs scripted, timer-driven simulations in virtual time and
// replays the recorded frames against a real clock.
//
// A script registers timeouts and intervals on a Loop, the Loop fires them in
// due-time order, and the script records a frame of its state after each
// callback. The resulting Timeline is a pure function of the script inputs, so
// progress at any elapsed time can be answered by lookup instead of by keeping
// live timers around.
package timeline

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled timeout or interval.
type TimerID int

type timer struct {
	id       TimerID
	due      time.Duration
	seq      int64
	interval time.Duration
	fn       func()
	index    int
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Loop is a single-threaded virtual-time event loop. Timers with equal due
// times fire in the order they were (re)armed.
type Loop struct {
	now    time.Duration
	seq    int64
	nextID TimerID
	queue  timerQueue
	byID   map[TimerID]*timer
	fired  int
}

func NewLoop() *Loop {
	return &Loop{byID: make(map[TimerID]*timer)}
}

// Now returns the virtual time of the callback being run.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Fired reports the number of callbacks run so far.
func (l *Loop) Fired() int {
	return l.fired
}

// SetTimeout runs fn once, delay after the current virtual time.
func (l *Loop) SetTimeout(delay time.Duration, fn func()) TimerID {
	return l.schedule(delay, 0, fn)
}

// SetInterval runs fn every interval, first after one interval.
func (l *Loop) SetInterval(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return l.schedule(interval, interval, fn)
}

// Clear cancels a timer. Clearing an unknown or finished timer is a no-op.
func (l *Loop) Clear(id TimerID) {
	t, ok := l.byID[id]
	if !ok {
		return
	}
	delete(l.byID, id)
	if t.index >= 0 {
		heap.Remove(&l.queue, t.index)
	}
}

// Pending reports the number of armed timers.
func (l *Loop) Pending() int {
	return len(l.queue)
}

func (l *Loop) schedule(delay, interval time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	l.nextID++
	l.seq++
	t := &timer{
		id:       l.nextID,
		due:      l.now + delay,
		seq:      l.seq,
		interval: interval,
		fn:       fn,
	}
	l.byID[t.id] = t
	heap.Push(&l.queue, t)
	return t.id
}

// Run fires timers until none remain or virtual time would pass limit. A
// zero limit means no bound.
func (l *Loop) Run(limit time.Duration) {
	for len(l.queue) > 0 {
		next := l.queue[0]
		if limit > 0 && next.due > limit {
			return
		}
		heap.Pop(&l.queue)
		l.now = next.due

		if next.interval > 0 {
			l.seq++
			next.due += next.interval
			next.seq = l.seq
			heap.Push(&l.queue, next)
		} else {
			delete(l.byID, next.id)
		}

		l.fired++
		next.fn()
	}
}
