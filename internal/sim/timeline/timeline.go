package timeline

import (
	"encoding/json"
	"sort"
	"time"
)

// Frame is a snapshot of script state at a virtual time.
type Frame[S any] struct {
	At    time.Duration
	State S
}

// MarshalJSON encodes At as whole milliseconds.
func (f Frame[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AtMs  int64 `json:"at_ms"`
		State S     `json:"state"`
	}{AtMs: f.At.Milliseconds(), State: f.State})
}

// Timeline is the recorded frame sequence of one script run. Frames are
// strictly increasing in time; when a script emits several states at the
// same instant only the last is kept.
type Timeline[S any] struct {
	frames []Frame[S]
}

// Script drives a simulation on l and calls emit with each new state.
// Emitted states must not share mutable memory with later states.
type Script[S any] func(l *Loop, emit func(S))

// Record runs script to completion in virtual time, starting from initial at t=0.
// limit bounds virtual time; zero means run until no timers remain.
func Record[S any](initial S, limit time.Duration, script Script[S]) *Timeline[S] {
	tl := &Timeline[S]{frames: []Frame[S]{{At: 0, State: initial}}}
	l := NewLoop()
	emit := func(s S) {
		now := l.Now()
		last := &tl.frames[len(tl.frames)-1]
		if last.At == now {
			last.State = s
			return
		}
		tl.frames = append(tl.frames, Frame[S]{At: now, State: s})
	}
	script(l, emit)
	l.Run(limit)
	return tl
}

// At returns the state in effect after elapsed virtual time.
func (t *Timeline[S]) At(elapsed time.Duration) S {
	return t.frames[t.index(elapsed)].State
}

// FrameAt returns the frame in effect after elapsed virtual time.
func (t *Timeline[S]) FrameAt(elapsed time.Duration) Frame[S] {
	return t.frames[t.index(elapsed)]
}

func (t *Timeline[S]) index(elapsed time.Duration) int {
	i := sort.Search(len(t.frames), func(i int) bool { return t.frames[i].At > elapsed })
	if i == 0 {
		return 0
	}
	return i - 1
}

// End is the time of the final frame.
func (t *Timeline[S]) End() time.Duration {
	return t.frames[len(t.frames)-1].At
}

// Done reports whether elapsed has reached the final frame.
func (t *Timeline[S]) Done(elapsed time.Duration) bool {
	return elapsed >= t.End()
}

// Final returns the last recorded state.
func (t *Timeline[S]) Final() S {
	return t.frames[len(t.frames)-1].State
}

func (t *Timeline[S]) Len() int {
	return len(t.frames)
}

// Frames returns a copy of all frames.
func (t *Timeline[S]) Frames() []Frame[S] {
	out := make([]Frame[S], len(t.frames))
	copy(out, t.frames)
	return out
}

