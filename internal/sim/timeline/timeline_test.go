package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

const ms = time.Millisecond

func TestLoop_OrdersByDueThenArming(t *testing.T) {
	l := NewLoop()
	var got []string
	l.SetTimeout(20*ms, func() { got = append(got, "b") })
	l.SetTimeout(10*ms, func() { got = append(got, "a") })
	l.SetTimeout(20*ms, func() { got = append(got, "c") })
	l.Run(0)

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 20*ms, l.Now())
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_IntervalUntilCleared(t *testing.T) {
	l := NewLoop()
	var ticks []time.Duration
	var id TimerID
	id = l.SetInterval(150*ms, func() {
		ticks = append(ticks, l.Now())
		if len(ticks) == 4 {
			l.Clear(id)
		}
	})
	l.Run(0)

	assert.Equal(t, []time.Duration{150 * ms, 300 * ms, 450 * ms, 600 * ms}, ticks)
	assert.Equal(t, 4, l.Fired())
}

func TestLoop_NestedTimeoutUsesCurrentTime(t *testing.T) {
	l := NewLoop()
	var at time.Duration
	l.SetTimeout(100*ms, func() {
		l.SetTimeout(600*ms, func() { at = l.Now() })
	})
	l.Run(0)
	assert.Equal(t, 700*ms, at)
}

func TestLoop_RunLimit(t *testing.T) {
	l := NewLoop()
	count := 0
	l.SetInterval(10*ms, func() { count++ })
	l.Run(95 * ms)
	assert.Equal(t, 9, count)
	assert.Equal(t, 1, l.Pending())
}

func TestLoop_ClearUnknownIsNoop(t *testing.T) {
	l := NewLoop()
	id := l.SetTimeout(ms, func() {})
	l.Run(0)
	l.Clear(id)
	l.Clear(TimerID(99))
	assert.Equal(t, 0, l.Pending())
}

func counterScript(l *Loop, emit func(int)) {
	n := 0
	var id TimerID
	id = l.SetInterval(100*ms, func() {
		n += 10
		emit(n)
		if n >= 30 {
			l.Clear(id)
		}
	})
}

func TestRecord_FramesAndLookup(t *testing.T) {
	tl := Record(0, 0, counterScript)

	require.Equal(t, 4, tl.Len())
	assert.Equal(t, 300*ms, tl.End())
	assert.Equal(t, 0, tl.At(-time.Second))
	assert.Equal(t, 0, tl.At(99*ms))
	assert.Equal(t, 10, tl.At(100*ms))
	assert.Equal(t, 20, tl.At(250*ms))
	assert.Equal(t, 30, tl.At(time.Hour))
	assert.Equal(t, 30, tl.Final())
	assert.False(t, tl.Done(299*ms))
	assert.True(t, tl.Done(300*ms))
}

func TestRecord_SameInstantKeepsLast(t *testing.T) {
	tl := Record("idle", 0, func(l *Loop, emit func(string)) {
		l.SetTimeout(50*ms, func() {
			emit("first")
			emit("second")
		})
	})
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, "second", tl.Final())
}

func TestRecord_EmitAtZeroReplacesInitial(t *testing.T) {
	tl := Record(1, 0, func(l *Loop, emit func(int)) {
		emit(2)
	})
	require.Equal(t, 1, tl.Len())
	assert.Equal(t, 2, tl.At(0))
}

func TestFrame_MarshalsMilliseconds(t *testing.T) {
	b, err := json.Marshal(Frame[int]{At: 1500 * ms, State: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at_ms":1500,"state":7}`, string(b))
}

func TestPlayer_ElapsedAppliesSpeed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	p := NewPlayer(Record(0, 0, counterScript), fc, 2)

	fc.Step(100 * ms)
	assert.Equal(t, 200*ms, p.Elapsed(start))
	assert.Equal(t, 20, p.Current(start).State)
	assert.False(t, p.Done(start))

	fc.Step(50 * ms)
	assert.True(t, p.Done(start))
}

func TestPlayer_ElapsedBeforeStartIsZero(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	p := NewPlayer(Record(0, 0, counterScript), fc, 1)
	assert.Equal(t, time.Duration(0), p.Elapsed(start.Add(time.Minute)))
}

func TestPlayer_PlayEmitsEachFrame(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	p := NewPlayer(Record(0, 0, counterScript), fc, 1)

	seen := make(chan int, 8)
	done := make(chan error, 1)
	go func() {
		done <- p.Play(context.Background(), start, func(f Frame[int]) error {
			seen <- f.State
			return nil
		})
	}()

	assert.Equal(t, 0, <-seen)
	for want := 10; want <= 30; want += 10 {
		require.Eventually(t, fc.HasWaiters, time.Second, ms)
		fc.Step(100 * ms)
		assert.Equal(t, want, <-seen)
	}
	require.NoError(t, <-done)
}

func TestPlayer_PlayStopsOnCancel(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	p := NewPlayer(Record(0, 0, counterScript), fc, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Play(ctx, start, func(Frame[int]) error { return nil })
	}()

	require.Eventually(t, fc.HasWaiters, time.Second, ms)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPlayer_PlayPropagatesCallbackError(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	p := NewPlayer(Record(0, 0, counterScript), fc, 1)

	boom := errors.New("client gone")
	err := p.Play(context.Background(), start, func(Frame[int]) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPlayer_PlayFinishedRunEmitsFinalOnly(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start.Add(time.Hour))
	p := NewPlayer(Record(0, 0, counterScript), fc, 1)

	var got []int
	err := p.Play(context.Background(), start, func(f Frame[int]) error {
		got = append(got, f.State)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{30}, got)
}
