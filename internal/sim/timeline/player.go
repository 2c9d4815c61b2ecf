package timeline

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// Player maps wall-clock time onto a timeline's virtual time.
type Player[S any] struct {
	tl    *Timeline[S]
	clock clock.Clock
	speed float64
}

// NewPlayer builds a player. A non-positive speed is treated as 1; a speed of
// 2 runs the timeline twice as fast as recorded.
func NewPlayer[S any](tl *Timeline[S], clk clock.Clock, speed float64) *Player[S] {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if speed <= 0 {
		speed = 1
	}
	return &Player[S]{tl: tl, clock: clk, speed: speed}
}

// Elapsed converts the wall time since started into virtual time.
func (p *Player[S]) Elapsed(started time.Time) time.Duration {
	return VirtualSince(p.clock, started, p.speed)
}

// VirtualSince is the virtual time elapsed since started when the clock runs
// speed times faster than recorded. Times in the future count as zero.
func VirtualSince(clk clock.PassiveClock, started time.Time, speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	wall := clk.Since(started)
	if wall < 0 {
		return 0
	}
	return time.Duration(float64(wall) * speed)
}

// Current returns the frame in effect now for a run started at started.
func (p *Player[S]) Current(started time.Time) Frame[S] {
	return p.tl.FrameAt(p.Elapsed(started))
}

// Done reports whether the run started at started has finished.
func (p *Player[S]) Done(started time.Time) bool {
	return p.tl.Done(p.Elapsed(started))
}

func (p *Player[S]) wallDelay(virtual time.Duration) time.Duration {
	if virtual <= 0 {
		return 0
	}
	d := time.Duration(float64(virtual) / p.speed)
	if d <= 0 {
		d = time.Nanosecond
	}
	return d
}

// Play calls fn with the current frame and then with each later frame as
// its wall time arrives. Frames that fall due while fn runs are coalesced
// into the most recent one. Play returns nil after the final frame, the
// first error from fn, or ctx.Err().
func (p *Player[S]) Play(ctx context.Context, started time.Time, fn func(Frame[S]) error) error {
	elapsed := p.Elapsed(started)
	idx := p.tl.index(elapsed)
	if err := fn(p.tl.frames[idx]); err != nil {
		return err
	}

	for idx+1 < len(p.tl.frames) {
		next := p.tl.frames[idx+1]
		timer := p.clock.NewTimer(p.wallDelay(next.At - elapsed))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C():
		}

		elapsed = p.Elapsed(started)
		if elapsed < next.At {
			elapsed = next.At
		}
		idx = p.tl.index(elapsed)
		if err := fn(p.tl.frames[idx]); err != nil {
			return err
		}
	}
	return nil
}
