package engine

import (
	"context"
	"time"
)

// Clock reads the current time. Searches use time.Now unless told otherwise.
type Clock func() time.Time

// TimeHandler polls the search budget: a wall-clock limit measured from the
// start of the search, and the caller's context.
type TimeHandler struct {
	ctx     context.Context
	now     Clock
	start   time.Time
	limit   time.Duration
	stopped bool
}

func newTimeHandler(ctx context.Context, now Clock, limit time.Duration) *TimeHandler {
	if now == nil {
		now = time.Now
	}
	return &TimeHandler{ctx: ctx, now: now, start: now(), limit: limit}
}

// TimeStatus is true once the budget is spent or the context is done. It
// stays true afterwards.
func (th *TimeHandler) TimeStatus() bool {
	if th.stopped {
		return true
	}
	if th.ctx.Err() != nil || th.now().Sub(th.start) > th.limit {
		th.stopped = true
	}
	return th.stopped
}

func (th *TimeHandler) Elapsed() time.Duration {
	return th.now().Sub(th.start)
}

// AllocateMoveTime splits a game clock into a budget for one move. Without
// an increment a fortieth of the remaining time is used; with one, most of
// the increment is added on top.
func AllocateMoveTime(remaining, increment time.Duration) time.Duration {
	const (
		overhead   = 30 * time.Millisecond // reserve for IO jitter
		minMove    = 5 * time.Millisecond
		maxFrac    = 0.7 // never spend more than this share of the clock
		panicThres = time.Second
		panicFrac  = 0.9
		movesLeft  = 40
	)

	var moveTime time.Duration
	switch {
	case increment > 0 && remaining < panicThres:
		moveTime = time.Duration(float64(increment) * panicFrac)
	case increment > 0:
		moveTime = remaining/movesLeft + increment
	default:
		moveTime = remaining / movesLeft
	}

	if ceiling := time.Duration(float64(remaining) * maxFrac); moveTime > ceiling {
		moveTime = ceiling
	}
	if moveTime > remaining-overhead {
		moveTime = remaining - overhead
	}
	if moveTime < minMove {
		moveTime = minMove
	}
	return moveTime
}
