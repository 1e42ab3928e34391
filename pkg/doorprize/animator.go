package doorprize

import (
	"context"
	"math/rand/v2"
	"time"
)

type FrameKind string

const (
	FrameHighlight FrameKind = "highlight"
	FrameReveal    FrameKind = "reveal"
)

// Frame is one step of the draw animation. Highlight frames carry a random
// coupon number to flash; the single reveal frame carries the result.
type Frame struct {
	Kind   FrameKind
	Number string
	Result Doorprize
}

// Animator produces the spinning feedback shown before a drawn coupon is
// revealed. It never decides the result, it only delays showing it.
type Animator struct {
	Duration time.Duration
	Interval time.Duration
}

// Animate emits highlight frames over numbers every Interval until Duration
// has passed, then exactly one reveal frame with result, and closes the
// channel. Cancelling ctx closes the channel without a reveal.
func (a Animator) Animate(ctx context.Context, numbers []string, result Doorprize) <-chan Frame {
	frames := make(chan Frame)
	go func() {
		defer close(frames)

		interval := a.Interval
		if interval <= 0 {
			interval = 80 * time.Millisecond
		}
		deadline := time.NewTimer(a.Duration)
		defer deadline.Stop()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		send := func(f Frame) bool {
			select {
			case frames <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}

	spin:
		for {
			select {
			case <-ctx.Done():
				return
			case <-deadline.C:
				break spin
			case <-ticker.C:
				if len(numbers) == 0 {
					continue
				}
				if !send(Frame{Kind: FrameHighlight, Number: numbers[rand.IntN(len(numbers))]}) {
					return
				}
			}
		}
		send(Frame{Kind: FrameReveal, Number: result.Number, Result: result})
	}()
	return frames
}
