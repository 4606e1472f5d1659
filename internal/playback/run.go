// ABOUTME: Real-time driver that feeds wall-clock ticks into a playback Engine.
// ABOUTME: Owns one ticker, re-arms it on every story switch, and stops it on return.
package playback

import (
	"context"
	"time"

	"github.com/2389-research/snapgram/internal/models"
)

// Run ticks e at its tick interval until playback goes Idle or ctx is cancelled.
// onStep, when non-nil, receives the status after every accepted tick.
// The caller must not drive e from another goroutine while Run is active.
func Run(ctx context.Context, e *Engine, onStep func(Status)) error {
	if e.Status().State != Playing {
		return nil
	}

	ticker := time.NewTicker(e.TickInterval())
	defer ticker.Stop()
	gen := e.Generation()

	for {
		select {
		case <-ctx.Done():
			e.Close()
			return ctx.Err()
		case <-ticker.C:
			st, ok := e.TickFor(gen)
			if !ok {
				return nil
			}
			if onStep != nil {
				onStep(st)
			}
			if st.State != Playing {
				return nil
			}
			if next := e.Generation(); next != gen {
				gen = next
				ticker.Reset(e.TickInterval())
			}
		}
	}
}

// Duration is the total wall-clock time needed to play every item in stories.
func Duration(stories []models.Story, itemDuration time.Duration) time.Duration {
	var n int
	for _, s := range stories {
		n += len(s.Items)
	}
	return time.Duration(n) * itemDuration
}
