// ABOUTME: Tests for the wall-clock playback driver.
// ABOUTME: goleak verifies no ticker goroutine survives a finished or cancelled run.
package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/2389-research/snapgram/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunPlaysToCompletion(t *testing.T) {
	v := &recordingViewer{}
	e := NewEngine(v, WithItemDuration(10*time.Millisecond), WithTickInterval(time.Millisecond))
	if err := e.Open([]models.Story{story("s0", 1), story("s1", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	var steps int
	var last Status
	err := Run(context.Background(), e, func(st Status) {
		steps++
		last = st
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if steps != 20 {
		t.Errorf("expected 20 accepted ticks, got %d", steps)
	}
	if last.State != Idle {
		t.Errorf("expected final step Idle, got %v", last.State)
	}
	if len(v.viewed) != 2 {
		t.Errorf("expected both stories viewed, got %v", v.viewed)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := NewEngine(nil, WithTickInterval(time.Millisecond))
	if err := e.Open([]models.Story{story("s0", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Run(ctx, e, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if e.Status().State != Idle {
		t.Errorf("expected Idle after cancel, got %v", e.Status().State)
	}
}

func TestRunIdleEngineReturnsImmediately(t *testing.T) {
	if err := Run(context.Background(), NewEngine(nil), nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
