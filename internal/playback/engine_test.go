// ABOUTME: Tests for the playback state machine: advancing, stepping back, and timer generations.
// ABOUTME: Drives the engine with synthetic ticks so no wall-clock time passes.
package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/2389-research/snapgram/internal/models"
)

type recordingViewer struct {
	viewed []string
	err    error
}

func (v *recordingViewer) MarkViewed(id string) error {
	v.viewed = append(v.viewed, id)
	return v.err
}

func story(id string, items int) models.Story {
	s := models.Story{ID: id, OwnerID: id, OwnerUsername: id}
	for i := 0; i < items; i++ {
		s.Items = append(s.Items, models.StoryItem{ID: id + "-" + string(rune('a'+i))})
	}
	return s
}

func tickN(e *Engine, n int) Status {
	var st Status
	for i := 0; i < n; i++ {
		st = e.Tick()
	}
	return st
}

func wantStatus(t *testing.T, got Status, state State, storyIdx, itemIdx int) {
	t.Helper()
	if got.State != state || got.StoryIndex != storyIdx || got.ItemIndex != itemIdx {
		t.Fatalf("status: got %v(%d,%d), want %v(%d,%d)",
			got.State, got.StoryIndex, got.ItemIndex, state, storyIdx, itemIdx)
	}
}

func TestOpenMarksViewedOnce(t *testing.T) {
	v := &recordingViewer{}
	e := NewEngine(v)

	if err := e.Open([]models.Story{story("s0", 2), story("s1", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	wantStatus(t, e.Status(), Playing, 0, 0)
	if len(v.viewed) != 1 || v.viewed[0] != "s0" {
		t.Fatalf("expected s0 marked once, got %v", v.viewed)
	}

	wantStatus(t, tickN(e, 100), Playing, 0, 1)
	if len(v.viewed) != 1 {
		t.Errorf("item change must not mark viewed again, got %v", v.viewed)
	}

	wantStatus(t, tickN(e, 100), Playing, 1, 0)
	if len(v.viewed) != 2 || v.viewed[1] != "s1" {
		t.Errorf("expected s1 marked on story switch, got %v", v.viewed)
	}
}

func TestOpenRejectsBadTargets(t *testing.T) {
	e := NewEngine(nil)

	if err := e.Open([]models.Story{story("s0", 1)}, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if err := e.Open([]models.Story{story("s0", 1)}, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for negative index, got %v", err)
	}
	if err := e.Open([]models.Story{story("s0", 0)}, 0); !errors.Is(err, ErrEmptyStory) {
		t.Errorf("expected ErrEmptyStory, got %v", err)
	}
	if e.Status().State != Idle {
		t.Errorf("expected Idle after failed opens, got %v", e.Status().State)
	}
}

func TestPlaybackTerminates(t *testing.T) {
	stories := []models.Story{story("s0", 2), story("s1", 1)}
	e := NewEngine(nil)
	if err := e.Open(stories, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	total := Duration(stories, DefaultItemDuration)
	ticks := int(total / DefaultTickInterval)

	if st := tickN(e, ticks-1); st.State != Playing {
		t.Fatalf("expected Playing one tick before the end, got %v", st.State)
	}
	if st := e.Tick(); st.State != Idle {
		t.Fatalf("expected Idle after %v, got %v", total, st.State)
	}
	if st := e.Tick(); st.State != Idle {
		t.Errorf("expected Idle to absorb later ticks, got %v", st.State)
	}
}

func TestProgress(t *testing.T) {
	e := NewEngine(nil)
	if err := e.Open([]models.Story{story("s0", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	if got := tickN(e, 50).Progress; got != 50 {
		t.Errorf("progress after half the item: got %v, want 50", got)
	}
	if got := e.Advance(2400 * time.Millisecond).Progress; got != 98 {
		t.Errorf("progress: got %v, want 98", got)
	}
}

func TestAdvanceDropsLeftover(t *testing.T) {
	e := NewEngine(nil)
	if err := e.Open([]models.Story{story("s0", 3)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	st := e.Advance(12 * time.Second)
	wantStatus(t, st, Playing, 0, 1)
	if st.Progress != 0 {
		t.Errorf("expected progress reset, got %v", st.Progress)
	}
}

func TestPrevious(t *testing.T) {
	v := &recordingViewer{}
	e := NewEngine(v)
	if err := e.Open([]models.Story{story("s0", 1), story("s1", 2)}, 1); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	e.Next()
	wantStatus(t, e.Status(), Playing, 1, 1)

	wantStatus(t, e.Previous(), Playing, 1, 0)
	if len(v.viewed) != 1 {
		t.Errorf("stepping back within a story must not mark viewed, got %v", v.viewed)
	}

	gen := e.Generation()
	wantStatus(t, e.Previous(), Playing, 0, 0)
	if len(v.viewed) != 2 || v.viewed[1] != "s0" {
		t.Errorf("expected s0 marked when stepping back into it, got %v", v.viewed)
	}
	if e.Generation() == gen {
		t.Error("expected stepping back to another story to bump the generation")
	}
	if s, _, _ := e.Current(); !s.Viewed {
		t.Error("expected current story flagged viewed")
	}

	e.Advance(time.Second)
	st := e.Previous()
	wantStatus(t, st, Playing, 0, 0)
	if st.Progress != 0 {
		t.Errorf("expected first item restarted, got progress %v", st.Progress)
	}
	if len(v.viewed) != 2 {
		t.Errorf("restarting the first item must not mark viewed again, got %v", v.viewed)
	}
}

func TestNextAtEndCloses(t *testing.T) {
	e := NewEngine(nil)
	if err := e.Open([]models.Story{story("s0", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if st := e.Next(); st.State != Idle {
		t.Errorf("expected Idle, got %v", st.State)
	}
	if _, _, ok := e.Current(); ok {
		t.Error("expected no current item when Idle")
	}
}

func TestAdvanceSkipsEmptyStories(t *testing.T) {
	v := &recordingViewer{}
	e := NewEngine(v)
	if err := e.Open([]models.Story{story("s0", 1), story("empty", 0), story("s2", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	wantStatus(t, e.Next(), Playing, 2, 0)
	if len(v.viewed) != 2 || v.viewed[1] != "s2" {
		t.Errorf("expected s0 then s2 viewed, got %v", v.viewed)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	e := NewEngine(nil)
	if err := e.Open([]models.Story{story("s0", 1), story("s1", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	armed := e.Generation()

	if _, ok := e.TickFor(armed); !ok {
		t.Fatal("expected tick for the current generation to be accepted")
	}
	e.Next()
	if e.Generation() == armed {
		t.Fatal("expected story switch to bump the generation")
	}
	before := e.Status()
	if _, ok := e.TickFor(armed); ok {
		t.Error("expected stale tick to be rejected")
	}
	if e.Status() != before {
		t.Errorf("stale tick changed status: %+v -> %+v", before, e.Status())
	}

	closing := e.Generation()
	e.Close()
	if e.Generation() == closing {
		t.Error("expected Close to bump the generation")
	}
	if _, ok := e.TickFor(e.Generation()); ok {
		t.Error("expected ticks to be rejected while Idle")
	}
}

func TestViewerErrorDoesNotStopPlayback(t *testing.T) {
	v := &recordingViewer{err: errors.New("disk full")}
	e := NewEngine(v)

	if err := e.Open([]models.Story{story("s0", 1)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if e.Status().State != Playing {
		t.Errorf("expected Playing despite viewer error, got %v", e.Status().State)
	}
	s, item, ok := e.Current()
	if !ok || s.ID != "s0" || item.ID != "s0-a" || !s.Viewed {
		t.Errorf("unexpected current: %+v %+v %v", s, item, ok)
	}
}

func TestOptions(t *testing.T) {
	e := NewEngine(nil, WithItemDuration(time.Second), WithTickInterval(100*time.Millisecond), WithItemDuration(0))
	if err := e.Open([]models.Story{story("s0", 2)}, 0); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if e.TickInterval() != 100*time.Millisecond {
		t.Errorf("TickInterval: got %v", e.TickInterval())
	}
	wantStatus(t, tickN(e, 10), Playing, 0, 1)
}
