// ABOUTME: Story playback state machine driven by explicit time deltas.
// ABOUTME: Tracks story/item position and progress, marks stories viewed, and tags timers by generation.
package playback

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
)

const (
	// DefaultItemDuration is how long one story item stays on screen.
	DefaultItemDuration = 5 * time.Second
	// DefaultTickInterval is the progress timer period.
	DefaultTickInterval = 50 * time.Millisecond
)

var (
	// ErrOutOfRange is returned when Open is given an index outside the story list.
	ErrOutOfRange = errors.New("story index out of range")
	// ErrEmptyStory is returned when Open targets a story with no items.
	ErrEmptyStory = errors.New("story has no items")
)

// State is the engine's top-level mode.
type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is a snapshot of the engine. Indexes and Progress are meaningful only while Playing.
type Status struct {
	State      State
	StoryIndex int
	ItemIndex  int
	// Progress is the percentage of the current item already shown, in [0, 100).
	Progress float64
}

// Viewer records that a story has been seen.
type Viewer interface {
	MarkViewed(storyID string) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithItemDuration sets how long each item plays.
func WithItemDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.itemDuration = d
		}
	}
}

// WithTickInterval sets the period used by Tick.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithLogger sets the logger used for viewed-marking failures.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine plays a list of stories item by item. It is not safe for concurrent use;
// a single tick source drives it.
type Engine struct {
	viewer       Viewer
	logger       *zap.Logger
	itemDuration time.Duration
	tickInterval time.Duration

	stories []models.Story
	state   State
	story   int
	item    int
	elapsed time.Duration
	gen     uint64
}

// NewEngine creates an idle engine. viewer may be nil.
func NewEngine(viewer Viewer, opts ...Option) *Engine {
	e := &Engine{
		viewer:       viewer,
		logger:       zap.NewNop(),
		itemDuration: DefaultItemDuration,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open starts playing stories at index and marks that story viewed. Every later move to
// another story marks that one too.
func (e *Engine) Open(stories []models.Story, index int) error {
	if index < 0 || index >= len(stories) {
		return fmt.Errorf("open story %d of %d: %w", index, len(stories), ErrOutOfRange)
	}
	if len(stories[index].Items) == 0 {
		return fmt.Errorf("open story %s: %w", stories[index].ID, ErrEmptyStory)
	}

	e.stories = append([]models.Story(nil), stories...)
	e.state = Playing
	e.enterStory(index)
	return nil
}

// Tick advances playback by one tick interval.
func (e *Engine) Tick() Status {
	return e.Advance(e.tickInterval)
}

// TickFor advances by one tick only when gen is the current timer generation.
// It reports false for a stale tick, which leaves the engine untouched.
func (e *Engine) TickFor(gen uint64) (Status, bool) {
	if gen != e.gen || e.state != Playing {
		return e.Status(), false
	}
	return e.Tick(), true
}

// Advance adds dt to the current item's elapsed time. Reaching the item duration moves to
// the next item, then the next story, then Idle. Leftover time is dropped on each move.
func (e *Engine) Advance(dt time.Duration) Status {
	if e.state != Playing || dt <= 0 {
		return e.Status()
	}
	e.elapsed += dt
	if e.elapsed >= e.itemDuration {
		e.advance()
	}
	return e.Status()
}

// Next skips to the following item without waiting.
func (e *Engine) Next() Status {
	if e.state == Playing {
		e.advance()
	}
	return e.Status()
}

// Previous steps back one item, or to the first item of the previous story, which is
// marked viewed. At the very first item it restarts that item.
func (e *Engine) Previous() Status {
	if e.state != Playing {
		return e.Status()
	}
	switch {
	case e.item > 0:
		e.item--
		e.elapsed = 0
	default:
		if prev := e.playable(e.story-1, -1); prev >= 0 {
			e.enterStory(prev)
		} else {
			e.elapsed = 0
		}
	}
	return e.Status()
}

// Close stops playback from any state.
func (e *Engine) Close() {
	if e.state == Idle {
		return
	}
	e.state = Idle
	e.stories = nil
	e.story, e.item, e.elapsed = 0, 0, 0
	e.gen++
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	if e.state != Playing {
		return Status{State: Idle}
	}
	return Status{
		State:      Playing,
		StoryIndex: e.story,
		ItemIndex:  e.item,
		Progress:   float64(e.elapsed) * 100 / float64(e.itemDuration),
	}
}

// Generation identifies the currently armed timer. It changes whenever playback enters a
// story or stops.
func (e *Engine) Generation() uint64 {
	return e.gen
}

// TickInterval returns the configured tick period.
func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

// Current returns the story and item on screen, or false when Idle.
func (e *Engine) Current() (models.Story, models.StoryItem, bool) {
	if e.state != Playing {
		return models.Story{}, models.StoryItem{}, false
	}
	s := e.stories[e.story]
	return s, s.Items[e.item], true
}

func (e *Engine) advance() {
	if e.item+1 < len(e.stories[e.story].Items) {
		e.item++
		e.elapsed = 0
		return
	}
	if next := e.playable(e.story+1, 1); next >= 0 {
		e.enterStory(next)
		return
	}
	e.Close()
}

func (e *Engine) enterStory(index int) {
	e.story = index
	e.item = 0
	e.elapsed = 0
	e.gen++

	s := e.stories[index]
	e.stories[index].Viewed = true
	if e.viewer == nil {
		return
	}
	if err := e.viewer.MarkViewed(s.ID); err != nil {
		e.logger.Warn("failed to mark story viewed", zap.String("story_id", s.ID), zap.Error(err))
	}
}

// playable returns the first story index with items, walking from start by step, or -1.
func (e *Engine) playable(start, step int) int {
	for i := start; i >= 0 && i < len(e.stories); i += step {
		if len(e.stories[i].Items) > 0 {
			return i
		}
	}
	return -1
}
