// ABOUTME: Story repository with legacy-shape migration and one-story-per-owner merging.
// ABOUTME: Saving new items re-exposes the owner's story; playback marks stories viewed.
package social

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// StoryRepository owns the stories document.
type StoryRepository struct {
	port   storage.Port
	logger *zap.Logger
}

// NewStoryRepository creates a story repository over port. A nil logger discards output.
func NewStoryRepository(port storage.Port, logger *zap.Logger) *StoryRepository {
	return &StoryRepository{port: port, logger: orNop(logger)}
}

// Initialize writes the seed stories when the stories document is absent.
func (r *StoryRepository) Initialize(stories []models.Story) error {
	if _, err := seedKey(r.port, r.logger, KeyStories, &[]json.RawMessage{}, stories); err != nil {
		return fmt.Errorf("failed to seed stories: %w", err)
	}
	return nil
}

// storyDoc is the stories document as read: merged canonical stories plus the raw records
// that could not be decoded. Writes put unreadable records back unchanged.
type storyDoc struct {
	stories    []models.Story
	unreadable []json.RawMessage
}

// ListStories returns the canonical view: every record migrated, one story per owner.
// Individual records that cannot be decoded are skipped with a warning.
func (r *StoryRepository) ListStories() ([]models.Story, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	return doc.stories, nil
}

func (r *StoryRepository) read() (storyDoc, error) {
	var raw []json.RawMessage
	if _, err := load(r.port, KeyStories, &raw); err != nil {
		return storyDoc{}, err
	}

	var doc storyDoc
	normalized := make([]models.Story, 0, len(raw))
	for pos, rec := range raw {
		record, err := decodeStoryRecord(rec)
		if err != nil {
			r.logger.Warn("skipping undecodable story record", zap.Int("position", pos), zap.Error(err))
			doc.unreadable = append(doc.unreadable, rec)
			continue
		}
		normalized = append(normalized, record.migrate(pos))
	}
	doc.stories = mergeByOwner(normalized)
	return doc, nil
}

func (r *StoryRepository) write(doc storyDoc) error {
	out := make([]json.RawMessage, 0, len(doc.stories)+len(doc.unreadable))
	for _, s := range doc.stories {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode story %s: %w", s.ID, err)
		}
		out = append(out, data)
	}
	out = append(out, doc.unreadable...)
	return save(r.port, KeyStories, out)
}

// StoryFor returns the merged story owned by username.
func (r *StoryRepository) StoryFor(username string) (*models.Story, error) {
	stories, err := r.ListStories()
	if err != nil {
		return nil, err
	}
	for i := range stories {
		if stories[i].OwnerUsername == username {
			return &stories[i], nil
		}
	}
	return nil, fmt.Errorf("story for %s: %w", username, ErrNotFound)
}

// SaveStory adds story to the collection. When the owner already has a story its items are
// prepended to the existing sequence and the story is marked unviewed.
func (r *StoryRepository) SaveStory(story *models.Story) error {
	doc, err := r.read()
	if err != nil {
		return err
	}
	stories := doc.stories

	merged := false
	for i := range stories {
		if stories[i].OwnerID != story.OwnerID {
			continue
		}
		items := make([]models.StoryItem, 0, len(story.Items)+len(stories[i].Items))
		items = append(items, story.Items...)
		items = append(items, stories[i].Items...)
		stories[i].Items = items
		stories[i].Viewed = false
		merged = true
		break
	}
	if !merged {
		doc.stories = append([]models.Story{*story}, stories...)
	}

	if err := r.write(doc); err != nil {
		return err
	}
	r.logger.Debug("story saved",
		zap.String("owner", story.OwnerUsername),
		zap.Int("new_items", len(story.Items)),
		zap.Bool("merged", merged))
	return nil
}

// MarkViewed flags the story with the exact ID as viewed.
func (r *StoryRepository) MarkViewed(storyID string) error {
	doc, err := r.read()
	if err != nil {
		return err
	}
	for i := range doc.stories {
		if doc.stories[i].ID != storyID {
			continue
		}
		if doc.stories[i].Viewed {
			return nil
		}
		doc.stories[i].Viewed = true
		if err := r.write(doc); err != nil {
			return err
		}
		r.logger.Debug("story viewed", zap.String("story_id", storyID))
		return nil
	}
	return fmt.Errorf("story %s: %w", storyID, ErrNotFound)
}
