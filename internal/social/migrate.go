// ABOUTME: Versioned decoding of persisted story records and their migration to the canonical shape.
// ABOUTME: Legacy single-image records become one-item stories; merge collapses records per owner.
package social

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/2389-research/snapgram/internal/models"
)

// RecentlyToken is the display timestamp given to migrated items that carried none.
const RecentlyToken = "Recently"

// storyRecord is one schema version of a persisted story.
type storyRecord interface {
	// migrate converts the record at the given collection position to the canonical shape.
	migrate(position int) models.Story
}

// legacyStoryV1 predates multi-item stories: one image at the top level, no items.
type legacyStoryV1 struct {
	ID        flexString `json:"id"`
	UserID    flexString `json:"userId"`
	Username  flexString `json:"username"`
	Avatar    flexString `json:"avatar"`
	Image     flexString `json:"image"`
	Timestamp flexString `json:"timestamp"`
	Viewed    bool       `json:"viewed"`
}

// storyV2 is the current shape with an items sequence.
type storyV2 struct {
	ID       flexString    `json:"id"`
	UserID   flexString    `json:"userId"`
	Username flexString    `json:"username"`
	Avatar   flexString    `json:"avatar"`
	Items    []storyItemV2 `json:"items"`
	Viewed   bool          `json:"viewed"`
}

type storyItemV2 struct {
	ID        flexString `json:"id"`
	Image     flexString `json:"image"`
	Timestamp flexString `json:"timestamp"`
}

func (r legacyStoryV1) migrate(position int) models.Story {
	owner := string(r.UserID)
	item := models.StoryItem{
		ID:        string(r.ID),
		Image:     string(r.Image),
		Timestamp: string(r.Timestamp),
	}
	if item.ID == "" {
		item.ID = migratedItemID(owner, position)
	}
	if item.Image == "" {
		item.Image = string(r.Avatar)
	}
	if item.Timestamp == "" {
		item.Timestamp = RecentlyToken
	}
	return models.Story{
		ID:            storyIDOr(string(r.ID), owner),
		OwnerID:       owner,
		OwnerUsername: string(r.Username),
		OwnerAvatar:   string(r.Avatar),
		Items:         []models.StoryItem{item},
		Viewed:        r.Viewed,
	}
}

func (r storyV2) migrate(int) models.Story {
	owner := string(r.UserID)
	items := make([]models.StoryItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.StoryItem{
			ID:        string(it.ID),
			Image:     string(it.Image),
			Timestamp: string(it.Timestamp),
		})
	}
	return models.Story{
		ID:            storyIDOr(string(r.ID), owner),
		OwnerID:       owner,
		OwnerUsername: string(r.Username),
		OwnerAvatar:   string(r.Avatar),
		Items:         items,
		Viewed:        r.Viewed,
	}
}

// decodeStoryRecord picks the schema version by whether the record carries an items array.
func decodeStoryRecord(raw json.RawMessage) (storyRecord, error) {
	var probe struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	if bytes.HasPrefix(bytes.TrimSpace(probe.Items), []byte("[")) {
		var r storyV2
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return r, nil
	}

	var r legacyStoryV1
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// mergeByOwner collapses stories sharing an owner into the first-seen slot.
// A later record's items go in front of the earlier ones, and the merged story is viewed
// only when every contributing record was viewed.
func mergeByOwner(stories []models.Story) []models.Story {
	slot := make(map[string]int, len(stories))
	merged := make([]models.Story, 0, len(stories))

	for _, s := range stories {
		i, ok := slot[s.OwnerID]
		if !ok {
			slot[s.OwnerID] = len(merged)
			merged = append(merged, s)
			continue
		}
		existing := merged[i]
		items := make([]models.StoryItem, 0, len(s.Items)+len(existing.Items))
		items = append(items, s.Items...)
		items = append(items, existing.Items...)
		existing.Items = items
		existing.Viewed = existing.Viewed && s.Viewed
		merged[i] = existing
	}
	return merged
}

// migratedItemID derives a stable item ID from the owner and the record's position.
func migratedItemID(ownerID string, position int) string {
	sum := sha256.Sum256([]byte(ownerID + ":" + strconv.Itoa(position)))
	return "migrated_" + hex.EncodeToString(sum[:])[:12]
}

func storyIDOr(id, ownerID string) string {
	if id != "" {
		return id
	}
	return models.StoryID(ownerID)
}

// flexString accepts a JSON string, number, or boolean. Null decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("cannot decode %s as string", data)
}
