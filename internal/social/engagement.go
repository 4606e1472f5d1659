// ABOUTME: Per-user liked, saved, reposted, and tagged post sets.
// ABOUTME: Liking moves the post's like counter together with the liked set.
package social

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// Engagement owns the per-user post id sets.
type Engagement struct {
	port    storage.Port
	content *ContentStore
	logger  *zap.Logger
}

// NewEngagement creates the engagement sets over port. Posts are resolved through content.
func NewEngagement(port storage.Port, content *ContentStore, logger *zap.Logger) *Engagement {
	return &Engagement{port: port, content: content, logger: orNop(logger)}
}

// ToggleLike flips username's like on the post and returns the new state and like count.
func (e *Engagement) ToggleLike(username, postID string) (bool, int, error) {
	if username == "" {
		return false, 0, fmt.Errorf("like without a current user: %w", ErrInvariant)
	}
	post, err := e.content.GetPost(postID)
	if err != nil {
		return false, 0, err
	}
	sets, err := e.loadSets(KeyLikedPosts)
	if err != nil {
		return false, 0, err
	}

	previous := append([]string(nil), sets[username]...)
	liked := !contains(previous, postID)
	likes := post.Likes
	if liked {
		sets[username] = addUnique(sets[username], postID)
		likes++
	} else {
		sets[username] = remove(sets[username], postID)
		if likes > 0 {
			likes--
		}
	}

	if err := save(e.port, KeyLikedPosts, sets); err != nil {
		return false, 0, err
	}
	if _, err := e.content.UpdatePost(postID, models.PostPatch{Likes: &likes}); err != nil {
		if len(previous) == 0 {
			delete(sets, username)
		} else {
			sets[username] = previous
		}
		if rerr := save(e.port, KeyLikedPosts, sets); rerr != nil {
			e.logger.Error("failed to restore liked set", zap.String("username", username), zap.Error(rerr))
		}
		return false, 0, err
	}
	e.logger.Debug("like toggled", zap.String("username", username), zap.String("post_id", postID), zap.Bool("liked", liked))
	return liked, likes, nil
}

// ToggleSave flips whether username saved the post.
func (e *Engagement) ToggleSave(username, postID string) (bool, error) {
	return e.toggle(KeySavedPosts, username, postID)
}

// ToggleRepost flips whether username reposted the post to their profile.
func (e *Engagement) ToggleRepost(username, postID string) (bool, error) {
	return e.toggle(KeyReposts, username, postID)
}

// ToggleTag flips whether username is tagged in the post.
func (e *Engagement) ToggleTag(username, postID string) (bool, error) {
	return e.toggle(KeyTaggedPosts, username, postID)
}

// HasLiked reports whether username has liked the post.
func (e *Engagement) HasLiked(username, postID string) (bool, error) {
	sets, err := e.loadSets(KeyLikedPosts)
	if err != nil {
		return false, err
	}
	return contains(sets[username], postID), nil
}

// Liked returns the posts username liked, in feed order.
func (e *Engagement) Liked(username string) ([]models.Post, error) {
	return e.postsIn(KeyLikedPosts, username)
}

// Saved returns the posts username saved, in feed order.
func (e *Engagement) Saved(username string) ([]models.Post, error) {
	return e.postsIn(KeySavedPosts, username)
}

// Reposted returns the posts username reposted, in feed order.
func (e *Engagement) Reposted(username string) ([]models.Post, error) {
	return e.postsIn(KeyReposts, username)
}

// Tagged returns the posts username is tagged in, in feed order.
func (e *Engagement) Tagged(username string) ([]models.Post, error) {
	return e.postsIn(KeyTaggedPosts, username)
}

func (e *Engagement) toggle(key, username, postID string) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("%s without a current user: %w", key, ErrInvariant)
	}
	if _, err := e.content.GetPost(postID); err != nil {
		return false, err
	}
	sets, err := e.loadSets(key)
	if err != nil {
		return false, err
	}

	member := !contains(sets[username], postID)
	if member {
		sets[username] = addUnique(sets[username], postID)
	} else {
		sets[username] = remove(sets[username], postID)
	}
	if err := save(e.port, key, sets); err != nil {
		return false, err
	}
	e.logger.Debug("post set toggled", zap.String("key", key), zap.String("username", username), zap.Bool("member", member))
	return member, nil
}

func (e *Engagement) postsIn(key, username string) ([]models.Post, error) {
	sets, err := e.loadSets(key)
	if err != nil {
		return nil, err
	}
	ids := sets[username]
	if len(ids) == 0 {
		return nil, nil
	}
	posts, err := e.content.ListPosts()
	if err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range posts {
		if contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (e *Engagement) loadSets(key string) (map[string][]string, error) {
	sets := map[string][]string{}
	if _, err := load(e.port, key, &sets); err != nil {
		return nil, err
	}
	if sets == nil {
		sets = map[string][]string{}
	}
	return sets, nil
}
