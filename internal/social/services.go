// ABOUTME: Bundles the social stores that share one key/value port.
// ABOUTME: Entry point for the CLI, TUI, and MCP server.
package social

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// Services groups every store built over a single port.
type Services struct {
	Content    *ContentStore
	Stories    *StoryRepository
	Follows    *FollowGraph
	Session    *Session
	Engagement *Engagement
	Notes      *Notes

	port   storage.Port
	logger *zap.Logger
}

// New wires all stores over port.
func New(port storage.Port, logger *zap.Logger) *Services {
	content := NewContentStore(port, logger)
	return &Services{
		Content:    content,
		Stories:    NewStoryRepository(port, logger),
		Follows:    NewFollowGraph(port, logger),
		Session:    NewSession(port, logger),
		Engagement: NewEngagement(port, content, logger),
		Notes:      NewNotes(port, logger),
		port:       port,
		logger:     orNop(logger),
	}
}

// Initialize seeds every absent document. Existing data is never overwritten.
func (s *Services) Initialize(seed Seed) error {
	if err := s.Content.Initialize(seed.Users, seed.Posts); err != nil {
		return err
	}
	if err := s.Stories.Initialize(seed.Stories); err != nil {
		return err
	}
	if err := s.Notes.Initialize(seed.Notes); err != nil {
		return err
	}
	if seed.CurrentUser != "" {
		if err := s.Session.Initialize(seed.CurrentUser); err != nil {
			return err
		}
	}
	return nil
}

// Reset replaces the document under key with its seed value, or with an empty document for
// keys that are never seeded. It discards whatever was stored there.
func (s *Services) Reset(key string, seed Seed) error {
	var value any
	switch key {
	case KeyUsers:
		value = seed.Users
	case KeyPosts:
		value = seed.Posts
	case KeyStories:
		value = seed.Stories
	case KeyNotes:
		value = seed.Notes
	case KeyCurrentUser:
		value = seed.CurrentUser
	case KeyFollowData:
		value = map[string]models.FollowEntry{}
	case KeyLikedPosts, KeySavedPosts, KeyReposts, KeyTaggedPosts:
		value = map[string][]string{}
	default:
		return fmt.Errorf("unknown document %q: %w", key, ErrInvariant)
	}
	if err := save(s.port, key, value); err != nil {
		return err
	}
	s.logger.Info("document reset", zap.String("key", key))
	return nil
}

// CurrentUser resolves the session pointer to its user record.
func (s *Services) CurrentUser() (*models.User, error) {
	username, err := s.Session.Current()
	if err != nil {
		return nil, err
	}
	user, err := s.Content.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// Profile is a user's record with follow counts derived from the graph.
type Profile struct {
	User      models.User
	Followers int
	Following int
	Posts     []models.Post
	Reposts   []models.Post
	Tagged    []models.Post
}

// Profile assembles the profile view for username.
func (s *Services) Profile(username string) (*Profile, error) {
	user, err := s.Content.GetUser(username)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.Follows.Counts(username)
	if err != nil {
		return nil, err
	}
	posts, err := s.Content.UserPosts(username)
	if err != nil {
		return nil, err
	}
	reposts, err := s.Engagement.Reposted(username)
	if err != nil {
		return nil, err
	}
	tagged, err := s.Engagement.Tagged(username)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:      *user,
		Followers: followers,
		Following: following,
		Posts:     posts,
		Reposts:   reposts,
		Tagged:    tagged,
	}, nil
}
