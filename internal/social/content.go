// ABOUTME: Content store for users, posts, and comments on top of a key/value port.
// ABOUTME: Keeps the owner's posts counter in step with post creation and deletion.
package social

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// ContentStore owns the users and posts documents.
type ContentStore struct {
	port   storage.Port
	logger *zap.Logger
}

// NewContentStore creates a content store over port. A nil logger discards output.
func NewContentStore(port storage.Port, logger *zap.Logger) *ContentStore {
	return &ContentStore{port: port, logger: orNop(logger)}
}

// Initialize writes the seed users and posts when their documents are absent.
func (c *ContentStore) Initialize(users []models.User, posts []models.Post) error {
	if _, err := seedKey(c.port, c.logger, KeyUsers, &[]models.User{}, users); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if _, err := seedKey(c.port, c.logger, KeyPosts, &[]models.Post{}, posts); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	return nil
}

// ListPosts returns every post, most recent first.
func (c *ContentStore) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if _, err := load(c.port, KeyPosts, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns the post with the given ID.
func (c *ContentStore) GetPost(id string) (*models.Post, error) {
	posts, err := c.ListPosts()
	if err != nil {
		return nil, err
	}
	i := indexPost(posts, id)
	if i < 0 {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	return &posts[i], nil
}

// UserPosts returns the posts owned by username, most recent first.
func (c *ContentStore) UserPosts(username string) ([]models.Post, error) {
	posts, err := c.ListPosts()
	if err != nil {
		return nil, err
	}
	var owned []models.Post
	for _, p := range posts {
		if p.OwnerUsername == username {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// CreatePost prepends post and bumps the owner's posts counter.
// The owner is not required to exist; without a user record the counter step is skipped.
func (c *ContentStore) CreatePost(post *models.Post) error {
	posts, err := c.ListPosts()
	if err != nil {
		return err
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	posts = append([]models.Post{*post}, posts...)
	if err := save(c.port, KeyPosts, posts); err != nil {
		return err
	}
	c.logger.Debug("post created", zap.String("post_id", post.ID), zap.String("owner", post.OwnerUsername))

	return c.adjustPostCount(post.OwnerUsername, 1)
}

// UpdatePost merges patch into the post with the given ID and returns the result.
func (c *ContentStore) UpdatePost(id string, patch models.PostPatch) (*models.Post, error) {
	posts, err := c.ListPosts()
	if err != nil {
		return nil, err
	}
	i := indexPost(posts, id)
	if i < 0 {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	patch.Apply(&posts[i])
	if err := save(c.port, KeyPosts, posts); err != nil {
		return nil, err
	}
	c.logger.Debug("post updated", zap.String("post_id", id))
	return &posts[i], nil
}

// DeletePost removes the post and decrements the owner's posts counter, never below zero.
func (c *ContentStore) DeletePost(id string) error {
	posts, err := c.ListPosts()
	if err != nil {
		return err
	}
	i := indexPost(posts, id)
	if i < 0 {
		return fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	owner := posts[i].OwnerUsername
	posts = append(posts[:i], posts[i+1:]...)
	if err := save(c.port, KeyPosts, posts); err != nil {
		return err
	}
	c.logger.Debug("post deleted", zap.String("post_id", id), zap.String("owner", owner))

	return c.adjustPostCount(owner, -1)
}

// AddComment appends comment to the post's thread. Identical comments are not deduplicated.
func (c *ContentStore) AddComment(postID string, comment models.Comment) error {
	posts, err := c.ListPosts()
	if err != nil {
		return err
	}
	i := indexPost(posts, postID)
	if i < 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	posts[i].Comments = append(posts[i].Comments, comment)
	if err := save(c.port, KeyPosts, posts); err != nil {
		return err
	}
	c.logger.Debug("comment added", zap.String("post_id", postID), zap.String("author", comment.AuthorUsername))
	return nil
}

// ListUsers returns every user in stored order.
func (c *ContentStore) ListUsers() ([]models.User, error) {
	var users []models.User
	if _, err := load(c.port, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns the user with the given username.
func (c *ContentStore) GetUser(username string) (*models.User, error) {
	users, err := c.ListUsers()
	if err != nil {
		return nil, err
	}
	i := indexUser(users, username)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	return &users[i], nil
}

// UpdateUser merges patch into the user with the given username and returns the result.
func (c *ContentStore) UpdateUser(username string, patch models.UserPatch) (*models.User, error) {
	users, err := c.ListUsers()
	if err != nil {
		return nil, err
	}
	i := indexUser(users, username)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	patch.Apply(&users[i])
	if err := save(c.port, KeyUsers, users); err != nil {
		return nil, err
	}
	c.logger.Debug("user updated", zap.String("username", username))
	return &users[i], nil
}

func (c *ContentStore) adjustPostCount(username string, delta int) error {
	users, err := c.ListUsers()
	if err != nil {
		return err
	}
	i := indexUser(users, username)
	if i < 0 {
		c.logger.Debug("posts counter skipped, no user record", zap.String("username", username))
		return nil
	}
	next := users[i].Posts + delta
	if next < 0 {
		next = 0
	}
	if next == users[i].Posts {
		return nil
	}
	users[i].Posts = next
	return save(c.port, KeyUsers, users)
}

func indexPost(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func indexUser(users []models.User, username string) int {
	for i := range users {
		if users[i].Username == username {
			return i
		}
	}
	return -1
}
