// ABOUTME: Core data models for users, posts, comments, stories, follow data, and notes.
// ABOUTME: Provides constructor functions and the persisted JSON shapes used by the social stores.
package models

import (
	"time"

	"github.com/google/uuid"
)

// JustNow is the display timestamp stamped on freshly created content.
const JustNow = "Just now"

// User is a profile record. Username is the effective primary key.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Posts     int    `json:"posts"`
	Verified  bool   `json:"verified,omitempty"`
}

// UserPatch carries a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	FullName  *string
	Avatar    *string
	Bio       *string
	Verified  *bool
	Followers *int
	Following *int
	Posts     *int
}

// Apply merges the non-nil patch fields into u.
func (p UserPatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Verified != nil {
		u.Verified = *p.Verified
	}
	if p.Followers != nil {
		u.Followers = *p.Followers
	}
	if p.Following != nil {
		u.Following = *p.Following
	}
	if p.Posts != nil {
		u.Posts = *p.Posts
	}
}

// Comment is an immutable remark appended to a post.
type Comment struct {
	ID             string `json:"id"`
	AuthorID       string `json:"userId"`
	AuthorUsername string `json:"username"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

// NewComment creates a comment with a generated ID.
func NewComment(author *User, text string) Comment {
	return Comment{
		ID:             uuid.New().String(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		Timestamp:      JustNow,
	}
}

// Post is a single image post with its comment thread.
type Post struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"userId"`
	OwnerUsername string    `json:"username"`
	OwnerAvatar   string    `json:"userAvatar"`
	Image         string    `json:"image"`
	Caption       string    `json:"caption"`
	Likes         int       `json:"likes"`
	Comments      []Comment `json:"comments"`
	Timestamp     string    `json:"timestamp"`
	Location      string    `json:"location,omitempty"`
}

// NewPost creates a post owned by the given user with a generated ID.
func NewPost(owner *User, image, caption, location string) *Post {
	return &Post{
		ID:            uuid.New().String(),
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		OwnerAvatar:   owner.Avatar,
		Image:         image,
		Caption:       caption,
		Comments:      []Comment{},
		Timestamp:     JustNow,
		Location:      location,
	}
}

// PostPatch carries a partial post update. Nil fields are left unchanged.
type PostPatch struct {
	Image    *string
	Caption  *string
	Location *string
	Likes    *int
}

// Apply merges the non-nil patch fields into p.
func (pp PostPatch) Apply(p *Post) {
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Caption != nil {
		p.Caption = *pp.Caption
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Likes != nil {
		p.Likes = *pp.Likes
	}
}

// StoryItem is one frame of a story.
type StoryItem struct {
	ID        string `json:"id"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
}

// Story is a user's ordered sequence of items, newest first.
type Story struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"userId"`
	OwnerUsername string      `json:"username"`
	OwnerAvatar   string      `json:"avatar"`
	Items         []StoryItem `json:"items"`
	Viewed        bool        `json:"viewed"`
}

// NewStory creates a single-item story for the given user.
func NewStory(owner *User, image string) *Story {
	return &Story{
		ID:            StoryID(owner.ID),
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		OwnerAvatar:   owner.Avatar,
		Items: []StoryItem{{
			ID:        "story_item_" + uuid.New().String(),
			Image:     image,
			Timestamp: JustNow,
		}},
	}
}

// StoryID returns the canonical story ID for an owner.
func StoryID(ownerID string) string {
	return "story_" + ownerID
}

// FollowEntry holds both adjacency sets for one username.
type FollowEntry struct {
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}

// Note is a short status line shown above the inbox.
type Note struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// NewNote creates a note stamped with the current time in unix milliseconds.
func NewNote(username, avatar, text string) *Note {
	return &Note{
		ID:        uuid.New().String(),
		Username:  username,
		Avatar:    avatar,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}
