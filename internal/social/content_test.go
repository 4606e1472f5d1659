// ABOUTME: Tests for the content store's post, comment, and user operations.
// ABOUTME: Covers prepend order, counter maintenance, not-found reporting, and merges.
package social

import (
	"errors"
	"testing"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

func getUser(t *testing.T, svc *Services, username string) *models.User {
	t.Helper()
	u, err := svc.Content.GetUser(username)
	if err != nil {
		t.Fatalf("GetUser(%q) error: %v", username, err)
	}
	return u
}

func TestCreatePostPrependsAndCounts(t *testing.T) {
	svc, _ := newSeeded(t)
	emma := getUser(t, svc, "emma_creative")

	post := models.NewPost(emma, "assets/new.jpg", "Fresh upload", "")
	if err := svc.Content.CreatePost(post); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	posts, err := svc.Content.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 7 {
		t.Fatalf("expected 7 posts, got %d", len(posts))
	}
	if posts[0].ID != post.ID {
		t.Errorf("expected new post first, got %s", posts[0].ID)
	}
	if posts[0].Timestamp != models.JustNow {
		t.Errorf("Timestamp: got %q, want %q", posts[0].Timestamp, models.JustNow)
	}
	if got := getUser(t, svc, "emma_creative").Posts; got != 148 {
		t.Errorf("posts counter: got %d, want 148", got)
	}
}

func TestCreatePostWithoutOwnerRecord(t *testing.T) {
	svc, _ := newSeeded(t)
	ghost := &models.User{ID: "99", Username: "ghost"}

	if err := svc.Content.CreatePost(models.NewPost(ghost, "x.jpg", "boo", "")); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	posts, _ := svc.Content.ListPosts()
	if posts[0].OwnerUsername != "ghost" {
		t.Errorf("expected ghost post first, got %s", posts[0].OwnerUsername)
	}
}

func TestUpdatePostMergesFields(t *testing.T) {
	svc, _ := newSeeded(t)
	caption := "Edited caption"

	got, err := svc.Content.UpdatePost("2", models.PostPatch{Caption: &caption})
	if err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}
	if got.Caption != caption {
		t.Errorf("Caption: got %q, want %q", got.Caption, caption)
	}

	stored, err := svc.Content.GetPost("2")
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if stored.Caption != caption {
		t.Errorf("stored Caption: got %q, want %q", stored.Caption, caption)
	}
	if stored.Image != "assets/post2.jpg" || stored.Location != "Brooklyn, NY" || stored.Likes != 892 {
		t.Errorf("untouched fields changed: %+v", stored)
	}
}

func TestUpdatePostMissing(t *testing.T) {
	svc, _ := newSeeded(t)
	caption := "nope"

	_, err := svc.Content.UpdatePost("missing", models.PostPatch{Caption: &caption})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePostDecrementsExactlyOnce(t *testing.T) {
	svc, _ := newSeeded(t)

	if err := svc.Content.DeletePost("1"); err != nil {
		t.Fatalf("DeletePost error: %v", err)
	}
	if got := getUser(t, svc, "emma_creative").Posts; got != 146 {
		t.Errorf("posts counter after delete: got %d, want 146", got)
	}

	err := svc.Content.DeletePost("1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeated delete, got %v", err)
	}
	if got := getUser(t, svc, "emma_creative").Posts; got != 146 {
		t.Errorf("posts counter after repeated delete: got %d, want 146", got)
	}

	if _, err := svc.Content.GetPost("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted post to be gone, got %v", err)
	}
}

func TestDeletePostFloorsCounterAtZero(t *testing.T) {
	svc, _ := newSeeded(t)
	zero := 0
	if _, err := svc.Content.UpdateUser("emma_creative", models.UserPatch{Posts: &zero}); err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}

	if err := svc.Content.DeletePost("5"); err != nil {
		t.Fatalf("DeletePost error: %v", err)
	}
	if got := getUser(t, svc, "emma_creative").Posts; got != 0 {
		t.Errorf("posts counter: got %d, want 0", got)
	}
}

func TestAddCommentAppendsWithoutDedup(t *testing.T) {
	svc, _ := newSeeded(t)
	alex := getUser(t, svc, "alex_photo")
	c := models.NewComment(alex, "Wow")

	for i := 0; i < 2; i++ {
		if err := svc.Content.AddComment("1", c); err != nil {
			t.Fatalf("AddComment error: %v", err)
		}
	}

	post, err := svc.Content.GetPost("1")
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if len(post.Comments) != 4 {
		t.Fatalf("expected 4 comments, got %d", len(post.Comments))
	}
	if post.Comments[0].ID != "c1" {
		t.Errorf("expected original comments first, got %s", post.Comments[0].ID)
	}
	if post.Comments[3].Text != "Wow" || post.Comments[3].AuthorUsername != "alex_photo" {
		t.Errorf("unexpected last comment: %+v", post.Comments[3])
	}
}

func TestAddCommentMissingPost(t *testing.T) {
	svc, _ := newSeeded(t)
	err := svc.Content.AddComment("missing", models.Comment{ID: "x", Text: "hi"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newSeeded(t)
	bio := "New bio"

	u, err := svc.Content.UpdateUser("david_tech", models.UserPatch{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if u.Bio != bio || u.FullName != "David Chen" {
		t.Errorf("unexpected user after update: %+v", u)
	}

	if _, err := svc.Content.UpdateUser("nobody", models.UserPatch{Bio: &bio}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
	if _, err := svc.Content.GetUser("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from GetUser, got %v", err)
	}
}

func TestEmptyStoreListsNothing(t *testing.T) {
	svc := New(storage.NewMemoryPort(), nil)

	posts, err := svc.Content.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}
