// ABOUTME: MCP tool implementations for session, post, comment, and like operations.
// ABOUTME: Registers login, whoami, create_post, read_posts, edit_post, delete_post, add_comment, like_post.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/snapgram/internal/models"
)

func (s *Server) registerContentTools() {
	s.addTool(&gomcp.Tool{
		Name:        "login",
		Description: "Set the username that subsequent social actions are performed as.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "description": "Username to act as.", "minLength": 1}
			},
			"required": ["username"]
		}`),
	}, s.handleLogin)

	s.addTool(&gomcp.Tool{
		Name:        "whoami",
		Description: "Show the current user's profile summary.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleWhoami)

	s.addTool(&gomcp.Tool{
		Name:        "create_post",
		Description: "Publish a new image post as the current user.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"image": {"type": "string", "description": "Image path or URL.", "minLength": 1},
				"caption": {"type": "string", "description": "Post caption."},
				"location": {"type": "string", "description": "Optional location label."}
			},
			"required": ["image"]
		}`),
	}, s.handleCreatePost)

	s.addTool(&gomcp.Tool{
		Name:        "read_posts",
		Description: "Retrieve posts from the feed, most recent first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of posts to retrieve (default 10)"},
				"offset": {"type": "number", "description": "Number of posts to skip (default 0)"},
				"username": {"type": "string", "description": "Only posts owned by this user"}
			}
		}`),
	}, s.handleReadPosts)

	s.addTool(&gomcp.Tool{
		Name:        "edit_post",
		Description: "Change the caption, location, or image of a post. Omitted fields are kept.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "minLength": 1},
				"caption": {"type": "string"},
				"location": {"type": "string"},
				"image": {"type": "string"}
			},
			"required": ["post_id"]
		}`),
	}, s.handleEditPost)

	s.addTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post owned by the current user.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "minLength": 1}
			},
			"required": ["post_id"]
		}`),
	}, s.handleDeletePost)

	s.addTool(&gomcp.Tool{
		Name:        "add_comment",
		Description: "Comment on a post as the current user.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "minLength": 1},
				"text": {"type": "string", "minLength": 1}
			},
			"required": ["post_id", "text"]
		}`),
	}, s.handleAddComment)

	s.addTool(&gomcp.Tool{
		Name:        "like_post",
		Description: "Toggle the current user's like on a post.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "minLength": 1}
			},
			"required": ["post_id"]
		}`),
	}, s.handleLikePost)
}

func decodeArgs(req *gomcp.CallToolRequest, v any) *gomcp.CallToolResult {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	return nil
}

func (s *Server) handleLogin(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	args.Username = strings.TrimSpace(args.Username)
	if args.Username == "" {
		return toolError("username is required"), nil
	}

	if err := s.svc.Session.Login(args.Username); err != nil {
		return s.failure("log in", err), nil
	}
	if _, err := s.svc.Content.GetUser(args.Username); err != nil {
		return toolText("Logged in as %s (no profile record yet)", args.Username), nil
	}
	return toolText("Logged in as %s", args.Username), nil
}

func (s *Server) handleWhoami(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	user, res := s.currentUser()
	if res != nil {
		return res, nil
	}
	p, err := s.svc.Profile(user.Username)
	if err != nil {
		return s.failure("load profile", err), nil
	}
	return toolText("@%s (%s)\n%s\nposts: %d, followers: %d, following: %d",
		p.User.Username, p.User.FullName, p.User.Bio, p.User.Posts, p.Followers, p.Following), nil
}

func (s *Server) handleCreatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Image    string `json:"image"`
		Caption  string `json:"caption"`
		Location string `json:"location"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if args.Image == "" {
		return toolError("image is required"), nil
	}

	user, res := s.currentUser()
	if res != nil {
		return res, nil
	}
	post := models.NewPost(user, args.Image, args.Caption, args.Location)
	if err := s.svc.Content.CreatePost(post); err != nil {
		return s.failure("create post", err), nil
	}
	return toolText("Post created (ID: %s)", post.ID), nil
}

func (s *Server) handleReadPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit    int    `json:"limit"`
		Offset   int    `json:"offset"`
		Username string `json:"username"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}
	if args.Offset < 0 {
		args.Offset = 0
	}

	var posts []models.Post
	var err error
	if args.Username != "" {
		posts, err = s.svc.Content.UserPosts(args.Username)
	} else {
		posts, err = s.svc.Content.ListPosts()
	}
	if err != nil {
		return s.failure("list posts", err), nil
	}

	if args.Offset >= len(posts) {
		return toolText("No posts found."), nil
	}
	posts = posts[args.Offset:]
	if len(posts) > args.Limit {
		posts = posts[:args.Limit]
	}

	var sb strings.Builder
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("---\n@%s [%s] (ID: %s)", post.OwnerUsername, post.Timestamp, post.ID))
		if post.Location != "" {
			sb.WriteString(fmt.Sprintf(" at %s", post.Location))
		}
		sb.WriteString(fmt.Sprintf("\n%s\n%s\nlikes: %d, comments: %d\n", post.Image, post.Caption, post.Likes, len(post.Comments)))
	}
	return toolText("%s", sb.String()), nil
}

func (s *Server) handleEditPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID   string  `json:"post_id"`
		Caption  *string `json:"caption"`
		Location *string `json:"location"`
		Image    *string `json:"image"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if args.PostID == "" {
		return toolError("post_id is required"), nil
	}
	if args.Caption == nil && args.Location == nil && args.Image == nil {
		return toolError("nothing to change: pass caption, location, or image"), nil
	}

	post, err := s.svc.Content.UpdatePost(args.PostID, models.PostPatch{
		Caption:  args.Caption,
		Location: args.Location,
		Image:    args.Image,
	})
	if err != nil {
		return s.failure("edit post", err), nil
	}
	return toolText("Post %s updated: %s", post.ID, post.Caption), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID string `json:"post_id"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if args.PostID == "" {
		return toolError("post_id is required"), nil
	}

	user, res := s.currentUser()
	if res != nil {
		return res, nil
	}
	post, err := s.svc.Content.GetPost(args.PostID)
	if err != nil {
		return s.failure("delete post", err), nil
	}
	if post.OwnerUsername != user.Username {
		return toolError("post %s belongs to @%s", post.ID, post.OwnerUsername), nil
	}
	if err := s.svc.Content.DeletePost(args.PostID); err != nil {
		return s.failure("delete post", err), nil
	}
	return toolText("Post %s deleted", args.PostID), nil
}

func (s *Server) handleAddComment(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID string `json:"post_id"`
		Text   string `json:"text"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	args.Text = strings.TrimSpace(args.Text)
	if args.PostID == "" || args.Text == "" {
		return toolError("post_id and text are required"), nil
	}

	user, res := s.currentUser()
	if res != nil {
		return res, nil
	}
	if err := s.svc.Content.AddComment(args.PostID, models.NewComment(user, args.Text)); err != nil {
		return s.failure("add comment", err), nil
	}
	return toolText("Comment added to %s", args.PostID), nil
}

func (s *Server) handleLikePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID string `json:"post_id"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if args.PostID == "" {
		return toolError("post_id is required"), nil
	}

	username, err := s.svc.Session.Current()
	if err != nil {
		return s.failure("like post", err), nil
	}
	liked, likes, err := s.svc.Engagement.ToggleLike(username, args.PostID)
	if err != nil {
		return s.failure("like post", err), nil
	}
	verb := "Unliked"
	if liked {
		verb = "Liked"
	}
	return toolText("%s %s (%d likes)", verb, args.PostID, likes), nil
}
