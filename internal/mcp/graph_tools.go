// ABOUTME: MCP tool implementations for follows, stories, and notes.
// ABOUTME: Registers toggle_follow, read_stories, create_story, share_note, and read_notes.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/snapgram/internal/models"
)

func (s *Server) registerGraphTools() {
	s.addTool(&gomcp.Tool{
		Name:        "toggle_follow",
		Description: "Follow a user, or unfollow them if already followed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "description": "User to follow or unfollow.", "minLength": 1}
			},
			"required": ["username"]
		}`),
	}, s.handleToggleFollow)

	s.addTool(&gomcp.Tool{
		Name:        "read_stories",
		Description: "List stories, one per user, with their items and viewed state.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleReadStories)

	s.addTool(&gomcp.Tool{
		Name:        "create_story",
		Description: "Add an image to the current user's story.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"image": {"type": "string", "description": "Image path or URL.", "minLength": 1}
			},
			"required": ["image"]
		}`),
	}, s.handleCreateStory)

	s.addTool(&gomcp.Tool{
		Name:        "share_note",
		Description: "Share a short note (up to 60 characters) as the current user.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "minLength": 1, "maxLength": 60}
			},
			"required": ["text"]
		}`),
	}, s.handleShareNote)

	s.addTool(&gomcp.Tool{
		Name:        "read_notes",
		Description: "List shared notes, newest first.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleReadNotes)
}

func (s *Server) handleToggleFollow(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}

	target := strings.TrimSpace(args.Username)

	actor, err := s.svc.Session.Current()
	if err != nil {
		return s.failure("toggle follow", err), nil
	}
	following, err := s.svc.Follows.ToggleFollow(actor, target)
	if err != nil {
		return s.failure("toggle follow", err), nil
	}
	followers, _, err := s.svc.Follows.Counts(target)
	if err != nil {
		return s.failure("count followers", err), nil
	}
	if following {
		return toolText("Now following @%s (%d followers)", target, followers), nil
	}
	return toolText("Unfollowed @%s (%d followers)", target, followers), nil
}

func (s *Server) handleReadStories(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	stories, err := s.svc.Stories.ListStories()
	if err != nil {
		return s.failure("list stories", err), nil
	}
	if len(stories) == 0 {
		return toolText("No stories found."), nil
	}

	var sb strings.Builder
	for _, st := range stories {
		state := "new"
		if st.Viewed {
			state = "viewed"
		}
		sb.WriteString(fmt.Sprintf("---\n@%s (ID: %s, %s, %d items)\n", st.OwnerUsername, st.ID, state, len(st.Items)))
		for _, item := range st.Items {
			sb.WriteString(fmt.Sprintf("  %s [%s]\n", item.Image, item.Timestamp))
		}
	}
	return toolText("%s", sb.String()), nil
}

func (s *Server) handleCreateStory(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Image string `json:"image"`
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
	story := models.NewStory(user, args.Image)
	if err := s.svc.Stories.SaveStory(story); err != nil {
		return s.failure("create story", err), nil
	}
	return toolText("Story updated for @%s", user.Username), nil
}

func (s *Server) handleShareNote(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Text string `json:"text"`
	}
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}

	user, res := s.currentUser()
	if res != nil {
		return res, nil
	}
	note := models.NewNote(user.Username, user.Avatar, args.Text)
	if err := s.svc.Notes.Add(note); err != nil {
		return s.failure("share note", err), nil
	}
	return toolText("Note shared: %s", note.Text), nil
}

func (s *Server) handleReadNotes(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	notes, err := s.svc.Notes.List()
	if err != nil {
		return s.failure("list notes", err), nil
	}
	if len(notes) == 0 {
		return toolText("No notes yet."), nil
	}

	var sb strings.Builder
	for _, n := range notes {
		at := time.UnixMilli(n.Timestamp).Format("2006-01-02 15:04")
		sb.WriteString(fmt.Sprintf("@%s [%s]: %s\n", n.Username, at, n.Text))
	}
	return toolText("%s", sb.String()), nil
}
