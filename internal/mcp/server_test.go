// ABOUTME: Tests for MCP server creation plus shared tool-call helpers.
// ABOUTME: Servers are built over seeded in-memory services.
package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/snapgram/internal/social"
	"github.com/2389-research/snapgram/internal/storage"
)

func makeServer(t *testing.T) *Server {
	t.Helper()
	svc := social.New(storage.NewMemoryPort(), nil)
	if err := svc.Initialize(social.DefaultSeed()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	server, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

// callTool invokes a registered handler directly with JSON-encoded args.
func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}

	h, ok := s.handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestNewServerRequiresServices(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error when services are nil")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := makeServer(t)

	got := s.Tools()
	sort.Strings(got)
	want := []string{
		"add_comment", "create_post", "create_story", "delete_post", "edit_post",
		"like_post", "login", "read_notes", "read_posts", "read_stories",
		"share_note", "toggle_follow", "whoami",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tools, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tool %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNoSessionReportsLogin(t *testing.T) {
	svc := social.New(storage.NewMemoryPort(), nil)
	s, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	result := callTool(t, s, "whoami", map[string]string{})
	if !result.IsError {
		t.Fatal("expected error without a session")
	}
	if text := getTextContent(result); text != "not logged in - use the login tool first" {
		t.Errorf("unexpected message: %s", text)
	}
}

func TestCorruptDocumentNamesKey(t *testing.T) {
	port := storage.NewMemoryPort()
	svc := social.New(port, nil)
	if err := svc.Initialize(social.DefaultSeed()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	if err := port.Set(social.KeyLikedPosts, []byte("[broken")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	s, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	result := callTool(t, s, "like_post", map[string]string{"post_id": "3"})
	if !result.IsError {
		t.Error("expected an error result")
	}
	if text := getTextContent(result); !strings.Contains(text, "snapgram init --reset likedPosts") {
		t.Errorf("expected key-specific reset hint, got %q", text)
	}
}
