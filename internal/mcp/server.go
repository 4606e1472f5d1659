// ABOUTME: MCP server initialization and configuration for snapgram.
// ABOUTME: Sets up server with content, graph, story, and notes tools for AI agent access.
package mcp

import (
	"context"
	"errors"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/social"
)

// Server wraps the MCP server around the social services.
type Server struct {
	mcp      *gomcp.Server
	svc      *social.Services
	logger   *zap.Logger
	handlers map[string]gomcp.ToolHandler
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool failures.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server exposing the social services as tools.
func NewServer(svc *social.Services, opts ...ServerOption) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("social services are required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "snapgram",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		svc:      svc,
		logger:   zap.NewNop(),
		handlers: make(map[string]gomcp.ToolHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerContentTools()
	s.registerGraphTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

// Tools returns the registered tool names.
func (s *Server) Tools() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	return names
}

func (s *Server) addTool(tool *gomcp.Tool, h gomcp.ToolHandler) {
	s.handlers[tool.Name] = h
	s.mcp.AddTool(tool, h)
}

// currentUser resolves the session user, or returns the error result to send back.
func (s *Server) currentUser() (*models.User, *gomcp.CallToolResult) {
	user, err := s.svc.CurrentUser()
	if err != nil {
		return nil, s.failure("resolve current user", err)
	}
	return user, nil
}

// failure maps a service error to a tool error result.
func (s *Server) failure(action string, err error) *gomcp.CallToolResult {
	s.logger.Debug("tool failed", zap.String("action", action), zap.Error(err))
	var corrupt *social.CorruptError
	switch {
	case errors.Is(err, social.ErrNoSession):
		return toolError("not logged in - use the login tool first")
	case errors.Is(err, social.ErrNotFound):
		return toolError("not found: %v", err)
	case errors.Is(err, social.ErrInvariant):
		return toolError("rejected: %v", err)
	case errors.As(err, &corrupt):
		s.logger.Warn("stored data is corrupt", zap.String("action", action), zap.String("key", corrupt.Key), zap.Error(err))
		return toolError("stored %s is unreadable; run `snapgram init --reset %s` to replace it with its default", corrupt.Key, corrupt.Key)
	case errors.Is(err, social.ErrCorrupt):
		s.logger.Warn("stored data is corrupt", zap.String("action", action), zap.Error(err))
		return toolError("stored data is unreadable; run `snapgram init` to restore defaults")
	default:
		return toolError("failed to %s: %v", action, err)
	}
}

func toolText(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
