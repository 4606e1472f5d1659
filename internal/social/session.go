// ABOUTME: Session pointer naming the acting user.
// ABOUTME: Stored as a single JSON string under the current-user key.
package social

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/storage"
)

// DefaultUsername is the session seeded on first run.
const DefaultUsername = "emma_creative"

// Session reads and writes the current username.
type Session struct {
	port   storage.Port
	logger *zap.Logger
}

// NewSession creates a session pointer over port. A nil logger discards output.
func NewSession(port storage.Port, logger *zap.Logger) *Session {
	return &Session{port: port, logger: orNop(logger)}
}

// Initialize stores username as the current user when none is set.
func (s *Session) Initialize(username string) error {
	if _, err := seedKey(s.port, s.logger, KeyCurrentUser, new(string), username); err != nil {
		return fmt.Errorf("failed to seed session: %w", err)
	}
	return nil
}

// Current returns the acting username, or ErrNoSession.
func (s *Session) Current() (string, error) {
	var username string
	found, err := load(s.port, KeyCurrentUser, &username)
	if err != nil {
		return "", err
	}
	if !found || username == "" {
		return "", ErrNoSession
	}
	return username, nil
}

// Login makes username the acting user.
func (s *Session) Login(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required: %w", ErrInvariant)
	}
	if err := save(s.port, KeyCurrentUser, username); err != nil {
		return err
	}
	s.logger.Debug("session changed", zap.String("username", username))
	return nil
}
