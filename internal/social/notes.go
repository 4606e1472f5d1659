// ABOUTME: Notes feed of short status lines, newest first.
// ABOUTME: Enforces the non-empty, 60-character note rule.
package social

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// MaxNoteLength is the longest note text accepted, in characters.
const MaxNoteLength = 60

// Notes owns the notes document.
type Notes struct {
	port   storage.Port
	logger *zap.Logger
}

// NewNotes creates the notes feed over port. A nil logger discards output.
func NewNotes(port storage.Port, logger *zap.Logger) *Notes {
	return &Notes{port: port, logger: orNop(logger)}
}

// Initialize writes the seed notes when the notes document is absent.
func (n *Notes) Initialize(notes []models.Note) error {
	if _, err := seedKey(n.port, n.logger, KeyNotes, &[]models.Note{}, notes); err != nil {
		return fmt.Errorf("failed to seed notes: %w", err)
	}
	return nil
}

// Add validates and prepends note.
func (n *Notes) Add(note *models.Note) error {
	note.Text = strings.TrimSpace(note.Text)
	if note.Text == "" {
		return fmt.Errorf("note text is required: %w", ErrInvariant)
	}
	if utf8.RuneCountInString(note.Text) > MaxNoteLength {
		return fmt.Errorf("note longer than %d characters: %w", MaxNoteLength, ErrInvariant)
	}

	notes, err := n.List()
	if err != nil {
		return err
	}
	notes = append([]models.Note{*note}, notes...)
	if err := save(n.port, KeyNotes, notes); err != nil {
		return err
	}
	n.logger.Debug("note shared", zap.String("username", note.Username))
	return nil
}

// List returns every note, newest first.
func (n *Notes) List() ([]models.Note, error) {
	var notes []models.Note
	if _, err := load(n.port, KeyNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
