// ABOUTME: Storage keys and JSON document helpers shared by the social stores.
// ABOUTME: Maps decode failures to ErrCorrupt and handles seed-if-absent writes.
package social

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/storage"
)

// Persisted document keys.
const (
	KeyPosts       = "instaclone_posts"
	KeyStories     = "instaclone_stories"
	KeyUsers       = "instaclone_users"
	KeyCurrentUser = "instaclone_current_user"
	KeyFollowData  = "followData"
	KeyLikedPosts  = "likedPosts"
	KeySavedPosts  = "savedPosts"
	KeyReposts     = "reposts"
	KeyTaggedPosts = "taggedPosts"
	KeyNotes       = "instagram_notes"
)

// load decodes the document under key into v. It reports false when the key is absent.
func load(port storage.Port, key string, v any) (bool, error) {
	data, err := port.Get(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &CorruptError{Key: key, Err: err}
	}
	return true, nil
}

// save encodes v and stores it under key.
func save(port storage.Port, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := port.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// seedKey writes seed under key unless the stored value decodes into probe. probe must be
// the shape the key's reader loads, so anything the reader accepts is kept. A value that
// does not decode is replaced. It reports whether anything was written.
func seedKey(port storage.Port, logger *zap.Logger, key string, probe, seed any) (bool, error) {
	found, err := load(port, key, probe)
	switch {
	case errors.Is(err, ErrCorrupt):
		logger.Warn("re-seeding corrupt document", zap.String("key", key), zap.Error(err))
	case err != nil:
		return false, err
	case found:
		return false, nil
	}

	if err := save(port, key, seed); err != nil {
		return false, err
	}
	logger.Debug("seeded document", zap.String("key", key))
	return true, nil
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
