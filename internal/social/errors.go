// ABOUTME: Failure kinds reported by the social stores.
// ABOUTME: Callers match them with errors.Is; CorruptError also names the unreadable key.
package social

import "errors"

var (
	// ErrNotFound means the post, user, or story targeted by an operation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt means a stored document could not be decoded into its expected shape.
	ErrCorrupt = errors.New("corrupt stored value")

	// ErrInvariant means the operation would break a model rule, such as a self-follow.
	ErrInvariant = errors.New("invariant violation")

	// ErrNoSession means no current user has been set.
	ErrNoSession = errors.New("no current user")
)

// CorruptError reports which stored document failed to decode. It matches ErrCorrupt.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return ErrCorrupt.Error() + ": " + e.Key + ": " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }
