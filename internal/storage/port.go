// ABOUTME: Interface definition for the durable key/value port behind the social stores.
// ABOUTME: Values are opaque encoded records; decoding belongs to the callers.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// Port is a durable keyed storage primitive.
//
// Implementations give read-your-writes within one process. There are no transactions
// and no cross-key atomicity: two processes sharing the same backing file can still
// overwrite each other's last write.
type Port interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases any resources held by the port.
	Close() error
}

// KeyLister is implemented by ports that can enumerate their keys.
type KeyLister interface {
	Keys() ([]string, error)
}
