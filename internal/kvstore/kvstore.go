// Package kvstore provides the small persistent key-value store backing
// user preferences and favorites. It plays the role browser local storage
// plays for a web dashboard: a handful of string keys, written through on
// every mutation.
package kvstore

// Interface is the contract consumed by the favorites store and the theme
// preference accessor. Implementations must tolerate concurrent readers.
type Interface interface {
	// Get returns the value stored under key. The second return value is
	// false when the key is absent.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any existing value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases the underlying resources.
	Close() error
}
