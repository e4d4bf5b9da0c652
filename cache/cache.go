// Package cache provides resolved-translation cache backends.
//
// The resolver memoizes successful (language, key) resolutions through a
// StringCache. The in-memory backend is the default for a single bot
// process; the Redis backend lets sharded processes share one warm cache.
package cache

// StringCache is the interface the resolver memoizes through.
type StringCache interface {
	// Get retrieves a cached resolution. Returns empty string and false if
	// not present or expired.
	Get(key string) (string, bool)

	// Set stores a resolution.
	Set(key string, value string) error

	// Delete removes a single entry.
	Delete(key string) error

	// Clear removes every entry owned by this cache.
	Clear() error
}
