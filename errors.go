package lingo

import "fmt"

// LanguageNotFoundError indicates that a language has no directory under the
// locales root. The loader still returns an empty bundle so that lookups
// degrade to "not found" instead of failing the caller.
type LanguageNotFoundError struct {
	Lang string
	Path string
}

func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("language %q not found at %s", e.Lang, e.Path)
}

// ResourceParseError indicates that a single resource file could not be
// decoded. The file is skipped; the rest of the load continues.
type ResourceParseError struct {
	Path  string
	Cause error
}

func (e *ResourceParseError) Error() string {
	return fmt.Sprintf("resource parse error: %s: %v", e.Path, e.Cause)
}

func (e *ResourceParseError) Unwrap() error {
	return e.Cause
}

// KeyNotFoundError indicates that no resolution strategy produced a string
// for a dot-path key. Callers receive the key literal as a visible fallback;
// this error exists for logging and instrumentation only.
type KeyNotFoundError struct {
	Key  string
	Lang string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("translation not found: %q (lang %s)", e.Key, e.Lang)
}

// StoreError indicates a guild-language store lookup failure. Timeout marks
// lookups that lost the race against the store deadline.
type StoreError struct {
	GuildID string
	Cause   error
	Timeout bool
}

func (e *StoreError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("store lookup timed out for guild %s", e.GuildID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("store lookup failed for guild %s: %v", e.GuildID, e.Cause)
	}
	return fmt.Sprintf("store lookup failed for guild %s", e.GuildID)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
