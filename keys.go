package lingo

// CacheKey builds the resolved-cache key for a (language, key) pair. The
// language is prefixed so per-language entries can be inspected or cleared
// by prefix in shared backends.
func CacheKey(lang, key string) string {
	return lang + ":" + key
}
