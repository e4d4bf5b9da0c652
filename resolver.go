package lingo

import "strings"

// commandsNamespace is the implicit namespace bare keys live under.
const commandsNamespace = "commands"

// resolve turns a dot-path key into a string for a language. Successful
// resolutions are memoized per (language, key); misses are recomputed and
// logged on every call.
func (t *Translator) resolve(lang, key string) (string, bool) {
	bundle := t.Bundle(lang)

	seen := make(map[string]bool)
	resolved, ok := t.resolveKey(bundle, lang, key, seen)
	if !ok {
		t.logger.Warn("missing translation", "key", key, "lang", lang,
			"error", &KeyNotFoundError{Key: key, Lang: lang})
	}
	return resolved, ok
}

// resolveKey applies the fallback strategies in order, first hit wins:
//
//  1. direct path lookup
//  2. with the leading category segment stripped (keys of 3+ segments)
//  3. prefixed into the commands namespace
//
// Strategies 2 and 3 recurse through this memoized path. The seen set
// breaks the cycle between them (stripping "commands.a.b" yields "a.b",
// which would otherwise re-prefix to "commands.a.b" forever) while
// preserving the attempt order.
func (t *Translator) resolveKey(bundle *BundleNode, lang, key string, seen map[string]bool) (string, bool) {
	if key == "" || seen[key] {
		return "", false
	}
	seen[key] = true

	cacheKey := CacheKey(lang, key)
	if v, ok := t.resolved.Get(cacheKey); ok {
		return v, true
	}

	t.treeWalks.Add(1)
	if v, ok := lookupPath(bundle, key); ok {
		t.memoize(cacheKey, v)
		return v, true
	}

	segments := strings.Split(key, ".")

	if len(segments) > 2 {
		stripped := strings.Join(segments[1:], ".")
		if v, ok := t.resolveKey(bundle, lang, stripped, seen); ok {
			t.memoize(cacheKey, v)
			return v, true
		}
	}

	if segments[0] != commandsNamespace {
		if v, ok := t.resolveKey(bundle, lang, commandsNamespace+"."+key, seen); ok {
			t.memoize(cacheKey, v)
			return v, true
		}
	}

	return "", false
}

func (t *Translator) memoize(cacheKey, value string) {
	if err := t.resolved.Set(cacheKey, value); err != nil {
		t.logger.Warn("resolved cache write failed",
			"error", &CacheError{Message: "set " + cacheKey, Cause: err})
	}
}

// TreeWalks reports how many bundle-tree walks have been performed. Cached
// resolutions answer without walking.
func (t *Translator) TreeWalks() int64 {
	return t.treeWalks.Load()
}
