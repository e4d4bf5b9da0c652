package lingo

import (
	"context"
	"time"
)

// guildEntry is one guild-language cache entry. Entries expire individually:
// a confirmed store value is trusted for the long TTL, a fallback only for
// the short one.
type guildEntry struct {
	lang    string
	expires time.Time
}

// GuildLanguage resolves the active language for a guild. Cache hits are
// returned directly; otherwise the store lookup races the configured
// timeout. Timeout or failure degrades to the default language with the
// short fallback TTL, and a late store result is discarded rather than
// cached.
func (t *Translator) GuildLanguage(ctx context.Context, guildID string) string {
	now := time.Now()

	t.guildMu.RLock()
	e, ok := t.guilds[guildID]
	t.guildMu.RUnlock()
	if ok && now.Before(e.expires) {
		return e.lang
	}

	if t.store == nil {
		t.setGuildLanguage(guildID, t.defaultLang, t.guildTTL)
		return t.defaultLang
	}

	type lookup struct {
		lang string
		err  error
	}

	// cancel runs after the select, so lookupCtx.Done() fires only on a
	// real deadline: a lookup that completed in time can never be taken
	// for a timeout.
	lookupCtx, cancel := context.WithTimeout(ctx, t.storeTimeout)
	defer cancel()

	// Buffered so a late store response parks in the channel and is
	// dropped instead of overwriting a fresher fallback entry.
	ch := make(chan lookup, 1)
	go func() {
		lang, err := t.store.GuildLanguage(lookupCtx, guildID)
		ch <- lookup{lang: lang, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			t.logger.Warn("guild language lookup failed",
				"error", &StoreError{GuildID: guildID, Cause: r.err})
			t.setGuildLanguage(guildID, t.defaultLang, t.fallbackTTL)
			return t.defaultLang
		}

		lang := NormalizeLanguage(r.lang)
		if lang == "" {
			lang = t.defaultLang
		}
		t.setGuildLanguage(guildID, lang, t.guildTTL)
		return lang

	case <-lookupCtx.Done():
		t.logger.Warn("guild language lookup timed out",
			"error", &StoreError{GuildID: guildID, Timeout: true})
		t.setGuildLanguage(guildID, t.defaultLang, t.fallbackTTL)
		return t.defaultLang
	}
}

// DetectLanguage matches ordered locale hints against the supported
// languages. Used when no guild id is available, e.g. direct messages.
func (t *Translator) DetectLanguage(hints ...string) string {
	if len(hints) == 0 {
		return t.defaultLang
	}
	return MatchLocale(hints...)
}

func (t *Translator) setGuildLanguage(guildID, lang string, ttl time.Duration) {
	t.guildMu.Lock()
	defer t.guildMu.Unlock()

	t.guilds[guildID] = guildEntry{lang: lang, expires: time.Now().Add(ttl)}
}

// sweepExpiredGuilds removes guild entries whose expiry predates the start
// of the sweep pass. Entries written during the pass have later expiries
// and survive. Bundle and resolved-key caches are never swept.
func (t *Translator) sweepExpiredGuilds() int {
	start := time.Now()

	t.guildMu.RLock()
	var expired []string
	for id, e := range t.guilds {
		if e.expires.Before(start) {
			expired = append(expired, id)
		}
	}
	t.guildMu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	removed := 0
	t.guildMu.Lock()
	for _, id := range expired {
		if e, ok := t.guilds[id]; ok && e.expires.Before(start) {
			delete(t.guilds, id)
			removed++
		}
	}
	t.guildMu.Unlock()

	return removed
}
