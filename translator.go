package lingo

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guildkit/lingo/cache"
)

// GuildStore is the persistent-store collaborator for per-guild language
// lookups. Implementations may be slow or fail; the translator bounds every
// lookup with a timeout and falls back to the default language.
type GuildStore interface {
	GuildLanguage(ctx context.Context, guildID string) (string, error)
}

// RequestContext carries the language signals of one incoming interaction:
// the guild it happened in, or, for direct messages, ordered locale hints
// (user locale first, then guild-preferred locale).
type RequestContext struct {
	GuildID string
	Locales []string
}

// TranslateFunc is a lookup function bound to a resolved language. It never
// fails: a missing key is echoed back verbatim so untranslated strings stay
// visible in output.
type TranslateFunc func(key string, vars map[string]any) string

// Translator is the localization engine. It owns three caches with distinct
// invalidation rules: loaded bundles (explicit clear only), per-guild
// languages (dual TTL, swept periodically) and resolved keys (explicit
// clear only, success-only memoization).
type Translator struct {
	loader      *Loader
	store       GuildStore
	logger      *slog.Logger
	defaultLang string

	storeTimeout  time.Duration
	guildTTL      time.Duration
	fallbackTTL   time.Duration
	sweepInterval time.Duration

	resolved cache.StringCache

	bundleMu sync.RWMutex
	bundles  map[string]*BundleNode

	guildMu sync.RWMutex
	guilds  map[string]guildEntry

	treeWalks atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

// Option is a functional option for configuring the Translator.
type Option func(*Translator)

// WithStore sets the guild-language store collaborator.
func WithStore(store GuildStore) Option {
	return func(t *Translator) {
		t.store = store
	}
}

// WithLogger sets the logger used for degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithDefaultLanguage sets the process-wide fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		t.defaultLang = NormalizeLanguage(lang)
	}
}

// WithResolvedCache sets the resolved-key cache backend.
func WithResolvedCache(c cache.StringCache) Option {
	return func(t *Translator) {
		t.resolved = c
	}
}

// WithStoreTimeout bounds the guild-language store lookup.
func WithStoreTimeout(d time.Duration) Option {
	return func(t *Translator) {
		t.storeTimeout = d
	}
}

// WithGuildTTL sets how long a successful store lookup is trusted.
func WithGuildTTL(d time.Duration) Option {
	return func(t *Translator) {
		t.guildTTL = d
	}
}

// WithFallbackTTL sets how long a default-language fallback entry is kept.
// Kept short so a transient store outage self-heals quickly.
func WithFallbackTTL(d time.Duration) Option {
	return func(t *Translator) {
		t.fallbackTTL = d
	}
}

// WithSweepInterval sets the period of the guild-entry expiry sweep.
func WithSweepInterval(d time.Duration) Option {
	return func(t *Translator) {
		t.sweepInterval = d
	}
}

// New creates a Translator reading bundles from localesDir and starts the
// background expiry sweep. Call Close to stop it.
func New(localesDir string, opts ...Option) *Translator {
	t := &Translator{
		defaultLang:   DefaultLanguage,
		storeTimeout:  time.Second,
		guildTTL:      30 * time.Minute,
		fallbackTTL:   30 * time.Second,
		sweepInterval: 5 * time.Minute,
		bundles:       make(map[string]*BundleNode),
		guilds:        make(map[string]guildEntry),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.resolved == nil {
		t.resolved = cache.NewMemory(0)
	}
	t.loader = NewLoader(localesDir, t.logger)

	go t.sweepLoop()

	return t
}

// Close stops the background sweep. The translator remains usable; only the
// periodic expiry stops.
func (t *Translator) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
	})
}

// Bundle returns the loaded bundle for a language, loading it on first use.
// The result is cached until ClearCache, including the empty bundle of an
// unknown language.
func (t *Translator) Bundle(lang string) *BundleNode {
	lang = NormalizeLanguage(lang)

	t.bundleMu.RLock()
	b, ok := t.bundles[lang]
	t.bundleMu.RUnlock()
	if ok {
		return b
	}

	// Concurrent first requests may each load; the last whole-tree store
	// wins and both trees are equivalent.
	b, err := t.loader.Load(lang)
	if err != nil {
		t.logger.Warn("language bundle unavailable", "lang", lang, "error", err)
	}

	t.bundleMu.Lock()
	t.bundles[lang] = b
	t.bundleMu.Unlock()

	return b
}

// Translate resolves and interpolates a key for an explicit language,
// bypassing guild resolution. A miss returns the key literal.
func (t *Translator) Translate(lang, key string, vars map[string]any) string {
	lang = NormalizeLanguage(lang)

	resolved, ok := t.resolve(lang, key)
	if !ok {
		return key
	}
	return Interpolate(resolved, vars)
}

// Localizer determines the language for a request and returns a lookup
// function bound to it. Guild requests resolve through the store; direct
// messages fall back to locale-hint matching.
func (t *Translator) Localizer(ctx context.Context, rc RequestContext) TranslateFunc {
	var lang string
	if rc.GuildID != "" {
		lang = t.GuildLanguage(ctx, rc.GuildID)
	} else {
		lang = t.DetectLanguage(rc.Locales...)
	}

	t.Bundle(lang)

	return func(key string, vars map[string]any) string {
		return t.Translate(lang, key, vars)
	}
}

// ClearCache empties all three caches. Both cache locks are held for the
// duration so a concurrent reader observes either the old state or the
// fully cleared one.
func (t *Translator) ClearCache() {
	t.bundleMu.Lock()
	t.guildMu.Lock()
	defer t.guildMu.Unlock()
	defer t.bundleMu.Unlock()

	t.bundles = make(map[string]*BundleNode)
	t.guilds = make(map[string]guildEntry)
	if err := t.resolved.Clear(); err != nil {
		t.logger.Warn("resolved cache clear failed", "error", &CacheError{Message: "clear", Cause: err})
	}
}

// DumpResolvedCache writes a snapshot of the resolved-key cache for warm
// restarts. Only the in-memory backend supports snapshots.
func (t *Translator) DumpResolvedCache(path string) error {
	return cache.NewExporter(t.resolved).ExportToFile(path, map[string]string{
		"default_lang": t.defaultLang,
	})
}

// LoadResolvedCache loads a snapshot written by DumpResolvedCache.
func (t *Translator) LoadResolvedCache(path string) (int, error) {
	result, err := cache.NewImporter(t.resolved).ImportFromFile(path)
	if err != nil {
		return 0, err
	}
	return result.Imported, nil
}

// DefaultLang returns the process-wide fallback language.
func (t *Translator) DefaultLang() string {
	return t.defaultLang
}
