package lingo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-package GuildStore with scriptable latency and errors.
type fakeStore struct {
	mu        sync.Mutex
	lang      string
	err       error
	delay     time.Duration
	callCount int
}

func (s *fakeStore) GuildLanguage(ctx context.Context, guildID string) (string, error) {
	s.mu.Lock()
	s.callCount++
	lang, err, delay := s.lang, s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return lang, err
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

func (t *Translator) guildEntry(guildID string) (guildEntry, bool) {
	t.guildMu.RLock()
	defer t.guildMu.RUnlock()
	e, ok := t.guilds[guildID]
	return e, ok
}

func TestGuildLanguage_StoreSuccess(t *testing.T) {
	store := &fakeStore{lang: "es"}
	tr := newTestTranslator(t, nil, WithStore(store))

	if got := tr.GuildLanguage(context.Background(), "42"); got != "es" {
		t.Fatalf("GuildLanguage() = %q, want %q", got, "es")
	}

	// Confirmed values get the long TTL.
	e, ok := tr.guildEntry("42")
	if !ok {
		t.Fatal("entry should be cached")
	}
	if remaining := time.Until(e.expires); remaining < 29*time.Minute {
		t.Errorf("success entry TTL = %v, want close to 30m", remaining)
	}
}

func TestGuildLanguage_CacheHit(t *testing.T) {
	store := &fakeStore{lang: "fr"}
	tr := newTestTranslator(t, nil, WithStore(store))

	tr.GuildLanguage(context.Background(), "42")
	tr.GuildLanguage(context.Background(), "42")

	if calls := store.calls(); calls != 1 {
		t.Errorf("store called %d times, want 1", calls)
	}
}

func TestGuildLanguage_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	tr := newTestTranslator(t, nil, WithStore(store))

	if got := tr.GuildLanguage(context.Background(), "42"); got != DefaultLanguage {
		t.Fatalf("GuildLanguage() = %q, want default %q", got, DefaultLanguage)
	}

	// Fallback entries get the short TTL so an outage self-heals quickly.
	e, ok := tr.guildEntry("42")
	if !ok {
		t.Fatal("fallback entry should be cached")
	}
	if remaining := time.Until(e.expires); remaining > 31*time.Second {
		t.Errorf("fallback entry TTL = %v, want at most ~30s", remaining)
	}
}

func TestGuildLanguage_Timeout(t *testing.T) {
	store := &fakeStore{lang: "es", delay: 500 * time.Millisecond}
	tr := newTestTranslator(t, nil,
		WithStore(store),
		WithStoreTimeout(20*time.Millisecond),
	)

	start := time.Now()
	got := tr.GuildLanguage(context.Background(), "42")
	elapsed := time.Since(start)

	if got != DefaultLanguage {
		t.Fatalf("GuildLanguage() = %q, want default", got)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("lookup took %v, should be bounded by the timeout", elapsed)
	}

	e, _ := tr.guildEntry("42")
	if remaining := time.Until(e.expires); remaining > 31*time.Second {
		t.Errorf("timeout fallback TTL = %v, want at most ~30s", remaining)
	}
}

func TestGuildLanguage_InstantStoreIsNeverATimeout(t *testing.T) {
	store := &fakeStore{lang: "es"}
	tr := newTestTranslator(t, nil, WithStore(store))

	// An instantly answering store must always classify as a success with
	// the long TTL; the timeout branch may fire only on a real deadline.
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("guild-%d", i)

		if got := tr.GuildLanguage(context.Background(), id); got != "es" {
			t.Fatalf("iteration %d: GuildLanguage() = %q, want %q", i, got, "es")
		}

		e, ok := tr.guildEntry(id)
		if !ok {
			t.Fatalf("iteration %d: entry not cached", i)
		}
		if remaining := time.Until(e.expires); remaining < 29*time.Minute {
			t.Fatalf("iteration %d: instant success cached with TTL %v, want close to 30m", i, remaining)
		}
	}
}

func TestGuildLanguage_LateResultDiscarded(t *testing.T) {
	store := &fakeStore{lang: "es", delay: 50 * time.Millisecond}
	tr := newTestTranslator(t, nil,
		WithStore(store),
		WithStoreTimeout(10*time.Millisecond),
	)

	tr.GuildLanguage(context.Background(), "42")

	// Give the slow lookup time to finish after losing the race.
	time.Sleep(100 * time.Millisecond)

	e, ok := tr.guildEntry("42")
	if !ok {
		t.Fatal("fallback entry should be cached")
	}
	if e.lang != DefaultLanguage {
		t.Errorf("late store result overwrote the fallback: cached %q", e.lang)
	}
}

func TestGuildLanguage_ExpiredEntryRefetches(t *testing.T) {
	store := &fakeStore{lang: "es"}
	tr := newTestTranslator(t, nil, WithStore(store), WithGuildTTL(time.Millisecond))

	tr.GuildLanguage(context.Background(), "42")
	time.Sleep(5 * time.Millisecond)
	tr.GuildLanguage(context.Background(), "42")

	if calls := store.calls(); calls != 2 {
		t.Errorf("store called %d times, want 2 after expiry", calls)
	}
}

func TestGuildLanguage_NoStore(t *testing.T) {
	tr := newTestTranslator(t, nil)

	if got := tr.GuildLanguage(context.Background(), "42"); got != DefaultLanguage {
		t.Errorf("GuildLanguage() = %q, want default without a store", got)
	}

	// Without a store nothing could ever answer differently, so the default
	// is trusted for the long TTL rather than the short retry window.
	e, ok := tr.guildEntry("42")
	if !ok {
		t.Fatal("entry should be cached")
	}
	if remaining := time.Until(e.expires); remaining < 29*time.Minute {
		t.Errorf("no-store entry TTL = %v, want close to 30m", remaining)
	}
}

func TestGuildLanguage_EmptyStoreValue(t *testing.T) {
	store := &fakeStore{lang: ""}
	tr := newTestTranslator(t, nil, WithStore(store))

	if got := tr.GuildLanguage(context.Background(), "42"); got != DefaultLanguage {
		t.Errorf("GuildLanguage() = %q, want default for unset guild", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tr := newTestTranslator(t, nil)

	tests := []struct {
		name  string
		hints []string
		want  string
	}{
		{"user hint wins", []string{"es-ES", "fr"}, "es"},
		{"region variant collapses", []string{"pt-BR"}, "pt"},
		{"unsupported falls through", []string{"xx-XX"}, DefaultLanguage},
		{"no hints", nil, DefaultLanguage},
		{"blank hints", []string{"", "  "}, DefaultLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.DetectLanguage(tt.hints...); got != tt.want {
				t.Errorf("DetectLanguage(%v) = %q, want %q", tt.hints, got, tt.want)
			}
		})
	}
}

func TestSweepExpiredGuilds(t *testing.T) {
	tr := newTestTranslator(t, nil)

	tr.setGuildLanguage("old", "es", -time.Minute)
	tr.setGuildLanguage("fresh", "fr", time.Hour)

	if removed := tr.sweepExpiredGuilds(); removed != 1 {
		t.Fatalf("sweep removed %d entries, want 1", removed)
	}

	if _, ok := tr.guildEntry("old"); ok {
		t.Error("expired entry survived the sweep")
	}
	if _, ok := tr.guildEntry("fresh"); !ok {
		t.Error("fresh entry was swept")
	}
}
