package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"

	"github.com/guildkit/lingo"
)

func TestRedisStore_GuildLanguage(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStoreFromClient(client, "")

	mock.ExpectGet("lingo:guild:123").SetVal("es")

	lang, err := s.GuildLanguage(context.Background(), "123")
	if err != nil {
		t.Fatalf("GuildLanguage failed: %v", err)
	}
	if lang != "es" {
		t.Errorf("GuildLanguage = %q, want %q", lang, "es")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_Unconfigured(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStoreFromClient(client, "")

	mock.ExpectGet("lingo:guild:123").RedisNil()

	// A guild that never picked a language is a successful lookup that
	// yields the default, not an error.
	lang, err := s.GuildLanguage(context.Background(), "123")
	if err != nil {
		t.Fatalf("GuildLanguage should not fail for unconfigured guilds: %v", err)
	}
	if lang != lingo.DefaultLanguage {
		t.Errorf("GuildLanguage = %q, want %q", lang, lingo.DefaultLanguage)
	}
}

func TestRedisStore_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStoreFromClient(client, "")

	wantErr := errors.New("connection refused")
	mock.ExpectGet("lingo:guild:123").SetErr(wantErr)

	if _, err := s.GuildLanguage(context.Background(), "123"); !errors.Is(err, wantErr) {
		t.Errorf("GuildLanguage error = %v, want %v", err, wantErr)
	}
}

func TestRedisStore_SetGuildLanguage(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStoreFromClient(client, "")

	mock.ExpectSet("lingo:guild:123", "de", 0).SetVal("OK")

	if err := s.SetGuildLanguage(context.Background(), "123", "de"); err != nil {
		t.Fatalf("SetGuildLanguage failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_CustomKeyPrefix(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStoreFromClient(client, "bot:lang:")

	mock.ExpectGet("bot:lang:42").SetVal("fr")

	lang, err := s.GuildLanguage(context.Background(), "42")
	if err != nil || lang != "fr" {
		t.Errorf("GuildLanguage = %q, %v", lang, err)
	}
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	if _, err := NewRedisStore(RedisConfig{URL: "not-a-url"}); err == nil {
		t.Error("NewRedisStore should fail on an invalid URL")
	}
}
