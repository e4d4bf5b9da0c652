package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guildkit/lingo"
)

// RedisStore keeps per-guild language settings in Redis, one key per guild.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis guild store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g. "redis://localhost:6379")
	KeyPrefix string // Prefix for guild keys (default: "lingo:guild:")
}

const defaultKeyPrefix = "lingo:guild:"

// NewRedisStore creates a Redis-backed guild store and verifies the
// connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

// GuildLanguage returns the configured language for a guild. A guild with
// no configured language is a successful lookup that yields the default
// language, not an error.
func (s *RedisStore) GuildLanguage(ctx context.Context, guildID string) (string, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+guildID).Result()
	if errors.Is(err, redis.Nil) {
		return lingo.DefaultLanguage, nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetGuildLanguage records a guild's language. Called by the bot's language
// configuration command.
func (s *RedisStore) SetGuildLanguage(ctx context.Context, guildID, lang string) error {
	return s.client.Set(ctx, s.keyPrefix+guildID, lang, 0).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Verify RedisStore implements GuildStore.
var _ GuildStore = (*RedisStore)(nil)
