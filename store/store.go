// Package store provides guild-language store implementations.
package store

import "github.com/guildkit/lingo"

// GuildStore is the interface for per-guild language lookups.
// This is an alias to the main package interface for convenience.
type GuildStore = lingo.GuildStore
