// Package lingo is a guild-aware localization engine for chat bots.
//
// It loads per-language translation trees from a locales directory,
// resolves dot-path keys through a fixed chain of fallback strategies,
// interpolates {name} placeholders, and caches bundles, resolved keys and
// per-guild languages independently. Every failure mode degrades to a
// deterministic fallback; the translate paths never return an error.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/guildkit/lingo"
//	    "github.com/guildkit/lingo/store"
//	)
//
//	func main() {
//	    guilds := store.NewRedisStoreFromClient(redisClient, "")
//
//	    t := lingo.New("./locales",
//	        lingo.WithStore(guilds),
//	    )
//	    defer t.Close()
//
//	    // Per-interaction lookup bound to the guild's language.
//	    tr := t.Localizer(ctx, lingo.RequestContext{GuildID: interaction.GuildID})
//	    reply := tr("utility.purge.start", map[string]any{"count": 5})
//
//	    // Direct lookup for an explicit language.
//	    s := t.Translate("en", "utility.purge.start", map[string]any{"count": 5})
//	}
package lingo
