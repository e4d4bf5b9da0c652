package lingo

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the process-wide fallback language. Every degradation
// path (missing guild config, store outage, unmatched locale hints) lands
// here.
const DefaultLanguage = "en"

// supportedTags lists the languages the bot ships bundles for, in matcher
// priority order. The first entry doubles as the default.
var supportedTags = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Russian,
	language.Polish,
	language.Turkish,
	language.Japanese,
}

// supportedCodes maps each supported tag to the bundle directory name.
var supportedCodes = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "pl", "tr", "ja",
}

var localeMatcher = language.NewMatcher(supportedTags)

// LanguageNames maps supported codes to human-readable names. Used by the
// langfill tool when prompting the translation provider.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"pl": "Polish",
	"tr": "Turkish",
	"ja": "Japanese",
}

// SupportedLanguages returns the bundle codes of every supported language.
func SupportedLanguages() []string {
	out := make([]string, len(supportedCodes))
	copy(out, supportedCodes)
	return out
}

// IsSupported reports whether code names a language the bot ships bundles
// for.
func IsSupported(code string) bool {
	code = NormalizeLanguage(code)
	for _, c := range supportedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// GetLanguageName returns the human-readable name for a language code,
// falling back to the code itself.
func GetLanguageName(code string) string {
	if name, ok := LanguageNames[NormalizeLanguage(code)]; ok {
		return name
	}
	return code
}

// NormalizeLanguage reduces a locale code to its lowercase base language
// (e.g. "en-US", "en_US" and "EN" all become "en").
func NormalizeLanguage(code string) string {
	code = strings.ReplaceAll(code, "_", "-")
	if i := strings.Index(code, "-"); i > 0 {
		code = code[:i]
	}
	return strings.ToLower(strings.TrimSpace(code))
}

// MatchLocale matches ordered locale hints (most specific first) against the
// supported set and returns the bundle code of the best match. Unparseable
// or unmatched hints fall back to the default language.
func MatchLocale(hints ...string) string {
	cleaned := hints[:0:0]
	for _, h := range hints {
		if strings.TrimSpace(h) != "" {
			cleaned = append(cleaned, h)
		}
	}
	if len(cleaned) == 0 {
		return DefaultLanguage
	}

	_, index := language.MatchStrings(localeMatcher, cleaned...)
	if index < 0 || index >= len(supportedCodes) {
		return DefaultLanguage
	}
	return supportedCodes[index]
}
