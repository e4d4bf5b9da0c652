// Package fill machine-translates the gaps in a language bundle from a
// reference language. It backs the langfill CLI and is an offline tool:
// the runtime engine never auto-translates, a missing key is echoed back
// to the user instead.
package fill

import (
	"context"
	"log/slog"
	"sort"

	"github.com/guildkit/lingo"
)

// BundleLoader loads one language's bundle. *lingo.Loader satisfies it.
type BundleLoader interface {
	Load(lang string) (*lingo.BundleNode, error)
}

func emptyBundle() *lingo.BundleNode {
	return lingo.NewBranch()
}

// Request is one batch of strings for the translation provider.
type Request struct {
	Texts      []string          // Source strings, reference language
	Keys       []string          // Dot-path keys, parallel to Texts
	TargetLang string            // Bundle code, e.g. "es"
	SourceLang string            // Bundle code of the reference language
	Context    string            // Optional product context for the provider
	Glossary   map[string]string // Preferred translations for bot terms
}

// Provider is the interface for machine translation backends.
type Provider interface {
	Translate(ctx context.Context, req Request) ([]string, error)
}

// Result summarizes one language fill.
type Result struct {
	Lang    string
	Filled  map[string]string // Dot-path key to translated string
	Missing int               // Keys missing before the fill
}

// Filler fills missing keys in target languages from a reference language.
type Filler struct {
	provider  Provider
	batchSize int
	context   string
	glossary  map[string]string
	logger    *slog.Logger
}

// FillerOption is a functional option for configuring the Filler.
type FillerOption func(*Filler)

// WithBatchSize caps how many strings go into one provider call.
func WithBatchSize(n int) FillerOption {
	return func(f *Filler) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithContext sets a product context passed to the provider.
func WithContext(ctx string) FillerOption {
	return func(f *Filler) {
		f.context = ctx
	}
}

// WithGlossary sets preferred translations for specific bot terms.
func WithGlossary(glossary map[string]string) FillerOption {
	return func(f *Filler) {
		f.glossary = glossary
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) FillerOption {
	return func(f *Filler) {
		f.logger = logger
	}
}

// NewFiller creates a Filler using the given provider.
func NewFiller(provider Provider, opts ...FillerOption) *Filler {
	f := &Filler{
		provider:  provider,
		batchSize: 50,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// MissingKeys returns the sorted dot-path keys present in the reference
// bundle but absent from the target bundle.
func MissingKeys(reference, target *lingo.BundleNode) []string {
	refKeys := reference.Flatten()
	targetKeys := target.Flatten()

	var missing []string
	for key := range refKeys {
		if _, ok := targetKeys[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// ExtraKeys returns the sorted dot-path keys present in the target bundle
// but absent from the reference. These are usually leftovers from removed
// commands.
func ExtraKeys(reference, target *lingo.BundleNode) []string {
	return MissingKeys(target, reference)
}

// Fill translates every key missing from target into targetLang. The
// reference bundle supplies the source strings. Returns the filled keys;
// a provider failure aborts the whole fill.
func (f *Filler) Fill(ctx context.Context, reference, target *lingo.BundleNode, sourceLang, targetLang string) (*Result, error) {
	missing := MissingKeys(reference, target)
	result := &Result{
		Lang:    targetLang,
		Filled:  make(map[string]string, len(missing)),
		Missing: len(missing),
	}
	if len(missing) == 0 {
		return result, nil
	}

	refStrings := reference.Flatten()

	for start := 0; start < len(missing); start += f.batchSize {
		end := start + f.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		texts := make([]string, len(batch))
		for i, key := range batch {
			texts[i] = refStrings[key]
		}

		f.logger.Info("translating batch", "lang", targetLang,
			"from", start, "to", end, "total", len(missing))

		translations, err := f.provider.Translate(ctx, Request{
			Texts:      texts,
			Keys:       batch,
			TargetLang: targetLang,
			SourceLang: sourceLang,
			Context:    f.context,
			Glossary:   f.glossary,
		})
		if err != nil {
			return nil, err
		}
		if len(translations) != len(batch) {
			return nil, &CountMismatchError{Expected: len(batch), Got: len(translations)}
		}

		for i, key := range batch {
			result.Filled[key] = translations[i]
		}
	}

	return result, nil
}
