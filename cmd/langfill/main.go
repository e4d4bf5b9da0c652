// Command langfill fills the translation gaps of a locale tree. It diffs
// each target language against a reference language and machine-translates
// the missing keys, writing a JSON patch per language.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/guildkit/lingo"
	"github.com/guildkit/lingo/fill"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = lingo.Version
	commit    = lingo.GitCommit
	buildDate = lingo.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("langfill", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dir := fs.String("dir", "./locales", "Locales root (one subdirectory per language)")
	ref := fs.String("ref", lingo.DefaultLanguage, "Reference language code")
	langs := fs.String("lang", "", "Comma-separated target language codes, or 'all'")
	outDir := fs.String("o", "", "Output directory for patch files (default: locales root)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "OpenAI model to use")
	contextStr := fs.String("context", "", "Product context passed to the translator (e.g. 'moderation bot')")
	rpm := fs.Int("rpm", 30, "Provider requests per minute")
	batch := fs.Int("batch", 50, "Strings per provider call")
	dryRun := fs.Bool("dry-run", false, "Report missing keys without calling the API")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "langfill %s\n", version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:  %s\n", buildDate)
		}
		return nil
	}

	if *langs == "" {
		fs.Usage()
		return fmt.Errorf("-lang is required")
	}

	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))

	loader := lingo.NewLoader(*dir, logger)

	targets, err := resolveTargets(*dir, *ref, *langs)
	if err != nil {
		return err
	}

	reference, err := loader.Load(*ref)
	if err != nil {
		return fmt.Errorf("loading reference language %q: %w", *ref, err)
	}

	if *dryRun {
		return reportMissing(loader, reference, targets, stdout)
	}

	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("no API key: use -api-key or set OPENAI_API_KEY")
	}

	var provider fill.Provider = fill.NewOpenAIProvider(fill.OpenAIConfig{
		APIKey: key,
		Model:  *model,
	})
	provider = fill.NewRetryableProvider(provider, fill.DefaultRetryConfig())
	provider = fill.NewRateLimitedProvider(provider, fill.RateLimitConfig{RequestsPerMinute: *rpm})

	filler := fill.NewFiller(provider,
		fill.WithBatchSize(*batch),
		fill.WithContext(*contextStr),
		fill.WithLogger(logger),
	)

	out := *outDir
	if out == "" {
		out = *dir
	}

	results, errs := filler.FillAll(context.Background(), loader, *ref, targets)
	for lang, fillErr := range errs {
		logger.Error("fill failed", "lang", lang, "error", fillErr)
	}

	for lang, result := range results {
		if len(result.Filled) == 0 {
			fmt.Fprintf(stdout, "%s: complete, nothing to fill\n", lang)
			continue
		}

		path := filepath.Join(out, lang+".fill.json")
		if err := writePatch(path, result.Filled); err != nil {
			return fmt.Errorf("writing patch for %s: %w", lang, err)
		}
		fmt.Fprintf(stdout, "%s: filled %d of %d missing keys -> %s\n",
			lang, len(result.Filled), result.Missing, path)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d language(s) failed", len(errs))
	}
	return nil
}

// resolveTargets expands "all" into every language directory except the
// reference.
func resolveTargets(dir, ref, langs string) ([]string, error) {
	if langs != "all" {
		var targets []string
		for _, l := range strings.Split(langs, ",") {
			if l = strings.TrimSpace(l); l != "" && l != ref {
				targets = append(targets, l)
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no target languages in %q", langs)
		}
		return targets, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading locales root: %w", err)
	}

	var targets []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != ref {
			targets = append(targets, e.Name())
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no language directories under %s", dir)
	}
	return targets, nil
}

func reportMissing(loader *lingo.Loader, reference *lingo.BundleNode, targets []string, stdout io.Writer) error {
	for _, lang := range targets {
		target, _ := loader.Load(lang)
		missing := fill.MissingKeys(reference, target)
		extra := fill.ExtraKeys(reference, target)

		fmt.Fprintf(stdout, "--- %s ---\n", lang)
		fmt.Fprintf(stdout, "missing: %d\n", len(missing))
		for _, k := range missing {
			fmt.Fprintf(stdout, "  - %s\n", k)
		}
		if len(extra) > 0 {
			fmt.Fprintf(stdout, "extra: %d\n", len(extra))
			for _, k := range extra {
				fmt.Fprintf(stdout, "  + %s\n", k)
			}
		}
	}
	return nil
}

// writePatch nests flat dot-keys back into a tree and writes it as JSON so
// the patch can be merged into the locale directory.
func writePatch(path string, filled map[string]string) error {
	nested := unflatten(filled)

	data, err := json.MarshalIndent(nested, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func unflatten(flat map[string]string) map[string]any {
	root := make(map[string]any)
	for key, value := range flat {
		segments := strings.Split(key, ".")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value
	}
	return root
}
