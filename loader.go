package lingo

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Loader reads a language's translation bundle from a locales directory
// tree. Each subdirectory becomes a branch keyed by its name; each resource
// file becomes a branch keyed by its base name, holding the file's decoded
// contents. Supported resource formats are JSON and YAML.
type Loader struct {
	root   string
	logger *slog.Logger
	loads  atomic.Int64
}

// NewLoader creates a loader rooted at dir (one subdirectory per language
// code).
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{root: dir, logger: logger}
}

// Load walks the directory tree for a language and builds its bundle.
//
// A missing language directory returns an empty bundle together with a
// LanguageNotFoundError; callers are expected to log it and carry on with
// every lookup missing. A resource file that fails to decode is skipped
// with a warning and does not abort the load.
func (l *Loader) Load(lang string) (*BundleNode, error) {
	l.loads.Add(1)

	// Language codes come from external stores and client hints. Anything
	// that is not a plain directory name must not be joined into the path:
	// "" would load the whole locales root and ".." escapes it.
	if !validLangCode(lang) {
		return NewBranch(), &LanguageNotFoundError{Lang: lang, Path: l.root}
	}

	dir := filepath.Join(l.root, lang)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return NewBranch(), &LanguageNotFoundError{Lang: lang, Path: dir}
	}

	root := NewBranch()

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("locale walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}

		doc, err := decodeResource(path, ext)
		if err != nil {
			perr := &ResourceParseError{Path: path, Cause: err}
			l.logger.Warn("skipping unparsable locale resource", "lang", lang, "error", perr)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}

		node := root
		segments := strings.Split(filepath.ToSlash(rel), "/")
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node.Child(seg)
			if !ok || child.IsLeaf() {
				child = NewBranch()
				node.SetChild(seg, child)
			}
			node = child
		}

		base := strings.TrimSuffix(segments[len(segments)-1], filepath.Ext(rel))
		node.SetChild(base, buildNode(doc))
		return nil
	})
	if walkErr != nil {
		l.logger.Warn("locale walk aborted", "lang", lang, "error", walkErr)
	}

	return root, nil
}

// Loads returns how many times Load has been invoked. Bundle caching above
// the loader should keep this at one per language.
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

// Root returns the locales root directory.
func (l *Loader) Root() string {
	return l.root
}

// validLangCode reports whether lang is safe to use as a locale directory
// name: non-empty, lowercase letters, digits, "-" or "_" only.
func validLangCode(lang string) bool {
	if lang == "" {
		return false
	}
	for i := 0; i < len(lang); i++ {
		c := lang[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

func decodeResource(path, ext string) (any, error) {
	data, err := os.ReadFile(path) // #nosec G304 - locale tree is operator-provided
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
