// internal/entity/store.go
// Package entity reads entity source files from a directory holding one file
// per function or class, named after that entity.
package entity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mwiater/autoworker/internal/logging"
)

const (
	// DefaultExtension is the entity file extension used when none is configured.
	DefaultExtension = ".txt"
	// DefaultCacheSize bounds the number of entity sources kept in memory per Store.
	DefaultCacheSize = 128
)

// ErrNotFound reports a missing entity directory, entity file or test file.
var ErrNotFound = errors.New("not found")

// Record is one entity loaded from the store.
type Record struct {
	Name   string
	Path   string
	Source string
}

// Store is a read-only view of an entity directory.
type Store struct {
	dir   string
	ext   string
	match glob.Glob
	cache *lru.Cache[string, string]
}

// NewStore opens dir as an entity store. Only files ending in ext are
// entities. A missing directory is an ErrNotFound error.
func NewStore(dir, ext string, cacheSize int) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("entity directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("entity directory %q: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("stat entity directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("entity directory %q is not a directory", dir)
	}

	ext = NormalizeExtension(ext)
	matcher, err := glob.Compile("*" + glob.QuoteMeta(ext))
	if err != nil {
		return nil, fmt.Errorf("compile entity pattern for %q: %w", ext, err)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create entity cache: %w", err)
	}

	return &Store{dir: dir, ext: ext, match: matcher, cache: cache}, nil
}

// NormalizeExtension returns ext with a leading dot, or DefaultExtension when empty.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Extension returns the entity file extension, including the dot.
func (s *Store) Extension() string { return s.ext }

// Keywords lists the entity names in the store, one per matching file, in
// file name order. Subdirectories are not searched.
func (s *Store) Keywords() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("entity directory %q: %w", s.dir, ErrNotFound)
		}
		return nil, fmt.Errorf("read entity directory %q: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !s.match.Match(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), s.ext)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Path returns the file path for an entity name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+s.ext)
}

// Fetch loads one entity. A missing file is reported as ErrNotFound.
func (s *Store) Fetch(name string) (Record, error) {
	path := s.Path(name)
	if source, ok := s.cache.Get(name); ok {
		return Record{Name: name, Path: path, Source: source}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("entity %q at %s: %w", name, path, ErrNotFound)
		}
		return Record{}, fmt.Errorf("read entity %q: %w", name, err)
	}
	source := string(data)
	s.cache.Add(name, source)
	return Record{Name: name, Path: path, Source: source}, nil
}

// FetchResult is the concatenation produced by FetchAll.
type FetchResult struct {
	Code    string
	Added   []string
	Missing []string
}

// FetchAll concatenates the sources of names in order, each followed by a
// newline. A name is fetched at most once. Missing entities are logged and
// skipped; other read failures abort.
func (s *Store) FetchAll(names []string) (FetchResult, error) {
	var (
		result FetchResult
		code   strings.Builder
	)
	added := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := added[name]; ok {
			continue
		}
		rec, err := s.Fetch(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				logging.LogEvent("[ENTITY] file for keyword %q not found at %s", name, s.Path(name))
				result.Missing = append(result.Missing, name)
				continue
			}
			return FetchResult{}, err
		}
		code.WriteString(rec.Source)
		code.WriteString("\n")
		added[name] = struct{}{}
		result.Added = append(result.Added, name)
	}

	result.Code = code.String()
	return result, nil
}
