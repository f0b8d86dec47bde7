// Package loader reads filter definition files from the configured
// directories and builds the ordered filter collection consumed by the
// match engine.
//
// Malformed entries and unknown filter classes are logged and skipped
// rather than failing the whole load, so one stale definition file cannot
// disable every other rule on the host.
package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/privgate/go-rootwrap/internal/common"
	"github.com/privgate/go-rootwrap/internal/rootwrap/filters"
)

// definitionFile is the on-disk TOML shape of one filter definition file.
type definitionFile struct {
	Filter []filters.Definition `toml:"filter"`
}

// Loader builds filter collections from definition directories.
type Loader struct {
	fs     common.FileSystem
	logger *slog.Logger
}

// NewLoader creates a loader over the real filesystem.
func NewLoader() *Loader {
	return NewLoaderWithFS(common.NewDefaultFileSystem())
}

// NewLoaderWithFS creates a loader with a custom FileSystem.
func NewLoaderWithFS(fs common.FileSystem) *Loader {
	return &Loader{
		fs:     fs,
		logger: slog.Default(),
	}
}

// LoadFilters scans each existing directory in filtersPath, in order, and
// parses every non-hidden file into filter instances. File order within a
// directory follows the directory listing, so collection order — the
// first-match tie break — is stable across runs.
func (l *Loader) LoadFilters(filtersPath []string) ([]filters.Filter, error) {
	var filterList []filters.Filter

	for _, dir := range filtersPath {
		isDir, err := l.fs.IsDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to check filter directory %s: %w", dir, err)
		}
		if !isDir {
			continue
		}

		entries, err := l.fs.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read filter directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			loaded, err := l.loadFile(path)
			if err != nil {
				return nil, err
			}
			filterList = append(filterList, loaded...)
		}
	}

	return filterList, nil
}

// loadFile parses one definition file, skipping entries that cannot be
// built and logging why.
func (l *Loader) loadFile(path string) ([]filters.Filter, error) {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter file %s: %w", path, err)
	}

	var file definitionFile
	if err := toml.Unmarshal(content, &file); err != nil {
		l.logger.Warn("Skipping unparsable filter file",
			"file", path,
			"error", err)
		return nil, nil
	}

	loaded := make([]filters.Filter, 0, len(file.Filter))
	for _, def := range file.Filter {
		f, err := filters.New(def)
		if err != nil {
			l.logger.Warn("Skipping filter definition",
				"file", path,
				"filter", def.Name,
				"class", def.Class,
				"error", err)
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
