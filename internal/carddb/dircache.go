package carddb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirCache keeps one JSON file per card in a directory.
type DirCache struct {
	dir string
}

// NewDirCache creates a cache in dir. The directory is created on the first
// write.
func NewDirCache(dir string) *DirCache {
	return &DirCache{dir: dir}
}

func (c *DirCache) path(name string) string {
	return filepath.Join(c.dir, cacheKey(name)+".json")
}

func (c *DirCache) Get(_ context.Context, name string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached card: %w", err)
	}
	return data, true, nil
}

func (c *DirCache) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create card cache: %w", err)
	}
	path := c.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cached card: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write cached card: %w", err)
	}
	return nil
}

// Keys lists the cached cards, sorted.
func (c *DirCache) Keys() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("list card cache: %w", err)
	}
	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}
