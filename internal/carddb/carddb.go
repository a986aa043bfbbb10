// Package carddb loads card definitions from Scryfall card objects, keeping
// the raw JSON in a chain of caches so a deck is only downloaded once.
package carddb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
)

// ErrNotFound is returned when no source knows a card.
var ErrNotFound = errors.New("card not found")

// Source fetches the raw Scryfall JSON of a card by name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Cache stores raw card JSON by name.
type Cache interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Put(ctx context.Context, name string, data []byte) error
}

// cacheKey is the storage key of a card name. Split cards like
// "Fire // Ice" must still make a valid file name.
func cacheKey(name string) string {
	return strings.ReplaceAll(card.Key(name), "/", "_")
}

// Loader builds a catalog from card names.
type Loader struct {
	source    Source
	caches    []Cache
	overrides Overrides
	logger    *zap.Logger
}

// NewLoader creates a loader. Caches are consulted in order before the
// source; source may be nil for offline use.
func NewLoader(source Source, caches []Cache, overrides Overrides, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:    source,
		caches:    caches,
		overrides: overrides,
		logger:    logger,
	}
}

// Load resolves every name into a definition. Duplicate names are loaded
// once.
func (l *Loader) Load(ctx context.Context, names []string) (*card.Catalog, error) {
	catalog := card.NewCatalog()
	for _, name := range names {
		if _, ok := catalog.Get(name); ok {
			continue
		}
		data, err := l.fetch(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
		def, err := Convert(data, l.logger)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
		if card.Key(def.Name) != card.Key(name) {
			l.logger.Debug("card name differs from deck list",
				zap.String("requested", name),
				zap.String("name", def.Name),
			)
			def.Name = strings.TrimSpace(name)
		}
		if override, ok := l.overrides.lookup(name); ok {
			if err := override.apply(def); err != nil {
				return nil, fmt.Errorf("override %q: %w", name, err)
			}
			l.logger.Debug("applied card override", zap.String("card", def.Name))
		}
		if err := catalog.Add(def); err != nil {
			return nil, err
		}
		l.logger.Debug("card loaded",
			zap.String("card", def.Name),
			zap.Int("mana_value", def.ManaValue),
			zap.Int("abilities", len(def.Abilities)),
		)
	}
	l.logger.Info("catalog loaded", zap.Int("cards", catalog.Len()))
	return catalog, nil
}

// fetch returns the raw JSON of a card from the first cache holding it,
// falling back to the source. Caches that missed are filled on the way
// back. Cache failures are logged and skipped.
func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	for i, cache := range l.caches {
		data, ok, err := cache.Get(ctx, name)
		if err != nil {
			l.logger.Warn("card cache read failed", zap.String("card", name), zap.Error(err))
			continue
		}
		if ok {
			l.store(ctx, l.caches[:i], name, data)
			return data, nil
		}
	}
	if l.source == nil {
		return nil, ErrNotFound
	}
	l.logger.Info("downloading card", zap.String("card", name))
	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	l.store(ctx, l.caches, name, data)
	return data, nil
}

func (l *Loader) store(ctx context.Context, caches []Cache, name string, data []byte) {
	for _, cache := range caches {
		if err := cache.Put(ctx, name, data); err != nil {
			l.logger.Warn("card cache write failed", zap.String("card", name), zap.Error(err))
		}
	}
}
