package carddb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/decksim/internal/game/card"
)

type fakeSource struct {
	cards    map[string]string
	requests []string
}

func (s *fakeSource) Fetch(_ context.Context, name string) ([]byte, error) {
	s.requests = append(s.requests, name)
	data, ok := s.cards[card.Key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return []byte(data), nil
}

type memoryCache struct {
	data    map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, name string) ([]byte, bool, error) {
	if c.failGet {
		return nil, false, errors.New("cache offline")
	}
	data, ok := c.data[cacheKey(name)]
	return data, ok, nil
}

func (c *memoryCache) Put(_ context.Context, name string, data []byte) error {
	c.data[cacheKey(name)] = data
	return nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{cards: map[string]string{
		"sol ring":       solRingJSON,
		"forest":         forestJSON,
		"dimir aqueduct": dimirAqueductJSON,
	}}
}

func TestLoader_Load(t *testing.T) {
	source := newFakeSource()
	dir := NewDirCache(filepath.Join(t.TempDir(), "cards.db"))
	loader := NewLoader(source, []Cache{dir}, Overrides{}, zaptest.NewLogger(t))

	catalog, err := loader.Load(context.Background(), []string{"forest", "sol ring", "forest", "Forest"})
	require.NoError(t, err)

	assert.Equal(t, []string{"forest", "sol ring"}, catalog.Names())
	assert.Equal(t, []string{"forest", "sol ring"}, source.requests)

	// A second loader is served from the directory cache.
	offline := NewLoader(nil, []Cache{dir}, Overrides{}, zaptest.NewLogger(t))
	catalog, err = offline.Load(context.Background(), []string{"sol ring"})
	require.NoError(t, err)
	def, ok := catalog.Get("Sol Ring")
	require.True(t, ok)
	assert.Equal(t, "Sol Ring", def.Name)
}

func TestLoader_FillsEarlierCaches(t *testing.T) {
	first, second := newMemoryCache(), newMemoryCache()
	require.NoError(t, second.Put(context.Background(), "Forest", []byte(forestJSON)))
	source := newFakeSource()

	loader := NewLoader(source, []Cache{first, second}, Overrides{}, zaptest.NewLogger(t))
	_, err := loader.Load(context.Background(), []string{"forest", "sol ring"})
	require.NoError(t, err)

	assert.Equal(t, []string{"sol ring"}, source.requests)
	assert.Contains(t, first.data, "forest")
	assert.Contains(t, first.data, "sol ring")
	assert.Contains(t, second.data, "sol ring")
}

func TestLoader_SkipsFailingCache(t *testing.T) {
	broken := newMemoryCache()
	broken.failGet = true
	source := newFakeSource()

	loader := NewLoader(source, []Cache{broken}, Overrides{}, zaptest.NewLogger(t))
	catalog, err := loader.Load(context.Background(), []string{"sol ring"})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestLoader_NotFound(t *testing.T) {
	loader := NewLoader(newFakeSource(), nil, Overrides{}, zaptest.NewLogger(t))
	_, err := loader.Load(context.Background(), []string{"sol ring", "sol rang"})
	assert.ErrorIs(t, err, ErrNotFound)

	offline := NewLoader(nil, nil, Overrides{}, zaptest.NewLogger(t))
	_, err = offline.Load(context.Background(), []string{"forest"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_KeepsDeckListName(t *testing.T) {
	source := &fakeSource{cards: map[string]string{"sol  ring": solRingJSON}}
	loader := NewLoader(source, nil, Overrides{}, zaptest.NewLogger(t))

	catalog, err := loader.Load(context.Background(), []string{"sol  ring"})
	require.NoError(t, err)
	_, ok := catalog.Get("sol  ring")
	assert.True(t, ok)
}

func TestLoader_AppliesOverrides(t *testing.T) {
	overrides, err := ParseOverrides([]byte(`
cards:
  dimir aqueduct:
    enters_tapped: false
    abilities:
      - trigger: activated
        cost: "{T}"
        add: "{U}{B}{C}"
`))
	require.NoError(t, err)

	loader := NewLoader(newFakeSource(), nil, overrides, zaptest.NewLogger(t))
	catalog, err := loader.Load(context.Background(), []string{"dimir aqueduct"})
	require.NoError(t, err)

	def, ok := catalog.Get("dimir aqueduct")
	require.True(t, ok)
	assert.False(t, def.EntersTapped)
	assert.Equal(t, card.ReturnLandToHand, def.AdditionalCost)
	require.Len(t, def.Abilities, 1)
	pm := def.Abilities[0].Effect.(card.ProduceMana)
	assert.Equal(t, 3, pm.Pool.Value())
}
