package decklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `# Tatyova lands
1x Tatyova, Benthic Druid *CMDR*
1x Sol Ring
1 Commander's Sphere (C21) 234
// basics
10x Forest
9x Island

1x Dimir Aqueduct
`

func TestParse(t *testing.T) {
	list, err := Parse(strings.NewReader(sampleDeck))
	require.NoError(t, err)

	require.Len(t, list.Entries, 6)
	assert.Equal(t, Entry{Count: 1, Name: "tatyova, benthic druid", Commander: true}, list.Entries[0])
	assert.Equal(t, Entry{Count: 1, Name: "commander's sphere"}, list.Entries[2])
	assert.Equal(t, Entry{Count: 10, Name: "forest"}, list.Entries[3])

	assert.Equal(t, []string{"tatyova, benthic druid"}, list.Commanders())
	assert.Len(t, list.Library(), 22)
	assert.Equal(t, 23, list.Size())
	assert.Equal(t, []string{
		"tatyova, benthic druid", "sol ring", "commander's sphere", "forest", "island", "dimir aqueduct",
	}, list.Names())
}

func TestParse_Sections(t *testing.T) {
	list, err := Parse(strings.NewReader("Commander:\n1 Big Dragon\nDeck\n40 Mountain\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"big dragon"}, list.Commanders())
	assert.Len(t, list.Library(), 40)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"no count":   "Sol Ring\n",
		"zero count": "0x Sol Ring\n",
		"empty":      "# nothing\n\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}

	_, err := Parse(strings.NewReader("1x Forest\nbroken line\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMarkCommander(t *testing.T) {
	list, err := Parse(strings.NewReader("3x Big Dragon\n40x Mountain\n1x Just an Elk\n"))
	require.NoError(t, err)

	require.NoError(t, list.MarkCommander("Just an Elk"))
	require.NoError(t, list.MarkCommander("Big Dragon"))
	require.NoError(t, list.MarkCommander("big dragon"))

	assert.Equal(t, []string{"just an elk", "big dragon"}, list.Commanders())
	assert.Len(t, list.Library(), 42)

	assert.Error(t, list.MarkCommander("Sol Ring"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 23, list.Size())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
