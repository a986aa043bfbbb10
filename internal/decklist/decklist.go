// Package decklist reads deck lists in the common "1x Card Name" text
// format.
package decklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/magefree/decksim/internal/game/card"
)

const commanderMarker = "*CMDR*"

var (
	entryPattern = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)
	// Set code and collector number appended by deck building sites, as in
	// "Sol Ring (C21) 263".
	printingPattern = regexp.MustCompile(`\s+\([A-Za-z0-9]+\)\s+\S+$`)
)

// Entry is one line of a deck list.
type Entry struct {
	Count     int
	Name      string
	Commander bool
}

// List is a parsed deck list.
type List struct {
	Entries []Entry
}

// Load reads a deck list file.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck list: %w", err)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Parse reads entries like "4x Forest", "1 Sol Ring" or "1x Tatyova,
// Benthic Druid *CMDR*". Lines under a "Commander" header are commanders
// too. Names are normalized to lower case.
func Parse(r io.Reader) (*List, error) {
	list := &List{}
	inCommander := false

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		switch strings.ToLower(strings.TrimSuffix(line, ":")) {
		case "commander", "commanders":
			inCommander = true
			continue
		case "deck", "main", "mainboard", "library":
			inCommander = false
			continue
		}

		entry, err := parseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		entry.Commander = entry.Commander || inCommander
		list.Entries = append(list.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}
	if len(list.Entries) == 0 {
		return nil, fmt.Errorf("deck list is empty")
	}
	return list, nil
}

func parseEntry(line string) (Entry, error) {
	var entry Entry
	if strings.HasSuffix(line, commanderMarker) {
		entry.Commander = true
		line = strings.TrimSpace(strings.TrimSuffix(line, commanderMarker))
	}

	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("expected \"<count>x <name>\", got %q", line)
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return Entry{}, fmt.Errorf("invalid count %q", m[1])
	}
	name := card.Key(printingPattern.ReplaceAllString(m[2], ""))
	if name == "" {
		return Entry{}, fmt.Errorf("missing card name in %q", line)
	}
	entry.Count = count
	entry.Name = name
	return entry, nil
}

// MarkCommander designates a card of the list as commander. One copy is
// moved to the command zone if the list has several.
func (l *List) MarkCommander(name string) error {
	key := card.Key(name)
	for _, entry := range l.Entries {
		if entry.Name == key && entry.Commander {
			return nil
		}
	}
	for i, entry := range l.Entries {
		if entry.Name != key {
			continue
		}
		if entry.Count > 1 {
			l.Entries[i].Count--
			l.Entries = append(l.Entries, Entry{Count: 1, Name: key, Commander: true})
			return nil
		}
		l.Entries[i].Commander = true
		return nil
	}
	return fmt.Errorf("commander %q is not in the deck list", name)
}

// Commanders returns the names of the commanders, one per copy.
func (l *List) Commanders() []string {
	return l.expand(true)
}

// Library returns the names of the cards that start in the library, one per
// copy.
func (l *List) Library() []string {
	return l.expand(false)
}

// Names returns every distinct card name in list order.
func (l *List) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, entry := range l.Entries {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			names = append(names, entry.Name)
		}
	}
	return names
}

// Size is the number of cards in the list, commanders included.
func (l *List) Size() int {
	n := 0
	for _, entry := range l.Entries {
		n += entry.Count
	}
	return n
}

func (l *List) expand(commanders bool) []string {
	var names []string
	for _, entry := range l.Entries {
		if entry.Commander != commanders {
			continue
		}
		for i := 0; i < entry.Count; i++ {
			names = append(names, entry.Name)
		}
	}
	return names
}
