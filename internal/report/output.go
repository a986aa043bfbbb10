package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats supported by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders the summary in the given format.
func Write(w io.Writer, format string, s Summary) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return WriteText(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteText writes the turn breakdown table followed by the headline
// numbers.
func WriteText(w io.Writer, s Summary) error {
	p := &printer{w: w}
	p.line("")
	p.line("                                      Turn breakdown / Deck Performance")
	p.line("")
	p.line("           --------- cards ---------   ----- lands -----   ---------- mana ---------   --- commander ---")
	p.line("  Turn      drawn   played  in-hand     played  cheated     total    spent    ratio     %%-played  (abs)")
	for _, t := range s.PerTurn {
		p.line("  #%-3d      %5.2f    %5.2f    %5.2f      %5.2f    %5.2f      %5.2f    %5.2f    %5.2f      %5.1f%%   %4d",
			t.Turn,
			t.CardsDrawn, t.CardsPlayed, t.CardsInHand,
			t.LandsPlayed, t.LandsCheated,
			t.ManaAvailable, t.ManaSpent, t.ManaRatio,
			t.CommanderPlayedPercent, t.CommanderPlayed)
	}
	p.line("")
	p.line("Commander arrives on turn ........: %.1f (avg)", s.CommanderAverageTurn)
	p.line("games Commander didn't arrive ....: %.2f%% (%d)", s.CommanderNotPlayedPercent, s.CommanderNotPlayed)
	p.line("cards/round average ..............: %.2f", s.CardsPerTurn)
	p.line("games library ran out of cards ...: %.2f%% (%d)", s.OutOfCardsPercent, s.OutOfCards)
	p.line("mana increase / turn (ramp) ......: %.2f mana / turn", s.RampPerTurn)
	p.line("mulligans per game ...............: %.2f", s.MulliganAverage)
	if len(s.Cards) > 0 {
		p.line("")
		p.line("                                      Card performance")
		p.line("")
		p.line("  %-40s  %8s  %6s  %9s", "Card", "played", "games", "avg turn")
		for _, c := range s.Cards {
			p.line("  %-40s  %7.2f%%  %6d  %9.2f", c.Name, c.PlayedPercent, c.GamesPlayed, c.AverageTurn)
		}
	}
	p.line("")
	p.line("games simulated ..................: %d", s.Games)
	p.line("turns per game ...................: %d", s.Turns)
	if s.BatchID != "" {
		p.line("batch ............................: %s (seed %d)", s.BatchID, s.Seed)
	}
	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}
