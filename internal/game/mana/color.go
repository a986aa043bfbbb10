package mana

import "fmt"

// Color is a single bit of the five-color set.
type Color uint8

const (
	ColorBlack Color = 1 << iota
	ColorBlue
	ColorGreen
	ColorRed
	ColorWhite
)

// allColors is the mask of every color bit.
const allColors = uint8(ColorBlack | ColorBlue | ColorGreen | ColorRed | ColorWhite)

// Colors lists the five colors in counter order.
var Colors = []Color{ColorBlack, ColorBlue, ColorGreen, ColorRed, ColorWhite}

var colorSymbols = map[Color]string{
	ColorBlack: "B",
	ColorBlue:  "U",
	ColorGreen: "G",
	ColorRed:   "R",
	ColorWhite: "W",
}

var colorNames = map[Color]string{
	ColorBlack: "BLACK",
	ColorBlue:  "BLUE",
	ColorGreen: "GREEN",
	ColorRed:   "RED",
	ColorWhite: "WHITE",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COLOR_%d", uint8(c))
}

// Symbol returns the single-letter mana symbol of the color (e.g. "U" for blue).
func (c Color) Symbol() string {
	return colorSymbols[c]
}

// ColorFromSymbol maps a mana symbol letter to its color.
func ColorFromSymbol(symbol string) (Color, bool) {
	for c, s := range colorSymbols {
		if s == symbol {
			return c, true
		}
	}
	return 0, false
}

// index returns the position of the color in Colors.
func (c Color) index() int {
	for i, color := range Colors {
		if color == c {
			return i
		}
	}
	return -1
}
