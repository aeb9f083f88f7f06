package render

import (
	"strings"

	"github.com/gogpu/gg"
)

var namedColors = map[string]gg.RGBA{
	"transparent": {},
	"black":       gg.Hex("#000000"),
	"white":       gg.Hex("#ffffff"),
	"red":         gg.Hex("#ff0000"),
	"green":       gg.Hex("#00ff00"),
	"blue":        gg.Hex("#0000ff"),
	"yellow":      gg.Hex("#ffff00"),
	"orange":      gg.Hex("#ffa500"),
	"purple":      gg.Hex("#800080"),
	"pink":        gg.Hex("#ffc0cb"),
	"gray":        gg.Hex("#808080"),
	"grey":        gg.Hex("#808080"),
}

// ParseColor understands "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" and a
// handful of CSS names. ok is false for anything else.
func ParseColor(s string) (c gg.RGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if named, found := namedColors[s]; found {
		return named, true
	}
	hex, found := strings.CutPrefix(s, "#")
	if !found {
		return gg.RGBA{}, false
	}
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return gg.RGBA{}, false
		}
	}
	return gg.Hex(hex), true
}

// colorOr parses s and falls back to def when s is not a color.
func colorOr(s string, def gg.RGBA) gg.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}
