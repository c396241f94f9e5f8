package page

import "regexp"

// ColorCustom selects the user-supplied background colour.
const ColorCustom = "custom"

// DefaultColor is the fallback page background.
const DefaultColor = "#ffffff"

// Color is a named page background.
type Color struct {
	ID    string
	Hex   string
	Label string
}

var colors = []Color{
	{ID: "white", Hex: "#ffffff", Label: "White"},
	{ID: "black", Hex: "#18181b", Label: "Black"},
	{ID: "green", Hex: "#e8f5e9", Label: "Green"},
	{ID: "cream", Hex: "#fffdd0", Label: "Cream"},
	{ID: "khaki", Hex: "#f0e68c", Label: "Khaki"},
	{ID: "blue", Hex: "#e3f2fd", Label: "Blue"},
}

// Colors returns the background presets in display order.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// ResolveColor returns the hex value for a colour id. The custom id yields
// custom; anything unknown yields [DefaultColor].
func ResolveColor(id, custom string) string {
	if id == ColorCustom {
		if IsHexColor(custom) {
			return custom
		}
		return DefaultColor
	}
	for _, c := range colors {
		if c.ID == id {
			return c.Hex
		}
	}
	return DefaultColor
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb colour.
func IsHexColor(s string) bool { return hexColorRe.MatchString(s) }
