package engine

import (
	"math/bits"
	"strings"
)

// Color represents a sphere color.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCyan
	ColorCount // Sentinel value for iteration
)

// pointValues is the static score of one sphere of each color.
var pointValues = [ColorCount]int{
	ColorRed:    100,
	ColorGreen:  100,
	ColorBlue:   100,
	ColorYellow: 150,
	ColorPurple: 150,
	ColorCyan:   200,
}

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Points returns the point value of a single sphere of this color.
func (c Color) Points() int {
	if c >= ColorCount {
		return 0
	}
	return pointValues[c]
}

// ParseColor converts a string to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "blue":
		return ColorBlue, true
	case "yellow":
		return ColorYellow, true
	case "purple":
		return ColorPurple, true
	case "cyan":
		return ColorCyan, true
	default:
		return ColorRed, false
	}
}

// ColorSet is a small bitmask of colors.
type ColorSet uint8

// SetOf builds a set from colors.
func SetOf(colors ...Color) ColorSet {
	var s ColorSet
	for _, c := range colors {
		s = s.With(c)
	}
	return s
}

// Palette returns the first n palette colors, clamped to the full palette.
func Palette(n int) ColorSet {
	if n <= 0 || n > int(ColorCount) {
		n = int(ColorCount)
	}
	return ColorSet(1<<n - 1)
}

// With returns the set with c added.
func (s ColorSet) With(c Color) ColorSet {
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s ColorSet) Has(c Color) bool {
	return s&(1<<c) != 0
}

// Without returns s minus every color in o.
func (s ColorSet) Without(o ColorSet) ColorSet {
	return s &^ o
}

// Intersect returns the colors present in both sets.
func (s ColorSet) Intersect(o ColorSet) ColorSet {
	return s & o
}

// Len returns the number of colors in the set.
func (s ColorSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// Empty reports whether the set has no colors.
func (s ColorSet) Empty() bool {
	return s == 0
}

// Colors returns the members in palette order.
func (s ColorSet) Colors() []Color {
	out := make([]Color, 0, s.Len())
	for c := Color(0); c < ColorCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
