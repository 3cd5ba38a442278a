// Package contrast picks readable text colors for label swatches.
package contrast

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	White = "#ffffff"
	Black = "#000000"

	// Threshold is the contrast ratio against white above which a label
	// color is dark enough to carry white text.
	Threshold = 2.0
)

// Normalize converts a CSS hex color into "#rrggbb".
// Accepts 3, 6 or 8 digits with an optional leading '#'; alpha is dropped.
func Normalize(color string) (string, error) {
	c := strings.TrimPrefix(strings.TrimSpace(color), "#")
	switch len(c) {
	case 3:
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	case 6:
	case 8:
		c = c[:6]
	default:
		return "", fmt.Errorf("not a valid hex color: %q", color)
	}
	for _, r := range c {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("not a valid hex color: %q", color)
		}
	}
	return "#" + strings.ToLower(c), nil
}

// Luminance returns the relative luminance of a hex color (0 black, 1 white).
func Luminance(color string) (float64, error) {
	hex, err := Normalize(color)
	if err != nil {
		return 0, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, err
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// Ratio returns the WCAG contrast ratio between two colors, from 1 to 21.
func Ratio(a, b string) (float64, error) {
	la, err := Luminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := Luminance(b)
	if err != nil {
		return 0, err
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

// Foreground returns White when the label color contrasts with white by more
// than Threshold, Black otherwise. Unparseable colors get Black.
func Foreground(labelColor string) string {
	ratio, err := Ratio(labelColor, White)
	if err != nil || ratio <= Threshold {
		return Black
	}
	return White
}

// Swatch is the resolved color pair for one label
type Swatch struct {
	Background string
	Foreground string
}

// For resolves the swatch for a label color. An invalid color falls back to a
// white background so the black foreground stays readable.
func For(labelColor string) Swatch {
	bg, err := Normalize(labelColor)
	if err != nil {
		bg = White
	}
	return Swatch{Background: bg, Foreground: Foreground(bg)}
}
