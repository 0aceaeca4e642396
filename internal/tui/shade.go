package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/crazy3lf/colorconv"
)

// shade folds the alpha of c into its HSV value so translucent cells read
// darker on terminals that cannot blend.
func shade(c color.NRGBA) lipgloss.Color {
	if c.A == 0xff {
		return hex(c.R, c.G, c.B)
	}
	h, s, v := colorconv.RGBToHSV(c.R, c.G, c.B)
	r, g, b, err := colorconv.HSVToRGB(h, s, v*float64(c.A)/255)
	if err != nil {
		return hex(c.R, c.G, c.B)
	}
	return hex(r, g, b)
}

func hex(r, g, b uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
