package render

import "image/color"

// FillRGBA writes one opaque pixel per colour into buf, blending each colour
// over a black background. buf must hold at least 4*len(colors) bytes.
func FillRGBA(buf []byte, colors []color.NRGBA) {
	for i, c := range colors {
		p := Over(c)
		base := i * 4
		buf[base+0] = p.R
		buf[base+1] = p.G
		buf[base+2] = p.B
		buf[base+3] = p.A
	}
}

// Over blends c onto an opaque black background.
func Over(c color.NRGBA) color.RGBA {
	return color.RGBA{R: scaleChannel(c.R, c.A), G: scaleChannel(c.G, c.A), B: scaleChannel(c.B, c.A), A: 0xff}
}

func scaleChannel(v, a uint8) uint8 {
	return uint8((uint16(v)*uint16(a) + 127) / 255)
}
