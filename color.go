package cordial

import "fmt"

// Color is a 24-bit RGB color as used for role colors and embeds.
type Color uint32

// ColorFromRGB packs three channel values into a Color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB unpacks the three channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c))
}
