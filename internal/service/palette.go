package service

import "math/rand/v2"

// Color is a CSS background value used to tint a topic badge.
// It is cosmetic only and never persisted.
type Color string

// Palette is the fixed set of badge colors.
var Palette = []Color{
	"linear-gradient(135deg, #6a11cb 0%, #2575fc 100%)", // purple to blue
	"linear-gradient(135deg, #43e97b 0%, #38f9d7 100%)", // green to cyan
	"linear-gradient(135deg, #ff6a00 0%, #ee0979 100%)", // orange to pink
	"linear-gradient(135deg, #8a2387 0%, #e94057 100%)", // deep purple to red
	"linear-gradient(135deg, #11998e 0%, #38ef7d 100%)", // teal to green
}

// ColorFor picks a palette entry round-robin by gallery position.
func ColorFor(index int) Color {
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

// RandomColor picks a palette entry at random for a freshly generated card.
func RandomColor() Color {
	return Palette[rand.IntN(len(Palette))]
}
