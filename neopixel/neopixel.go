// Package neopixel drives a strip of addressable RGB LEDs.  Colors are staged
// with SetPixelColor and latched with Show.
package neopixel

import (
	"image/color"
)

// Writer latches colors onto the LEDs
type Writer interface {
	WriteColors([]color.RGBA) error
}

type Strip struct {
	w      Writer
	pixels []color.RGBA
}

// New returns a strip of n pixels written through w
func New(n int, w Writer) *Strip {
	return &Strip{w: w, pixels: make([]color.RGBA, n)}
}

// Begin turns all pixels off
func (s *Strip) Begin() error {
	for i := range s.pixels {
		s.pixels[i] = Color(0, 0, 0)
	}
	return s.Show()
}

// SetPixelColor stages color c for pixel i.  Out of range pixels are ignored.
func (s *Strip) SetPixelColor(i int, c color.RGBA) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// Pixel returns the staged color of pixel i
func (s *Strip) Pixel(i int) color.RGBA {
	if i < 0 || i >= len(s.pixels) {
		return color.RGBA{}
	}
	return s.pixels[i]
}

func (s *Strip) Len() int {
	return len(s.pixels)
}

// Show writes the staged colors to the LEDs
func (s *Strip) Show() error {
	return s.w.WriteColors(s.pixels)
}

// Color packs r, g, b into an opaque color
func Color(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
