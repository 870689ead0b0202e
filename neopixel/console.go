package neopixel

import (
	"fmt"
	"image/color"
	"io"
	"os"
)

// Console is a Writer for hosts without LEDs.  Color changes are printed,
// on stderr by default.
type Console struct {
	out  io.Writer
	last []color.RGBA
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{out: out}
}

func (c *Console) WriteColors(colors []color.RGBA) error {
	if len(c.last) != len(colors) {
		c.last = make([]color.RGBA, len(colors))
		for i := range c.last {
			c.last[i].A = 1
		}
	}
	for i, rgba := range colors {
		if rgba == c.last[i] {
			continue
		}
		c.last[i] = rgba
		if _, err := fmt.Fprintf(c.out, "NeoPixel %d: #%02x%02x%02x\r\n",
			i, rgba.R, rgba.G, rgba.B); err != nil {
			return err
		}
	}
	return nil
}
