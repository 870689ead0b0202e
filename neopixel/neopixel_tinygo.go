//go:build tinygo

package neopixel

import (
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// NewWS2812 returns a strip of n WS2812 pixels with data on pin
func NewWS2812(pin machine.Pin, n int) *Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return New(n, ws2812.NewWS2812(pin))
}
