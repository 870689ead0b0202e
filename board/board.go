// Package board holds the fixed wiring of the compass and grayscale boards and builds
// their peripherals.
package board

import (
	"tinygo.org/x/drivers"

	"github.com/merliot/qliic/lcd"
	"github.com/merliot/qliic/magnetometer"
)

const (
	// Serial console baud rate
	Baud = 9600

	// LCD I2C backpack address, 16 columns by 2 rows
	LCDAddress = 39
	LCDCols    = 16
	LCDRows    = 2

	// NeoPixel data on digital pin 8, one pixel
	PixelPin   = 8
	PixelCount = 1

	// Full scale of the 10-bit analog inputs
	AnalogMax = 1023
)

// LCD returns the character LCD on bus
func LCD(bus drivers.I2C) *lcd.LCD {
	return lcd.New(bus, LCDAddress, LCDCols, LCDRows)
}

// Magnetometer returns the magnetometer on bus
func Magnetometer(bus drivers.I2C) *magnetometer.Device {
	return magnetometer.New(bus)
}
