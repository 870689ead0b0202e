// Package lcd drives HD44780 character LCDs behind a PCF8574 I2C backpack
// (the LiquidCrystal_I2C wiring), and provides an in-memory Grid with the same
// cursor behavior.
package lcd

import (
	"errors"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// Displayer is a character display
type Displayer interface {
	// Init sets up the display.  The display is cleared and the cursor is
	// homed.
	Init() error
	// Backlight turns the backlight on
	Backlight()
	// Clear clears the display and homes the cursor
	Clear()
	// SetCursor moves the cursor to column col of row row.  A row past the
	// last row wraps to row 0.
	SetCursor(col, row uint8)
	// Print s at the cursor, advancing the cursor
	Print(s string)
}

var ErrSize = errors.New("lcd: columns and rows must be set")

// LCD is an HD44780 on an I2C bus
type LCD struct {
	dev  hd44780i2c.Device
	cols uint8
	rows uint8
}

// New returns an LCD at I2C address addr with cols x rows characters.  The bus
// must already be configured.  The device is not touched until Init.
func New(bus drivers.I2C, addr, cols, rows uint8) *LCD {
	return &LCD{
		dev:  hd44780i2c.New(bus, addr),
		cols: cols,
		rows: rows,
	}
}

func (l *LCD) Init() error {
	if l.cols == 0 || l.rows == 0 {
		return ErrSize
	}
	return l.dev.Configure(hd44780i2c.Config{Width: l.cols, Height: l.rows})
}

func (l *LCD) Backlight()               { l.dev.BacklightOn(true) }
func (l *LCD) Clear()                   { l.dev.ClearDisplay() }
func (l *LCD) SetCursor(col, row uint8) { l.dev.SetCursor(col, row) }
func (l *LCD) Print(s string)           { l.dev.Print([]byte(s)) }
