//go:build !tinygo

package board

import (
	"fmt"
	"time"

	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/all"
	"tinygo.org/x/drivers"

	"github.com/merliot/qliic/lcd"
	"github.com/merliot/qliic/neopixel"
	"github.com/merliot/qliic/uart"
)

// i2cBus adapts an embd I2C bus to the drivers.I2C interface
type i2cBus struct {
	bus embd.I2CBus
}

// I2C opens host I2C bus n (e.g. /dev/i2c-1)
func I2C(n byte) (drivers.I2C, error) {
	if err := embd.InitI2C(); err != nil {
		return nil, fmt.Errorf("initializing I2C: %w", err)
	}
	return &i2cBus{bus: embd.NewI2CBus(n)}, nil
}

func (b *i2cBus) Tx(addr uint16, w, r []byte) error {
	a := byte(addr)
	switch {
	case len(w) == 0 && len(r) == 0:
		return nil
	case len(w) == 1 && len(r) > 0:
		// register read
		return b.bus.ReadFromReg(a, w[0], r)
	case len(r) == 0:
		return b.bus.WriteBytes(a, w)
	}
	if len(w) > 0 {
		if err := b.bus.WriteBytes(a, w); err != nil {
			return err
		}
	}
	data, err := b.bus.ReadBytes(a, len(r))
	if err != nil {
		return err
	}
	copy(r, data)
	return nil
}

// Serial opens the serial console on device name.  An empty name is the
// process's stdin/stdout.
func Serial(name string) (*uart.Stream, error) {
	return uart.Open(name, Baud)
}

// Pixels returns the NeoPixel strip.  Hosts have no LED so color changes are
// printed.
func Pixels() *neopixel.Strip {
	return neopixel.New(PixelCount, neopixel.NewConsole(nil))
}

// DemoLCD returns an in-memory LCD
func DemoLCD() *lcd.Grid {
	return lcd.NewGrid(LCDCols, LCDRows)
}

// Knob is an emulated potentiometer on an analog input.  It sweeps full scale
// up and back down once per Period.
type Knob struct {
	Period time.Duration
	start  time.Time
	now    func() time.Time
}

func NewKnob() *Knob {
	return &Knob{Period: 10 * time.Second, start: time.Now(), now: time.Now}
}

// Get returns the 10-bit analog value
func (k *Knob) Get() uint16 {
	half := k.Period / 2
	if half <= 0 {
		return 0
	}
	t := k.now().Sub(k.start) % k.Period
	if t >= half {
		t = k.Period - t
	}
	return uint16(int64(AnalogMax) * int64(t) / int64(half))
}
