// Package grayscale lights a NeoPixel with the last byte received on the
// serial console as a gray level, and shows an analog reading and the
// received character on a character LCD.  The loop is free running.
package grayscale

import (
	"strconv"

	"github.com/merliot/qliic"
	"github.com/merliot/qliic/lcd"
	"github.com/merliot/qliic/neopixel"
	"github.com/merliot/qliic/uart"
)

// Analog is a 10-bit analog input
type Analog interface {
	Get() uint16
}

// Peripherals are the grayscale hardware.  Nil peripherals are skipped.
type Peripherals struct {
	Serial uart.Port
	Analog Analog
	Pixels *neopixel.Strip
	LCD    lcd.Displayer
}

// Grayscale is the NeoPixel gray level thing
type Grayscale struct {
	qliic.Thing
	qliic.ThingMsg
	// V0 is the analog reading scaled to 0-255
	V0 int32
	// InByte is the last byte received, zero until one arrives
	InByte byte
	// Row1 is the last label written to LCD row 1
	Row1     string
	periph   Peripherals
	attached bool
}

type state struct {
	v0     int32
	inByte byte
	row1   string
}

// New returns a Grayscale with no peripherals attached
func New(id, model, name string) qliic.Thinger {
	return &Grayscale{
		Thing: qliic.NewThing(id, model, name),
	}
}

// Attach the hardware.  Run does nothing until peripherals are attached.
func (g *Grayscale) Attach(p Peripherals) {
	g.periph = p
	g.attached = true
}

// saveState restores a replica.  On metal the loop is the only writer of the
// state, so saved state is ignored.
func (g *Grayscale) saveState(msg *qliic.Msg) {
	if g.IsMetal() {
		return
	}
	msg.Unmarshal(g)
}

func (g *Grayscale) getState(msg *qliic.Msg) {
	g.Path = "state"
	msg.Marshal(g).Reply()
}

// update broadcasts state changes.  On metal only the loop's own updates
// are passed on; remote updates are dropped.
func (g *Grayscale) update(msg *qliic.Msg) {
	if g.IsMetal() {
		if msg.Injected() {
			msg.Broadcast()
		}
		return
	}
	msg.Unmarshal(g).Broadcast()
}

func (g *Grayscale) Subscribers() qliic.Subscribers {
	return qliic.Subscribers{
		"state":     g.saveState,
		"get/state": g.getState,
		"attached":  g.getState,
		"update":    g.update,
	}
}

func (g *Grayscale) Gauges() map[string]float64 {
	return map[string]float64{
		"v0":      float64(g.V0),
		"in_byte": float64(g.InByte),
	}
}

// Setup initializes the peripherals.  Failures are logged and the loop
// carries on.
func (g *Grayscale) Setup() {
	if g.periph.LCD != nil {
		if err := g.periph.LCD.Init(); err != nil {
			qliic.Logf("LCD init failed: %s", err.Error())
		}
		g.periph.LCD.Backlight()
	}
	if g.periph.Pixels != nil {
		if err := g.periph.Pixels.Begin(); err != nil {
			qliic.Logf("NeoPixel begin failed: %s", err.Error())
		}
	}
}

// Loop runs one iteration.  The pixel is lit before the serial port is
// polled, so a newly received byte shows on the pixel next iteration.  LCD
// row 0 is overwritten in place without clearing.
func (g *Grayscale) Loop() {
	if g.periph.Analog != nil {
		g.V0 = int32(g.periph.Analog.Get()) / 4
	}

	if g.periph.Pixels != nil {
		g.periph.Pixels.SetPixelColor(0, neopixel.Color(g.InByte, g.InByte, g.InByte))
		g.periph.Pixels.Show()
	}

	if g.periph.LCD != nil {
		g.periph.LCD.SetCursor(0, 0)
		g.periph.LCD.Print(strconv.Itoa(int(g.V0)))
	}

	if g.periph.Serial == nil || g.periph.Serial.Buffered() == 0 {
		return
	}
	b, err := g.periph.Serial.ReadByte()
	if err != nil {
		return
	}
	g.InByte = b
	g.Row1 = "CAR=" + string([]byte{b})
	if g.periph.LCD != nil {
		g.periph.LCD.SetCursor(0, 1)
		g.periph.LCD.Print("CAR=")
		g.periph.LCD.Print(string([]byte{b}))
	}
}

func (g *Grayscale) state() state {
	return state{g.V0, g.InByte, g.Row1}
}

// Run the loop free running, publishing an update whenever the reported
// state changes
func (g *Grayscale) Run(i *qliic.Injector) {
	if !g.attached {
		select {}
	}
	g.run(i, nil)
}

// run loops until stop is closed
func (g *Grayscale) run(i *qliic.Injector, stop <-chan struct{}) {
	var msg qliic.Msg

	g.Lock()
	g.Setup()
	g.Unlock()

	for {
		g.Lock()
		prev := g.state()
		g.Loop()
		changed := g.state() != prev
		if changed {
			g.Path = "update"
			msg.Marshal(g)
		}
		g.Unlock()

		if changed {
			i.Inject(&msg)
		}

		select {
		case <-stop:
			return
		default:
		}
	}
}
