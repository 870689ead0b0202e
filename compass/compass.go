// Package compass is a magnetometer compass.  Every Period the heading is
// read and written, with a degree,x,y,z line, to the serial console and a
// two-row character LCD.
package compass

import (
	"io"
	"strconv"
	"time"

	"github.com/merliot/qliic"
	"github.com/merliot/qliic/lcd"
	"github.com/merliot/qliic/magnetometer"
)

// Period is the delay between loop iterations
const Period = 100 * time.Millisecond

// Peripherals are the compass' hardware.  Nil peripherals are skipped.
type Peripherals struct {
	Serial io.Writer
	Mag    magnetometer.Reader
	LCD    lcd.Displayer
}

// Compass is a magnetometer compass thing
type Compass struct {
	qliic.Thing
	qliic.ThingMsg
	Degree   int32
	X        int32
	Y        int32
	Z        int32
	Reading  string
	Line     string
	periph   Peripherals
	attached bool
	sample   magnetometer.Sample
}

// state is the part of the compass reported in updates
type state struct {
	degree, x, y, z int32
	reading, line   string
}

// New returns a Compass with no peripherals attached
func New(id, model, name string) qliic.Thinger {
	return &Compass{
		Thing: qliic.NewThing(id, model, name),
	}
}

// Attach the hardware.  Run does nothing until peripherals are attached.
func (c *Compass) Attach(p Peripherals) {
	c.periph = p
	c.attached = true
}

// saveState restores a replica.  On metal the loop is the only writer of the
// state, so saved state is ignored.
func (c *Compass) saveState(msg *qliic.Msg) {
	if c.IsMetal() {
		return
	}
	msg.Unmarshal(c)
}

func (c *Compass) getState(msg *qliic.Msg) {
	c.Path = "state"
	msg.Marshal(c).Reply()
}

// update broadcasts state changes.  On metal only the loop's own updates
// are passed on; remote updates are dropped.
func (c *Compass) update(msg *qliic.Msg) {
	if c.IsMetal() {
		if msg.Injected() {
			msg.Broadcast()
		}
		return
	}
	msg.Unmarshal(c).Broadcast()
}

func (c *Compass) Subscribers() qliic.Subscribers {
	return qliic.Subscribers{
		"state":     c.saveState,
		"get/state": c.getState,
		"attached":  c.getState,
		"update":    c.update,
	}
}

func (c *Compass) Gauges() map[string]float64 {
	return map[string]float64{
		"degree": float64(c.Degree),
		"x":      float64(c.X),
		"y":      float64(c.Y),
		"z":      float64(c.Z),
	}
}

// FormatLine returns the CSV line "degree,x,y,z"
func FormatLine(degree, x, y, z int32) string {
	return strconv.Itoa(int(degree)) + "," + strconv.Itoa(int(x)) + "," +
		strconv.Itoa(int(y)) + "," + strconv.Itoa(int(z))
}

// Setup initializes the peripherals.  Failures are logged and the compass
// carries on.
func (c *Compass) Setup() {
	if c.periph.Mag != nil {
		if err := c.periph.Mag.Configure(); err != nil {
			qliic.Logf("Magnetometer configure failed: %s", err.Error())
		}
	}
	if c.periph.LCD != nil {
		if err := c.periph.LCD.Init(); err != nil {
			qliic.Logf("LCD init failed: %s", err.Error())
		}
		c.periph.LCD.Backlight()
	}
}

// Loop runs one iteration.  The CSV line is built from the values held
// before this iteration's read, so it trails the printed reading by one
// iteration.
func (c *Compass) Loop() {
	degree, x, y, z := c.Degree, c.X, c.Y, c.Z

	var reading int32
	if c.periph.Mag != nil {
		reading = c.periph.Mag.Read(&c.sample)
		c.Degree, c.X, c.Y, c.Z = c.sample.Degree, c.sample.X, c.sample.Y, c.sample.Z
	}
	c.Reading = strconv.Itoa(int(reading))
	c.Line = FormatLine(degree, x, y, z)

	if c.periph.Serial != nil {
		io.WriteString(c.periph.Serial, c.Reading+"\r\n")
		io.WriteString(c.periph.Serial, c.Line+"\r\n")
	}

	if c.periph.LCD != nil {
		c.periph.LCD.Clear()
		c.periph.LCD.Print(c.Reading)
		c.periph.LCD.SetCursor(0, 1)
		c.periph.LCD.Print(c.Line)
	}
}

func (c *Compass) state() state {
	return state{c.Degree, c.X, c.Y, c.Z, c.Reading, c.Line}
}

// Run the compass, publishing an update whenever the reported state changes
func (c *Compass) Run(i *qliic.Injector) {
	if !c.attached {
		select {}
	}
	c.run(i, nil)
}

// run loops until stop is closed
func (c *Compass) run(i *qliic.Injector, stop <-chan struct{}) {
	var msg qliic.Msg

	c.Lock()
	c.Setup()
	c.Unlock()

	for {
		c.Lock()
		prev := c.state()
		c.Loop()
		changed := c.state() != prev
		if changed {
			c.Path = "update"
			msg.Marshal(c)
		}
		c.Unlock()

		if changed {
			i.Inject(&msg)
		}

		select {
		case <-stop:
			return
		case <-time.After(Period):
		}
	}
}
