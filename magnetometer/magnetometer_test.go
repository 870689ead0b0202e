package magnetometer

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers/lsm303agr"
	"tinygo.org/x/drivers/tester"
)

func newBus(c *qt.C) (*tester.I2CBus, *tester.I2CDevice8) {
	bus := tester.NewI2CBus(c)
	accel := bus.NewDevice(lsm303agr.ACCEL_ADDRESS)
	accel.Registers[lsm303agr.ACCEL_WHO_AM_I] = 0x33
	mag := bus.NewDevice(lsm303agr.MAG_ADDRESS)
	mag.Registers[lsm303agr.MAG_WHO_AM_I] = 0x40
	return bus, mag
}

func setField(mag *tester.I2CDevice8, x, y, z int16) {
	r := mag.Registers[lsm303agr.MAG_OUT_AUTO_INC:]
	for i, v := range []int16{x, y, z} {
		r[2*i] = uint8(uint16(v))
		r[2*i+1] = uint8(uint16(v) >> 8)
	}
}

func TestHeading(t *testing.T) {
	c := qt.New(t)
	c.Assert(Heading(100, 0), qt.Equals, int32(0))
	c.Assert(Heading(100, 100), qt.Equals, int32(45))
	c.Assert(Heading(0, 100), qt.Equals, int32(90))
	c.Assert(Heading(-100, 0), qt.Equals, int32(180))
	c.Assert(Heading(-100, -100), qt.Equals, int32(225))
	c.Assert(Heading(0, -100), qt.Equals, int32(270))
}

func TestDeviceRead(t *testing.T) {
	c := qt.New(t)
	bus, mag := newBus(c)

	d := New(bus)
	c.Assert(d.Configure(), qt.IsNil)

	setField(mag, 100, 100, -50)
	var s Sample
	c.Assert(d.Read(&s), qt.Equals, int32(45))
	c.Assert(s, qt.DeepEquals, Sample{Degree: 45, X: 100, Y: 100, Z: -50})

	setField(mag, -200, 0, 7)
	c.Assert(d.Read(&s), qt.Equals, int32(180))
	c.Assert(s, qt.DeepEquals, Sample{Degree: 180, X: -200, Y: 0, Z: 7})
}

func TestDeviceNotConnected(t *testing.T) {
	c := qt.New(t)
	bus := tester.NewI2CBus(c)
	bus.NewDevice(lsm303agr.ACCEL_ADDRESS)
	bus.NewDevice(lsm303agr.MAG_ADDRESS)

	d := New(bus)
	c.Assert(d.Configure(), qt.Not(qt.IsNil))
}

func TestEmulated(t *testing.T) {
	c := qt.New(t)
	e := NewEmulated()
	e.Step = 90
	c.Assert(e.Configure(), qt.IsNil)

	var s Sample
	for _, want := range []int32{0, 90, 180, 270, 0} {
		c.Assert(e.Read(&s), qt.Equals, want)
		c.Assert(s.Degree, qt.Equals, want)
		c.Assert(s.Z, qt.Equals, int32(-180))
	}
}
