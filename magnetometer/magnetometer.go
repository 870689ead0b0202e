// Package magnetometer reads a 3-axis magnetic field sensor and derives a
// compass heading from it.
package magnetometer

import (
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/lsm303agr"
)

// Sample is the last field reading and the heading derived from it.  X, Y,
// and Z are in mG.  Degree is the heading, 0-359.
type Sample struct {
	Degree int32
	X      int32
	Y      int32
	Z      int32
}

// Reader is a magnetometer
type Reader interface {
	// Configure the sensor
	Configure() error
	// Read refreshes s and returns the heading in degrees.  Read errors
	// leave s unchanged.
	Read(s *Sample) int32
}

// Heading returns the compass heading of field x, y in whole degrees, 0-359
func Heading(x, y int32) int32 {
	udeg := int32(float32((180/math.Pi)*math.Atan2(float64(y), float64(x))) * 1000000)
	deg := udeg / 1000000
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Device is an LSM303AGR magnetometer on an I2C bus
type Device struct {
	dev *lsm303agr.Device
}

// New returns a Device on bus.  The bus must already be configured.
func New(bus drivers.I2C) *Device {
	return &Device{dev: lsm303agr.New(bus)}
}

func (d *Device) Configure() error {
	return d.dev.Configure(lsm303agr.Configuration{})
}

func (d *Device) Read(s *Sample) int32 {
	x, y, z, err := d.dev.ReadMagneticField()
	if err != nil {
		return s.Degree
	}
	s.X, s.Y, s.Z = x, y, z
	s.Degree = Heading(x, y)
	return s.Degree
}
