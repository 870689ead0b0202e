package magnetometer

import (
	"math"
)

// Emulated is a magnetometer turning slowly in a constant field
type Emulated struct {
	// Field strength, in mG
	Strength float64
	// Step is the rotation per Read, in degrees
	Step  float64
	angle float64
	z     int32
}

func NewEmulated() *Emulated {
	return &Emulated{Strength: 400, Step: 3, z: -180}
}

func (e *Emulated) Configure() error {
	return nil
}

func (e *Emulated) Read(s *Sample) int32 {
	rad := e.angle * math.Pi / 180
	s.X = int32(math.Round(e.Strength * math.Cos(rad)))
	s.Y = int32(math.Round(e.Strength * math.Sin(rad)))
	s.Z = e.z
	s.Degree = Heading(s.X, s.Y)
	e.angle = math.Mod(e.angle+e.Step, 360)
	return s.Degree
}
