//go:build tinygo

package board

import (
	"machine"

	"tinygo.org/x/drivers"

	"github.com/merliot/qliic/neopixel"
	"github.com/merliot/qliic/uart"
)

// I2C configures and returns the board's I2C bus
func I2C() drivers.I2C {
	machine.I2C0.Configure(machine.I2CConfig{})
	return machine.I2C0
}

// Serial configures and returns the serial console
func Serial() uart.Port {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: Baud})
	return machine.Serial
}

// Pixels returns the NeoPixel strip
func Pixels() *neopixel.Strip {
	return neopixel.NewWS2812(machine.D8, PixelCount)
}

// ADC is an analog input
type ADC struct {
	adc machine.ADC
}

// Analog configures and returns analog pin A0
func Analog() *ADC {
	machine.InitADC()
	a := &ADC{adc: machine.ADC{Pin: machine.ADC0}}
	a.adc.Configure(machine.ADCConfig{})
	return a
}

// Get returns the 10-bit analog value
func (a *ADC) Get() uint16 {
	return a.adc.Get() >> 6
}
