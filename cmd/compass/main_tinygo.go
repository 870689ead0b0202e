//go:build tinygo

package main

import (
	"github.com/merliot/qliic"
	"github.com/merliot/qliic/board"
	"github.com/merliot/qliic/compass"
)

func main() {
	thing := compass.New("compass01", "compass", "compass")

	bus := board.I2C()
	thing.(*compass.Compass).Attach(compass.Peripherals{
		Serial: board.Serial(),
		Mag:    board.Magnetometer(bus),
		LCD:    board.LCD(bus),
	})

	runner := qliic.NewRunner(thing)
	runner.Run()
}
