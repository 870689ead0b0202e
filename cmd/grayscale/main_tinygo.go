//go:build tinygo

package main

import (
	"github.com/merliot/qliic"
	"github.com/merliot/qliic/board"
	"github.com/merliot/qliic/grayscale"
)

func main() {
	thing := grayscale.New("grayscale01", "grayscale", "grayscale")

	thing.(*grayscale.Grayscale).Attach(grayscale.Peripherals{
		Serial: board.Serial(),
		Analog: board.Analog(),
		Pixels: board.Pixels(),
		LCD:    board.LCD(board.I2C()),
	})

	runner := qliic.NewRunner(thing)
	runner.Run()
}
