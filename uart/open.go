//go:build !tinygo

package uart

import (
	"fmt"
	"io"
	"os"

	"github.com/tarm/serial"
)

type stdio struct {
	io.Reader
	io.Writer
}

// Open the serial device name at baud.  An empty name uses stdin/stdout.
func Open(name string, baud int) (*Stream, error) {
	if name == "" {
		return NewStream(stdio{os.Stdin, os.Stdout}), nil
	}
	c := &serial.Config{Name: name, Baud: baud}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", name, err)
	}
	return NewStream(p), nil
}
