// Package uart is the serial console: line output plus a polled, non-blocking
// byte input.
package uart

import (
	"errors"
	"io"
	"sync"
)

// Port is a serial port.  Buffered returns the number of received bytes ready
// to read; ReadByte returns the next one, or an error if none are ready.
type Port interface {
	io.Writer
	Buffered() int
	ReadByte() (byte, error)
}

var ErrNoData = errors.New("uart: no data")

// RxSize is the receive buffer size.  Bytes arriving to a full buffer are
// dropped.
const RxSize = 64

// Stream is a Port over a byte stream.  A goroutine pumps received bytes into
// the receive buffer.
type Stream struct {
	rw   io.ReadWriter
	rx   chan byte
	mu   sync.Mutex
	err  error
	done chan struct{}
}

func NewStream(rw io.ReadWriter) *Stream {
	s := &Stream{
		rw:   rw,
		rx:   make(chan byte, RxSize),
		done: make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *Stream) pump() {
	defer close(s.done)
	buf := make([]byte, RxSize)
	for {
		n, err := s.rw.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.rx <- b:
			default:
			}
		}
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
	}
}

func (s *Stream) Write(p []byte) (int, error) {
	return s.rw.Write(p)
}

func (s *Stream) Buffered() int {
	return len(s.rx)
}

func (s *Stream) ReadByte() (byte, error) {
	select {
	case b := <-s.rx:
		return b, nil
	default:
		return 0, ErrNoData
	}
}

// Err returns the error that stopped the receive pump, if any
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed when the receive pump stops
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close closes the underlying stream if it is an io.Closer
func (s *Stream) Close() error {
	if c, ok := s.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
