//go:build !tinygo

package qliic

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/takama/daemon"
)

// Service manages a thing as a system daemon
type Service struct {
	daemon.Daemon
	name string
}

func NewService(name, description string) (*Service, error) {
	srv, err := daemon.New(name, description, daemon.SystemDaemon)
	if err != nil {
		return nil, err
	}
	return &Service{Daemon: srv, name: name}, nil
}

// Usage returns the service command usage line
func (s *Service) Usage() string {
	return "Usage: " + s.name + " [flags] install | remove | start | stop | status"
}

// Manage runs the daemon command, if any.  Extra args are passed to the
// installed service's command line.  With an empty command, run is started
// and Manage returns when the process is signaled.
func (s *Service) Manage(command string, args []string, run func()) (string, error) {

	switch command {
	case "":
	case "install":
		return s.Install(args...)
	case "remove":
		return s.Remove()
	case "start":
		return s.Start()
	case "stop":
		return s.Stop()
	case "status":
		return s.Status()
	default:
		return s.Usage(), nil
	}

	go run()

	// Set up channel on which to send signal notifications.
	// We must use a buffered channel or risk missing the signal
	// if we're not ready to receive when the signal is sent.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	killSignal := <-interrupt
	if killSignal == os.Interrupt {
		return "Daemon was interrupted by system signal", nil
	}
	return "Daemon was killed", nil
}
