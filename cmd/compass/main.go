//go:build !tinygo

// Command compass runs the magnetometer compass on a Linux host, serving its
// state over HTTP and optionally reporting to a hub and an MQTT broker.
//
// Usage: compass [flags] [install | remove | start | stop | status]
package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/merliot/qliic"
	"github.com/merliot/qliic/board"
	"github.com/merliot/qliic/compass"
	"github.com/merliot/qliic/magnetometer"
)

const (
	name        = "compass"
	description = "Magnetometer compass"
)

var stdlog, errlog *log.Logger

var (
	id       = flag.String("id", "compass01", "Thing id")
	label    = flag.String("name", "compass", "Thing name")
	addr     = flag.String("addr", qliic.GetEnv("QLIIC_ADDR", ":8000"), "HTTP listen address")
	tlsHost  = flag.String("tls", "", "Serve HTTPS for this host name instead of HTTP on -addr")
	user     = flag.String("user", qliic.GetEnv("QLIIC_USER", ""), "Basic auth user")
	passwd   = flag.String("passwd", qliic.GetEnv("QLIIC_PASSWD", ""), "Basic auth password")
	hub      = flag.String("hub", qliic.GetEnv("QLIIC_HUB", ""), "Hub websocket URL, e.g. ws://hub/ws/")
	broker   = flag.String("mqtt", qliic.GetEnv("QLIIC_MQTT", ""), "MQTT broker URL, e.g. tcp://localhost:1883")
	serial   = flag.String("serial", qliic.GetEnv("QLIIC_SERIAL", ""), "Serial console device; stdout if empty")
	i2cBus   = flag.Int("i2c", envInt("QLIIC_I2C_BUS", 1), "I2C bus number")
	demoMode = flag.Bool("demo", false, "Use an emulated magnetometer and LCD")
)

func envInt(name string, defaultValue int) int {
	n, err := strconv.Atoi(qliic.GetEnv(name, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

func attach(c *compass.Compass) error {
	console, err := board.Serial(*serial)
	if err != nil {
		return err
	}
	if *demoMode {
		c.Attach(compass.Peripherals{
			Serial: console,
			Mag:    magnetometer.NewEmulated(),
			LCD:    board.DemoLCD(),
		})
		return nil
	}
	bus, err := board.I2C(byte(*i2cBus))
	if err != nil {
		return err
	}
	c.Attach(compass.Peripherals{
		Serial: console,
		Mag:    board.Magnetometer(bus),
		LCD:    board.LCD(bus),
	})
	return nil
}

func newServer() (*qliic.Server, error) {
	thing := compass.New(*id, name, *label)
	if err := attach(thing.(*compass.Compass)); err != nil {
		return nil, err
	}

	server := qliic.NewServer(thing)
	server.BasicAuth(*user, *passwd)
	if *tlsHost == "" {
		server.Addr = *addr
	}

	if *hub != "" {
		if err := server.DialWebSocket(*user, *passwd, *hub, thing.Announce()); err != nil {
			return nil, err
		}
	}
	if *broker != "" {
		if err := server.DialMQTT(*broker, *user, *passwd); err != nil {
			return nil, err
		}
	}
	return server, nil
}

func init() {
	stdlog = log.New(os.Stdout, "", 0)
	errlog = log.New(os.Stderr, "", 0)
}

func main() {
	flag.Parse()

	service, err := qliic.NewService(name, description)
	if err != nil {
		errlog.Println("Error: ", err)
		os.Exit(1)
	}

	command := flag.Arg(0)

	var server *qliic.Server
	if command == "" {
		server, err = newServer()
		if err != nil {
			errlog.Println("Error: ", err)
			os.Exit(1)
		}
	}

	run := func() {
		if *tlsHost != "" {
			go func() {
				errlog.Println("TLS server exited: ", server.ServeTLS(*tlsHost))
			}()
		}
		server.Run()
	}

	status, err := service.Manage(command, os.Args[1:len(os.Args)-flag.NArg()], run)
	if err != nil {
		errlog.Println(status, "\nError: ", err)
		os.Exit(1)
	}
	stdlog.Println(status)
}
