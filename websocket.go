//go:build !tinygo

package qliic

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/websocket"
)

// webSocket wraps a websocket.Conn and implements the Socketer interface
type webSocket struct {
	socket
	mutex
	url          *url.URL
	conn         *websocket.Conn
	closing      bool
	pingPeriod   time.Duration
	pingSent     time.Time
	pongReceived bool
	// peer pinged us at least once, so its silence means it's gone
	pinged bool
}

const pingPeriodMin = time.Second

var pingMsg = []byte("ping")
var pongMsg = []byte("pong")

func newWebSocket(url *url.URL, remoteAddr string, bus *Bus) *webSocket {
	w := &webSocket{}

	var name string
	if remoteAddr == "" {
		name = "ws:localhost::" + url.String()
	} else {
		name = "ws:" + url.String() + "::" + remoteAddr
	}

	w.socket = socket{name, "", SocketFlagBcast, bus}
	w.url = url

	// ping-period in seconds
	period, _ := strconv.Atoi(url.Query().Get("ping-period"))
	w.pingPeriod = time.Duration(period) * time.Second
	if w.pingPeriod < pingPeriodMin {
		w.pingPeriod = pingPeriodMin
	}

	return w
}

func (w *webSocket) Close() {
	w.Lock()
	defer w.Unlock()
	w.closing = true
}

func (w *webSocket) Send(msg *Msg) error {
	return w.send(msg.payload)
}

func (w *webSocket) send(payload []byte) error {
	w.Lock()
	defer w.Unlock()
	if w.conn == nil {
		return fmt.Errorf("send on nil connection")
	}
	return websocket.Message.Send(w.conn, string(payload))
}

func (w *webSocket) isClosing() bool {
	w.Lock()
	defer w.Unlock()
	return w.closing
}

func (w *webSocket) setConn(conn *websocket.Conn) {
	w.Lock()
	w.conn = conn
	w.Unlock()
}

func (w *webSocket) newConfig(user, passwd string) (*websocket.Config, error) {
	url := w.url.String()
	origin := "http://localhost/"

	// Configure the websocket
	config, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, err
	}

	if user != "" {
		// Set the basic auth header for the request
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(user, passwd)
		config.Header = req.Header
	}

	return config, nil
}

// Dial the hub, sending the announcement on each connect.  Dial retries every
// second until the socket is closed.
func (w *webSocket) Dial(user, passwd string, announce *Msg) {

	cfg, err := w.newConfig(user, passwd)
	if err != nil {
		Logf("Error configuring websocket: %s", err.Error())
		return
	}

	for !w.isClosing() {
		conn, err := websocket.DialConfig(cfg)
		if err == nil {
			w.setConn(conn)
			if err := w.Send(announce); err != nil {
				Logf("Error sending announcement: %s", err.Error())
			} else {
				w.serveClient()
			}
			conn.Close()
			w.setConn(nil)
		} else {
			Logf("Dial %s error: %s", w, err.Error())
		}

		// try again in a second
		time.Sleep(time.Second)
	}
}

// serve is the websocket.Handler for server-side connections
func (w *webSocket) serve(conn *websocket.Conn) {
	w.setConn(conn)
	w.serveServer()
	w.setConn(nil)
}

func (w *webSocket) ping() error {
	w.pongReceived = false
	w.pingSent = time.Now()
	return w.send(pingMsg)
}

// receive reads the next payload, waiting at most a second
func (w *webSocket) receive() (*Msg, error) {
	var msg = &Msg{bus: w.bus, src: w}
	w.conn.SetReadDeadline(time.Now().Add(time.Second))
	err := websocket.Message.Receive(w.conn, &msg.payload)
	return msg, err
}

func isTimeout(err error) bool {
	netErr, ok := err.(net.Error)
	return ok && netErr.Timeout()
}

// serveClient serves the dialed connection, pinging the hub every
// pingPeriod.  A ping not answered within pingPeriod drops the connection.
func (w *webSocket) serveClient() {
	Logf("Connected %s", w)
	w.bus.plugin(w)
	defer w.bus.unplug(w)

	if err := w.ping(); err != nil {
		Logf("Error sending ping, disconnecting %s: %s", w, err.Error())
		return
	}

	for !w.isClosing() {
		msg, err := w.receive()
		switch {
		case err == nil:
			if bytes.Equal(msg.payload, pongMsg) {
				w.pongReceived = true
			} else {
				w.bus.receive(msg)
			}
		case isTimeout(err):
		default:
			Logf("Disconnecting %s: %s", w, err.Error())
			return
		}

		if time.Now().After(w.pingSent.Add(w.pingPeriod)) {
			if !w.pongReceived {
				Logf("No pong; disconnecting %s", w)
				return
			}
			if err := w.ping(); err != nil {
				Logf("Error sending ping, disconnecting %s: %s", w, err.Error())
				return
			}
		}
	}
}

// serveServer serves an accepted connection, answering pings with pongs.  A
// peer that pings is dropped once it goes quiet for longer than pingPeriod
// plus some slack.  Peers that never ping (browsers) are kept until they
// close.
func (w *webSocket) serveServer() {
	Logf("Connected %s", w)
	w.bus.plugin(w)
	defer w.bus.unplug(w)

	pingCheck := w.pingPeriod + (4 * time.Second)
	lastRecv := time.Now()

	for !w.isClosing() {
		msg, err := w.receive()
		if err == nil {
			lastRecv = time.Now()
			if bytes.Equal(msg.payload, pingMsg) {
				w.pinged = true
				if err := w.send(pongMsg); err != nil {
					Logf("Error sending pong, disconnecting %s: %s", w, err.Error())
					return
				}
			} else {
				w.bus.receive(msg)
			}
			continue
		}

		if isTimeout(err) {
			if w.pinged && time.Now().After(lastRecv.Add(pingCheck)) {
				Logf("Timeout, disconnecting %s %s", w, time.Since(lastRecv).String())
				return
			}
			continue
		}

		Logf("Disconnecting %s: %s", w, err.Error())
		return
	}
}
