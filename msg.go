package qliic

import (
	"encoding/json"
)

// Msg is sent and received on a bus via a socket
type Msg struct {
	bus     *Bus
	src     Socketer
	payload []byte
}

// Bytes returns the msg payload
func (m *Msg) Bytes() []byte {
	return m.payload
}

func (m *Msg) String() string {
	return string(m.payload)
}

// Src returns the socket the msg arrived on
func (m *Msg) Src() Socketer {
	return m.src
}

// Injected returns true if the msg was injected locally, by the thing's own
// Run loop, rather than received from a remote socket
func (m *Msg) Injected() bool {
	_, ok := m.src.(*Injector)
	return ok
}

// Reply sends the msg back to sender.  The msg can be modified before calling
// Reply.
func (m *Msg) Reply() *Msg {
	if m.src == nil {
		Logf("Can't reply to message: source is nil")
		return m
	}
	if err := m.src.Send(m); err != nil {
		Logf("Reply to %s failed: %s", m.src, err.Error())
	}
	return m
}

// Broadcast the msg to all other matching-tagged sockets on the bus.  The
// source socket is excluded.
func (m *Msg) Broadcast() *Msg {
	if m.bus == nil {
		Logf("Can't broadcast message: bus is nil")
		return m
	}
	m.bus.broadcast(m)
	return m
}

// Unmarshal the msg payload as JSON into v
func (m *Msg) Unmarshal(v any) *Msg {
	err := json.Unmarshal(m.payload, v)
	if err != nil {
		Logf("JSON unmarshal error %s", err.Error())
	}
	return m
}

// Marshal the msg payload as JSON from v
func (m *Msg) Marshal(v any) *Msg {
	var err error
	m.payload, err = json.Marshal(v)
	if err != nil {
		Logf("JSON marshal error %s", err.Error())
	}
	return m
}
