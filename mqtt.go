//go:build !tinygo

package qliic

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mqttSocket bridges the bus to an MQTT broker.  Msgs sent on the socket are
// published to the thing's topic; msgs published to the thing's "set" topic
// are received on the bus.
type mqttSocket struct {
	socket
	client mqtt.Client
	topic  string
}

const mqttTimeout = 5 * time.Second

// MQTTTopic returns the topic a thing's msgs are published on
func MQTTTopic(t Thinger) string {
	return "qliic/" + t.Model() + "/" + t.Id()
}

func newMqttSocket(broker string, bus *Bus) *mqttSocket {
	return &mqttSocket{
		socket: socket{"mqtt:" + broker, "", SocketFlagBcast, bus},
	}
}

func (m *mqttSocket) Send(msg *Msg) error {
	token := m.client.Publish(m.topic, 0, false, msg.payload)
	if !token.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("publish to %s timed out", m.topic)
	}
	return token.Error()
}

func (m *mqttSocket) Close() {
	m.client.Publish(m.topic+"/status", 1, true, "offline").WaitTimeout(mqttTimeout)
	m.client.Disconnect(250)
	m.bus.unplug(m)
}

func (m *mqttSocket) onSet(client mqtt.Client, message mqtt.Message) {
	var msg = &Msg{bus: m.bus, src: m, payload: message.Payload()}
	m.bus.receive(msg)
}

// newMQTTClient is replaced in tests
var newMQTTClient = mqtt.NewClient

func (m *mqttSocket) options(broker, user, passwd, clientID string) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	if user != "" {
		opts.SetUsername(user)
		opts.SetPassword(passwd)
	}
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetWill(m.topic+"/status", "offline", 1, true)
	opts.OnConnect = func(client mqtt.Client) {
		Logf("MQTT connected %s", m)
		client.Publish(m.topic+"/status", 1, true, "online")
		client.Subscribe(m.topic+"/set", 1, m.onSet)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		Logf("MQTT connection lost %s: %s", m, err.Error())
	}
	return opts
}

// DialMQTT connects to the MQTT broker (e.g. "tcp://localhost:1883") and
// plugs an MQTT socket into the bus.  The client reconnects on its own after
// the first successful connect.
func (s *Server) DialMQTT(broker, user, passwd string) error {
	m := newMqttSocket(broker, s.bus)
	m.topic = MQTTTopic(s.thinger)

	opts := m.options(broker, user, passwd, "qliic-"+s.thinger.Id())
	m.client = newMQTTClient(opts)
	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to MQTT broker %s: %w", broker, token.Error())
	}

	s.bus.plugin(m)
	return nil
}
