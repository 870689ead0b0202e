package qliic

// Injector is a socket for injecting msgs generated locally (by the thing's
// Run loop) onto the bus
type Injector struct {
	socket
}

func NewInjector(name string, bus *Bus) *Injector {
	i := &Injector{socket{name, "", 0, bus}}
	bus.plugin(i)
	return i
}

// Inject the msg onto the bus.  The msg is handled synchronously.
func (i *Injector) Inject(msg *Msg) {
	msg.bus, msg.src = i.bus, i
	i.bus.receive(msg)
}
