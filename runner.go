package qliic

// Runner runs a thing on metal with a local bus and no network
type Runner struct {
	thinger  Thinger
	bus      *Bus
	injector *Injector
}

func NewRunner(thinger Thinger) *Runner {
	var r Runner

	r.thinger = thinger

	r.bus = NewBus("runner bus", nil, nil)
	r.bus.Handle("", r.handle)
	r.injector = NewInjector("runner injector", r.bus)

	return &r
}

func (r *Runner) handle(msg *Msg) {
	dispatch(r.thinger, msg)
}

func (r *Runner) Run() {
	r.thinger.SetFlag(ThingFlagMetal)
	r.thinger.Run(r.injector)
}
