package compass

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"golang.org/x/net/websocket"

	"github.com/merliot/qliic"
	"github.com/merliot/qliic/lcd"
	"github.com/merliot/qliic/magnetometer"
)

// fakeMag replays samples, repeating the last one
type fakeMag struct {
	samples []magnetometer.Sample
	reads   int
	err     error
	onRead  func(reads int)
}

func (f *fakeMag) Configure() error {
	return f.err
}

func (f *fakeMag) Read(s *magnetometer.Sample) int32 {
	i := f.reads
	if i >= len(f.samples) {
		i = len(f.samples) - 1
	}
	f.reads++
	*s = f.samples[i]
	if f.onRead != nil {
		f.onRead(f.reads)
	}
	return s.Degree
}

func newCompass(c *qt.C, samples ...magnetometer.Sample) (*Compass, *bytes.Buffer, *lcd.Grid) {
	var serial bytes.Buffer
	grid := lcd.NewGrid(16, 2)
	comp := New("compass01", "compass", "hallway").(*Compass)
	comp.Attach(Peripherals{
		Serial: &serial,
		Mag:    &fakeMag{samples: samples},
		LCD:    grid,
	})
	comp.Setup()
	c.Assert(grid.IsBacklit(), qt.IsTrue)
	return comp, &serial, grid
}

func TestFormatLine(t *testing.T) {
	c := qt.New(t)
	c.Assert(FormatLine(45, 1, 2, 3), qt.Equals, "45,1,2,3")
	c.Assert(FormatLine(0, 0, 0, 0), qt.Equals, "0,0,0,0")
	c.Assert(FormatLine(359, -412, 7, -1), qt.Equals, "359,-412,7,-1")
}

func TestLoop(t *testing.T) {
	c := qt.New(t)
	comp, serial, grid := newCompass(c, magnetometer.Sample{Degree: 45, X: 1, Y: 2, Z: 3})

	comp.Loop()
	c.Assert(serial.String(), qt.Equals, "45\r\n0,0,0,0\r\n")
	c.Assert(grid.Text(0), qt.Equals, "45")
	c.Assert(grid.Text(1), qt.Equals, "0,0,0,0")
	c.Assert(comp.Degree, qt.Equals, int32(45))

	serial.Reset()
	comp.Loop()
	c.Assert(serial.String(), qt.Equals, "45\r\n45,1,2,3\r\n")
	c.Assert(grid.Text(0), qt.Equals, "45")
	c.Assert(grid.Text(1), qt.Equals, "45,1,2,3")
	c.Assert(comp.Line, qt.Equals, "45,1,2,3")
}

func TestLoopIdempotent(t *testing.T) {
	c := qt.New(t)
	comp, serial, grid := newCompass(c, magnetometer.Sample{Degree: 270, X: 0, Y: -300, Z: 12})

	comp.Loop()
	serial.Reset()

	comp.Loop()
	out, screen := serial.String(), grid.String()
	for i := 0; i < 3; i++ {
		serial.Reset()
		comp.Loop()
		c.Assert(serial.String(), qt.Equals, out)
		c.Assert(grid.String(), qt.Equals, screen)
	}
}

func TestLoopTrails(t *testing.T) {
	c := qt.New(t)
	comp, serial, grid := newCompass(c,
		magnetometer.Sample{Degree: 10, X: 1, Y: 1, Z: 1},
		magnetometer.Sample{Degree: 20, X: 2, Y: 2, Z: 2},
	)

	comp.Loop()
	serial.Reset()
	comp.Loop()
	c.Assert(serial.String(), qt.Equals, "20\r\n10,1,1,1\r\n")
	c.Assert(grid.Text(0), qt.Equals, "20")
	c.Assert(grid.Text(1), qt.Equals, "10,1,1,1")
}

func TestSetupFailures(t *testing.T) {
	c := qt.New(t)
	comp := New("compass02", "compass", "attic").(*Compass)
	grid := lcd.NewGrid(0, 0)
	mag := &fakeMag{
		samples: []magnetometer.Sample{{Degree: 90, X: 0, Y: 5, Z: 0}},
		err:     errors.New("not connected"),
	}
	comp.Attach(Peripherals{Mag: mag, LCD: grid})

	comp.Setup()
	comp.Loop()
	c.Assert(comp.Reading, qt.Equals, "90")
	c.Assert(grid.IsBacklit(), qt.IsTrue)
}

func TestNoPeripherals(t *testing.T) {
	c := qt.New(t)
	comp := New("compass03", "compass", "porch").(*Compass)
	comp.Attach(Peripherals{})
	comp.Setup()
	comp.Loop()
	c.Assert(comp.Reading, qt.Equals, "0")
	c.Assert(comp.Line, qt.Equals, "0,0,0,0")
}

func TestState(t *testing.T) {
	c := qt.New(t)
	comp, _, _ := newCompass(c, magnetometer.Sample{Degree: 45, X: 1, Y: 2, Z: 3})
	comp.Loop()
	comp.Loop()

	data, err := json.Marshal(comp)
	c.Assert(err, qt.IsNil)

	var got map[string]any
	c.Assert(json.Unmarshal(data, &got), qt.IsNil)
	c.Assert(got, qt.DeepEquals, map[string]any{
		"Path":    "",
		"Degree":  float64(45),
		"X":       float64(1),
		"Y":       float64(2),
		"Z":       float64(3),
		"Reading": "45",
		"Line":    "45,1,2,3",
	})

	c.Assert(comp.Gauges(), qt.DeepEquals, map[string]float64{
		"degree": 45, "x": 1, "y": 2, "z": 3,
	})
	c.Assert(comp.Subscribers(), qt.HasLen, 4)
}

func TestRunPublishesChanges(t *testing.T) {
	c := qt.New(t)
	a := magnetometer.Sample{Degree: 45, X: 1, Y: 2, Z: 3}
	b := magnetometer.Sample{Degree: 90, X: 0, Y: 5, Z: 0}

	stop := make(chan struct{})
	mag := &fakeMag{samples: []magnetometer.Sample{a, a, a, b, b, b}}
	mag.onRead = func(reads int) {
		if reads == 6 {
			close(stop)
		}
	}
	comp := New("compass04", "compass", "den").(*Compass)
	comp.Attach(Peripherals{Mag: mag, LCD: lcd.NewGrid(16, 2)})

	bus := qliic.NewBus("test bus", nil, nil)
	var updates []string
	bus.Handle("", func(msg *qliic.Msg) {
		updates = append(updates, msg.String())
	})

	start := time.Now()
	comp.run(qliic.NewInjector("test injector", bus), stop)
	elapsed := time.Since(start)

	c.Assert(mag.reads, qt.Equals, 6)
	c.Assert(elapsed >= 5*Period, qt.IsTrue, qt.Commentf("elapsed %s", elapsed))

	// iterations 3 and 6 repeat the state before them
	c.Assert(updates, qt.HasLen, 4)
	lines := make([]string, len(updates))
	for i, update := range updates {
		var state struct{ Path, Reading, Line string }
		c.Assert(json.Unmarshal([]byte(update), &state), qt.IsNil)
		c.Assert(state.Path, qt.Equals, "update")
		lines[i] = state.Reading + " " + state.Line
	}
	c.Assert(lines, qt.DeepEquals, []string{
		"45 0,0,0,0",
		"45 45,1,2,3",
		"90 45,1,2,3",
		"90 90,0,5,0",
	})
}

func TestRemoteWritesIgnored(t *testing.T) {
	c := qt.New(t)
	comp, serial, _ := newCompass(c, magnetometer.Sample{Degree: 45, X: 1, Y: 2, Z: 3})
	comp.SetFlag(qliic.ThingFlagMetal)

	ts := httptest.NewServer(qliic.NewServer(comp).Handler)
	defer ts.Close()
	conn, err := websocket.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/", "", "http://localhost/")
	c.Assert(err, qt.IsNil)
	defer conn.Close()

	for _, m := range []string{
		`{"Path":"update","Degree":300,"X":9,"Y":9,"Z":9}`,
		`{"Path":"state","Degree":301,"X":8,"Y":8,"Z":8}`,
		`{"Path":"get/state"}`,
	} {
		c.Assert(websocket.Message.Send(conn, m), qt.IsNil)
	}
	var reply string
	c.Assert(websocket.Message.Receive(conn, &reply), qt.IsNil)
	c.Assert(reply, qt.Contains, `"Degree":0,"X":0,"Y":0,"Z":0`)

	comp.Lock()
	comp.Loop()
	comp.Loop()
	comp.Unlock()
	c.Assert(serial.String(), qt.Equals, "45\r\n0,0,0,0\r\n45\r\n45,1,2,3\r\n")
}
