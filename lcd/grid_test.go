package lcd

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestGridInit(t *testing.T) {
	c := qt.New(t)

	c.Assert(NewGrid(0, 2).Init(), qt.Equals, ErrSize)

	g := NewGrid(16, 2)
	g.Print("junk")
	c.Assert(g.Init(), qt.IsNil)
	c.Assert(g.Row(0), qt.Equals, "                ")
	c.Assert(g.Row(1), qt.Equals, "                ")
	c.Assert(g.IsBacklit(), qt.IsFalse)
	g.Backlight()
	c.Assert(g.IsBacklit(), qt.IsTrue)
}

func TestGridPrint(t *testing.T) {
	c := qt.New(t)
	g := NewGrid(16, 2)

	g.Print("45")
	g.SetCursor(0, 1)
	g.Print("45,1,2,3")
	c.Assert(g.Text(0), qt.Equals, "45")
	c.Assert(g.Text(1), qt.Equals, "45,1,2,3")
	c.Assert(g.String(), qt.Equals, "45              \n45,1,2,3        ")

	g.Clear()
	c.Assert(g.Text(0), qt.Equals, "")
	g.Print("x")
	c.Assert(g.Text(0), qt.Equals, "x")
}

func TestGridOverwrite(t *testing.T) {
	c := qt.New(t)
	g := NewGrid(16, 2)

	// Not clearing leaves the tail of a longer value behind
	g.SetCursor(0, 0)
	g.Print("255")
	g.SetCursor(0, 0)
	g.Print("7")
	c.Assert(g.Text(0), qt.Equals, "755")
}

func TestGridWrap(t *testing.T) {
	c := qt.New(t)
	g := NewGrid(4, 2)

	g.Print("abcdef")
	c.Assert(g.Text(0), qt.Equals, "abcd")
	c.Assert(g.Text(1), qt.Equals, "ef")

	g.Print("gh")
	g.Print("ij")
	c.Assert(g.Text(0), qt.Equals, "ijcd")

	g.SetCursor(1, 5)
	g.Print("Z")
	c.Assert(g.Text(0), qt.Equals, "iZcd")

	g.SetCursor(0, 1)
	g.Print("1\n2")
	c.Assert(g.Text(1), qt.Equals, "1fgh")
	c.Assert(g.Text(0), qt.Equals, "2Zcd")

	c.Assert(g.Row(2), qt.Equals, "")
}
