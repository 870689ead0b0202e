package lcd

import (
	"strings"
)

// Grid is an in-memory character display.  Cursor movement and line wrapping
// follow the hd44780i2c driver: printing past the last column continues on
// the next row, and moving past the last row wraps to row 0.
type Grid struct {
	cols      int
	rows      int
	cells     [][]byte
	x, y      int
	backlight bool
}

func NewGrid(cols, rows uint8) *Grid {
	g := &Grid{cols: int(cols), rows: int(rows)}
	g.cells = make([][]byte, g.rows)
	for i := range g.cells {
		g.cells[i] = make([]byte, g.cols)
	}
	g.Clear()
	return g
}

func (g *Grid) Init() error {
	if g.cols == 0 || g.rows == 0 {
		return ErrSize
	}
	g.Clear()
	return nil
}

func (g *Grid) Backlight() {
	g.backlight = true
}

// IsBacklit returns true if the backlight is on
func (g *Grid) IsBacklit() bool {
	return g.backlight
}

func (g *Grid) Clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = ' '
		}
	}
	g.x, g.y = 0, 0
}

func (g *Grid) SetCursor(col, row uint8) {
	if int(row) > g.rows-1 {
		row = 0
	}
	g.x, g.y = int(col), int(row)
}

func (g *Grid) Print(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			g.newLine()
			continue
		}
		if g.x >= g.cols {
			g.newLine()
		}
		if g.rows > 0 && g.cols > 0 {
			g.cells[g.y][g.x] = s[i]
		}
		g.x++
	}
}

func (g *Grid) newLine() {
	g.x = 0
	g.y++
	if g.y > g.rows-1 {
		g.y = 0
	}
}

// Row returns the contents of row n, including trailing blanks
func (g *Grid) Row(n int) string {
	if n < 0 || n >= g.rows {
		return ""
	}
	return string(g.cells[n])
}

// Text returns row n with trailing blanks trimmed
func (g *Grid) Text(n int) string {
	return strings.TrimRight(g.Row(n), " ")
}

func (g *Grid) String() string {
	rows := make([]string, g.rows)
	for i := range rows {
		rows[i] = g.Row(i)
	}
	return strings.Join(rows, "\n")
}
