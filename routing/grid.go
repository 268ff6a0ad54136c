package routing

import (
	"fmt"
	"strings"
)

type Cell uint8

const (
	Free    Cell = 0
	Blocked Cell = 1
)

// Coord is a (row, column) cell index.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Less orders coordinates by row, then column.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func (c Coord) add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Manhattan returns |dRow| + |dCol|.
func Manhattan(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid is a rectangular occupancy map. It must not be mutated while a search is running on it.
type Grid struct {
	cells [][]Cell
	rows  int
	cols  int
}

// NewGrid makes an all free size x size grid.
func NewGrid(size int) *Grid {
	if size < 1 {
		size = 1
	}
	g := new(Grid)
	g.rows = size
	g.cols = size
	g.cells = make([][]Cell, size)
	for i := 0; i < size; i++ {
		g.cells[i] = make([]Cell, size)
	}
	return g
}

// NewGridFromRows copies rows into a grid. Rows must be non-empty and of equal length.
func NewGridFromRows(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid has no cells", ErrMalformedInput)
	}
	g := new(Grid)
	g.rows = len(rows)
	g.cols = len(rows[0])
	g.cells = make([][]Cell, g.rows)
	for i, r := range rows {
		if len(r) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedInput, i, len(r), g.cols)
		}
		line := make([]Cell, g.cols)
		for j, c := range r {
			if c != Free && c != Blocked {
				return nil, fmt.Errorf("%w: bad cell value %d at %d,%d", ErrMalformedInput, c, i, j)
			}
			line[j] = c
		}
		g.cells[i] = line
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the cell state; out of bounds cells read as Blocked.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.cells[c.Row][c.Col]
}

func (g *Grid) IsBlocked(c Coord) bool {
	return g.At(c) == Blocked
}

// Set changes one cell. Out of bounds writes are ignored.
func (g *Grid) Set(c Coord, v Cell) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.Row][c.Col] = v
}

// Toggle flips a cell between Free and Blocked and returns the new state.
func (g *Grid) Toggle(c Coord) Cell {
	if !g.InBounds(c) {
		return Blocked
	}
	g.cells[c.Row][c.Col] = 1 - g.cells[c.Row][c.Col]
	return g.cells[c.Row][c.Col]
}

func (g *Grid) Clone() *Grid {
	n := new(Grid)
	n.rows, n.cols = g.rows, g.cols
	n.cells = make([][]Cell, g.rows)
	for i := range g.cells {
		n.cells[i] = append([]Cell(nil), g.cells[i]...)
	}
	return n
}

func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		for j := range g.cells[i] {
			if g.cells[i][j] != o.cells[i][j] {
				return false
			}
		}
	}
	return true
}

// FreeCount returns number of traversable cells
func (g *Grid) FreeCount() int {
	n := 0
	for _, r := range g.cells {
		for _, c := range r {
			if c == Free {
				n++
			}
		}
	}
	return n
}

// Dump renders the grid as text: '_' free, '#' blocked, 'S'/'G' endpoints and '*' path cells.
func (g *Grid) Dump(path Path) string {
	on := make(map[Coord]bool, len(path))
	for _, c := range path {
		on[c] = true
	}
	var b strings.Builder
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			c := Coord{Row: i, Col: j}
			switch {
			case len(path) > 0 && c == path[0]:
				b.WriteByte('S')
			case len(path) > 0 && c == path[len(path)-1]:
				b.WriteByte('G')
			case on[c]:
				b.WriteByte('*')
			case g.cells[i][j] == Blocked:
				b.WriteByte('#')
			default:
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
