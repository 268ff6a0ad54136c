package routing

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

const (
	startDirective = "Start:"
	goalDirective  = "Goal:"
)

// Load reads a grid file. See Parse for the format.
func Load(fileName string) (*Grid, Coord, Coord, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, Coord{}, Coord{}, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	defer file.Close()
	return parse(file, fileName)
}

// Parse reads "Start:r,c" and "Goal:r,c" directives and rows of 0/1 tokens.
// Without directives start is 0,0 and goal is the bottom right cell.
func Parse(r io.Reader) (*Grid, Coord, Coord, error) {
	return parse(r, "")
}

func parse(r io.Reader, source string) (*Grid, Coord, Coord, error) {
	var (
		rows         [][]Cell
		start, goal  Coord
		hasGoal      bool
		firstRowLine int
		lineNo       int
	)
	malformed := func(format string, args ...interface{}) error {
		return &ParseError{Source: source, Line: lineNo, Msg: fmt.Sprintf(format, args...)}
	}

	scanner := bufio.NewScanner(r)
	// rows are one line each, however wide the grid
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	for scanner.Scan() {
		lineNo++
		// full width digits and punctuation are folded to ASCII
		line := strings.TrimSpace(width.Narrow.String(scanner.Text()))
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, startDirective):
			c, err := ParseCoord(strings.TrimPrefix(line, startDirective))
			if err != nil {
				return nil, start, goal, malformed("bad start: %v", err)
			}
			start = c
		case strings.HasPrefix(line, goalDirective):
			c, err := ParseCoord(strings.TrimPrefix(line, goalDirective))
			if err != nil {
				return nil, start, goal, malformed("bad goal: %v", err)
			}
			goal = c
			hasGoal = true
		default:
			fields := strings.Fields(line)
			if len(rows) > 0 && len(fields) != len(rows[0]) {
				return nil, start, goal, malformed("row has %d cells, first row at line %d has %d", len(fields), firstRowLine, len(rows[0]))
			}
			row := make([]Cell, len(fields))
			for i, f := range fields {
				switch f {
				case "0":
					row[i] = Free
				case "1":
					row[i] = Blocked
				default:
					return nil, start, goal, malformed("bad cell %q", f)
				}
			}
			if len(rows) == 0 {
				firstRowLine = lineNo
			}
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, start, goal, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if len(rows) == 0 {
		return nil, start, goal, malformed("no grid rows")
	}
	if !hasGoal {
		goal = Coord{Row: len(rows) - 1, Col: len(rows[0]) - 1}
	}

	g, err := NewGridFromRows(rows)
	if err != nil {
		return nil, start, goal, err
	}
	return g, start, goal, nil
}

// ParseCoord parses "row,col" with non-negative components.
func ParseCoord(s string) (Coord, error) {
	s = width.Narrow.String(s)
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: coordinate %q is not row,col", ErrMalformedInput, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: coordinate %q: %v", ErrMalformedInput, s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: coordinate %q: %v", ErrMalformedInput, s, err)
	}
	if row < 0 || col < 0 {
		return Coord{}, fmt.Errorf("%w: coordinate %q is negative", ErrMalformedInput, s)
	}
	return Coord{Row: row, Col: col}, nil
}

// Encode writes the canonical grid file form that Parse reads back.
func Encode(w io.Writer, g *Grid, start, goal Coord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s\n", startDirective, start)
	fmt.Fprintf(bw, "%s%s\n", goalDirective, goal)
	for i := 0; i < g.rows; i++ {
		for j, c := range g.cells[i] {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte('0' + byte(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Save writes g to fileName with Encode.
func Save(fileName string, g *Grid, start, goal Coord) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if err := Encode(file, g, start, goal); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}
