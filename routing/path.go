package routing

// Path is an ordered start..goal sequence of orthogonally adjacent cells.
// An empty Path means no route exists.
type Path []Coord

func (p Path) Found() bool { return len(p) > 0 }

// Cost is the number of unit steps.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Valid checks endpoints, adjacency, free cells and that no cell repeats.
func (p Path) Valid(g *Grid, start, goal Coord) bool {
	if len(p) == 0 {
		return false
	}
	if p[0] != start || p[len(p)-1] != goal {
		return false
	}
	seen := make(map[Coord]bool, len(p))
	for i, c := range p {
		if !g.InBounds(c) || seen[c] {
			return false
		}
		// the start cell is not required to be free
		if i > 0 {
			if g.IsBlocked(c) || Manhattan(p[i-1], c) != 1 {
				return false
			}
		}
		seen[c] = true
	}
	return true
}

// reconstructPath walks cameFrom back from current and reverses in place.
func reconstructPath(cameFrom map[Coord]Coord, current, start Coord) Path {
	path := Path{current}
	for current != start {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
