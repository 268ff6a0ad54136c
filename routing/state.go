package routing

import "container/heap"

// searchState is the per-invocation A* bookkeeping shared by Search and Stepper.
type searchState struct {
	grid     *Grid
	start    Coord
	goal     Coord
	openSet  priorityQueue
	gScore   map[Coord]int
	cameFrom map[Coord]Coord
}

// newSearchState seeds the open set with start. Out of bounds endpoints leave it empty.
func newSearchState(g *Grid, start, goal Coord) *searchState {
	s := &searchState{
		grid:     g,
		start:    start,
		goal:     goal,
		openSet:  make(priorityQueue, 0, g.Rows()+g.Cols()),
		gScore:   map[Coord]int{start: 0},
		cameFrom: make(map[Coord]Coord),
	}
	if g.InBounds(start) && g.InBounds(goal) {
		heap.Push(&s.openSet, queueItem{node: start, g: 0, priority: Manhattan(start, goal)})
	}
	return s
}

// next pops the lowest entry that is not stale. ok is false once the open set is empty.
func (s *searchState) next() (item queueItem, ok bool) {
	for s.openSet.Len() > 0 {
		item = heap.Pop(&s.openSet).(queueItem)
		if item.g > s.gScore[item.node] {
			continue
		}
		return item, true
	}
	return queueItem{}, false
}

// expand relaxes the free in-bounds neighbours of item.
func (s *searchState) expand(item queueItem) {
	current := item.node
	for _, m := range motion {
		next := current.add(m[0], m[1])
		if !s.grid.InBounds(next) || s.grid.IsBlocked(next) {
			continue
		}
		tentative := item.g + 1
		if prev, ok := s.gScore[next]; ok && tentative >= prev {
			continue
		}
		s.cameFrom[next] = current
		s.gScore[next] = tentative
		heap.Push(&s.openSet, queueItem{node: next, g: tentative, priority: tentative + Manhattan(next, s.goal)})
	}
}

func (s *searchState) path(goal Coord) Path {
	return reconstructPath(s.cameFrom, goal, s.start)
}
