package routing

// Snapshot exposes the per-iteration state of a stepped search
type Snapshot struct {
	Current   Coord
	Open      map[Coord]bool
	Closed    map[Coord]bool
	Done      bool
	Found     bool
	Path      Path
	StepIndex int
}

// Stepper runs the same search as Search one expansion at a time,
// for callers that animate the frontier.
type Stepper struct {
	state  *searchState
	closed map[Coord]bool

	stepCount int
	done      bool
	found     bool
	path      Path
}

func NewStepper(g *Grid, start, goal Coord) *Stepper {
	return &Stepper{
		state:  newSearchState(g, start, goal),
		closed: make(map[Coord]bool),
		path:   Path{},
	}
}

// Step expands one cell. Once Done, further calls return the final snapshot.
func (s *Stepper) Step() Snapshot {
	if s.done {
		return s.snapshot(s.state.goal)
	}
	item, ok := s.state.next()
	if !ok {
		s.done = true
		return s.snapshot(s.state.start)
	}
	s.stepCount++
	s.closed[item.node] = true

	if item.node == s.state.goal {
		s.done, s.found = true, true
		s.path = s.state.path(item.node)
		return s.snapshot(item.node)
	}
	s.state.expand(item)
	return s.snapshot(item.node)
}

// Run steps until done and returns the final snapshot.
func (s *Stepper) Run() Snapshot {
	snap := s.Step()
	for !snap.Done {
		snap = s.Step()
	}
	return snap
}

func (s *Stepper) snapshot(current Coord) Snapshot {
	open := make(map[Coord]bool, len(s.state.openSet))
	for _, it := range s.state.openSet {
		if !s.closed[it.node] {
			open[it.node] = true
		}
	}
	closed := make(map[Coord]bool, len(s.closed))
	for k := range s.closed {
		closed[k] = true
	}
	return Snapshot{
		Current:   current,
		Open:      open,
		Closed:    closed,
		Done:      s.done,
		Found:     s.found,
		Path:      append(Path{}, s.path...),
		StepIndex: s.stepCount,
	}
}
