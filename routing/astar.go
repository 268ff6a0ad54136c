package routing

import "context"

// down, right, up, left
var motion = [4][2]int{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

// Logger receives search diagnostics. *github.com/labstack/gommon/log.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}

// Result contains the outcome of a search
type Result struct {
	Path     Path
	Cost     int
	Expanded int
	Found    bool
}

type options struct {
	logger        Logger
	maxExpansions int
	observer      func(Result)
}

// Option configures a single search.
type Option func(*options)

// WithLogger sets the diagnostics sink for one search.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxExpansions bounds the number of expanded cells. Zero means no bound.
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}

// WithObserver is called once with the final result of a search.
func WithObserver(f func(Result)) Option {
	return func(o *options) { o.observer = f }
}

func buildOptions(opts []Option) options {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FindPath returns a shortest 4-connected path from start to goal, or an empty Path.
func FindPath(g *Grid, start, goal Coord, opts ...Option) Path {
	res, err := Search(context.Background(), g, start, goal, opts...)
	if err != nil {
		return Path{}
	}
	return res.Path
}

// Search runs A* with the Manhattan heuristic. Not finding a path is not an error;
// errors only come from ctx or the expansion limit.
func Search(ctx context.Context, g *Grid, start, goal Coord, opts ...Option) (res Result, err error) {
	o := buildOptions(opts)
	defer func() {
		if o.observer != nil {
			o.observer(res)
		}
	}()
	res.Path = Path{}

	o.logger.Debugf("starting A* search from %s to %s on %dx%d grid", start, goal, g.Rows(), g.Cols())
	if !g.InBounds(start) || !g.InBounds(goal) {
		o.logger.Infof("start %s or goal %s is out of map", start, goal)
		return res, nil
	}

	st := newSearchState(g, start, goal)
	for {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		item, ok := st.next()
		if !ok {
			break
		}
		res.Expanded++

		if item.node == goal {
			res.Path = st.path(item.node)
			res.Cost = item.g
			res.Found = true
			o.logger.Infof("path found: cost %d, expanded %d", res.Cost, res.Expanded)
			return res, nil
		}
		if o.maxExpansions > 0 && res.Expanded >= o.maxExpansions {
			return res, ErrExpansionLimit
		}
		st.expand(item)
	}

	o.logger.Infof("no path found from %s to %s, expanded %d", start, goal, res.Expanded)
	return res, nil
}
