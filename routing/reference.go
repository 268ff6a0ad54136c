package routing

import (
	"context"

	astar "github.com/beefsack/go-astar"
)

// Reference plans with github.com/beefsack/go-astar. Costs match AStar; tied
// routes may differ. Logger is optional.
type Reference struct {
	Logger Logger
}

func (Reference) Name() string { return ReferencePlanner }

// tile is a comparable go-astar node
type tile struct {
	g *Grid
	c Coord
}

func (t tile) PathNeighbors() []astar.Pather {
	around := make([]astar.Pather, 0, len(motion))
	for _, m := range motion {
		next := t.c.add(m[0], m[1])
		if !t.g.InBounds(next) || t.g.IsBlocked(next) {
			continue
		}
		around = append(around, tile{g: t.g, c: next})
	}
	return around
}

func (t tile) PathNeighborCost(to astar.Pather) float64 { return 1 }

func (t tile) PathEstimatedCost(to astar.Pather) float64 {
	return float64(Manhattan(t.c, to.(tile).c))
}

func (r Reference) Plan(ctx context.Context, g *Grid, start, goal Coord) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	res := Result{Path: Path{}}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	logger.Debugf("starting go-astar search from %s to %s on %dx%d grid", start, goal, g.Rows(), g.Cols())
	if !g.InBounds(start) || !g.InBounds(goal) {
		logger.Infof("start %s or goal %s is out of map", start, goal)
		return res, nil
	}
	route, distance, found := astar.Path(tile{g: g, c: start}, tile{g: g, c: goal})
	if !found {
		logger.Infof("no path found from %s to %s", start, goal)
		return res, nil
	}
	path := make(Path, 0, len(route))
	for _, p := range route {
		path = append(path, p.(tile).c)
	}
	// go-astar returns the route goal first
	if len(path) > 0 && path[0] != start {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	}
	res.Path = path
	res.Cost = int(distance)
	// go-astar does not report expansions
	res.Found = true
	logger.Infof("path found: cost %d", res.Cost)
	return res, nil
}
