package routing

import (
	"context"
	"fmt"
)

// Planner finds a route over a grid. Implementations keep no state between calls.
type Planner interface {
	Name() string
	Plan(ctx context.Context, g *Grid, start, goal Coord) (Result, error)
}

const (
	AStarPlanner     = "astar"
	ReferencePlanner = "reference"
)

// AStar is the native engine wrapped as a Planner.
type AStar struct {
	Options []Option
}

func (AStar) Name() string { return AStarPlanner }

func (a AStar) Plan(ctx context.Context, g *Grid, start, goal Coord) (Result, error) {
	return Search(ctx, g, start, goal, a.Options...)
}

// NewPlanner resolves a planner by name; an empty name selects astar.
func NewPlanner(name string, opts ...Option) (Planner, error) {
	switch name {
	case "", AStarPlanner:
		return AStar{Options: opts}, nil
	case ReferencePlanner:
		o := buildOptions(opts)
		// go-astar runs to completion, it has no expansion hook
		if o.maxExpansions > 0 {
			return nil, fmt.Errorf("planner %q does not support an expansion limit", name)
		}
		return Reference{Logger: o.logger}, nil
	}
	return nil, fmt.Errorf("unknown planner %q", name)
}
