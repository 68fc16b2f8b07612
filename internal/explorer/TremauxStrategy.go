package explorer

import (
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/charmbracelet/log"
)

// TremauxStrategy prefers neighbours that were never stepped on and otherwise
// retreats through the least visited one. Visits are counted per cell rather
// than per passage, so it approximates the classical algorithm.
type TremauxStrategy struct {
	MaxSteps int
}

func (s *TremauxStrategy) Name() string { return "Tremaux" }

func (s *TremauxStrategy) Explore(m *maze.Maze, start, end maze.Coordinate) ([]path.Move, error) {
	if err := checkEndpoints(m, start, end); err != nil {
		return nil, err
	}
	log.Info("Starting Tremaux exploration", "start", start, "end", end)

	state := newSearchState(start)
	visits := map[maze.Coordinate]int{start: 1}

	for state.position != end {
		if overBudget(state, s.MaxSteps) {
			return nil, state.fail(s.Name(), ErrStepBudget)
		}

		next, ok := unvisitedDirection(m, state.position, visits)
		if !ok {
			next, ok = leastVisitedDirection(m, state.position, visits)
		}
		if !ok {
			log.Error("Exploration failed: no possible moves", "position", state.position)
			return nil, state.fail(s.Name(), ErrDeadEnd)
		}

		state.face(next)
		if state.moveForward(m) {
			visits[state.position]++
		}
		log.Debug("tremaux step", "position", state.position, "heading", state.direction, "visits", visits[state.position])
	}

	log.Info("Tremaux exploration completed", "position", state.position, "moves", len(state.moves))
	return state.moves, nil
}

// unvisitedDirection returns the first heading, in East, South, West, North
// order, leading to an open cell that was never entered.
func unvisitedDirection(m *maze.Maze, here maze.Coordinate, visits map[maze.Coordinate]int) (maze.Direction, bool) {
	for _, d := range maze.Directions {
		next := here.Step(d)
		if m.IsOpenAt(next) && visits[next] == 0 {
			return d, true
		}
	}
	return maze.East, false
}

// leastVisitedDirection returns the first heading reaching an open cell with
// the lowest visit count.
func leastVisitedDirection(m *maze.Maze, here maze.Coordinate, visits map[maze.Coordinate]int) (maze.Direction, bool) {
	best := maze.East
	minVisits := -1
	for _, d := range maze.Directions {
		next := here.Step(d)
		if !m.IsOpenAt(next) {
			continue
		}
		if minVisits < 0 || visits[next] < minVisits {
			minVisits = visits[next]
			best = d
		}
	}
	return best, minVisits >= 0
}
