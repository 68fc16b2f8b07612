package explorer

import (
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/charmbracelet/log"
)

// RightHandStrategy follows the wall on the agent's right: prefer a right
// turn, then straight ahead, then a left turn, and turn around at dead ends.
// It can cycle forever on a maze whose exit is not reachable along the wall,
// which MaxSteps guards against when set.
type RightHandStrategy struct {
	MaxSteps int
}

func (s *RightHandStrategy) Name() string { return "Right Hand Rule" }

func (s *RightHandStrategy) Explore(m *maze.Maze, start, end maze.Coordinate) ([]path.Move, error) {
	if err := checkEndpoints(m, start, end); err != nil {
		return nil, err
	}
	log.Info("Starting right-hand rule exploration", "start", start, "end", end)

	state := newSearchState(start)
	for state.position != end {
		if overBudget(state, s.MaxSteps) {
			return nil, state.fail(s.Name(), ErrStepBudget)
		}
		s.step(m, state)
	}

	log.Info("Right-hand rule exploration completed", "position", state.position, "moves", len(state.moves))
	return state.moves, nil
}

func (s *RightHandStrategy) step(m *maze.Maze, state *searchState) {
	here := state.position
	heading := state.direction

	switch {
	case m.IsOpenAt(here.Step(heading.TurnRight())):
		state.turnRight()
	case m.IsOpenAt(here.Step(heading)):
	case m.IsOpenAt(here.Step(heading.TurnLeft())):
		state.turnLeft()
	default:
		state.turnAround()
	}
	state.moveForward(m)

	log.Debug("right-hand step", "position", state.position, "heading", state.direction)
}
