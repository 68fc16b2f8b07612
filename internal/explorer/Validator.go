package explorer

import (
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/charmbracelet/log"
)

// Outcome classifies how a replay ended.
type Outcome int

const (
	Solved Outcome = iota
	HitWall
	Overshoot
	InvalidMove
	Incomplete
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case HitWall:
		return "hit a wall"
	case Overshoot:
		return "kept going past the exit"
	case InvalidMove:
		return "invalid move"
	case Incomplete:
		return "did not reach the exit"
	default:
		return "unknown"
	}
}

// Step is the agent's pose after one processed move.
type Step struct {
	Move     path.Move
	Position maze.Coordinate
	Heading  maze.Direction
}

// Result describes a replay. Position and Heading are the last valid pose.
type Result struct {
	Solved   bool
	Outcome  Outcome
	Position maze.Coordinate
	Heading  maze.Direction
	Steps    int
	Trail    []Step
}

// Validate replays moves from the maze's left opening, facing East, and
// succeeds only when the right opening is reached on the final move.
func Validate(m *maze.Maze, moves []path.Move) (Result, error) {
	start, end, err := m.Openings()
	if err != nil {
		return Result{}, err
	}
	return Replay(m, start, end, moves), nil
}

// Replay executes moves one at a time. A blocked forward move or an unknown
// letter stops the replay; reaching end with moves left over is an overshoot.
func Replay(m *maze.Maze, start, end maze.Coordinate, moves []path.Move) Result {
	result := Result{Position: start, Heading: maze.East, Outcome: Incomplete, Trail: []Step{}}

	if len(moves) == 0 {
		if start == end {
			result.Solved = true
			result.Outcome = Solved
		}
		return result
	}

	log.Info("Replaying path", "start", start, "moves", len(moves))
	for i, move := range moves {
		result.Steps = i + 1

		switch move {
		case path.Forward:
			next := result.Position.Step(result.Heading)
			if !m.IsOpenAt(next) {
				log.Warn("Hit a wall during move or out of bounds", "position", result.Position, "target", next)
				result.Outcome = HitWall
				return result
			}
			result.Position = next
		case path.TurnLeft:
			result.Heading = result.Heading.TurnLeft()
		case path.TurnRight:
			result.Heading = result.Heading.TurnRight()
		default:
			log.Warn("Invalid move character encountered", "move", move.String(), "step", result.Steps)
			result.Outcome = InvalidMove
			return result
		}
		result.Trail = append(result.Trail, Step{Move: move, Position: result.Position, Heading: result.Heading})

		if result.Position == end {
			if i == len(moves)-1 {
				log.Info("Maze solved", "position", result.Position)
				result.Solved = true
				result.Outcome = Solved
			} else {
				log.Warn("Reached end but path is still continuing", "step", result.Steps, "remaining", len(moves)-result.Steps)
				result.Outcome = Overshoot
			}
			return result
		}
	}

	log.Warn("Finished processing input, but did not reach the end", "position", result.Position)
	return result
}
