package explorer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrBadEndpoint     = errors.New("start or end is not an open cell")
	ErrDeadEnd         = errors.New("no open neighbour to move to")
	ErrStepBudget      = errors.New("step budget exhausted before reaching the end")
)

// Strategy produces a move sequence carrying an agent from start to end.
type Strategy interface {
	Explore(m *maze.Maze, start, end maze.Coordinate) ([]path.Move, error)
	Name() string
}

// Kind selects one of the built-in strategies.
type Kind int

const (
	RightHand Kind = iota
	Tremaux
)

var kindNames = map[Kind]string{
	RightHand: "righthand",
	Tremaux:   "tremaux",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a command-line method name to a Kind. An empty name selects
// the right-hand rule.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "righthand":
		return RightHand, nil
	case "tremaux":
		return Tremaux, nil
	default:
		return RightHand, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// New builds the strategy for k. maxSteps bounds the number of emitted moves;
// zero disables the bound.
func New(k Kind, maxSteps int) (Strategy, error) {
	switch k {
	case RightHand:
		return &RightHandStrategy{MaxSteps: maxSteps}, nil
	case Tremaux:
		return &TremauxStrategy{MaxSteps: maxSteps}, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownStrategy, int(k))
	}
}

// ExplorationError reports where a strategy gave up.
type ExplorationError struct {
	Strategy string
	Position maze.Coordinate
	Steps    int
	Err      error
}

func (e *ExplorationError) Error() string {
	return fmt.Sprintf("%s exploration failed at %s after %d moves: %v", e.Strategy, e.Position, e.Steps, e.Err)
}

func (e *ExplorationError) Unwrap() error { return e.Err }

// searchState is owned by a single Explore call.
type searchState struct {
	position  maze.Coordinate
	direction maze.Direction
	moves     []path.Move
}

func newSearchState(start maze.Coordinate) *searchState {
	return &searchState{position: start, direction: maze.East, moves: []path.Move{}}
}

func (s *searchState) turnRight() {
	s.direction = s.direction.TurnRight()
	s.moves = append(s.moves, path.TurnRight)
}

func (s *searchState) turnLeft() {
	s.direction = s.direction.TurnLeft()
	s.moves = append(s.moves, path.TurnLeft)
}

// turnAround is emitted as two left turns.
func (s *searchState) turnAround() {
	s.direction = s.direction.TurnAround()
	s.moves = append(s.moves, path.TurnLeft, path.TurnLeft)
}

// face turns toward target using the fewest emitted moves.
func (s *searchState) face(target maze.Direction) {
	switch s.direction.TurnsTo(target) {
	case 1:
		s.turnRight()
	case 2:
		s.turnAround()
	case 3:
		s.turnLeft()
	}
}

// moveForward steps ahead only if the target cell is open.
func (s *searchState) moveForward(m *maze.Maze) bool {
	next := s.position.Step(s.direction)
	if !m.IsOpenAt(next) {
		return false
	}
	s.position = next
	s.moves = append(s.moves, path.Forward)
	return true
}

func (s *searchState) fail(name string, err error) *ExplorationError {
	return &ExplorationError{Strategy: name, Position: s.position, Steps: len(s.moves), Err: err}
}

func checkEndpoints(m *maze.Maze, start, end maze.Coordinate) error {
	if !m.IsOpenAt(start) || !m.IsOpenAt(end) {
		return fmt.Errorf("%w: start %s end %s", ErrBadEndpoint, start, end)
	}
	return nil
}

func overBudget(s *searchState, maxSteps int) bool {
	return maxSteps > 0 && len(s.moves) >= maxSteps
}
