package explorer

import (
	"testing"

	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	m := mustMaze(t, corridorMaze)

	testCases := []struct {
		name     string
		input    string
		solved   bool
		outcome  Outcome
		position maze.Coordinate
		steps    int
	}{
		{name: "exact", input: "FFF", solved: true, outcome: Solved, position: maze.Coordinate{X: 3, Y: 1}, steps: 3},
		{name: "factorized", input: "3F", solved: true, outcome: Solved, position: maze.Coordinate{X: 3, Y: 1}, steps: 3},
		{name: "short", input: "FF", outcome: Incomplete, position: maze.Coordinate{X: 2, Y: 1}, steps: 2},
		{name: "overshoot", input: "FFFF", outcome: Overshoot, position: maze.Coordinate{X: 3, Y: 1}, steps: 3},
		{name: "turn after arrival", input: "FFFL", outcome: Overshoot, position: maze.Coordinate{X: 3, Y: 1}, steps: 3},
		{name: "wall", input: "RF FF", outcome: HitWall, position: maze.Coordinate{X: 0, Y: 1}, steps: 2},
		{name: "backwards out of bounds", input: "LLF", outcome: HitWall, position: maze.Coordinate{X: 0, Y: 1}, steps: 3},
		{name: "spin then walk", input: "4R 3F", solved: true, outcome: Solved, position: maze.Coordinate{X: 3, Y: 1}, steps: 7},
		{name: "invalid letter", input: "F X F", outcome: InvalidMove, position: maze.Coordinate{X: 1, Y: 1}, steps: 2},
		{name: "dangling digits", input: "F2", outcome: InvalidMove, position: maze.Coordinate{X: 1, Y: 1}, steps: 2},
		{name: "empty", input: "", outcome: Incomplete, position: maze.Coordinate{X: 0, Y: 1}, steps: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Validate(m, mustParse(t, tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.solved, result.Solved)
			assert.Equal(t, tc.outcome, result.Outcome, result.Outcome.String())
			assert.Equal(t, tc.position, result.Position)
			assert.Equal(t, tc.steps, result.Steps)
		})
	}
}

func TestReplayTrail(t *testing.T) {
	m := mustMaze(t, corridorMaze)
	start := maze.Coordinate{X: 0, Y: 1}
	end := maze.Coordinate{X: 3, Y: 1}

	result := Replay(m, start, end, mustParse(t, "F R L FF"))
	require.True(t, result.Solved)
	require.Len(t, result.Trail, 5)

	assert.Equal(t, Step{Move: path.Forward, Position: maze.Coordinate{X: 1, Y: 1}, Heading: maze.East}, result.Trail[0])
	assert.Equal(t, Step{Move: path.TurnRight, Position: maze.Coordinate{X: 1, Y: 1}, Heading: maze.South}, result.Trail[1])
	assert.Equal(t, Step{Move: path.TurnLeft, Position: maze.Coordinate{X: 1, Y: 1}, Heading: maze.East}, result.Trail[2])
	assert.Equal(t, end, result.Trail[4].Position)
}

func TestReplayEmptyAtExit(t *testing.T) {
	m := mustMaze(t, corridorMaze)
	here := maze.Coordinate{X: 2, Y: 1}

	result := Replay(m, here, here, nil)
	assert.True(t, result.Solved)
	assert.Equal(t, Solved, result.Outcome)
	assert.Empty(t, result.Trail)
}

func TestValidateMissingOpening(t *testing.T) {
	m := mustMaze(t, []string{
		"###",
		"#  ",
		"###",
	})

	_, err := Validate(m, mustParse(t, "FF"))
	assert.ErrorIs(t, err, maze.ErrNoStart)
}

func TestCanonicalReplaysIdentically(t *testing.T) {
	for _, lines := range [][]string{singlePathMaze, loopMaze} {
		for _, kind := range []Kind{RightHand, Tremaux} {
			moves, m := explore(t, kind, lines)

			fromCanonical := mustParse(t, path.Canonical(moves))
			fromFactorized := mustParse(t, path.Factorized(moves))

			original, err := Validate(m, moves)
			require.NoError(t, err)
			canonical, err := Validate(m, fromCanonical)
			require.NoError(t, err)
			factorized, err := Validate(m, fromFactorized)
			require.NoError(t, err)

			assert.True(t, original.Solved, kind.String())
			assert.Equal(t, original.Position, canonical.Position)
			assert.Equal(t, original.Position, factorized.Position)
			assert.Equal(t, original.Trail, canonical.Trail)
		}
	}
}
