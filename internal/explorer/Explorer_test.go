package explorer

import (
	"testing"

	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	corridorMaze = []string{
		"####",
		"    ",
		"####",
	}

	singlePathMaze = []string{
		"#########",
		"   #   ##",
		"## # # ##",
		"#    #  #",
		"###### ##",
		"#       #",
		"# ##### #",
		"#     #  ",
		"#########",
	}

	loopMaze = []string{
		"#########",
		"#   #   #",
		"  # # # #",
		"#     #  ",
		"# ### # #",
		"#       #",
		"#########",
	}

	roomMaze = []string{
		"#######",
		"#     #",
		"#     #",
		"#     #",
		"#      ",
		"#######",
	}

	sealedMaze = []string{
		"###",
		" # ",
		"###",
	}
)

func mustMaze(t *testing.T, lines []string) *maze.Maze {
	t.Helper()
	m, err := maze.FromLines(lines)
	require.NoError(t, err)
	return m
}

func mustParse(t *testing.T, text string) []path.Move {
	t.Helper()
	moves, err := path.Parse(text)
	require.NoError(t, err)
	return moves
}

func explore(t *testing.T, kind Kind, lines []string) ([]path.Move, *maze.Maze) {
	t.Helper()
	m := mustMaze(t, lines)
	start, end, err := m.Openings()
	require.NoError(t, err)

	strategy, err := New(kind, 10_000)
	require.NoError(t, err)
	moves, err := strategy.Explore(m, start, end)
	require.NoError(t, err)
	return moves, m
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name     string
		expected Kind
	}{
		{name: "", expected: RightHand},
		{name: "righthand", expected: RightHand},
		{name: "RightHand", expected: RightHand},
		{name: "tremaux", expected: Tremaux},
		{name: " TREMAUX ", expected: Tremaux},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := ParseKind(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}

	kind, err := ParseKind("dijkstra")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Equal(t, RightHand, kind)

	_, err = New(Kind(42), 0)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	assert.Equal(t, "tremaux", Tremaux.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestStrategyNames(t *testing.T) {
	rh, err := New(RightHand, 0)
	require.NoError(t, err)
	assert.Equal(t, "Right Hand Rule", rh.Name())

	tr, err := New(Tremaux, 0)
	require.NoError(t, err)
	assert.Equal(t, "Tremaux", tr.Name())
}

func TestRightHandStrategy(t *testing.T) {
	t.Run("straight corridor", func(t *testing.T) {
		moves, _ := explore(t, RightHand, corridorMaze)
		assert.Equal(t, "FFF", path.String(moves))
	})

	t.Run("single path maze", func(t *testing.T) {
		moves, m := explore(t, RightHand, singlePathMaze)
		assert.Equal(t, "2F R 2F R F 2L 3F L 2F R 2F R 4F R 5F L 2F L 4F 2L 4F R 2F R 6F R 2F L F", path.Factorized(moves))

		result, err := Validate(m, moves)
		require.NoError(t, err)
		assert.True(t, result.Solved)
	})

	t.Run("maze with a loop", func(t *testing.T) {
		moves, m := explore(t, RightHand, loopMaze)

		result, err := Validate(m, moves)
		require.NoError(t, err)
		assert.True(t, result.Solved)
	})

	t.Run("cycles inside an open room until the budget runs out", func(t *testing.T) {
		m := mustMaze(t, roomMaze)
		end, err := m.RightOpening()
		require.NoError(t, err)

		strategy := &RightHandStrategy{MaxSteps: 200}
		_, err = strategy.Explore(m, maze.Coordinate{X: 3, Y: 2}, end)
		assert.ErrorIs(t, err, ErrStepBudget)

		var explorationErr *ExplorationError
		require.ErrorAs(t, err, &explorationErr)
		assert.Equal(t, "Right Hand Rule", explorationErr.Strategy)
		assert.Equal(t, 200, explorationErr.Steps)
	})

	t.Run("sealed start turns in place until the budget runs out", func(t *testing.T) {
		m := mustMaze(t, sealedMaze)
		start, end, err := m.Openings()
		require.NoError(t, err)

		strategy := &RightHandStrategy{MaxSteps: 50}
		_, err = strategy.Explore(m, start, end)
		assert.ErrorIs(t, err, ErrStepBudget)
	})
}

func TestTremauxStrategy(t *testing.T) {
	t.Run("straight corridor", func(t *testing.T) {
		moves, _ := explore(t, Tremaux, corridorMaze)
		assert.Equal(t, "FFF", path.String(moves))
	})

	t.Run("single path maze", func(t *testing.T) {
		moves, m := explore(t, Tremaux, singlePathMaze)
		assert.Equal(t, "2F R 2F L 2F L 2F R 2F R 2F L F 2L F L 2F L F R 2F L F", path.Factorized(moves))

		result, err := Validate(m, moves)
		require.NoError(t, err)
		assert.True(t, result.Solved)
	})

	t.Run("maze with a loop", func(t *testing.T) {
		moves, m := explore(t, Tremaux, loopMaze)
		assert.Equal(t, "F R F L 4F R 2F L 2F L 2F R F", path.Factorized(moves))

		result, err := Validate(m, moves)
		require.NoError(t, err)
		assert.True(t, result.Solved)
	})

	t.Run("escapes an open room", func(t *testing.T) {
		m := mustMaze(t, roomMaze)
		end, err := m.RightOpening()
		require.NoError(t, err)

		strategy := &TremauxStrategy{}
		moves, err := strategy.Explore(m, maze.Coordinate{X: 3, Y: 2}, end)
		require.NoError(t, err)
		assert.Equal(t, "FFRFFLF", path.String(moves))
	})

	t.Run("sealed start is a dead end", func(t *testing.T) {
		m := mustMaze(t, sealedMaze)
		start, end, err := m.Openings()
		require.NoError(t, err)

		strategy := &TremauxStrategy{}
		moves, err := strategy.Explore(m, start, end)
		assert.Nil(t, moves)
		assert.ErrorIs(t, err, ErrDeadEnd)

		var explorationErr *ExplorationError
		require.ErrorAs(t, err, &explorationErr)
		assert.Equal(t, start, explorationErr.Position)
	})

	t.Run("fresh state on every call", func(t *testing.T) {
		strategy := &TremauxStrategy{}
		m := mustMaze(t, loopMaze)
		start, end, err := m.Openings()
		require.NoError(t, err)

		first, err := strategy.Explore(m, start, end)
		require.NoError(t, err)
		second, err := strategy.Explore(m, start, end)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestExploreRejectsBadEndpoints(t *testing.T) {
	m := mustMaze(t, corridorMaze)
	wall := maze.Coordinate{X: 0, Y: 0}
	outside := maze.Coordinate{X: -1, Y: 1}
	end := maze.Coordinate{X: 3, Y: 1}

	for _, kind := range []Kind{RightHand, Tremaux} {
		strategy, err := New(kind, 0)
		require.NoError(t, err)

		_, err = strategy.Explore(m, wall, end)
		assert.ErrorIs(t, err, ErrBadEndpoint, kind.String())
		_, err = strategy.Explore(m, end, outside)
		assert.ErrorIs(t, err, ErrBadEndpoint, kind.String())
	}
}

func TestExploreWhenStartIsEnd(t *testing.T) {
	m := mustMaze(t, corridorMaze)
	here := maze.Coordinate{X: 1, Y: 1}

	for _, kind := range []Kind{RightHand, Tremaux} {
		strategy, err := New(kind, 0)
		require.NoError(t, err)

		moves, err := strategy.Explore(m, here, here)
		require.NoError(t, err)
		assert.Empty(t, moves)
	}
}
