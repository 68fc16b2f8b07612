package runner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/Mshel/mazerunner/internal/history"
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	runs []history.Run
	err  error
}

func (r *recorderStub) Record(run history.Run) (history.Run, error) {
	if r.err != nil {
		return run, r.err
	}
	run.ID = "run-" + string(rune('a'+len(r.runs)))
	r.runs = append(r.runs, run)
	return run, nil
}

func writeMaze(t *testing.T, lines ...string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(file, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return file
}

var tinyMaze = []string{
	"#####",
	"#   #",
	"#   #",
	"     ",
	"#####",
}

func TestSolve(t *testing.T) {
	recorder := &recorderStub{}
	r := New(1000, recorder)
	file := writeMaze(t, tinyMaze...)

	for _, kind := range []explorer.Kind{explorer.RightHand, explorer.Tremaux} {
		report, err := r.Solve(file, kind)
		require.NoError(t, err)

		assert.Equal(t, "FFFF", report.Canonical)
		assert.Equal(t, "4F", report.Factorized)
		assert.Equal(t, maze.Coordinate{X: 0, Y: 3}, report.Start)
		assert.Equal(t, maze.Coordinate{X: 4, Y: 3}, report.End)
		assert.True(t, report.Result.Solved)
		assert.Equal(t, history.ModeExplore, report.Mode)
		assert.Equal(t, kind.String(), report.Strategy)
		assert.NotEmpty(t, report.ID)
	}

	require.Len(t, recorder.runs, 2)
	assert.Equal(t, "righthand", recorder.runs[0].Strategy)
	assert.Equal(t, "tremaux", recorder.runs[1].Strategy)
	assert.Equal(t, 4, recorder.runs[1].MoveCount)
	assert.True(t, recorder.runs[1].Solved)
}

func TestSolveFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(0, nil).Solve(filepath.Join(t.TempDir(), "nope.txt"), explorer.RightHand)
		assert.Error(t, err)
	})

	t.Run("missing opening", func(t *testing.T) {
		file := writeMaze(t, "###", "#  ", "###")
		_, err := New(0, nil).Solve(file, explorer.Tremaux)
		assert.ErrorIs(t, err, maze.ErrNoStart)
	})

	t.Run("dead end is recorded", func(t *testing.T) {
		recorder := &recorderStub{}
		file := writeMaze(t, "###", " # ", "###")

		_, err := New(0, recorder).Solve(file, explorer.Tremaux)
		assert.ErrorIs(t, err, explorer.ErrDeadEnd)
		require.Len(t, recorder.runs, 1)
		assert.False(t, recorder.runs[0].Solved)
	})

	t.Run("step budget", func(t *testing.T) {
		file := writeMaze(t, "###", " # ", "###")
		_, err := New(10, nil).Solve(file, explorer.RightHand)
		assert.ErrorIs(t, err, explorer.ErrStepBudget)
	})
}

func TestCheck(t *testing.T) {
	file := writeMaze(t, "####", "    ", "####")

	testCases := []struct {
		name    string
		input   string
		outcome explorer.Outcome
	}{
		{name: "exact", input: "FFF", outcome: explorer.Solved},
		{name: "short", input: "FF", outcome: explorer.Incomplete},
		{name: "long", input: "FFFF", outcome: explorer.Overshoot},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &recorderStub{}
			report, err := New(0, recorder).Check(file, tc.input)
			require.NoError(t, err)

			assert.Equal(t, tc.outcome, report.Result.Outcome)
			assert.Equal(t, tc.outcome == explorer.Solved, report.Result.Solved)
			assert.Equal(t, history.ModeValidate, report.Mode)
			require.Len(t, recorder.runs, 1)
			assert.Equal(t, tc.outcome.String(), recorder.runs[0].Outcome)
		})
	}

	t.Run("canonical and factorized forms of the input", func(t *testing.T) {
		report, err := New(0, nil).Check(file, "2F  L   3F R")
		require.NoError(t, err)
		assert.Equal(t, "FF L FFF R", report.Canonical)
		assert.Equal(t, "2F L 3F R", report.Factorized)
	})

	t.Run("malformed count", func(t *testing.T) {
		_, err := New(0, nil).Check(file, "99999999999999999999F")
		assert.ErrorIs(t, err, path.ErrMalformedCount)
	})

	t.Run("oversized path is refused before replay", func(t *testing.T) {
		recorder := &recorderStub{}
		_, err := New(0, recorder).Check(file, strings.Repeat("999999F ", 100))
		assert.ErrorIs(t, err, path.ErrTooLong)
		assert.Empty(t, recorder.runs)
	})
}

func TestRecorderErrorsDoNotFailRuns(t *testing.T) {
	file := writeMaze(t, "####", "    ", "####")
	recorder := &recorderStub{err: errors.New("disk full")}

	report, err := New(0, recorder).Check(file, "3F")
	require.NoError(t, err)
	assert.True(t, report.Result.Solved)
	assert.Empty(t, report.ID)
}
