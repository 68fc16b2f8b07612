package runner

import (
	"fmt"

	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/Mshel/mazerunner/internal/history"
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/Mshel/mazerunner/internal/path"
	"github.com/charmbracelet/log"
)

// Recorder persists finished runs.
type Recorder interface {
	Record(run history.Run) (history.Run, error)
}

// Report is everything a front-end needs to show one run.
type Report struct {
	ID         string
	MazePath   string
	Maze       *maze.Maze
	Mode       history.Mode
	Strategy   string
	Moves      []path.Move
	Canonical  string
	Factorized string
	Start      maze.Coordinate
	End        maze.Coordinate
	Result     explorer.Result
}

// Runner wires maze loading, exploration, validation and history together.
type Runner struct {
	MaxSteps int
	History  Recorder
}

func New(maxSteps int, recorder Recorder) *Runner {
	return &Runner{MaxSteps: maxSteps, History: recorder}
}

// Solve loads the maze at mazePath and explores it with the given strategy.
func (r *Runner) Solve(mazePath string, kind explorer.Kind) (*Report, error) {
	m, err := maze.Load(mazePath)
	if err != nil {
		return nil, err
	}
	return r.SolveMaze(mazePath, m, kind)
}

func (r *Runner) SolveMaze(name string, m *maze.Maze, kind explorer.Kind) (*Report, error) {
	start, end, err := m.Openings()
	if err != nil {
		log.Error("No valid starting point found in the maze.", "maze", name, "error", err)
		return nil, err
	}

	strategy, err := explorer.New(kind, r.MaxSteps)
	if err != nil {
		return nil, err
	}

	log.Info("Starting exploration", "maze", name, "strategy", strategy.Name(), "start", start)
	moves, err := strategy.Explore(m, start, end)
	if err != nil {
		r.record(history.Run{
			MazePath: name,
			Mode:     history.ModeExplore,
			Strategy: kind.String(),
			Outcome:  err.Error(),
		})
		return nil, fmt.Errorf("exploring %s: %w", name, err)
	}
	log.Info("Exploration completed", "moves", len(moves))

	result := explorer.Replay(m, start, end, moves)
	if !result.Solved {
		log.Warn("Explored path does not replay to the exit", "strategy", strategy.Name(), "outcome", result.Outcome)
	}

	report := newReport(name, m, history.ModeExplore, moves, start, end, result)
	report.Strategy = kind.String()
	r.recordReport(report)
	return report, nil
}

// Check loads the maze at mazePath and replays the move text against it.
func (r *Runner) Check(mazePath string, text string) (*Report, error) {
	m, err := maze.Load(mazePath)
	if err != nil {
		return nil, err
	}
	return r.CheckMaze(mazePath, m, text)
}

func (r *Runner) CheckMaze(name string, m *maze.Maze, text string) (*Report, error) {
	moves, err := path.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", text, err)
	}

	start, end, err := m.Openings()
	if err != nil {
		return nil, err
	}

	result := explorer.Replay(m, start, end, moves)
	report := newReport(name, m, history.ModeValidate, moves, start, end, result)
	r.recordReport(report)
	return report, nil
}

func newReport(name string, m *maze.Maze, mode history.Mode, moves []path.Move, start, end maze.Coordinate, result explorer.Result) *Report {
	return &Report{
		MazePath:   name,
		Maze:       m,
		Mode:       mode,
		Moves:      moves,
		Canonical:  path.Canonical(moves),
		Factorized: path.Factorized(moves),
		Start:      start,
		End:        end,
		Result:     result,
	}
}

func (r *Runner) recordReport(report *Report) {
	run := r.record(history.Run{
		MazePath:   report.MazePath,
		Mode:       report.Mode,
		Strategy:   report.Strategy,
		MoveCount:  len(report.Moves),
		Factorized: report.Factorized,
		Solved:     report.Result.Solved,
		Outcome:    report.Result.Outcome.String(),
	})
	report.ID = run.ID
}

func (r *Runner) record(run history.Run) history.Run {
	if r.History == nil {
		return run
	}
	saved, err := r.History.Record(run)
	if err != nil {
		log.Error("Run history persist failed", "maze", run.MazePath, "error", err)
		return run
	}
	return saved
}
