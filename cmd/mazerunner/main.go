package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/mazerunner/internal/config"
	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/Mshel/mazerunner/internal/history"
	"github.com/Mshel/mazerunner/internal/runner"
	"github.com/Mshel/mazerunner/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type options struct {
	input    string
	path     string
	method   string
	tui      bool
	render   bool
	history  int
	maxSteps int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func parseFlags(args []string, defaultMaxSteps int) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mazerunner", flag.ContinueOnError)
	fs.StringVar(&opts.input, "i", "", "Path to the maze input file")
	fs.StringVar(&opts.input, "input", "", "Path to the maze input file")
	fs.StringVar(&opts.path, "p", "", "Check the maze against this path instead of solving it")
	fs.StringVar(&opts.path, "path", "", "Check the maze against this path instead of solving it")
	fs.StringVar(&opts.method, "method", explorer.RightHand.String(), "Exploration algorithm (righthand, tremaux)")
	fs.BoolVar(&opts.tui, "tui", false, "Animate the run in the terminal; without -i open the interactive menu")
	fs.BoolVar(&opts.render, "render", false, "Print the maze with the travelled path drawn on it")
	fs.IntVar(&opts.history, "history", 0, "Print the N most recent recorded runs and exit")
	fs.IntVar(&opts.maxSteps, "max-steps", defaultMaxSteps, "Move budget per exploration, 0 for none")
	err := fs.Parse(args)
	return opts, err
}

func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		return 1
	}
	log.SetLevel(cfg.LogLevel)

	opts, err := parseFlags(args, cfg.MaxSteps)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Error("Failed to parse command-line arguments.", "error", err)
		return 2
	}

	log.Info("** Starting Maze Runner")

	var store *history.Store
	var recorder runner.Recorder
	var lister ui.RunLister
	if cfg.HistoryDBPath != "" {
		store, err = history.Open(cfg.HistoryDBPath)
		if err != nil {
			log.Error("Could not open run history", "path", cfg.HistoryDBPath, "error", err)
			return 1
		}
		defer store.Close()
		recorder = store
		lister = store
	}

	if opts.history > 0 {
		return printHistory(stdout, store, opts.history)
	}

	r := runner.New(opts.maxSteps, recorder)

	if opts.input == "" {
		if opts.tui {
			return runProgram(ui.NewControllerModel(r, cfg.MazeDir, lister, cfg.ReplayTick, 0, 0))
		}
		log.Error("No input file provided")
		return 2
	}

	var report *runner.Report
	if opts.path != "" {
		report, err = checkPath(stdout, r, opts.input, opts.path)
	} else {
		report, err = solveMaze(stdout, r, opts.input, opts.method)
	}
	if err != nil {
		log.Error("/!\\ An error has occurred /!\\", "error", err)
		return 1
	}

	if opts.render {
		fmt.Fprintln(stdout, ui.RenderMaze(report.Maze, report.Start, report.End, report.Result.Trail, len(report.Result.Trail)))
	}
	if opts.tui {
		if code := runProgram(ui.NewReplayModel(report, 0, 0, cfg.ReplayTick)); code != 0 {
			return code
		}
	}

	log.Info("** End of MazeRunner")
	if !report.Result.Solved {
		return 1
	}
	return 0
}

func solveMaze(stdout io.Writer, r *runner.Runner, input, method string) (*runner.Report, error) {
	kind, err := explorer.ParseKind(method)
	if err != nil {
		log.Warn("Unknown method, using the right hand rule", "method", method)
	}

	report, err := r.Solve(input, kind)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(stdout, "Starting maze at: %s\n", report.Start)
	if report.Result.Solved {
		fmt.Fprintln(stdout, "Maze solved!")
	}
	fmt.Fprintf(stdout, "Final canonical path: %s\n", report.Canonical)
	fmt.Fprintf(stdout, "Final factorized path: %s\n", report.Factorized)
	return report, nil
}

func checkPath(stdout io.Writer, r *runner.Runner, input, text string) (*runner.Report, error) {
	report, err := r.Check(input, text)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(stdout, "Starting maze at: %s\n", report.Start)
	fmt.Fprintf(stdout, "Inputted canonical path: %s\n", report.Canonical)
	fmt.Fprintf(stdout, "Inputted factorized path: %s\n", report.Factorized)
	if report.Result.Solved {
		fmt.Fprintln(stdout, "Maze solved successfully with inputted path.")
	} else {
		fmt.Fprintln(stdout, "Maze not solved with inputted path!")
		fmt.Fprintf(stdout, "Maze runner stopped at: %s (%s)\n", report.Result.Position, report.Result.Outcome)
	}
	return report, nil
}

func printHistory(stdout io.Writer, store *history.Store, limit int) int {
	if store == nil {
		log.Error("Run history is disabled, set MAZERUNNER_HISTORY_DB")
		return 1
	}
	runs, err := store.Recent(limit, 0)
	if err != nil {
		log.Error("Could not load run history", "error", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs recorded yet.")
		return 0
	}
	fmt.Fprint(stdout, ui.RenderRunTable(runs))
	return 0
}

func runProgram(model tea.Model, extra ...tea.ProgramOption) int {
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, extra...)...)
	if _, err := p.Run(); err != nil {
		log.Error("Terminal UI stopped with an error", "error", err)
		return 1
	}
	return 0
}
