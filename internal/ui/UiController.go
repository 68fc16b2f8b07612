package ui

import (
	"time"

	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/Mshel/mazerunner/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	RunningScreen
	ReplayScreen
	ResultScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Solve, 1 for History
type SetupSubmitMsg struct {
	MazePath string
	Strategy explorer.Kind
	Path     string
}

// RunFinishedMsg carries the outcome of a solve or check started from the setup form.
type RunFinishedMsg struct {
	Report *runner.Report
	Err    error
}

type ControllerModel struct {
	CurrentScreen Screen
	Runner        *runner.Runner
	MazeDir       string
	History       RunLister
	ReplayTick    time.Duration

	IntroModel  tea.Model
	SetupModel  tea.Model
	ReplayModel tea.Model
	ResultModel tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(r *runner.Runner, mazeDir string, lister RunLister, tick time.Duration, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Runner:        r,
		MazeDir:       mazeDir,
		History:       lister,
		ReplayTick:    tick,

		IntroModel: NewIntroModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case RunningScreen:
		return "Running..."
	case ReplayScreen:
		return m.ReplayModel.View()
	case ResultScreen:
		return m.ResultModel.View()
	default:
		return "Unknown Screen"
	}
}

// run executes the submitted form off the update loop.
func (m ControllerModel) run(msg SetupSubmitMsg) tea.Cmd {
	r := m.Runner
	return func() tea.Msg {
		var report *runner.Report
		var err error
		if msg.Path != "" {
			report, err = r.Check(msg.MazePath, msg.Path)
		} else {
			report, err = r.Solve(msg.MazePath, msg.Strategy)
		}
		return RunFinishedMsg{Report: report, Err: err}
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		// "q" is text while the setup form has focus.
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		var cmds []tea.Cmd
		for _, child := range []*tea.Model{&m.IntroModel, &m.SetupModel, &m.ReplayModel, &m.ResultModel} {
			if *child != nil {
				*child, cmd = (*child).Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			m.SetupModel = NewSetupModel(m.MazeDir, m.ScreenWidth, m.ScreenHeight)
			return m, m.SetupModel.Init()
		}
		m.CurrentScreen = ResultScreen
		m.ResultModel = NewHistoryModel(m.History, m.ScreenWidth, m.ScreenHeight)
		return m, m.ResultModel.Init()

	case SetupSubmitMsg:
		m.CurrentScreen = RunningScreen
		return m, m.run(msg)

	case RunFinishedMsg:
		if msg.Err != nil {
			m.CurrentScreen = ResultScreen
			m.ResultModel = NewResultModel(nil, msg.Err, m.History, m.ScreenWidth, m.ScreenHeight)
			return m, m.ResultModel.Init()
		}
		m.CurrentScreen = ReplayScreen
		m.ReplayModel = NewReplayModel(msg.Report, m.ScreenWidth, m.ScreenHeight, m.ReplayTick)
		m.ResultModel = NewResultModel(msg.Report, nil, m.History, m.ScreenWidth, m.ScreenHeight)
		return m, m.ReplayModel.Init()

	case ReplayDoneMsg:
		m.CurrentScreen = ResultScreen
		return m, nil

	case NewRunMsg:
		m.CurrentScreen = SetupScreen
		if m.SetupModel == nil {
			m.SetupModel = NewSetupModel(m.MazeDir, m.ScreenWidth, m.ScreenHeight)
		}
		return m, m.SetupModel.Init()

	case BackToMenuMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
		case ReplayScreen:
			m.ReplayModel, cmd = m.ReplayModel.Update(msg)
		case ResultScreen:
			m.ResultModel, cmd = m.ResultModel.Update(msg)
		}
	}

	return m, cmd
}
