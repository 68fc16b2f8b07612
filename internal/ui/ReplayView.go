package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/mazerunner/internal/runner"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	solvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	unsolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

const statusPanelWidth = 40

// ReplayTickMsg advances the animation; ticks from an older generation are dropped.
type ReplayTickMsg struct {
	generation int
}

// ReplayDoneMsg is sent when the viewer leaves a finished replay.
type ReplayDoneMsg struct{}

// ReplayModel animates a report's trail step by step.
type ReplayModel struct {
	Report       *runner.Report
	Frame        int
	Paused       bool
	ScreenWidth  int
	ScreenHeight int

	tick       time.Duration
	generation int
	progress   progress.Model
}

func NewReplayModel(report *runner.Report, screenWidth, screenHeight int, tick time.Duration) ReplayModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(statusPanelWidth-6))
	return ReplayModel{
		Report:       report,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		tick:         tick,
		progress:     bar,
	}
}

func (m ReplayModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m ReplayModel) frames() int {
	return len(m.Report.Result.Trail)
}

// Finished reports whether the last trail step is on screen.
func (m ReplayModel) Finished() bool {
	return m.Frame >= m.frames()
}

func (m ReplayModel) nextTick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return ReplayTickMsg{generation: generation}
	})
}

// restart invalidates pending ticks and schedules a fresh one.
func (m ReplayModel) restart() (ReplayModel, tea.Cmd) {
	m.generation++
	return m, m.nextTick()
}

func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case ReplayTickMsg:
		if msg.generation != m.generation || m.Paused || m.Finished() {
			return m, nil
		}
		m.Frame++
		if m.Finished() {
			log.Debug("Replay finished", "maze", m.Report.MazePath, "frames", m.frames())
			return m, nil
		}
		return m, m.nextTick()

	case ReplayDoneMsg:
		// Only reached when running without a controller.
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "space", "p":
			m.Paused = !m.Paused
			if !m.Paused {
				return m.restart()
			}
		case "right", "l":
			m.Paused = true
			m.Frame = min(m.Frame+1, m.frames())
		case "left", "h":
			m.Paused = true
			m.Frame = max(m.Frame-1, 0)
		case "end", "G":
			m.Frame = m.frames()
		case "r":
			m.Frame = 0
			m.Paused = false
			return m.restart()
		case "enter", "esc":
			if m.Finished() {
				return m, func() tea.Msg { return ReplayDoneMsg{} }
			}
			m.Frame = m.frames()
		}
	}
	return m, nil
}

func (m ReplayModel) View() string {
	report := m.Report
	mapContent := RenderMaze(report.Maze, report.Start, report.End, report.Result.Trail, m.Frame)
	statusContent := m.renderStatusPanel()

	mapWidth := max(report.Maze.Cols(), m.ScreenWidth-statusPanelWidth-4)
	view := lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Render(statusContent),
	)
	return lipgloss.Place(mapWidth+statusPanelWidth, m.ScreenHeight, lipgloss.Left, lipgloss.Top, view)
}

func (m ReplayModel) renderStatusPanel() string {
	report := m.Report
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Run ---") + "\n")
	sb.WriteString(fmt.Sprintf("Maze: %s\n", report.MazePath))
	if report.Strategy != "" {
		sb.WriteString(fmt.Sprintf("Strategy: %s\n", report.Strategy))
	} else {
		sb.WriteString("Strategy: supplied path\n")
	}
	sb.WriteString(fmt.Sprintf("Moves: %d\n", len(report.Moves)))

	position, heading := Pose(report.Start, report.Result.Trail, m.Frame)
	sb.WriteString(fmt.Sprintf("Step: %d / %d\n", m.Frame, m.frames()))
	sb.WriteString(fmt.Sprintf("Position: %s\n", position))
	sb.WriteString(fmt.Sprintf("Heading: %s %s\n", headRunes[heading], heading))

	percent := 1.0
	if m.frames() > 0 {
		percent = float64(m.Frame) / float64(m.frames())
	}
	sb.WriteString("\n" + m.progress.ViewAs(percent) + "\n")

	if m.Finished() {
		sb.WriteString("\n")
		if report.Result.Solved {
			sb.WriteString(solvedStyle.Render("Maze solved!") + "\n")
		} else {
			sb.WriteString(unsolvedStyle.Render("Not solved: "+report.Result.Outcome.String()) + "\n")
		}
		sb.WriteString(fmt.Sprintf("Factorized: %s\n", report.Factorized))
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	sb.WriteString("Space: Pause / Resume\n")
	sb.WriteString("←/→: Step back / forward\n")
	sb.WriteString("R: Restart\n")
	sb.WriteString("Q / Ctrl+C: Quit\n")
	sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Press Enter to continue"))

	return sb.String()
}
