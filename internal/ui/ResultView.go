package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/mazerunner/internal/history"
	"github.com/Mshel/mazerunner/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const historyPageSize = 15

// RunLister reads back recorded runs, newest first.
type RunLister interface {
	Recent(limit, offset int) ([]history.Run, error)
}

// NewRunMsg asks the controller for a fresh setup form.
type NewRunMsg struct{}

// BackToMenuMsg asks the controller to show the intro screen.
type BackToMenuMsg struct{}

var (
	resultButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = resultButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	historyHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	historyRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	historyBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// ResultModel shows the outcome of a run and the run history table.
type ResultModel struct {
	Report         *runner.Report
	RunErr         error
	History        RunLister
	ShowHistory    bool
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int

	runs       []history.Run
	historyErr error
}

func NewResultModel(report *runner.Report, runErr error, lister RunLister, w, h int) ResultModel {
	return ResultModel{
		Report:       report,
		RunErr:       runErr,
		History:      lister,
		ScreenWidth:  w,
		ScreenHeight: h,
	}
}

// NewHistoryModel opens straight onto the history table.
func NewHistoryModel(lister RunLister, w, h int) ResultModel {
	m := NewResultModel(nil, nil, lister, w, h)
	return m.openHistory()
}

func (m ResultModel) openHistory() ResultModel {
	m.ShowHistory = true
	m.runs = nil
	m.historyErr = nil
	if m.History == nil {
		return m
	}
	m.runs, m.historyErr = m.History.Recent(historyPageSize, 0)
	if m.historyErr != nil {
		log.Error("Could not load run history", "error", m.historyErr)
	}
	return m
}

func (m ResultModel) Init() tea.Cmd { return nil }

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
	case tea.KeyMsg:
		if m.ShowHistory {
			switch msg.String() {
			case "esc", "enter":
				if m.Report == nil && m.RunErr == nil {
					return m, func() tea.Msg { return BackToMenuMsg{} }
				}
				m.ShowHistory = false
			}
			return m, nil
		}

		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.SelectedButton = 1 - m.SelectedButton
		case "esc":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		case "enter":
			if m.SelectedButton == 0 {
				return m, func() tea.Msg { return NewRunMsg{} }
			}
			return m.openHistory(), nil
		}
	}
	return m, nil
}

func (m ResultModel) View() string {
	if m.ShowHistory {
		return m.renderHistoryScreen()
	}
	return m.renderResultScreen()
}

func (m ResultModel) renderResultScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 5).
		Align(lipgloss.Center)

	var title, details string
	switch {
	case m.RunErr != nil:
		title = messageStyle.Foreground(lipgloss.Color("9")).Render("RUN FAILED")
		details = "\n" + m.RunErr.Error() + "\n"
	case m.Report == nil:
		title = messageStyle.Render("NO RUN")
	default:
		report := m.Report
		if report.Result.Solved {
			title = messageStyle.Foreground(lipgloss.Color("42")).Render("MAZE SOLVED")
		} else {
			title = messageStyle.Foreground(lipgloss.Color("9")).Render(strings.ToUpper(report.Result.Outcome.String()))
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\nMaze: %s\n", report.MazePath))
		sb.WriteString(fmt.Sprintf("Starting maze at: %s\n", report.Start))
		sb.WriteString(fmt.Sprintf("Moves: %d\n\n", len(report.Moves)))
		sb.WriteString("Canonical path:\n" + wrap(report.Canonical, max(m.ScreenWidth-12, 20)) + "\n\n")
		sb.WriteString("Factorized path:\n" + wrap(report.Factorized, max(m.ScreenWidth-12, 20)) + "\n")
		details = sb.String()
	}

	newRunButton := resultButtonStyle.Render("NEW RUN")
	historyButton := resultButtonStyle.Render("HISTORY")
	if m.SelectedButton == 0 {
		newRunButton = selectedButtonStyle.Render("NEW RUN")
	} else {
		historyButton = selectedButtonStyle.Render("HISTORY")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, newRunButton, historyButton)

	content := lipgloss.JoinVertical(lipgloss.Center, title, details, buttons)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

func (m ResultModel) renderHistoryScreen() string {
	var tableContent strings.Builder

	switch {
	case m.History == nil:
		tableContent.WriteString("Run history is disabled.\n")
	case m.historyErr != nil:
		tableContent.WriteString(errorStyle.Render("Could not load run history: "+m.historyErr.Error()) + "\n")
	case len(m.runs) == 0:
		tableContent.WriteString("No runs recorded yet.\n")
	default:
		tableContent.WriteString(RenderRunTable(m.runs))
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("RECENT RUNS")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}

// RenderRunTable lays runs out as a lipgloss table, one row per run.
func RenderRunTable(runs []history.Run) string {
	var sb strings.Builder

	whenWidth := 17
	mazeWidth := 22
	modeWidth := 10
	strategyWidth := 11
	movesWidth := 7
	outcomeWidth := 26

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		historyHeaderStyle.Width(3).Render("#"),
		historyHeaderStyle.Width(whenWidth).Render("When"),
		historyHeaderStyle.Width(mazeWidth).Render("Maze"),
		historyHeaderStyle.Width(modeWidth).Render("Mode"),
		historyHeaderStyle.Width(strategyWidth).Render("Strategy"),
		historyHeaderStyle.Width(movesWidth).Render("Moves"),
		historyHeaderStyle.Width(outcomeWidth).Render("Outcome"),
	)
	sb.WriteString(header + "\n")

	for i, run := range runs {
		outcomeStyle := unsolvedStyle
		if run.Solved {
			outcomeStyle = solvedStyle
		}
		strategy := run.Strategy
		if strategy == "" {
			strategy = "-"
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			historyRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			historyRowStyle.Width(whenWidth).Render(run.CreatedAt.Local().Format("01-02 15:04:05")),
			historyRowStyle.Width(mazeWidth).Render(truncate(run.MazePath, mazeWidth-2)),
			historyRowStyle.Width(modeWidth).Render(string(run.Mode)),
			historyRowStyle.Width(strategyWidth).Render(strategy),
			historyRowStyle.Width(movesWidth).Render(strconv.Itoa(run.MoveCount)),
			outcomeStyle.Width(outcomeWidth).Render(truncate(run.Outcome, outcomeWidth-2)),
		)
		sb.WriteString(historyBorderStyle.Render(row) + "\n")
	}
	return sb.String()
}

// truncate keeps the tail of s, which is the informative end of a file path.
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return "…" + string(runes[len(runes)-width+1:])
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
