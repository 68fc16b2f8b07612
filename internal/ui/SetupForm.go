package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusMaze = iota
	focusStrategy
	focusPath
	focusSubmit
	focusCount
)

var strategyOptions = []explorer.Kind{explorer.RightHand, explorer.Tremaux}

// SetupModel picks the maze, the strategy and an optional path to check.
type SetupModel struct {
	mazes         []string
	mazeIndex     int
	strategyIndex int
	pathInput     textinput.Model
	focusIndex    int
	loadErr       error
	width         int
	height        int
}

// ListMazes returns the regular files in dir, sorted by name.
func ListMazes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var mazes []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			mazes = append(mazes, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(mazes)
	return mazes, nil
}

func NewSetupModel(mazeDir string, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "leave empty to explore, or e.g. 2F R 3F"
	ti.CharLimit = 4096
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	mazes, err := ListMazes(mazeDir)
	if err != nil {
		log.Error("Could not list mazes", "dir", mazeDir, "error", err)
	}

	return SetupModel{
		mazes:     mazes,
		pathInput: ti,
		loadErr:   err,
		width:     w,
		height:    h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) setFocus(index int) SetupModel {
	m.focusIndex = (index + focusCount) % focusCount
	if m.focusIndex == focusPath {
		m.pathInput.Focus()
	} else {
		m.pathInput.Blur()
	}
	return m
}

func (m SetupModel) submit() tea.Cmd {
	if len(m.mazes) == 0 {
		return nil
	}
	msg := SetupSubmitMsg{
		MazePath: m.mazes[m.mazeIndex],
		Strategy: strategyOptions[m.strategyIndex],
		Path:     strings.TrimSpace(m.pathInput.Value()),
	}
	return func() tea.Msg { return msg }
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "ctrl+c" {
			return m, tea.Quit
		}

		switch s {
		case "tab", "down":
			return m.setFocus(m.focusIndex + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focusIndex - 1), nil
		case "enter":
			if m.focusIndex == focusSubmit || m.focusIndex == focusPath {
				return m, m.submit()
			}
			return m.setFocus(m.focusIndex + 1), nil
		}

		switch m.focusIndex {
		case focusMaze:
			if len(m.mazes) > 0 {
				switch s {
				case "left", "h":
					m.mazeIndex = (m.mazeIndex - 1 + len(m.mazes)) % len(m.mazes)
				case "right", "l":
					m.mazeIndex = (m.mazeIndex + 1) % len(m.mazes)
				}
			}
			return m, nil
		case focusStrategy:
			switch s {
			case "left", "h", "right", "l":
				m.strategyIndex = (m.strategyIndex + 1) % len(strategyOptions)
			}
			return m, nil
		case focusPath:
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) label(index int, text string) string {
	if m.focusIndex == index {
		return focusedStyle.Render(text)
	}
	return blurredStyle.Render(text)
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.label(focusMaze, "Maze (use arrows)")))
	b.WriteString("\n")
	switch {
	case m.loadErr != nil:
		b.WriteString(center(errorStyle.Render("Could not read maze directory: " + m.loadErr.Error())))
	case len(m.mazes) == 0:
		b.WriteString(center(errorStyle.Render("No maze files found")))
	default:
		b.WriteString(center("◀ " + filepath.Base(m.mazes[m.mazeIndex]) + " ▶"))
	}
	b.WriteString("\n\n")

	b.WriteString(center(m.label(focusStrategy, "Strategy (use arrows)")))
	b.WriteString("\n")
	if strategy, err := explorer.New(strategyOptions[m.strategyIndex], 0); err == nil {
		b.WriteString(center("◀ " + strategy.Name() + " ▶"))
	}
	b.WriteString("\n\n")

	b.WriteString(center(m.label(focusPath, "Path to check")))
	b.WriteString("\n")
	b.WriteString(center(m.pathInput.View()))
	b.WriteString("\n\n")

	submitText := "Run"
	var submitButton string
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to choose, tab/shift+tab to navigate, enter to run, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
