package ui

import (
	"strings"

	"github.com/Mshel/mazerunner/internal/explorer"
	"github.com/Mshel/mazerunner/internal/maze"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor = "233"

	wallCell  = lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Render("▒")
	openCell  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(" ")
	trailCell = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("87")).Render("•")
	startCell = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("42")).Bold(true).Render("S")
	endCell   = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("205")).Bold(true).Render("E")

	headStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("226")).Bold(true)

	headRunes = map[maze.Direction]string{
		maze.North: "▲",
		maze.South: "▼",
		maze.West:  "◀",
		maze.East:  "▶",
	}
)

// Pose returns where the agent stands after the first upto trail steps.
func Pose(start maze.Coordinate, trail []explorer.Step, upto int) (maze.Coordinate, maze.Direction) {
	upto = min(max(upto, 0), len(trail))
	if upto == 0 {
		return start, maze.East
	}
	last := trail[upto-1]
	return last.Position, last.Heading
}

// RenderMaze draws the grid with the first upto trail steps overlaid.
func RenderMaze(m *maze.Maze, start, end maze.Coordinate, trail []explorer.Step, upto int) string {
	upto = min(max(upto, 0), len(trail))
	visited := map[maze.Coordinate]bool{start: true}
	for _, step := range trail[:upto] {
		visited[step.Position] = true
	}
	head, heading := Pose(start, trail, upto)

	var sb strings.Builder
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			here := maze.Coordinate{X: x, Y: y}
			switch {
			case here == head:
				sb.WriteString(headStyle.Render(headRunes[heading]))
			case !m.IsOpen(x, y):
				sb.WriteString(wallCell)
			case here == start:
				sb.WriteString(startCell)
			case here == end:
				sb.WriteString(endCell)
			case visited[here]:
				sb.WriteString(trailCell)
			default:
				sb.WriteString(openCell)
			}
		}
		if y < m.Rows()-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
