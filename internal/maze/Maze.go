package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	WallRune = '#'
	OpenRune = ' '
)

var (
	ErrEmpty   = errors.New("maze has no cells")
	ErrNoStart = errors.New("maze has no opening on the left edge")
	ErrNoEnd   = errors.New("maze has no opening on the right edge")

	ErrBlankRow = errors.New("maze has an empty row")
)

// Coordinate is a cell position: X is the column, Y the row, origin top-left.
type Coordinate struct {
	X int
	Y int
}

// Step returns the neighbouring coordinate in the given heading.
func (c Coordinate) Step(d Direction) Coordinate {
	delta := d.Delta()
	return Coordinate{X: c.X + delta.X, Y: c.Y + delta.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("[%d, %d]", c.X, c.Y)
}

type Cell int

const (
	Open Cell = iota
	Wall
)

// Maze is an immutable rectangular grid with one opening on each side edge.
type Maze struct {
	rows  int
	cols  int
	cells [][]rune
	start *Coordinate
	end   *Coordinate
}

// Load reads a maze from a text file.
func Load(filePath string) (*Maze, error) {
	log.Info("Loading maze", "file", filePath)
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze file %s: %w", filePath, err)
	}
	defer file.Close()

	m, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load maze from %s: %w", filePath, err)
	}
	return m, nil
}

// Parse reads one grid row per line.
func Parse(r io.Reader) (*Maze, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read maze rows: %w", err)
	}
	return FromLines(lines)
}

// FromLines builds a maze from its rows. Trailing empty lines are dropped and
// any other empty row is rejected. Rows shorter than the widest one are padded
// with open cells.
func FromLines(lines []string) (*Maze, error) {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	cols := 0
	for _, line := range lines {
		cols = max(cols, len([]rune(line)))
	}
	if len(lines) == 0 || cols == 0 {
		return nil, ErrEmpty
	}

	m := &Maze{rows: len(lines), cols: cols, cells: make([][]rune, len(lines))}
	for row, line := range lines {
		if line == "" {
			return nil, fmt.Errorf("%w at line %d", ErrBlankRow, row+1)
		}
		cells := []rune(line)
		for len(cells) < cols {
			cells = append(cells, OpenRune)
		}
		m.cells[row] = cells
	}
	m.scanOpenings()

	return m, nil
}

// scanOpenings keeps overwriting on every match, so the bottom-most qualifying
// row wins on each edge.
func (m *Maze) scanOpenings() {
	for row := 0; row < m.rows; row++ {
		if m.cells[row][0] == OpenRune {
			m.start = &Coordinate{X: 0, Y: row}
		}
		if m.cells[row][m.cols-1] != WallRune {
			m.end = &Coordinate{X: m.cols - 1, Y: row}
		}
	}

	if m.start == nil {
		log.Error("Error reading start point")
	}
	if m.end == nil {
		log.Error("Error reading end point")
	}
	if m.start != nil && m.end != nil {
		log.Info("Maze openings read", "start", m.start, "end", m.end)
	}
}

func (m *Maze) Rows() int { return m.rows }
func (m *Maze) Cols() int { return m.cols }

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < m.cols && c.Y >= 0 && c.Y < m.rows
}

// CellAt returns the cell kind at (x, y); anything outside the grid is a wall.
func (m *Maze) CellAt(x, y int) Cell {
	if !m.InBounds(Coordinate{X: x, Y: y}) || m.cells[y][x] == WallRune {
		return Wall
	}
	return Open
}

// IsOpen reports whether (x, y) is inside the grid and not a wall.
func (m *Maze) IsOpen(x, y int) bool {
	return m.CellAt(x, y) == Open
}

func (m *Maze) IsOpenAt(c Coordinate) bool {
	return m.IsOpen(c.X, c.Y)
}

// LeftOpening returns the entrance on the x=0 column.
func (m *Maze) LeftOpening() (Coordinate, error) {
	if m.start == nil {
		return Coordinate{}, ErrNoStart
	}
	return *m.start, nil
}

// RightOpening returns the exit on the x=cols-1 column.
func (m *Maze) RightOpening() (Coordinate, error) {
	if m.end == nil {
		return Coordinate{}, ErrNoEnd
	}
	return *m.end, nil
}

// Openings returns both openings or the first missing one as an error.
func (m *Maze) Openings() (Coordinate, Coordinate, error) {
	start, err := m.LeftOpening()
	if err != nil {
		return Coordinate{}, Coordinate{}, err
	}
	end, err := m.RightOpening()
	if err != nil {
		return Coordinate{}, Coordinate{}, err
	}
	return start, end, nil
}

// Lines returns a copy of the grid rows as text.
func (m *Maze) Lines() []string {
	lines := make([]string, m.rows)
	for row, cells := range m.cells {
		lines[row] = string(cells)
	}
	return lines
}
