package maze

// Direction is the heading of an agent on the grid.
// The order is fixed and cyclic: turning right adds one, turning left adds three.
type Direction int

const (
	East Direction = iota
	South
	West
	North
)

// Directions lists every heading in scan order.
var Directions = []Direction{East, South, West, North}

var deltas = [4]Coordinate{
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
	North: {X: 0, Y: -1},
}

// Rotate returns the heading reached after the given number of clockwise quarter turns.
func (d Direction) Rotate(turns int) Direction {
	return Direction(((int(d)+turns)%4 + 4) % 4)
}

func (d Direction) TurnRight() Direction  { return d.Rotate(1) }
func (d Direction) TurnLeft() Direction   { return d.Rotate(3) }
func (d Direction) TurnAround() Direction { return d.Rotate(2) }

// TurnsTo returns how many clockwise quarter turns bring d onto target (0..3).
func (d Direction) TurnsTo(target Direction) int {
	return (int(target) - int(d) + 4) % 4
}

// Delta returns the unit step for this heading.
func (d Direction) Delta() Coordinate {
	if !d.IsValid() {
		return Coordinate{}
	}
	return deltas[d]
}

func (d Direction) IsValid() bool {
	return d >= East && d <= North
}

func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return "Unknown"
	}
}
