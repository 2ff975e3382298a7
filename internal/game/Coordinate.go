package game

import "fmt"

// Coordinate is a cell on the grid. X grows to the right, Y grows downward.
type Coordinate struct {
	X, Y int
}

func (c Coordinate) Add(d Direction) Coordinate {
	return Coordinate{X: c.X + d.Dx, Y: c.Y + d.Dy}
}

func (c Coordinate) Equals(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// InBounds reports whether the coordinate lies on a width x height grid.
func (c Coordinate) InBounds(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
