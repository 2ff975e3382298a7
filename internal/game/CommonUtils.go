package game

// Directions lists the four moves in clockwise order starting with up.
var Directions = []Direction{
	DirectionUp,
	DirectionRight,
	DirectionDown,
	DirectionLeft,
}

func ManhattanDistance(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
