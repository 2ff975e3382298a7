package game

import "fmt"

type Direction struct {
	Dx, Dy int
}

var (
	DirectionNone  = Direction{Dx: 0, Dy: 0}
	DirectionUp    = Direction{Dx: 0, Dy: -1}
	DirectionDown  = Direction{Dx: 0, Dy: 1}
	DirectionLeft  = Direction{Dx: -1, Dy: 0}
	DirectionRight = Direction{Dx: 1, Dy: 0}
)

var directionNames = map[Direction]string{
	DirectionNone:  "none",
	DirectionUp:    "up",
	DirectionDown:  "down",
	DirectionLeft:  "left",
	DirectionRight: "right",
}

func (d Direction) Opposite() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

func (d Direction) IsVertical() bool {
	return d == DirectionUp || d == DirectionDown
}

func (d Direction) IsHorizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction{%d, %d}", d.Dx, d.Dy)
}

// ParseDirection maps "up", "down", "left", "right" and "none" to a Direction.
func ParseDirection(name string) (Direction, error) {
	for dir, dirName := range directionNames {
		if dirName == name {
			return dir, nil
		}
	}
	return DirectionNone, fmt.Errorf("unknown direction %q", name)
}
