package game

// Snake is a head plus a FIFO of the previous head positions. Body[0] is the
// oldest segment and is the first to go when the snake does not grow.
type Snake struct {
	Head      Coordinate
	Body      []Coordinate
	Length    int
	Direction Direction
}

// NewSnake returns a motionless snake of length 0 centered on the grid.
func NewSnake(width, height int) Snake {
	return Snake{
		Head:      Coordinate{X: width >> 1, Y: height >> 1},
		Body:      []Coordinate{},
		Length:    0,
		Direction: DirectionNone,
	}
}

// Advance moves the head one cell. It does no bounds or collision checking.
func (s *Snake) Advance() {
	s.Body = append(s.Body, s.Head)
	s.Head = s.Head.Add(s.Direction)

	for len(s.Body) > s.Length {
		s.Body = s.Body[1:]
	}
}

func (s *Snake) OccupiesBody(c Coordinate) bool {
	for _, segment := range s.Body {
		if segment.Equals(c) {
			return true
		}
	}
	return false
}

func (s *Snake) Grow() {
	s.Length++
}

// NextHead is where the head would land on the next Advance.
func (s *Snake) NextHead() Coordinate {
	return s.Head.Add(s.Direction)
}

// Cells lists every occupied cell, head first then newest segment to oldest.
func (s *Snake) Cells() []Coordinate {
	cells := make([]Coordinate, 0, len(s.Body)+1)
	cells = append(cells, s.Head)
	for i := len(s.Body) - 1; i >= 0; i-- {
		cells = append(cells, s.Body[i])
	}
	return cells
}
