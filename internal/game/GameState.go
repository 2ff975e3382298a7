package game

// TickResult tells the adapter what a call to Tick did.
type TickResult int

const (
	TickIdle TickResult = iota
	TickMoved
	TickAte
	TickCollided
)

func (r TickResult) String() string {
	switch r {
	case TickMoved:
		return "moved"
	case TickAte:
		return "ate"
	case TickCollided:
		return "collided"
	default:
		return "idle"
	}
}

// RenderData is everything an adapter needs to draw one frame.
type RenderData struct {
	Width     int
	Height    int
	Running   bool
	Score     int
	Fruit     Coordinate
	Head      Coordinate
	Body      []Coordinate
	Direction Direction
}

// GameState owns one snake and one fruit on a fixed grid. It is not safe for
// concurrent use; each adapter keeps its own.
type GameState struct {
	width   int
	height  int
	rng     RandomSource
	running bool
	fruit   Fruit
	snake   Snake
}

func NewGameState(width, height int, rng RandomSource) *GameState {
	gs := &GameState{
		width:  width,
		height: height,
		rng:    rng,
	}
	gs.reset()
	return gs
}

func (gs *GameState) reset() {
	gs.running = true
	gs.fruit = Fruit{}
	gs.fruit.Relocate(gs.width, gs.height, gs.rng)
	gs.snake = NewSnake(gs.width, gs.height)
}

// Tick advances the simulation by one step. The collision check runs against
// the body as it is before the move; on collision the move is not committed.
func (gs *GameState) Tick() TickResult {
	if !gs.running {
		return TickIdle
	}

	nextHead := gs.snake.NextHead()
	if gs.snake.OccupiesBody(nextHead) || !nextHead.InBounds(gs.width, gs.height) {
		gs.running = false
		return TickCollided
	}

	gs.snake.Advance()

	if gs.snake.Head.Equals(gs.fruit.Position) {
		gs.fruit.Relocate(gs.width, gs.height, gs.rng)
		gs.snake.Grow()
		return TickAte
	}

	return TickMoved
}

// RequestDirection applies a turn unless it stays on the current axis.
// Vertical requests are refused while moving vertically and horizontal ones
// while moving horizontally, so the snake can never reverse in place.
func (gs *GameState) RequestDirection(dir Direction) bool {
	if !gs.running {
		return false
	}

	current := gs.snake.Direction
	switch {
	case dir.IsVertical() && !current.IsVertical():
	case dir.IsHorizontal() && !current.IsHorizontal():
	default:
		return false
	}

	gs.snake.Direction = dir
	return true
}

// RequestRestart starts a fresh round. It only works after game over.
func (gs *GameState) RequestRestart() bool {
	if gs.running {
		return false
	}
	gs.reset()
	return true
}

func (gs *GameState) Running() bool {
	return gs.running
}

// Score is the snake's target length.
func (gs *GameState) Score() int {
	return gs.snake.Length
}

func (gs *GameState) Width() int {
	return gs.width
}

func (gs *GameState) Height() int {
	return gs.height
}

func (gs *GameState) View() RenderData {
	body := make([]Coordinate, len(gs.snake.Body))
	copy(body, gs.snake.Body)

	return RenderData{
		Width:     gs.width,
		Height:    gs.height,
		Running:   gs.running,
		Score:     gs.snake.Length,
		Fruit:     gs.fruit.Position,
		Head:      gs.snake.Head,
		Body:      body,
		Direction: gs.snake.Direction,
	}
}

// Occupant describes what sits on a cell in a RenderData.
type Occupant int

const (
	OccupantNone Occupant = iota
	OccupantFruit
	OccupantBody
	OccupantHead
)

// Grid rasterizes the render data into rows of occupants. The head wins over
// body and fruit, body wins over fruit.
func (rd RenderData) Grid() [][]Occupant {
	grid := make([][]Occupant, rd.Height)
	for row := range grid {
		grid[row] = make([]Occupant, rd.Width)
	}

	place := func(c Coordinate, o Occupant) {
		if c.InBounds(rd.Width, rd.Height) && grid[c.Y][c.X] < o {
			grid[c.Y][c.X] = o
		}
	}

	place(rd.Fruit, OccupantFruit)
	for _, segment := range rd.Body {
		place(segment, OccupantBody)
	}
	place(rd.Head, OccupantHead)

	return grid
}
