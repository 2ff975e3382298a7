package game

// RandomSource is the subset of *rand.Rand (math/rand/v2) the engine needs.
type RandomSource interface {
	IntN(n int) int
}

type Fruit struct {
	Position Coordinate
}

// Relocate moves the fruit to a uniformly random cell. Cells occupied by the
// snake are not excluded.
func (f *Fruit) Relocate(width, height int, rng RandomSource) {
	f.Position = Coordinate{
		X: rng.IntN(width),
		Y: rng.IntN(height),
	}
}
