package game

// scriptedRandom returns its values in order and then repeats the last one.
type scriptedRandom struct {
	values []int
	calls  int
}

func newScriptedRandom(values ...int) *scriptedRandom {
	return &scriptedRandom{values: values}
}

func (r *scriptedRandom) IntN(n int) int {
	v := 0
	if len(r.values) > 0 {
		idx := min(r.calls, len(r.values)-1)
		v = r.values[idx]
	}
	r.calls++
	return v % n
}
