package game

// FreeSpace counts the cells reachable from start by orthogonal steps without
// leaving the grid or crossing the snake. A blocked start yields 0.
//
// When the snake is not growing its oldest segment is gone after the next
// tick, so that cell counts as free unless it is start itself: the next
// tick's collision check still sees it.
func (rd RenderData) FreeSpace(start Coordinate) int {
	tailLeaves := len(rd.Body) > 0 && len(rd.Body) == rd.Score

	blocked := make(map[Coordinate]struct{}, len(rd.Body)+1)
	blocked[rd.Head] = struct{}{}
	for i, segment := range rd.Body {
		if i == 0 && tailLeaves && !segment.Equals(start) {
			continue
		}
		blocked[segment] = struct{}{}
	}

	free := func(c Coordinate) bool {
		if !c.InBounds(rd.Width, rd.Height) {
			return false
		}
		_, taken := blocked[c]
		return !taken
	}

	if !free(start) {
		return 0
	}

	visited := map[Coordinate]struct{}{start: {}}
	q := []Coordinate{start}
	for len(q) > 0 {
		current := q[0]
		q = q[1:]

		for _, dir := range Directions {
			next := current.Add(dir)
			if _, seen := visited[next]; seen || !free(next) {
				continue
			}
			visited[next] = struct{}{}
			q = append(q, next)
		}
	}

	return len(visited)
}
