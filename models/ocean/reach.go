package ocean

import "sort"

// FreeRegionSize counts the cells actor can still reach from origin through
// ocean it has not visited, origin included when it is itself free.
func (m *Map) FreeRegionSize(origin Coordinates, actor int) int {
	if !m.IsFree(origin, actor) {
		return 0
	}

	seen := NewGrid(m.width, m.height, false)
	queue := []Coordinates{origin}
	seen.Set(origin, true)
	count := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		count++

		for _, dir := range AllDirections {
			next := current.Neighbor(dir)
			if m.IsFree(next, actor) && !seen.Get(next) {
				seen.Set(next, true)
				queue = append(queue, next)
			}
		}
	}
	return count
}

// Accessibility counts the free neighbours of a free cell.
func (m *Map) Accessibility(c Coordinates, actor int) int {
	if !m.IsFree(c, actor) {
		return 0
	}
	n := 0
	for _, dir := range AllDirections {
		if m.IsFree(c.Neighbor(dir), actor) {
			n++
		}
	}
	return n
}

// ReachableWithinRadius lists the ocean cells at path distance <= radius
// from origin, ignoring visitation. The result is sorted x major.
func (m *Map) ReachableWithinRadius(origin Coordinates, radius int) []Coordinates {
	if !m.IsOcean(origin) || radius < 0 {
		return nil
	}

	distance := NewGrid(m.width, m.height, -1)
	distance.Set(origin, 0)
	queue := []Coordinates{origin}
	reached := []Coordinates{origin}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := distance.Get(current)
		if d == radius {
			continue
		}

		for _, dir := range AllDirections {
			next := current.Neighbor(dir)
			if m.IsOcean(next) && distance.Get(next) < 0 {
				distance.Set(next, d+1)
				queue = append(queue, next)
				reached = append(reached, next)
			}
		}
	}

	sort.Slice(reached, func(i, j int) bool { return reached[i].Less(reached[j]) })
	return reached
}

// Distance is the path length between two ocean cells, ignoring visitation.
func (m *Map) Distance(start, dest Coordinates) (int, bool) {
	if !m.IsOcean(start) || !m.IsOcean(dest) {
		return 0, false
	}

	distance := NewGrid(m.width, m.height, -1)
	distance.Set(start, 0)
	queue := []Coordinates{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == dest {
			return distance.Get(current), true
		}
		for _, dir := range AllDirections {
			next := current.Neighbor(dir)
			if m.IsOcean(next) && distance.Get(next) < 0 {
				distance.Set(next, distance.Get(current)+1)
				queue = append(queue, next)
			}
		}
	}
	return 0, false
}

// RouteDirection returns the first step of a shortest path from start to
// dest through cells actor has not visited. start itself may be visited
// (it is where the actor stands). NoDirection when there is no such path.
func (m *Map) RouteDirection(actor int, start, dest Coordinates) Direction {
	if !m.IsOcean(start) || !m.IsFree(dest, actor) || start == dest {
		return NoDirection
	}

	// came[c] is the direction taken to enter c from the cell that discovered it.
	came := NewGrid(m.width, m.height, NoDirection)
	queue := []Coordinates{start}
	found := false

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == dest {
			found = true
			break
		}

		for _, dir := range AllDirections {
			next := current.Neighbor(dir)
			if next != start && m.IsFree(next, actor) && came.Get(next) == NoDirection {
				came.Set(next, dir)
				queue = append(queue, next)
			}
		}
	}
	if !found {
		return NoDirection
	}

	step := dest
	for {
		dir := came.Get(step)
		prev := step.Neighbor(dir.Opposite())
		if prev == start {
			return dir
		}
		step = prev
	}
}

// BestDirection picks, among the neighbours of origin that lie inside the
// map, the direction with the highest positive score. Ties go to better
// (when given), then to enumeration order.
func (m *Map) BestDirection(origin Coordinates, score func(Coordinates) int, better func(a, b Direction) bool) Direction {
	best := NoDirection
	bestScore := 0
	for _, dir := range AllDirections {
		next := origin.Neighbor(dir)
		if !m.Contains(next) {
			continue
		}
		s := score(next)
		if s <= 0 {
			continue
		}
		switch {
		case best == NoDirection, s > bestScore:
			best, bestScore = dir, s
		case s == bestScore && better != nil && better(dir, best):
			best = dir
		}
	}
	return best
}

// ExplorationDirection steers toward the largest free region, preferring
// the neighbour with fewer free neighbours of its own so the trail hugs
// walls instead of cutting open space in two.
func (m *Map) ExplorationDirection(origin Coordinates, actor int) Direction {
	return m.BestDirection(origin,
		func(c Coordinates) int { return m.FreeRegionSize(c, actor) },
		func(a, b Direction) bool {
			return m.Accessibility(origin.Neighbor(a), actor) < m.Accessibility(origin.Neighbor(b), actor)
		},
	)
}

// SquareArea is the Chebyshev neighbourhood of c clipped to the map, land included.
func (m *Map) SquareArea(c Coordinates, radius int) []Coordinates {
	var area []Coordinates
	for y := c.Y - radius; y <= c.Y+radius; y++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			p := Coordinates{X: x, Y: y}
			if m.Contains(p) {
				area = append(area, p)
			}
		}
	}
	return area
}
