package opponent

import (
	"github.com/saeidalz13/submarine-duel/models/ocean"
)

// trail holds the opponent's earlier positions of the current life,
// relative to where it stands now. It only reaches back to the last
// silence or surface, past which the offsets are unknown.
type trail map[ocean.Coordinates]struct{}

func newTrail(path []ocean.Direction) trail {
	t := make(trail, len(path))
	offset := ocean.Coordinates{}
	for i := len(path) - 1; i >= 0; i-- {
		if !path[i].IsValid() {
			break
		}
		offset = offset.Sub(path[i].Offset())
		t[offset] = struct{}{}
	}
	return t
}

func (t trail) blocks(origin, c ocean.Coordinates) bool {
	_, ok := t[c.Sub(origin)]
	return ok
}

func moveDestinations(m *ocean.Map, origin ocean.Coordinates, dir ocean.Direction) []ocean.Coordinates {
	next := origin.Neighbor(dir)
	if !m.IsOcean(next) {
		return nil
	}
	return []ocean.Coordinates{next}
}

// silenceDestinations lists where a silent jump of 0..maxSteps straight
// steps can end. The reverse of the last heading is forbidden, and a line
// stops at land, the map edge, or the opponent's own trail.
func silenceDestinations(m *ocean.Map, origin ocean.Coordinates, last ocean.Direction, tr trail, maxSteps int) []ocean.Coordinates {
	dests := []ocean.Coordinates{origin}
	reverse := last.Opposite()
	for _, dir := range ocean.AllDirections {
		if last.IsValid() && dir == reverse {
			continue
		}
		next := origin
		for step := 1; step <= maxSteps; step++ {
			next = next.Neighbor(dir)
			if !m.IsOcean(next) || tr.blocks(origin, next) {
				break
			}
			dests = append(dests, next)
		}
	}
	return dests
}

func blastSurvives(c, target ocean.Coordinates, footprint *ocean.Grid[bool], hit Hit) bool {
	switch hit {
	case HitNone:
		return !footprint.Get(c)
	case HitSplash:
		return footprint.Get(c)
	case HitDirect:
		return c == target
	}
	return true
}

// blastFootprint marks the cells an explosion at target damages.
func blastFootprint(m *ocean.Map, target ocean.Coordinates, radius int) *ocean.Grid[bool] {
	footprint := ocean.NewGrid(m.Width(), m.Height(), false)
	for _, c := range m.SquareArea(target, radius) {
		footprint.Set(c, true)
	}
	return &footprint
}
