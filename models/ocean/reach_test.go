package ocean

import (
	"testing"
)

func TestFreeRegionSizeIsolatedCell(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		c    Coordinates
	}{
		{name: "1x1 map", rows: []string{"."}, c: NewCoordinates(0, 0)},
		{name: "walled cell", rows: []string{"xxx", "x.x", "xxx"}, c: NewCoordinates(1, 1)},
		{name: "corner pocket", rows: []string{".x...", "xx...", ".....", ".....", "....."}, c: NewCoordinates(0, 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := MustParseMap(test.rows...)
			if got := m.FreeRegionSize(test.c, 0); got != 1 {
				t.Fatalf("expected region size: %d\t got: %d", 1, got)
			}
		})
	}
}

func TestFreeRegionSizeHonorsVisitation(t *testing.T) {
	m := MustParseMap(
		".....",
		".....",
		"xxxxx",
		".....",
		".....",
	)

	if got := m.FreeRegionSize(NewCoordinates(0, 0), 0); got != 10 {
		t.Fatalf("expected region size: %d\t got: %d", 10, got)
	}

	// a visited column splits the top region in two
	m.MarkVisited(NewCoordinates(2, 0), 0)
	m.MarkVisited(NewCoordinates(2, 1), 0)
	if got := m.FreeRegionSize(NewCoordinates(0, 0), 0); got != 4 {
		t.Fatalf("expected region size: %d\t got: %d", 4, got)
	}
	// another actor is not affected
	if got := m.FreeRegionSize(NewCoordinates(0, 0), 1); got != 10 {
		t.Fatalf("expected region size for actor 1: %d\t got: %d", 10, got)
	}
	// a visited origin is not eligible
	if got := m.FreeRegionSize(NewCoordinates(2, 0), 0); got != 0 {
		t.Fatalf("expected region size: %d\t got: %d", 0, got)
	}
	if got := m.FreeRegionSize(NewCoordinates(-1, 0), 0); got != 0 {
		t.Fatalf("expected region size out of bound: %d\t got: %d", 0, got)
	}
}

func TestAccessibility(t *testing.T) {
	m := MustParseMap(
		"...",
		".x.",
		"...",
	)
	tests := []struct {
		name     string
		c        Coordinates
		expected int
	}{
		{name: "corner", c: NewCoordinates(0, 0), expected: 2},
		{name: "edge next to land", c: NewCoordinates(1, 0), expected: 2},
		{name: "land", c: NewCoordinates(1, 1), expected: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := m.Accessibility(test.c, 0); got != test.expected {
				t.Fatalf("expected: %d\t got: %d", test.expected, got)
			}
		})
	}
}

func TestReachableWithinRadius(t *testing.T) {
	m := MustParseMap(
		".....",
		".xxx.",
		".....",
		".....",
		".....",
	)

	got := m.ReachableWithinRadius(NewCoordinates(0, 0), 2)
	expected := []Coordinates{
		NewCoordinates(0, 0), NewCoordinates(0, 1), NewCoordinates(0, 2),
		NewCoordinates(1, 0), NewCoordinates(2, 0),
	}
	if len(got) != len(expected) {
		t.Fatalf("expected: %v\t got: %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected: %v\t got: %v", expected, got)
		}
	}

	// path distance, not euclidean: (2,2) is 4 steps away around the land
	around := m.ReachableWithinRadius(NewCoordinates(2, 0), 3)
	for _, c := range around {
		if c == NewCoordinates(2, 2) {
			t.Fatal("expected (2,2) to be out of a 3 step radius")
		}
	}

	m.MarkVisited(NewCoordinates(1, 0), 0)
	if len(m.ReachableWithinRadius(NewCoordinates(0, 0), 2)) != len(expected) {
		t.Fatal("expected visitation to be ignored")
	}

	if m.ReachableWithinRadius(NewCoordinates(1, 1), 4) != nil {
		t.Fatal("expected no cells from a land origin")
	}
	if m.ReachableWithinRadius(NewCoordinates(7, 7), 4) != nil {
		t.Fatal("expected no cells from an out of bound origin")
	}
	if r := m.ReachableWithinRadius(NewCoordinates(0, 0), 0); len(r) != 1 {
		t.Fatalf("expected radius 0 to hold only the origin, got %v", r)
	}
}

func TestRouteDirection(t *testing.T) {
	corridor := MustParseMap("....")

	tests := []struct {
		name     string
		m        *Map
		start    Coordinates
		dest     Coordinates
		expected Direction
	}{
		{name: "east corridor", m: corridor, start: NewCoordinates(0, 0), dest: NewCoordinates(3, 0), expected: East},
		{name: "west corridor", m: corridor, start: NewCoordinates(3, 0), dest: NewCoordinates(0, 0), expected: West},
		{name: "same cell", m: corridor, start: NewCoordinates(1, 0), dest: NewCoordinates(1, 0), expected: NoDirection},
		{name: "out of bound start", m: corridor, start: NewCoordinates(-1, 0), dest: NewCoordinates(1, 0), expected: NoDirection},
		{name: "out of bound dest", m: corridor, start: NewCoordinates(0, 0), dest: NewCoordinates(4, 0), expected: NoDirection},
		{
			name: "around the wall",
			m: MustParseMap(
				".....",
				"xxxx.",
				".....",
				".....",
				".....",
			),
			start:    NewCoordinates(0, 0),
			dest:     NewCoordinates(0, 2),
			expected: East,
		},
		{
			name: "walled off",
			m: MustParseMap(
				".....",
				"xxxxx",
				".....",
				".....",
				".....",
			),
			start:    NewCoordinates(0, 0),
			dest:     NewCoordinates(0, 2),
			expected: NoDirection,
		},
		{
			name: "land destination",
			m: MustParseMap(
				"..x..",
				".....",
				".....",
				".....",
				".....",
			),
			start:    NewCoordinates(0, 0),
			dest:     NewCoordinates(2, 0),
			expected: NoDirection,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.m.RouteDirection(0, test.start, test.dest); got != test.expected {
				t.Fatalf("expected: %s\t got: %s", test.expected, got)
			}
		})
	}
}

func TestRouteDirectionAvoidsVisitedCells(t *testing.T) {
	m := MustParseMap(
		".....",
		".....",
		".....",
		".....",
		".....",
	)
	start := NewCoordinates(0, 2)
	m.MarkVisited(start, 0)
	m.MarkVisited(NewCoordinates(1, 2), 0)

	// straight east is blocked by our own trail, both detours are the same
	// length and north comes first in enumeration order
	if got := m.RouteDirection(0, start, NewCoordinates(4, 2)); got != North {
		t.Fatalf("expected: %s\t got: %s", North, got)
	}
	if got := m.RouteDirection(1, start, NewCoordinates(4, 2)); got != East {
		t.Fatalf("expected other actor to go: %s\t got: %s", East, got)
	}
}

func TestDistance(t *testing.T) {
	m := MustParseMap(
		".....",
		"xxxx.",
		".....",
		".....",
		".....",
	)
	d, ok := m.Distance(NewCoordinates(0, 0), NewCoordinates(0, 2))
	if !ok || d != 10 {
		t.Fatalf("expected distance: %d\t got: %d (ok=%t)", 10, d, ok)
	}
	if _, ok := m.Distance(NewCoordinates(0, 0), NewCoordinates(0, 1)); ok {
		t.Fatal("expected no distance to land")
	}
}

func TestExplorationDirection(t *testing.T) {
	m := MustParseMap(
		".....",
		".....",
		"xxxxx",
		".....",
		".....",
	)

	// from (2,1) south is land; north, east and west all keep the 9 other
	// top cells reachable and have 2 free neighbours each, so north wins
	// on enumeration order.
	origin := NewCoordinates(2, 1)
	m.MarkVisited(origin, 0)
	if got := m.ExplorationDirection(origin, 0); got != North {
		t.Fatalf("expected: %s\t got: %s", North, got)
	}

	// boxed in
	boxed := MustParseMap("x.x", "...", "x.x")
	center := NewCoordinates(1, 1)
	boxed.MarkVisited(center, 0)
	for _, dir := range AllDirections {
		boxed.MarkVisited(center.Neighbor(dir), 0)
	}
	if got := boxed.ExplorationDirection(center, 0); got != NoDirection {
		t.Fatalf("expected: %s\t got: %s", NoDirection, got)
	}
}

func TestExplorationDirectionPrefersWalls(t *testing.T) {
	m := MustParseMap(
		".....",
		".....",
		".....",
		".....",
		".....",
	)
	origin := NewCoordinates(0, 2)
	m.MarkVisited(origin, 0)

	// all three moves keep 24 cells reachable; north and south stay on the
	// wall (2 free neighbours) while east opens into the middle (3)
	if got := m.ExplorationDirection(origin, 0); got != North {
		t.Fatalf("expected: %s\t got: %s", North, got)
	}
}

func TestBestDirectionEnumerationOrder(t *testing.T) {
	m := MustParseMap("...", "...", "...")
	got := m.BestDirection(NewCoordinates(1, 1), func(Coordinates) int { return 1 }, nil)
	if got != North {
		t.Fatalf("expected: %s\t got: %s", North, got)
	}
}

func TestSquareArea(t *testing.T) {
	m := MustParseMap("...", "...", "...")
	if got := len(m.SquareArea(NewCoordinates(1, 1), 1)); got != 9 {
		t.Fatalf("expected area: %d\t got: %d", 9, got)
	}
	if got := len(m.SquareArea(NewCoordinates(0, 0), 1)); got != 4 {
		t.Fatalf("expected clipped area: %d\t got: %d", 4, got)
	}
}
