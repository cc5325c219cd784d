package ocean

import "fmt"

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinates) Sub(o Coordinates) Coordinates {
	return Coordinates{X: c.X - o.X, Y: c.Y - o.Y}
}

func (c Coordinates) Neighbor(d Direction) Coordinates {
	return c.Add(d.Offset())
}

// Less orders x first, then y.
func (c Coordinates) Less(o Coordinates) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Chebyshev distance, the metric of blast footprints.
func (c Coordinates) ChebyshevDistance(o Coordinates) int {
	return max(abs(c.X-o.X), abs(c.Y-o.Y))
}

func (c Coordinates) ManhattanDistance(o Coordinates) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Formatted the way the game expects coordinates in commands: "x y".
func (c Coordinates) String() string {
	return fmt.Sprintf("%d %d", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
