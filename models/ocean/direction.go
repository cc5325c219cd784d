package ocean

type Direction int8

const (
	North Direction = iota
	East
	South
	West

	// Unknown stands for a heading that happened but was not revealed (silence).
	Unknown Direction = -1
	// NoDirection is returned when no step exists (no route, no free neighbour).
	NoDirection Direction = -2
)

// Enumeration order used whenever ties are broken by position in the list.
var AllDirections = [4]Direction{North, East, South, West}

func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 2) % 4
}

// Unit step of the direction. y grows southward.
func (d Direction) Offset() Coordinates {
	switch d {
	case North:
		return Coordinates{X: 0, Y: -1}
	case East:
		return Coordinates{X: 1, Y: 0}
	case South:
		return Coordinates{X: 0, Y: 1}
	case West:
		return Coordinates{X: -1, Y: 0}
	}
	return Coordinates{}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case Unknown:
		return "?"
	}
	return "%"
}

// ParseDirection reads the single-letter heading used by the game feed.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "N":
		return North, true
	case "E":
		return East, true
	case "S":
		return South, true
	case "W":
		return West, true
	}
	return NoDirection, false
}
