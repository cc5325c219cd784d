package ocean

const (
	OceanChar byte = '.'
	LandChar  byte = 'x'
)

type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainLand
)

func (t Terrain) String() string {
	if t == TerrainOcean {
		return "ocean"
	}
	return "land"
}

// Square is one map cell: its terrain character plus a bitmask of the
// actors that entered it since their last surface. Actor ids are 0..63.
type Square struct {
	value   byte
	visited uint64
}

func NewSquare(value byte) Square {
	return Square{value: value}
}

func (s Square) Char() byte {
	return s.value
}

func (s Square) IsOcean() bool {
	return s.value == OceanChar
}

func (s Square) IsVisited(actor int) bool {
	return s.visited&(1<<uint(actor)) != 0
}

func (s *Square) SetVisited(actor int) {
	s.visited |= 1 << uint(actor)
}

func (s *Square) UnsetVisited(actor int) {
	s.visited &^= 1 << uint(actor)
}

// Free reports whether actor may still enter the square.
func (s Square) Free(actor int) bool {
	return s.IsOcean() && !s.IsVisited(actor)
}
