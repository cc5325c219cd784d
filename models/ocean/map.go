package ocean

import (
	"bufio"
	"io"
	"strings"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
)

const (
	DefaultSectorWidth  = 5
	DefaultSectorHeight = 5
)

// Map is the static terrain of a match plus per-actor visitation.
// Terrain never changes once parsed; visitation is mutated by the owner only.
type Map struct {
	SectorGrid[Square]
}

// ParseMap reads height rows of at least width characters. '.' is ocean,
// anything else is land. Extra characters on a row are ignored.
func ParseMap(r io.Reader, width, height, sectorWidth, sectorHeight int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, cerr.ErrMapDimensions(width, height)
	}
	m := &Map{SectorGrid: NewSectorGrid(width, height, sectorWidth, sectorHeight, NewSquare(LandChar))}
	if err := m.ValidateTiling(); err != nil {
		return nil, err
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for y := 0; y < height; y++ {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, cerr.ErrMapRowMissing(y)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < width {
			return nil, cerr.ErrMapRowLength(y, width, len(line))
		}
		for x := 0; x < width; x++ {
			m.Set(Coordinates{X: x, Y: y}, NewSquare(line[x]))
		}
	}
	return m, nil
}

// MustParseMap is ParseMap over a literal block using the default sectors
// when they tile the map, or a single sector covering it otherwise.
func MustParseMap(rows ...string) *Map {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	sw, sh := DefaultSectorWidth, DefaultSectorHeight
	if width%sw != 0 || height%sh != 0 {
		sw, sh = width, height
	}
	m, err := ParseMap(strings.NewReader(strings.Join(rows, "\n")), width, height, sw, sh)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map) Terrain(c Coordinates) Terrain {
	if m.Contains(c) && m.Get(c).IsOcean() {
		return TerrainOcean
	}
	return TerrainLand
}

func (m *Map) IsOcean(c Coordinates) bool {
	return m.Terrain(c) == TerrainOcean
}

func (m *Map) IsVisited(c Coordinates, actor int) bool {
	return m.Contains(c) && m.Get(c).IsVisited(actor)
}

// IsFree reports an in-bounds ocean cell not yet visited by actor.
func (m *Map) IsFree(c Coordinates, actor int) bool {
	return m.Contains(c) && m.Get(c).Free(actor)
}

func (m *Map) MarkVisited(c Coordinates, actor int) {
	if m.Contains(c) {
		m.Ptr(c).SetVisited(actor)
	}
}

func (m *Map) ClearVisited(c Coordinates, actor int) {
	if m.Contains(c) {
		m.Ptr(c).UnsetVisited(actor)
	}
}

// ClearAllVisited forgets the whole trail of actor, as a surface does.
func (m *Map) ClearAllVisited(actor int) {
	for i := range m.cells {
		m.cells[i].UnsetVisited(actor)
	}
}

func (m *Map) OceanCells() []Coordinates {
	var cells []Coordinates
	m.Cells(func(c Coordinates, sq Square) bool {
		if sq.IsOcean() {
			cells = append(cells, c)
		}
		return true
	})
	return cells
}

func (m *Map) OceanCount() int {
	return len(m.OceanCells())
}

func (m *Map) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			sb.WriteByte(m.cells[y*m.width+x].Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns the terrain rows as they were read.
func (m *Map) Lines() []string {
	return strings.Split(strings.TrimSuffix(m.String(), "\n"), "\n")
}
