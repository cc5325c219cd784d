package ocean

import (
	cerr "github.com/saeidalz13/submarine-duel/internal/error"
)

// SectorGrid partitions a grid into square-ish sectors numbered from 1,
// left to right then top to bottom. The sector size must tile the grid
// exactly; ValidateTiling checks it.
type SectorGrid[T comparable] struct {
	Grid[T]
	sectorWidth  int
	sectorHeight int
}

func NewSectorGrid[T comparable](width, height, sectorWidth, sectorHeight int, fill T) SectorGrid[T] {
	return SectorGrid[T]{
		Grid:         NewGrid(width, height, fill),
		sectorWidth:  sectorWidth,
		sectorHeight: sectorHeight,
	}
}

func (g *SectorGrid[T]) ValidateTiling() error {
	if g.sectorWidth <= 0 || g.sectorHeight <= 0 ||
		g.width%g.sectorWidth != 0 || g.height%g.sectorHeight != 0 {
		return cerr.ErrSectorTiling(g.width, g.height, g.sectorWidth, g.sectorHeight)
	}
	return nil
}

func (g *SectorGrid[T]) SectorWidth() int {
	return g.sectorWidth
}

func (g *SectorGrid[T]) SectorHeight() int {
	return g.sectorHeight
}

func (g *SectorGrid[T]) SectorsX() int {
	return g.width / g.sectorWidth
}

func (g *SectorGrid[T]) SectorsY() int {
	return g.height / g.sectorHeight
}

func (g *SectorGrid[T]) SectorCount() int {
	return g.SectorsX() * g.SectorsY()
}

func (g *SectorGrid[T]) ValidSector(sector int) bool {
	return sector >= 1 && sector <= g.SectorCount()
}

// SectorOf returns the 1-based sector index holding c.
func (g *SectorGrid[T]) SectorOf(c Coordinates) (int, bool) {
	if !g.Contains(c) {
		return 0, false
	}
	sx := c.X / g.sectorWidth
	sy := c.Y / g.sectorHeight
	return sy*g.SectorsX() + sx + 1, true
}

// SectorOrigin returns the top-left cell of a sector.
func (g *SectorGrid[T]) SectorOrigin(sector int) (Coordinates, bool) {
	if !g.ValidSector(sector) {
		return Coordinates{X: -1, Y: -1}, false
	}
	sector--
	return Coordinates{
		X: (sector % g.SectorsX()) * g.sectorWidth,
		Y: (sector / g.SectorsX()) * g.sectorHeight,
	}, true
}

func (g *SectorGrid[T]) InSector(c Coordinates, sector int) bool {
	s, ok := g.SectorOf(c)
	return ok && s == sector
}

// SectorCells lists the cells of a sector in row-major order.
func (g *SectorGrid[T]) SectorCells(sector int) []Coordinates {
	origin, ok := g.SectorOrigin(sector)
	if !ok {
		return nil
	}
	cells := make([]Coordinates, 0, g.sectorWidth*g.sectorHeight)
	for j := 0; j < g.sectorHeight; j++ {
		for i := 0; i < g.sectorWidth; i++ {
			cells = append(cells, origin.Add(Coordinates{X: i, Y: j}))
		}
	}
	return cells
}

func (g *SectorGrid[T]) CountInSector(sector int, value T) int {
	n := 0
	for _, c := range g.SectorCells(sector) {
		if g.Get(c) == value {
			n++
		}
	}
	return n
}

func (g *SectorGrid[T]) Clone() SectorGrid[T] {
	return SectorGrid[T]{
		Grid:         g.Grid.Clone(),
		sectorWidth:  g.sectorWidth,
		sectorHeight: g.sectorHeight,
	}
}
