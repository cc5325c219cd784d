package ocean

import (
	"fmt"
	"strings"
)

// Grid is a fixed width x height container stored row by row.
// Dimensions never change after construction.
type Grid[T comparable] struct {
	width  int
	height int
	cells  []T
}

// Creates a new grid with every cell set to fill.
func NewGrid[T comparable](width, height int, fill T) Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("negative grid dimensions: %dx%d", width, height))
	}
	g := Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
	g.Fill(fill)
	return g
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

func (g *Grid[T]) Contains(c Coordinates) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid[T]) index(c Coordinates) int {
	if !g.Contains(c) {
		panic(fmt.Sprintf("coordinates out of grid bound\tx: %d\ty: %d", c.X, c.Y))
	}
	return c.Y*g.width + c.X
}

func (g *Grid[T]) Get(c Coordinates) T {
	return g.cells[g.index(c)]
}

func (g *Grid[T]) Set(c Coordinates, v T) {
	g.cells[g.index(c)] = v
}

// Ptr gives in-place access to a cell, for value types with mutating methods.
func (g *Grid[T]) Ptr(c Coordinates) *T {
	return &g.cells[g.index(c)]
}

func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

func (g *Grid[T]) Count(v T) int {
	n := 0
	for _, cell := range g.cells {
		if cell == v {
			n++
		}
	}
	return n
}

// Cells visits every cell in row-major order. Returning false stops the walk.
func (g *Grid[T]) Cells(visit func(c Coordinates, v T) bool) {
	for i, cell := range g.cells {
		if !visit(Coordinates{X: i % g.width, Y: i / g.width}, cell) {
			return
		}
	}
}

func (g *Grid[T]) Clone() Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return Grid[T]{width: g.width, height: g.height, cells: cells}
}

// CopyFrom overwrites the cells with those of a grid of the same size.
func (g *Grid[T]) CopyFrom(src *Grid[T]) {
	if src.width != g.width || src.height != g.height {
		panic(fmt.Sprintf("grid size mismatch: %dx%d <- %dx%d", g.width, g.height, src.width, src.height))
	}
	copy(g.cells, src.cells)
}

// Rows copies the grid into a [y][x] slice, the shape used by json payloads.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for y := range rows {
		rows[y] = make([]T, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

func (g *Grid[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[GRID:%d x %d\n", g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fmt.Fprintf(&sb, "%2v ", g.cells[y*g.width+x])
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(']')
	return sb.String()
}
