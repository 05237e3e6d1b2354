package world

// Grid is a dense, fixed-size 2D grid of values
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

// NewGrid creates a new grid with the given dimensions
func NewGrid[T any](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

// Width returns the number of columns in the grid
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid[T]) Height() int {
	return g.height
}

// Bounds returns the rectangle covering the whole grid
func (g *Grid[T]) Bounds() Rect {
	return Rect{W: g.width, H: g.height}
}

// IsValidPosition checks if a location is within grid bounds
func (g *Grid[T]) IsValidPosition(l Loc) bool {
	return l.X >= 0 && l.X < g.width && l.Y >= 0 && l.Y < g.height
}

// IsOnPerimeter checks if a location is on the edge of the grid
func (g *Grid[T]) IsOnPerimeter(l Loc) bool {
	if !g.IsValidPosition(l) {
		return false
	}
	return l.X == 0 || l.Y == 0 || l.X == g.width-1 || l.Y == g.height-1
}

// Get returns the value at the location. It panics when out of bounds.
func (g *Grid[T]) Get(l Loc) T {
	return g.cells[g.index(l)]
}

// Ptr returns a pointer to the value at the location, or nil if out of bounds
func (g *Grid[T]) Ptr(l Loc) *T {
	if !g.IsValidPosition(l) {
		return nil
	}
	return &g.cells[g.index(l)]
}

// Set stores a value. Returns false if out of bounds.
func (g *Grid[T]) Set(l Loc, v T) bool {
	if !g.IsValidPosition(l) {
		return false
	}
	g.cells[g.index(l)] = v
	return true
}

// Fill sets every cell to v
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// CenterPosition returns the location of the grid center
func (g *Grid[T]) CenterPosition() Loc {
	return Loc{X: g.width / 2, Y: g.height / 2}
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid[T]) ForEachCell(fn func(l Loc, v T)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Loc{X: x, Y: y}, g.cells[y*g.width+x])
		}
	}
}

// Clone returns a shallow copy of the grid's cells
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{width: g.width, height: g.height, cells: make([]T, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid[T]) index(l Loc) int {
	if !g.IsValidPosition(l) {
		panic("grid position out of bounds: " + l.String())
	}
	return l.Y*g.width + l.X
}
