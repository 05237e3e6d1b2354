package gen

import (
	"fmt"

	"delvegen/pkg/engine/world"
)

// MinCellSize is the smallest cell side a grid plan accepts. Rooms keep one
// tile of padding inside their cell for halls.
const MinCellSize = 3

// GridRoom is the room assigned to a grid cell
type GridRoom struct {
	Gen        RoomGen
	Components Components
}

// GridPlan lays rooms out on a coarse grid of equal cells. Halls join
// orthogonally adjacent cells.
type GridPlan struct {
	CellsX, CellsY        int
	CellWidth, CellHeight int
	Wrap                  bool

	rooms  []*GridRoom
	hHalls []bool // (x,y) to (x+1,y)
	vHalls []bool // (x,y) to (x,y+1)
}

// NewGridPlan creates an empty grid plan
func NewGridPlan(cellsX, cellsY, cellWidth, cellHeight int, wrap bool) (*GridPlan, error) {
	if cellsX <= 0 || cellsY <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", cellsX, cellsY)
	}
	if cellWidth < MinCellSize || cellHeight < MinCellSize {
		return nil, fmt.Errorf("cell size %dx%d below minimum %d", cellWidth, cellHeight, MinCellSize)
	}
	return &GridPlan{
		CellsX:     cellsX,
		CellsY:     cellsY,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Wrap:       wrap,
		rooms:      make([]*GridRoom, cellsX*cellsY),
		hHalls:     make([]bool, cellsX*cellsY),
		vHalls:     make([]bool, cellsX*cellsY),
	}, nil
}

// Size returns the tile size of the floor the grid covers, including a
// one-tile outer border
func (g *GridPlan) Size() world.Loc {
	return world.Loc{X: g.CellsX*g.CellWidth + 2, Y: g.CellsY*g.CellHeight + 2}
}

// InBounds returns true if (x,y) names a cell
func (g *GridPlan) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.CellsX && y < g.CellsY
}

// CellBounds returns the tile rectangle of a cell
func (g *GridPlan) CellBounds(x, y int) world.Rect {
	return world.Rect{X: 1 + x*g.CellWidth, Y: 1 + y*g.CellHeight, W: g.CellWidth, H: g.CellHeight}
}

// RoomBounds returns the area of a cell a room may occupy
func (g *GridPlan) RoomBounds(x, y int) world.Rect {
	return g.CellBounds(x, y).Inflate(-1)
}

// MaxRoomSize returns the largest room a cell holds
func (g *GridPlan) MaxRoomSize() world.Loc {
	return world.Loc{X: g.CellWidth - 2, Y: g.CellHeight - 2}
}

// Room returns the room of a cell, or nil
func (g *GridPlan) Room(x, y int) *GridRoom {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.rooms[y*g.CellsX+x]
}

// SetRoom assigns a room to a cell. The components are copied.
func (g *GridPlan) SetRoom(x, y int, gen RoomGen, c Components) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", x, y, g.CellsX, g.CellsY)
	}
	g.rooms[y*g.CellsX+x] = &GridRoom{Gen: gen, Components: CopyComponents(c)}
	return nil
}

// ClearRoom empties a cell
func (g *GridPlan) ClearRoom(x, y int) {
	if g.InBounds(x, y) {
		g.rooms[y*g.CellsX+x] = nil
	}
}

// RoomCount returns how many cells hold rooms
func (g *GridPlan) RoomCount() int {
	n := 0
	for _, r := range g.rooms {
		if r != nil {
			n++
		}
	}
	return n
}

// Neighbor returns the cell next to (x,y) in direction d
func (g *GridPlan) Neighbor(x, y int, d world.Dir4) (int, int, bool) {
	dx, dy := d.Delta()
	nx, ny := x+dx, y+dy
	return nx, ny, g.InBounds(nx, ny)
}

func (g *GridPlan) hallIndex(x, y int, d world.Dir4) (*[]bool, int, bool) {
	nx, ny, ok := g.Neighbor(x, y, d)
	if !g.InBounds(x, y) || !ok {
		return nil, 0, false
	}
	switch d {
	case world.East:
		return &g.hHalls, y*g.CellsX + x, true
	case world.West:
		return &g.hHalls, ny*g.CellsX + nx, true
	case world.South:
		return &g.vHalls, y*g.CellsX + x, true
	case world.North:
		return &g.vHalls, ny*g.CellsX + nx, true
	}
	return nil, 0, false
}

// HasHall returns true if a hall leaves (x,y) in direction d
func (g *GridPlan) HasHall(x, y int, d world.Dir4) bool {
	halls, i, ok := g.hallIndex(x, y, d)
	return ok && (*halls)[i]
}

// SetHall opens or closes the hall leaving (x,y) in direction d
func (g *GridPlan) SetHall(x, y int, d world.Dir4, open bool) error {
	halls, i, ok := g.hallIndex(x, y, d)
	if !ok {
		return fmt.Errorf("no cell %v of (%d,%d)", d, x, y)
	}
	(*halls)[i] = open
	return nil
}

// HallCount returns how many halls leave a cell
func (g *GridPlan) HallCount(x, y int) int {
	n := 0
	for _, d := range world.AllDir4() {
		if g.HasHall(x, y, d) {
			n++
		}
	}
	return n
}
