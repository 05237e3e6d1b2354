package gen

import (
	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
)

// RoomGen draws one room shape. A room is sized with ProposeSize and
// PrepareSize, placed with SetLoc, then drawn with DrawOnMap.
type RoomGen interface {
	// ProposeSize suggests dimensions for the room
	ProposeSize(r *rng.Rand) world.Loc
	// PrepareSize fixes the room to the given size and computes which
	// border tiles halls may attach to
	PrepareSize(r *rng.Rand, size world.Loc) error
	SetLoc(l world.Loc)
	Draw() world.Rect
	DrawOnMap(ctx TiledContext) error
	// FulfillableBorder reports, per tile along a side, whether a hall may
	// attach there
	FulfillableBorder(d world.Dir4) []bool
	Copy() RoomGen
}

// RoomPreparer is implemented by room gens that load resources from the
// context before they can propose a size
type RoomPreparer interface {
	Prepare(ctx Context) error
}

// PrepareRoom runs Prepare on room gens that need it
func PrepareRoom(ctx Context, g RoomGen) error {
	if p, ok := g.(RoomPreparer); ok {
		return p.Prepare(ctx)
	}
	return nil
}

// RoomGenBase holds the draw rectangle and border flags shared by room gens
type RoomGenBase struct {
	draw    world.Rect
	borders [4][]bool
}

// Draw returns the rectangle the room occupies
func (b *RoomGenBase) Draw() world.Rect {
	return b.draw
}

// SetLoc moves the room, keeping its size
func (b *RoomGenBase) SetLoc(l world.Loc) {
	b.draw.X, b.draw.Y = l.X, l.Y
}

// Resize sets the room size and clears every border flag
func (b *RoomGenBase) Resize(size world.Loc) {
	b.draw.W, b.draw.H = max(size.X, 0), max(size.Y, 0)
	for _, d := range world.AllDir4() {
		b.borders[d] = make([]bool, b.draw.EdgeLength(d))
	}
}

// SetBorder marks one tile along a side
func (b *RoomGenBase) SetBorder(d world.Dir4, i int, open bool) {
	if i >= 0 && i < len(b.borders[d]) {
		b.borders[d][i] = open
	}
}

// FulfillableBorder returns the border flags of a side
func (b *RoomGenBase) FulfillableBorder(d world.Dir4) []bool {
	if !d.IsValid() {
		return nil
	}
	return b.borders[d]
}

// CopyBase returns a deep copy
func (b *RoomGenBase) CopyBase() RoomGenBase {
	c := RoomGenBase{draw: b.draw}
	for d := range b.borders {
		c.borders[d] = append([]bool(nil), b.borders[d]...)
	}
	return c
}

// OpenSides returns the sides with at least one fulfillable tile
func OpenSides(g RoomGen) []world.Dir4 {
	var sides []world.Dir4
	for _, d := range world.AllDir4() {
		for _, open := range g.FulfillableBorder(d) {
			if open {
				sides = append(sides, d)
				break
			}
		}
	}
	return sides
}

// BorderLoc returns the map location of tile i along a side of the room
func BorderLoc(g RoomGen, d world.Dir4, i int) world.Loc {
	edge := g.Draw().Edge(d)
	return edge[i]
}
