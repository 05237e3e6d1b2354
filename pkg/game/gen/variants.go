package gen

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/maps"
)

// StairsEffect is the tile effect of a floor exit
const StairsEffect = "stairs"

// ErrNoPlan is returned by steps that run before their plan was initialized
var ErrNoPlan = errors.New("floor plan not initialized")

// ErrProtectedTile is returned when a tile effect would replace a protected one
var ErrProtectedTile = errors.New("tile effect is protected")

// StairsGenContext is a tiled context that can hold entrances and exits
type StairsGenContext interface {
	TiledContext
	AddStart(ep maps.EntryPoint)
	AddEnd(l world.Loc) error
	Ends() []world.Loc
}

// FloorPlanContext is a context laid out by a room-and-hall plan
type FloorPlanContext interface {
	StairsGenContext
	FloorPlan() *FloorPlan
	InitPlan(p *FloorPlan)
}

// GridPlanContext is a context laid out by a grid plan first
type GridPlanContext interface {
	FloorPlanContext
	GridPlan() *GridPlan
	InitGrid(g *GridPlan)
}

// MapLoadGenContext is a context whose map is loaded rather than drawn
type MapLoadGenContext interface {
	StairsGenContext
	SetMap(m *maps.Map)
}

// StairsContext implements StairsGenContext
type StairsContext struct {
	*BaseContext
	ends []world.Loc
}

// NewStairsContext creates an empty stairs context
func NewStairsContext() *StairsContext {
	return &StairsContext{BaseContext: NewBaseContext()}
}

// AddStart adds an entrance to the map
func (c *StairsContext) AddStart(ep maps.EntryPoint) {
	if c.m == nil {
		return
	}
	c.m.EntryPoints = append(c.m.EntryPoints, ep)
}

// AddEnd places an exit on the map and protects it from later changes
func (c *StairsContext) AddEnd(l world.Loc) error {
	if c.m == nil {
		return ErrNoMap
	}
	tile := c.m.Tile(l)
	if tile == nil {
		return maps.ErrOutOfBounds
	}
	pp := c.PostProc(l)
	if pp.Has(PostProcPanel) {
		return fmt.Errorf("exit at %v: %w", l, ErrProtectedTile)
	}
	tile.Effect = StairsEffect
	pp.AddMask(PostProcPanel | PostProcItem)
	c.ends = append(c.ends, l)
	return nil
}

// Ends returns the exits placed so far
func (c *StairsContext) Ends() []world.Loc {
	return c.ends
}

// ListContext implements FloorPlanContext
type ListContext struct {
	*StairsContext
	plan *FloorPlan
}

// NewListContext creates an empty floor plan context
func NewListContext() *ListContext {
	return &ListContext{StairsContext: NewStairsContext()}
}

func (c *ListContext) FloorPlan() *FloorPlan { return c.plan }
func (c *ListContext) InitPlan(p *FloorPlan) { c.plan = p }

// GridContext implements GridPlanContext
type GridContext struct {
	*ListContext
	grid *GridPlan
}

// NewGridContext creates an empty grid plan context
func NewGridContext() *GridContext {
	return &GridContext{ListContext: NewListContext()}
}

func (c *GridContext) GridPlan() *GridPlan { return c.grid }
func (c *GridContext) InitGrid(g *GridPlan) { c.grid = g }

// MapLoadContext implements MapLoadGenContext
type MapLoadContext struct {
	*StairsContext
}

// NewMapLoadContext creates an empty map load context
func NewMapLoadContext() *MapLoadContext {
	return &MapLoadContext{StairsContext: NewStairsContext()}
}

// SetMap adopts a loaded map. Exits already on the map are kept.
func (c *MapLoadContext) SetMap(m *maps.Map) {
	c.setMap(m)
	c.ends = nil
	for y, row := range m.Tiles {
		for x, tile := range row {
			if tile.Effect == StairsEffect {
				c.ends = append(c.ends, world.Loc{X: x, Y: y})
			}
		}
	}
}
