package gen

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/autotile"
	"delvegen/pkg/game/maps"
)

// ErrNoMap is returned when a context finishes before any step created a map
var ErrNoMap = errors.New("generation finished without a map")

// PostProcType marks which later changes a tile is protected from
type PostProcType uint8

const (
	// PostProcPanel protects tile effects such as stairs
	PostProcPanel PostProcType = 1 << iota
	// PostProcItem keeps items from spawning on the tile
	PostProcItem
	// PostProcTerrain keeps the terrain from being replaced
	PostProcTerrain
)

// PreventChanges protects a tile from everything
const PreventChanges = PostProcPanel | PostProcItem | PostProcTerrain

// PostProcTile holds the protection mask of one tile
type PostProcTile struct {
	Status PostProcType
}

// AddMask sets the given protections
func (p *PostProcTile) AddMask(t PostProcType) {
	p.Status |= t
}

// Has returns true if every given protection is set
func (p PostProcTile) Has(t PostProcType) bool {
	return p.Status&t == t
}

// Env carries the shared resources a floor is generated against
type Env struct {
	Maps     maps.MapStore
	Tilesets autotile.Catalog
	// TextureMap gives default textures by terrain id
	TextureMap map[string]maps.AutoTile
}

// Context is the mutable state of one floor being generated
type Context interface {
	ID() string
	SetID(id string)
	Env() Env
	SetEnv(env Env)
	// InitSeed resets the random stream. It is called once, before any step.
	InitSeed(seed uint64)
	Seed() uint64
	Rand() *rng.Rand
	Map() *maps.Map
	// FinishGen seals the map border and computes textures
	FinishGen() error
}

// TiledContext is a context with a tile map
type TiledContext interface {
	Context
	CreateNew(width, height int, wrap bool)
	Width() int
	Height() int
	RoomTerrain() maps.TerrainTile
	WallTerrain() maps.TerrainTile
	SetTerrain(room, wall maps.TerrainTile)
	TileBlocked(l world.Loc) bool
	// SetTile replaces a tile unless its terrain is protected
	SetTile(l world.Loc, t maps.Tile) bool
	// PostProc returns the protection mask of a tile, nil outside the map
	PostProc(l world.Loc) *PostProcTile
}

// BaseContext implements TiledContext
type BaseContext struct {
	id       string
	seed     uint64
	rand     *rng.Rand
	env      Env
	m        *maps.Map
	postProc *world.Grid[PostProcTile]
	room     maps.TerrainTile
	wall     maps.TerrainTile
}

// NewBaseContext creates a context with floor and wall terrain
func NewBaseContext() *BaseContext {
	return &BaseContext{
		rand: rng.New(0),
		room: maps.NewTerrain(maps.TerrainFloor),
		wall: maps.NewTerrain(maps.TerrainWall),
	}
}

func (c *BaseContext) ID() string { return c.id }
func (c *BaseContext) Env() Env { return c.env }
func (c *BaseContext) SetEnv(env Env) { c.env = env }
func (c *BaseContext) Seed() uint64 { return c.seed }
func (c *BaseContext) Rand() *rng.Rand { return c.rand }
func (c *BaseContext) Map() *maps.Map { return c.m }
func (c *BaseContext) RoomTerrain() maps.TerrainTile { return c.room.Copy() }
func (c *BaseContext) WallTerrain() maps.TerrainTile { return c.wall.Copy() }

func (c *BaseContext) SetID(id string) {
	c.id = id
	if c.m != nil {
		c.m.ID = id
	}
}

func (c *BaseContext) InitSeed(seed uint64) {
	c.seed = seed
	c.rand = rng.New(seed)
	if c.m != nil {
		c.m.Seed = seed
	}
}

func (c *BaseContext) SetTerrain(room, wall maps.TerrainTile) {
	c.room = room.Copy()
	c.wall = wall.Copy()
}

// CreateNew replaces the map with a blank one filled with wall terrain
func (c *BaseContext) CreateNew(width, height int, wrap bool) {
	m := maps.NewMap(c.id, width, height, c.wall)
	m.Wrap = wrap
	c.setMap(m)
}

func (c *BaseContext) setMap(m *maps.Map) {
	m.ID = c.id
	m.Seed = c.seed
	c.m = m
	c.postProc = world.NewGrid[PostProcTile](m.Width, m.Height)
}

func (c *BaseContext) Width() int {
	if c.m == nil {
		return 0
	}
	return c.m.Width
}

func (c *BaseContext) Height() int {
	if c.m == nil {
		return 0
	}
	return c.m.Height
}

func (c *BaseContext) TileBlocked(l world.Loc) bool {
	return c.m == nil || c.m.IsBlocked(l)
}

func (c *BaseContext) PostProc(l world.Loc) *PostProcTile {
	if c.m == nil {
		return nil
	}
	l, ok := c.m.InBounds(l)
	if !ok {
		return nil
	}
	return c.postProc.Ptr(l)
}

func (c *BaseContext) SetTile(l world.Loc, t maps.Tile) bool {
	pp := c.PostProc(l)
	if pp == nil || pp.Has(PostProcTerrain) {
		return false
	}
	tile := c.m.Tile(l)
	effect := tile.Effect
	*tile = t.Copy()
	if pp.Has(PostProcPanel) {
		tile.Effect = effect
	}
	return true
}

// FinishGen turns the open edge of a non-wrapping map into unbreakable
// terrain, then recalculates every texture.
func (c *BaseContext) FinishGen() error {
	if c.m == nil {
		return ErrNoMap
	}
	if !c.m.Wrap {
		seal := maps.Tile{Data: maps.NewTerrain(maps.TerrainUnbreakable)}
		for _, l := range perimeter(c.m.Bounds()) {
			if pp := c.postProc.Get(l); pp.Has(PostProcTerrain) {
				continue
			}
			tile := c.m.Tile(l)
			if tile.Data.ID == maps.TerrainUnbreakable {
				continue
			}
			tile.Data = seal.Data.Copy()
		}
	}
	for id, tex := range c.env.TextureMap {
		if _, ok := c.m.TextureMap[id]; !ok {
			c.m.TextureMap[id] = tex.Copy()
		}
	}
	if c.env.Tilesets != nil {
		b := c.m.Bounds()
		if err := c.m.MapModified(c.env.Tilesets, b.Start(), b.Size()); err != nil {
			return fmt.Errorf("texture map %s: %w", c.id, err)
		}
	}
	return c.m.Validate()
}

func perimeter(r world.Rect) []world.Loc {
	var out []world.Loc
	for _, d := range world.AllDir4() {
		out = append(out, r.Edge(d)...)
	}
	return out
}
