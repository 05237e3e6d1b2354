package rooms

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// ErrNoMapStore is returned when a map room is prepared without a store
var ErrNoMapStore = errors.New("no map store configured")

// loadMapBase stamps a stored map as a room: tiles, layers, decorations,
// items, teams and entrances, all moved by the room's position.
type loadMapBase struct {
	gen.RoomGenBase `yaml:"-"`
	MapID           string `yaml:"map"`

	// PreventChanges protects the stamped tiles from later steps
	PreventChanges gen.PostProcType `yaml:"prevent_changes,omitempty"`

	roomMap *maps.Map
}

// Prepare loads the map from the context's store
func (l *loadMapBase) Prepare(ctx gen.Context) error {
	store := ctx.Env().Maps
	if store == nil {
		return fmt.Errorf("%w: loading %q", ErrNoMapStore, l.MapID)
	}
	m, err := store.GetMap(l.MapID)
	if err != nil {
		return err
	}
	l.roomMap = m
	return nil
}

// ProposeSize returns the loaded map's size
func (l *loadMapBase) ProposeSize(r *rng.Rand) world.Loc {
	if l.roomMap == nil {
		return world.Loc{}
	}
	return world.Loc{X: l.roomMap.Width, Y: l.roomMap.Height}
}

// nativeSize is true when the room is drawn at the map's own size
func (l *loadMapBase) nativeSize() bool {
	d := l.Draw()
	return l.roomMap != nil && d.W == l.roomMap.Width && d.H == l.roomMap.Height
}

func (l *loadMapBase) copyBase() loadMapBase {
	return loadMapBase{
		RoomGenBase:    l.CopyBase(),
		MapID:          l.MapID,
		PreventChanges: l.PreventChanges,
		roomMap:        l.roomMap,
	}
}

func (l *loadMapBase) DrawOnMap(ctx gen.TiledContext) error {
	if l.roomMap == nil {
		return fmt.Errorf("map room %q drawn before it was prepared", l.MapID)
	}
	if !l.nativeSize() {
		drawRect(ctx, l.Draw())
		return nil
	}
	m := ctx.Map()
	if err := l.checkBounds(m); err != nil {
		return err
	}
	l.drawTiles(ctx)
	l.drawDecorations(m)
	l.drawItems(m)
	l.drawTeams(m)
	l.drawEntrances(m)

	draw := l.Draw()
	for y := draw.Y; y < draw.Y+draw.H; y++ {
		for x := draw.X; x < draw.X+draw.W; x++ {
			if pp := ctx.PostProc(world.Loc{X: x, Y: y}); pp != nil {
				pp.AddMask(l.PreventChanges)
			}
		}
	}
	return nil
}

// translate moves a room-local location onto the destination map
func (l *loadMapBase) translate(m *maps.Map, loc world.Loc) (world.Loc, bool) {
	return m.InBounds(loc.Add(l.Draw().Start()))
}

// checkBounds fails before anything is drawn if any content would land
// outside the destination map
func (l *loadMapBase) checkBounds(m *maps.Map) error {
	src := l.roomMap
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if _, ok := l.translate(m, world.Loc{X: x, Y: y}); !ok {
				return fmt.Errorf("map room %q tile (%d,%d): %w", l.MapID, x, y, maps.ErrOutOfBounds)
			}
		}
	}
	for _, item := range src.Items {
		if _, ok := l.translate(m, item.Loc); !ok {
			return fmt.Errorf("map room %q item %s: %w", l.MapID, item.ID, maps.ErrOutOfBounds)
		}
	}
	for _, team := range src.Teams {
		for _, c := range team.Members {
			if _, ok := l.translate(m, c.Loc); !ok {
				return fmt.Errorf("map room %q team member %s: %w", l.MapID, c.Species, maps.ErrOutOfBounds)
			}
		}
	}
	for _, ep := range src.EntryPoints {
		if _, ok := l.translate(m, ep.Loc); !ok {
			return fmt.Errorf("map room %q entrance %v: %w", l.MapID, ep.Loc, maps.ErrOutOfBounds)
		}
	}
	return nil
}

func (l *loadMapBase) drawTiles(ctx gen.TiledContext) {
	m := ctx.Map()
	src := l.roomMap

	// match each visible source layer to a destination layer of the same
	// draw layer, adding layers as needed
	layerTo := make(map[int]int)
	nextStart := make(map[maps.DrawLayer]int)
	for i, layer := range src.Layers {
		if !layer.Visible {
			continue
		}
		start := nextStart[layer.Layer]
		for start < len(m.Layers) && m.Layers[start].Layer != layer.Layer {
			start++
		}
		if start == len(m.Layers) {
			m.AddLayer(layer.Name).Layer = layer.Layer
		}
		layerTo[i] = start
		nextStart[layer.Layer] = start + 1
	}

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst, _ := l.translate(m, world.Loc{X: x, Y: y})
			ctx.SetTile(dst, src.Tiles[y][x])
			for from, to := range layerTo {
				if t := src.Layers[from].At(world.Loc{X: x, Y: y}); t != nil {
					*m.Layers[to].At(dst) = t.Copy()
				}
			}
		}
	}
}

func (l *loadMapBase) drawDecorations(m *maps.Map) {
	offset := l.Draw().Start().Scale(maps.TileSize)
	for _, layer := range l.roomMap.Decorations {
		if !layer.Visible {
			continue
		}
		c := layer.Copy()
		for i := range c.Anims {
			c.Anims[i].MapLoc = c.Anims[i].MapLoc.Add(offset)
		}
		m.Decorations = append(m.Decorations, c)
	}
}

func (l *loadMapBase) drawItems(m *maps.Map) {
	for _, item := range l.roomMap.Items {
		item.Loc, _ = l.translate(m, item.Loc)
		m.Items = append(m.Items, item)
	}
}

func (l *loadMapBase) drawTeams(m *maps.Map) {
	for _, team := range l.roomMap.Teams {
		c := team.Copy()
		for i := range c.Members {
			c.Members[i].Loc, _ = l.translate(m, c.Members[i].Loc)
		}
		m.Teams = append(m.Teams, c)
	}
}

func (l *loadMapBase) drawEntrances(m *maps.Map) {
	for _, ep := range l.roomMap.EntryPoints {
		loc, _ := l.translate(m, ep.Loc)
		m.EntryPoints = append(m.EntryPoints, maps.EntryPoint{Loc: loc, Dir: ep.Dir})
	}
}

// LoadMap stamps a stored map as a room. Halls attach to border tiles
// matching the room terrain.
type LoadMap struct {
	loadMapBase `yaml:",inline"`

	// RoomTerrain is the terrain id halls may attach to; floor if empty
	RoomTerrain string `yaml:"room_terrain,omitempty"`
}

// NewLoadMap creates a map room for the given map id
func NewLoadMap(mapID string) *LoadMap {
	return &LoadMap{loadMapBase: loadMapBase{MapID: mapID}}
}

func (l *LoadMap) PrepareSize(r *rng.Rand, size world.Loc) error {
	if err := prepareSize(&l.RoomGenBase, size); err != nil {
		return err
	}
	if !l.nativeSize() {
		openAll(&l.RoomGenBase)
		return nil
	}
	terrain := l.RoomTerrain
	if terrain == "" {
		terrain = maps.TerrainFloor
	}
	room := maps.Tile{Data: maps.NewTerrain(terrain)}
	for _, d := range world.AllDir4() {
		for i, loc := range world.NewRect(world.Loc{}, size).Edge(d) {
			l.SetBorder(d, i, l.roomMap.Tiles[loc.Y][loc.X].TileEquivalent(room))
		}
	}
	return nil
}

func (l *LoadMap) Copy() gen.RoomGen {
	return &LoadMap{loadMapBase: l.copyBase(), RoomTerrain: l.RoomTerrain}
}

func (l *LoadMap) String() string {
	return fmt.Sprintf("LoadMap: %s", l.MapID)
}

// Borders lists, per side, which border tiles halls may attach to
type Borders struct {
	North []bool `yaml:"north"`
	East  []bool `yaml:"east"`
	South []bool `yaml:"south"`
	West  []bool `yaml:"west"`
}

// Side returns the flags of one side
func (b Borders) Side(d world.Dir4) []bool {
	switch d {
	case world.North:
		return b.North
	case world.East:
		return b.East
	case world.South:
		return b.South
	case world.West:
		return b.West
	}
	return nil
}

func (b Borders) copy() Borders {
	return Borders{
		North: append([]bool(nil), b.North...),
		East:  append([]bool(nil), b.East...),
		South: append([]bool(nil), b.South...),
		West:  append([]bool(nil), b.West...),
	}
}

// LoadMapBordered stamps a stored map as a room with hall openings listed
// explicitly by the author
type LoadMapBordered struct {
	loadMapBase `yaml:",inline"`
	Borders     Borders `yaml:"borders"`
}

// NewLoadMapBordered creates a map room with explicit openings
func NewLoadMapBordered(mapID string, borders Borders) *LoadMapBordered {
	return &LoadMapBordered{loadMapBase: loadMapBase{MapID: mapID}, Borders: borders}
}

func (l *LoadMapBordered) PrepareSize(r *rng.Rand, size world.Loc) error {
	if err := prepareSize(&l.RoomGenBase, size); err != nil {
		return err
	}
	if !l.nativeSize() {
		openAll(&l.RoomGenBase)
		return nil
	}
	for _, d := range world.AllDir4() {
		flags := l.Borders.Side(d)
		if want := len(l.FulfillableBorder(d)); len(flags) != want {
			return fmt.Errorf("map room %q: %v border has %d flags, want %d", l.MapID, d, len(flags), want)
		}
		for i, open := range flags {
			l.SetBorder(d, i, open)
		}
	}
	return nil
}

func (l *LoadMapBordered) Copy() gen.RoomGen {
	return &LoadMapBordered{loadMapBase: l.copyBase(), Borders: l.Borders.copy()}
}

func (l *LoadMapBordered) String() string {
	return fmt.Sprintf("LoadMapBordered: %s", l.MapID)
}
