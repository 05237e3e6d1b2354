// Package maps holds the finished-map data model shared by generation,
// storage and the preview tools.
package maps

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
)

// ErrOutOfBounds is returned when content is placed outside the map
var ErrOutOfBounds = errors.New("location out of map bounds")

// Map is a tile map with its layers, spawns and entry points
type Map struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Wrap makes coordinates wrap around the edges instead of clamping
	Wrap bool `json:"wrap,omitempty"`
	// Seed keys the texture noise; generation sets it from the floor seed
	Seed uint64 `json:"seed,omitempty"`

	Tiles       [][]Tile      `json:"tiles"` // [y][x]
	Layers      []*MapLayer   `json:"layers,omitempty"`
	Decorations []*AnimLayer  `json:"decorations,omitempty"`
	Items       []MapItem     `json:"items,omitempty"`
	Teams       []*Team       `json:"teams,omitempty"`
	EntryPoints []EntryPoint  `json:"entry_points,omitempty"`
	Money       rng.RandRange `json:"money"`

	// TextureMap gives the default texture for each terrain id
	TextureMap map[string]AutoTile `json:"texture_map,omitempty"`
}

// NewMap creates a map filled with the given terrain
func NewMap(id string, width, height int, fill TerrainTile) *Map {
	m := &Map{
		ID:         id,
		Width:      width,
		Height:     height,
		TextureMap: make(map[string]AutoTile),
	}
	m.Tiles = make([][]Tile, height)
	for y := range m.Tiles {
		m.Tiles[y] = make([]Tile, width)
		for x := range m.Tiles[y] {
			m.Tiles[y][x] = Tile{Data: fill.Copy()}
		}
	}
	return m
}

// Bounds returns the rectangle covering the map
func (m *Map) Bounds() world.Rect {
	return world.Rect{W: m.Width, H: m.Height}
}

// InBounds resolves a location against the map edges. Wrapping maps fold
// the location back inside; other maps report false when it lies outside.
func (m *Map) InBounds(l world.Loc) (world.Loc, bool) {
	if m.Wrap {
		if m.Width <= 0 || m.Height <= 0 {
			return l, false
		}
		l.X = ((l.X % m.Width) + m.Width) % m.Width
		l.Y = ((l.Y % m.Height) + m.Height) % m.Height
		return l, true
	}
	return l, m.Bounds().Contains(l)
}

// Tile returns the tile at a location, or nil if it is outside the map
func (m *Map) Tile(l world.Loc) *Tile {
	l, ok := m.InBounds(l)
	if !ok {
		return nil
	}
	return &m.Tiles[l.Y][l.X]
}

// IsBlocked returns true for walls and for locations outside the map
func (m *Map) IsBlocked(l world.Loc) bool {
	t := m.Tile(l)
	return t == nil || t.Data.Blocking()
}

// AddLayer appends an empty decoration layer sized to the map
func (m *Map) AddLayer(name string) *MapLayer {
	layer := NewMapLayer(name, m.Width, m.Height)
	m.Layers = append(m.Layers, layer)
	return layer
}

// ItemAt returns the index of the item at a location, or -1
func (m *Map) ItemAt(l world.Loc) int {
	for i, item := range m.Items {
		if item.Loc == l {
			return i
		}
	}
	return -1
}

// CharAt returns true if any team member stands at the location
func (m *Map) CharAt(l world.Loc) bool {
	for _, team := range m.Teams {
		for _, c := range team.Members {
			if c.Loc == l {
				return true
			}
		}
	}
	return false
}

// Validate checks the map data for consistency
func (m *Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", m.Width, m.Height)
	}
	if len(m.Tiles) != m.Height {
		return fmt.Errorf("tiles array height mismatch: expected %d, got %d", m.Height, len(m.Tiles))
	}
	for y, row := range m.Tiles {
		if len(row) != m.Width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, m.Width, len(row))
		}
	}
	for i, layer := range m.Layers {
		if len(layer.Tiles) != m.Height {
			return fmt.Errorf("layer %d (%s) height mismatch: expected %d, got %d", i, layer.Name, m.Height, len(layer.Tiles))
		}
		for y, row := range layer.Tiles {
			if len(row) != m.Width {
				return fmt.Errorf("layer %d (%s) width mismatch at row %d", i, layer.Name, y)
			}
		}
	}
	bounds := m.Bounds()
	for _, item := range m.Items {
		if !bounds.Contains(item.Loc) {
			return fmt.Errorf("item %s at %v: %w", item.ID, item.Loc, ErrOutOfBounds)
		}
	}
	for _, ep := range m.EntryPoints {
		if !bounds.Contains(ep.Loc) {
			return fmt.Errorf("entry point at %v: %w", ep.Loc, ErrOutOfBounds)
		}
	}
	return nil
}

// Clone returns a deep copy of the map
func (m *Map) Clone() *Map {
	c := *m
	c.Tiles = make([][]Tile, len(m.Tiles))
	for y, row := range m.Tiles {
		c.Tiles[y] = make([]Tile, len(row))
		for x, t := range row {
			c.Tiles[y][x] = t.Copy()
		}
	}
	c.Layers = make([]*MapLayer, len(m.Layers))
	for i, l := range m.Layers {
		c.Layers[i] = l.Copy()
	}
	c.Decorations = make([]*AnimLayer, len(m.Decorations))
	for i, l := range m.Decorations {
		c.Decorations[i] = l.Copy()
	}
	c.Items = append([]MapItem(nil), m.Items...)
	c.Teams = make([]*Team, len(m.Teams))
	for i, t := range m.Teams {
		c.Teams[i] = t.Copy()
	}
	c.EntryPoints = append([]EntryPoint(nil), m.EntryPoints...)
	c.TextureMap = make(map[string]AutoTile, len(m.TextureMap))
	for id, tex := range m.TextureMap {
		c.TextureMap[id] = tex.Copy()
	}
	return &c
}
