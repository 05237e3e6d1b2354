package maps

import (
	"slices"

	"delvegen/pkg/engine/world"
)

// TileSize is the pixel size of one tile, used for decoration positions
const TileSize = 24

// DrawLayer orders decoration layers relative to characters
type DrawLayer int

// DrawLayer constants
const (
	DrawBottom DrawLayer = iota
	DrawBack
	DrawNormal
	DrawFront
	DrawTop
)

// MapLayer is a decoration tile layer drawn over the terrain
type MapLayer struct {
	Name    string       `json:"name"`
	Layer   DrawLayer    `json:"layer"`
	Visible bool         `json:"visible"`
	Tiles   [][]AutoTile `json:"tiles"` // [y][x]
}

// NewMapLayer creates an empty, visible layer
func NewMapLayer(name string, width, height int) *MapLayer {
	tiles := make([][]AutoTile, height)
	for y := range tiles {
		tiles[y] = make([]AutoTile, width)
	}
	return &MapLayer{Name: name, Visible: true, Tiles: tiles}
}

// At returns a pointer to the layer cell, or nil if out of range
func (l *MapLayer) At(loc world.Loc) *AutoTile {
	if loc.Y < 0 || loc.Y >= len(l.Tiles) || loc.X < 0 || loc.X >= len(l.Tiles[loc.Y]) {
		return nil
	}
	return &l.Tiles[loc.Y][loc.X]
}

// Copy returns a deep copy
func (l *MapLayer) Copy() *MapLayer {
	c := &MapLayer{Name: l.Name, Layer: l.Layer, Visible: l.Visible, Tiles: make([][]AutoTile, len(l.Tiles))}
	for y, row := range l.Tiles {
		c.Tiles[y] = make([]AutoTile, len(row))
		for x, t := range row {
			c.Tiles[y][x] = t.Copy()
		}
	}
	return c
}

// GroundAnim is an animated decoration positioned in pixels
type GroundAnim struct {
	AnimID string    `json:"anim"`
	MapLoc world.Loc `json:"map_loc"`
}

// AnimLayer is a layer of animated decorations
type AnimLayer struct {
	Name    string       `json:"name"`
	Layer   DrawLayer    `json:"layer"`
	Visible bool         `json:"visible"`
	Anims   []GroundAnim `json:"anims"`
}

// Copy returns a deep copy
func (l *AnimLayer) Copy() *AnimLayer {
	c := *l
	c.Anims = slices.Clone(l.Anims)
	return &c
}
