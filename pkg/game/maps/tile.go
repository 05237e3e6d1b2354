package maps

import (
	"slices"

	"delvegen/pkg/engine/world"
)

// Terrain ids understood by the generator. Other ids are allowed and are
// treated as passable.
const (
	TerrainFloor       = "floor"
	TerrainWall        = "wall"
	TerrainUnbreakable = "unbreakable"
	TerrainWater       = "water"
)

// AutoTile is the texture state of a tile or decoration cell
type AutoTile struct {
	AutoTileset  string   `json:"autotileset,omitempty"`
	Associates   []string `json:"associates,omitempty"`
	NeighborCode int      `json:"neighbor_code,omitempty"`
	Variant      int      `json:"variant,omitempty"`
}

// Copy returns a deep copy
func (a AutoTile) Copy() AutoTile {
	a.Associates = slices.Clone(a.Associates)
	return a
}

// AssociatedWith returns true if the texture blends with the given tileset
func (a AutoTile) AssociatedWith(tileset string) bool {
	return slices.Contains(a.Associates, tileset)
}

// TerrainTile is the terrain occupying a tile
type TerrainTile struct {
	ID string `json:"id"`
	// StableTex marks an author-locked texture that autotiling never touches
	StableTex bool     `json:"stable_tex,omitempty"`
	TileTex   AutoTile `json:"tex"`
}

// NewTerrain creates terrain with the given id and no texture
func NewTerrain(id string) TerrainTile {
	return TerrainTile{ID: id}
}

// Copy returns a deep copy
func (t TerrainTile) Copy() TerrainTile {
	t.TileTex = t.TileTex.Copy()
	return t
}

// Blocking returns true for terrain nothing can walk through
func (t TerrainTile) Blocking() bool {
	return t.ID == TerrainWall || t.ID == TerrainUnbreakable || t.ID == ""
}

// Tile is one cell of the map
type Tile struct {
	Data TerrainTile `json:"data"`
	// Effect is an optional tile effect (trap, stairs) id
	Effect string `json:"effect,omitempty"`
}

// TileEquivalent returns true if both tiles have the same terrain and effect
func (t Tile) TileEquivalent(o Tile) bool {
	return t.Data.ID == o.Data.ID && t.Effect == o.Effect
}

// Copy returns a deep copy
func (t Tile) Copy() Tile {
	t.Data = t.Data.Copy()
	return t
}

// MapItem is an item lying on the floor
type MapItem struct {
	ID     string    `json:"id"`
	Amount int       `json:"amount,omitempty"`
	Loc    world.Loc `json:"loc"`
}

// MoneyItem is the item id used for money piles
const MoneyItem = "money"

// Character is a spawned team member
type Character struct {
	Species string    `json:"species"`
	Level   int       `json:"level"`
	Loc     world.Loc `json:"loc"`
}

// Team is a group of characters spawned together
type Team struct {
	Members []Character `json:"members"`
}

// Copy returns a deep copy
func (t *Team) Copy() *Team {
	return &Team{Members: slices.Clone(t.Members)}
}

// EntryPoint is a location where players may enter the map
type EntryPoint struct {
	Loc world.Loc  `json:"loc"`
	Dir world.Dir8 `json:"dir"`
}
