package maps

import (
	"errors"
	"testing"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/autotile"
)

func wallCatalog() autotile.MapCatalog {
	c := autotile.MapCatalog{}
	c.Add(&autotile.Tileset{ID: "wall_ts", Mode: autotile.Neighbors4, Variants: 1})
	c.Add(&autotile.Tileset{ID: "rock_ts", Mode: autotile.Neighbors4, Variants: 1})
	return c
}

// wallMap returns a 5x5 map of walls with a floor interior.
func wallMap() *Map {
	m := NewMap("m", 5, 5, NewTerrain(TerrainWall))
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			m.Tiles[y][x].Data = NewTerrain(TerrainFloor)
		}
	}
	m.TextureMap[TerrainWall] = AutoTile{AutoTileset: "wall_ts"}
	return m
}

func TestCalculateTerrainAutotiles_StableTileKeepsCode(t *testing.T) {
	m := wallMap()
	stable := &m.Tiles[0][2]
	stable.Data.StableTex = true
	stable.Data.TileTex = AutoTile{AutoTileset: "wall_ts", NeighborCode: 99}

	if err := m.CalculateTerrainAutotiles(wallCatalog(), world.Loc{}, world.Loc{X: 5, Y: 5}); err != nil {
		t.Fatalf("CalculateTerrainAutotiles: %v", err)
	}
	if stable.Data.TileTex.NeighborCode != 99 {
		t.Errorf("stable tile NeighborCode = %d, want 99", stable.Data.TileTex.NeighborCode)
	}

	// top-left corner: north and west are outside (connected), east and south are walls
	corner := m.Tiles[0][0].Data.TileTex
	if corner.AutoTileset != "wall_ts" {
		t.Fatalf("corner tileset = %q, want wall_ts", corner.AutoTileset)
	}
	if corner.NeighborCode != 15 {
		t.Errorf("corner NeighborCode = %d, want 15", corner.NeighborCode)
	}
	// top edge middle-left: south is floor
	edge := m.Tiles[0][1].Data.TileTex
	if edge.NeighborCode != 1|2|8 {
		t.Errorf("edge NeighborCode = %d, want %d", edge.NeighborCode, 1|2|8)
	}
}

func TestCalculateTerrainAutotiles_Associates(t *testing.T) {
	m := wallMap()
	m.TextureMap[TerrainWater] = AutoTile{AutoTileset: "rock_ts", Associates: []string{"wall_ts"}}
	m.Tiles[1][1].Data = NewTerrain(TerrainWater)

	if err := m.CalculateTerrainAutotiles(wallCatalog(), world.Loc{}, world.Loc{X: 5, Y: 5}); err != nil {
		t.Fatalf("CalculateTerrainAutotiles: %v", err)
	}
	// (1,0) now sees the associated rock tile to its south
	if got := m.Tiles[0][1].Data.TileTex.NeighborCode; got != 15 {
		t.Errorf("NeighborCode next to associated tile = %d, want 15", got)
	}
	// the rock tile only counts its own tileset: west/north walls are not rock
	if got := m.Tiles[1][1].Data.TileTex.NeighborCode; got != 0 {
		t.Errorf("rock NeighborCode = %d, want 0", got)
	}
}

func TestCalculateTerrainAutotiles_UnknownTileset(t *testing.T) {
	m := wallMap()
	m.TextureMap[TerrainWall] = AutoTile{AutoTileset: "missing"}
	err := m.CalculateTerrainAutotiles(wallCatalog(), world.Loc{}, world.Loc{X: 5, Y: 5})
	if !errors.Is(err, ErrUnknownTileset) {
		t.Errorf("err = %v, want ErrUnknownTileset", err)
	}
}

func TestCalculateLayerAutotiles(t *testing.T) {
	m := NewMap("m", 3, 1, NewTerrain(TerrainFloor))
	layer := m.AddLayer("deco")
	layer.Tiles[0][0].AutoTileset = "rock_ts"
	layer.Tiles[0][1].AutoTileset = "rock_ts"

	if err := m.MapModified(wallCatalog(), world.Loc{}, world.Loc{X: 3, Y: 1}); err != nil {
		t.Fatalf("MapModified: %v", err)
	}
	// (0,0): north, south, west outside; east is rock
	if got := layer.Tiles[0][0].NeighborCode; got != 15 {
		t.Errorf("NeighborCode = %d, want 15", got)
	}
	if got := layer.Tiles[0][2].NeighborCode; got != 0 {
		t.Errorf("untiled cell NeighborCode = %d, want 0", got)
	}
}
