package maps

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/autotile"
)

// ErrUnknownTileset is returned when a texture names a tileset the catalog lacks
var ErrUnknownTileset = errors.New("unknown autotile tileset")

// tilesetsInOrder collects tileset ids once each, keeping first-seen order
type tilesetsInOrder struct {
	seen  mapset.Set[string]
	order []string
}

func newTilesetsInOrder() *tilesetsInOrder {
	return &tilesetsInOrder{seen: mapset.New[string]()}
}

func (t *tilesetsInOrder) add(id string) {
	if id == "" || t.seen.Has(id) {
		return
	}
	t.seen.Put(id)
	t.order = append(t.order, id)
}

// CalculateTerrainAutotiles recomputes terrain textures and neighbour codes
// inside the rectangle. Tiles with a stable texture are never touched; every
// other tile first takes its terrain's default texture from TextureMap.
// Tiles outside a non-wrapping map count as connected neighbours.
func (m *Map) CalculateTerrainAutotiles(catalog autotile.Catalog, rectStart, rectSize world.Loc) error {
	noise := rng.NewNoise(m.Seed)
	rect := world.NewRect(rectStart, rectSize)

	tilesets := newTilesetsInOrder()
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			tile := m.Tile(world.Loc{X: x, Y: y})
			if tile == nil || tile.Data.StableTex {
				continue
			}
			if tex, ok := m.TextureMap[tile.Data.ID]; ok {
				tile.Data.TileTex = tex.Copy()
			}
			tilesets.add(tile.Data.TileTex.AutoTileset)
		}
	}

	for _, id := range tilesets.order {
		ts, ok := catalog.Tileset(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTileset, id)
		}
		ts.Area(noise, rect,
			func(l world.Loc, code, variant int) {
				if tile := m.Tile(l); tile != nil {
					tile.Data.TileTex.NeighborCode = code
					tile.Data.TileTex.Variant = variant
				}
			},
			func(l world.Loc) bool {
				tile := m.Tile(l)
				return tile != nil && !tile.Data.StableTex && tile.Data.TileTex.AutoTileset == id
			},
			func(l world.Loc) bool {
				tile := m.Tile(l)
				if tile == nil {
					return true
				}
				return tile.Data.TileTex.AutoTileset == id || tile.Data.TileTex.AssociatedWith(id)
			})
	}
	return nil
}

// CalculateLayerAutotiles recomputes neighbour codes of every visible
// decoration layer inside the rectangle. Layers only blend with themselves.
func (m *Map) CalculateLayerAutotiles(catalog autotile.Catalog, rectStart, rectSize world.Loc) error {
	noise := rng.NewNoise(m.Seed)
	rect := world.NewRect(rectStart, rectSize)

	for _, layer := range m.Layers {
		if !layer.Visible {
			continue
		}
		cell := func(l world.Loc) *AutoTile {
			l, ok := m.InBounds(l)
			if !ok {
				return nil
			}
			return layer.At(l)
		}

		tilesets := newTilesetsInOrder()
		for y := rect.Y; y < rect.Y+rect.H; y++ {
			for x := rect.X; x < rect.X+rect.W; x++ {
				if c := cell(world.Loc{X: x, Y: y}); c != nil {
					tilesets.add(c.AutoTileset)
				}
			}
		}

		for _, id := range tilesets.order {
			ts, ok := catalog.Tileset(id)
			if !ok {
				return fmt.Errorf("layer %s: %w: %s", layer.Name, ErrUnknownTileset, id)
			}
			ts.Area(noise, rect,
				func(l world.Loc, code, variant int) {
					if c := cell(l); c != nil {
						c.NeighborCode = code
						c.Variant = variant
					}
				},
				func(l world.Loc) bool {
					c := cell(l)
					return c != nil && c.AutoTileset == id
				},
				func(l world.Loc) bool {
					c := cell(l)
					if c == nil {
						return true
					}
					return c.AutoTileset == id || c.AssociatedWith(id)
				})
		}
	}
	return nil
}

// MapModified recalculates all textures in the region up for recalculation
func (m *Map) MapModified(catalog autotile.Catalog, rectStart, rectSize world.Loc) error {
	if err := m.CalculateLayerAutotiles(catalog, rectStart, rectSize); err != nil {
		return err
	}
	return m.CalculateTerrainAutotiles(catalog, rectStart, rectSize)
}
