package steps

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// ErrNoFreeTile is returned when stairs cannot be placed
var ErrNoFreeTile = errors.New("no free tile")

// freeTiles lists passable, unoccupied tiles in scan order. On planned
// floors only tiles inside non-junction rooms count.
func freeTiles(c gen.TiledContext, mask gen.PostProcType) []world.Loc {
	m := c.Map()
	if m == nil {
		return nil
	}
	inRoom := func(world.Loc) bool { return true }
	if fp, ok := c.(gen.FloorPlanContext); ok && fp.FloorPlan() != nil && fp.FloorPlan().RoomCount() > 0 {
		plan := fp.FloorPlan()
		inRoom = func(l world.Loc) bool {
			for _, room := range plan.Rooms {
				if !room.Components.Has(gen.ComponentJunction) && room.Gen.Draw().Contains(l) {
					return true
				}
			}
			return false
		}
	}
	entries := make(map[world.Loc]bool, len(m.EntryPoints))
	for _, ep := range m.EntryPoints {
		entries[ep.Loc] = true
	}

	var out []world.Loc
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			l := world.Loc{X: x, Y: y}
			if c.TileBlocked(l) || m.Tile(l).Effect != "" || entries[l] {
				continue
			}
			if pp := c.PostProc(l); pp != nil && pp.Status&mask != 0 {
				continue
			}
			if m.ItemAt(l) >= 0 || m.CharAt(l) || !inRoom(l) {
				continue
			}
			out = append(out, l)
		}
	}
	return out
}

// openTiles drops choke points from tiles so spawns do not block paths.
// The list is returned unchanged when every tile is a choke point.
func openTiles(c gen.TiledContext, tiles []world.Loc) []world.Loc {
	open := func(l world.Loc) bool { return !c.TileBlocked(l) }
	var out []world.Loc
	for _, l := range tiles {
		if !world.IsChokePoint(l, open) {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return tiles
	}
	return out
}

// takeTile removes and returns a random tile from the list
func takeTile(r *rng.Rand, tiles *[]world.Loc) (world.Loc, bool) {
	if len(*tiles) == 0 {
		return world.Loc{}, false
	}
	i := r.IntN(len(*tiles))
	l := (*tiles)[i]
	*tiles = append((*tiles)[:i], (*tiles)[i+1:]...)
	return l, true
}

// FloorStairs places entrances and exits on free tiles. Entrances and
// exits already on the map count toward the totals.
type FloorStairs struct {
	Entrances int `yaml:"entrances"`
	Exits     int `yaml:"exits"`
}

// NewFloorStairs creates a step placing one entrance and one exit
func NewFloorStairs() *FloorStairs {
	return &FloorStairs{Entrances: 1, Exits: 1}
}

func (s *FloorStairs) CanApply(ctx gen.Context) bool { return gen.Is[gen.StairsGenContext](ctx) }

func (s *FloorStairs) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.StairsGenContext) error {
		m := c.Map()
		if m == nil {
			return gen.ErrNoMap
		}
		tiles := freeTiles(c, gen.PostProcPanel)
		for i := len(m.EntryPoints); i < s.Entrances; i++ {
			l, ok := takeTile(c.Rand(), &tiles)
			if !ok {
				return fmt.Errorf("entrance %d: %w", i, ErrNoFreeTile)
			}
			c.AddStart(maps.EntryPoint{Loc: l, Dir: world.Dir8South})
		}
		for i := len(c.Ends()); i < s.Exits; i++ {
			l, ok := takeTile(c.Rand(), &tiles)
			if !ok {
				return fmt.Errorf("exit %d: %w", i, ErrNoFreeTile)
			}
			if err := c.AddEnd(l); err != nil {
				return err
			}
		}
		return nil
	})
}

// ItemSpawn scatters items over free tiles not protected from items
type ItemSpawn struct {
	Items  rng.SpawnList[string] `yaml:"items"`
	Amount rng.RandRange         `yaml:"amount"`
}

func (s *ItemSpawn) CanApply(ctx gen.Context) bool { return gen.Is[gen.TiledContext](ctx) }

func (s *ItemSpawn) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.TiledContext) error {
		if c.Map() == nil {
			return gen.ErrNoMap
		}
		r := c.Rand()
		tiles := freeTiles(c, gen.PostProcItem)
		n := s.Amount.Pick(r)
		for i := 0; i < n; i++ {
			id, err := s.Items.Pick(r)
			if err != nil {
				return err
			}
			l, ok := takeTile(r, &tiles)
			if !ok {
				gen.Logger.Debug("out of item tiles", "map", c.ID(), "placed", i, "wanted", n)
				return nil
			}
			c.Map().Items = append(c.Map().Items, maps.MapItem{ID: id, Loc: l})
		}
		return nil
	})
}

// TeamSpec describes one team that may spawn
type TeamSpec struct {
	Species []string      `yaml:"species"`
	Level   rng.RandRange `yaml:"level"`
}

// TeamSpawn places teams of characters on free tiles
type TeamSpawn struct {
	Teams  rng.SpawnList[TeamSpec] `yaml:"teams"`
	Amount rng.RandRange           `yaml:"amount"`
}

func (s *TeamSpawn) CanApply(ctx gen.Context) bool { return gen.Is[gen.TiledContext](ctx) }

func (s *TeamSpawn) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.TiledContext) error {
		m := c.Map()
		if m == nil {
			return gen.ErrNoMap
		}
		r := c.Rand()
		tiles := openTiles(c, freeTiles(c, 0))
		n := s.Amount.Pick(r)
		for i := 0; i < n; i++ {
			spec, err := s.Teams.Pick(r)
			if err != nil {
				return err
			}
			team := &maps.Team{}
			for _, species := range spec.Species {
				l, ok := takeTile(r, &tiles)
				if !ok {
					break
				}
				team.Members = append(team.Members, maps.Character{Species: species, Level: spec.Level.Pick(r), Loc: l})
			}
			if len(team.Members) == 0 {
				gen.Logger.Debug("out of team tiles", "map", c.ID(), "placed", i, "wanted", n)
				return nil
			}
			m.Teams = append(m.Teams, team)
		}
		return nil
	})
}

// MoneySpawn splits a money budget into piles on free tiles. The budget
// comes from Amount, or from the map's money range when Amount is unset.
type MoneySpawn struct {
	Amount    rng.RandRange `yaml:"amount,omitempty"`
	Divisions rng.RandRange `yaml:"divisions"`
}

func (s *MoneySpawn) CanApply(ctx gen.Context) bool { return gen.Is[gen.TiledContext](ctx) }

func (s *MoneySpawn) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.TiledContext) error {
		m := c.Map()
		if m == nil {
			return gen.ErrNoMap
		}
		if s.Amount != (rng.RandRange{}) {
			m.Money = s.Amount
		}
		r := c.Rand()
		total := m.Money.Pick(r)
		if total <= 0 {
			return nil
		}
		piles := max(1, min(s.Divisions.Pick(r), total))
		tiles := freeTiles(c, gen.PostProcItem)
		for i := 0; i < piles; i++ {
			l, ok := takeTile(r, &tiles)
			if !ok {
				break
			}
			amount := total / piles
			if i < total%piles {
				amount++
			}
			m.Items = append(m.Items, maps.MapItem{ID: maps.MoneyItem, Amount: amount, Loc: l})
		}
		return nil
	})
}

// TerrainFill paints a rectangle with one terrain
type TerrainFill struct {
	Rect    world.Rect `yaml:"rect"`
	Terrain string     `yaml:"terrain"`
}

func (s *TerrainFill) CanApply(ctx gen.Context) bool { return gen.Is[gen.TiledContext](ctx) }

func (s *TerrainFill) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.TiledContext) error {
		terrain := maps.NewTerrain(s.Terrain)
		if s.Terrain == "" {
			terrain = c.RoomTerrain()
		}
		for y := s.Rect.Y; y < s.Rect.Y+s.Rect.H; y++ {
			for x := s.Rect.X; x < s.Rect.X+s.Rect.W; x++ {
				c.SetTile(world.Loc{X: x, Y: y}, maps.Tile{Data: terrain})
			}
		}
		return nil
	})
}

// MappedRoom uses a stored map as the whole floor
type MappedRoom struct {
	MapID string `yaml:"map"`
}

func (s *MappedRoom) CanApply(ctx gen.Context) bool { return gen.Is[gen.MapLoadGenContext](ctx) }

func (s *MappedRoom) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.MapLoadGenContext) error {
		store := c.Env().Maps
		if store == nil {
			return fmt.Errorf("loading floor %q: no map store", s.MapID)
		}
		m, err := store.GetMap(s.MapID)
		if err != nil {
			return err
		}
		c.SetMap(m)
		// authored terrain is final
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				c.PostProc(world.Loc{X: x, Y: y}).AddMask(gen.PostProcTerrain)
			}
		}
		return nil
	})
}

func (s *MappedRoom) Summary() string {
	return "map " + s.MapID
}
