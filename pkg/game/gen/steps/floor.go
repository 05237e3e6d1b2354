package steps

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// DefaultAttempts is how often FloorRooms retries placing one room
const DefaultAttempts = 10

// FloorRooms scatters rooms over a free-form plan. Each room is joined to
// the nearest room placed before it.
type FloorRooms struct {
	Rooms      rng.SpawnList[gen.RoomGen] `yaml:"rooms"`
	RoomCount  rng.RandRange              `yaml:"room_count"`
	Attempts   int                        `yaml:"attempts,omitempty"`
	Components []string                   `yaml:"components,omitempty"`
}

func (s *FloorRooms) CanApply(ctx gen.Context) bool { return gen.Is[gen.FloorPlanContext](ctx) }

func (s *FloorRooms) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.FloorPlanContext) error {
		plan := c.FloorPlan()
		if plan == nil {
			return gen.ErrNoPlan
		}
		attempts := s.Attempts
		if attempts <= 0 {
			attempts = DefaultAttempts
		}
		inner := planInterior(plan)
		count := s.RoomCount.Pick(c.Rand())
		for i := 0; i < count; i++ {
			for a := 0; a < attempts; a++ {
				placed, err := s.tryPlace(c, plan, inner)
				if err != nil {
					return err
				}
				if placed {
					break
				}
			}
		}
		return nil
	})
}

func (s *FloorRooms) tryPlace(c gen.FloorPlanContext, plan *gen.FloorPlan, inner world.Rect) (bool, error) {
	g, skip, err := pickRoom(c, &s.Rooms, inner.Size())
	if err != nil || skip {
		return false, err
	}
	placeIn(c.Rand(), g, inner)
	// keep a wall between rooms so halls have somewhere to run
	for _, room := range plan.Rooms {
		if room.Gen.Draw().Inflate(1).Intersects(g.Draw()) {
			return false, nil
		}
	}
	idx, err := plan.AddRoom(g, gen.NewComponents(s.Components...))
	if err != nil {
		return false, nil
	}
	if nearest := nearestRoom(plan, idx); nearest >= 0 {
		plan.Connect(idx, nearest)
	}
	return true, nil
}

// planInterior is the area rooms may use. Two tiles are kept clear at the
// edge so halls never run along the sealed border.
func planInterior(plan *gen.FloorPlan) world.Rect {
	return plan.Bounds().Inflate(-2)
}

// nearestRoom returns the room placed before idx closest to it
func nearestRoom(plan *gen.FloorPlan, idx int) int {
	center := plan.Rooms[idx].Gen.Draw().Center()
	best, bestDist := -1, 0
	for i := 0; i < idx; i++ {
		d := plan.Rooms[i].Gen.Draw().Center().ManhattanDistance(center)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (s *FloorRooms) String() string {
	return fmt.Sprintf("FloorRooms: %v rooms", s.RoomCount)
}

// DrawFloorToTile draws every planned room and carves a hall for each
// connection. Halls leave and enter rooms only through fulfillable border
// tiles; connections with no usable border are skipped.
type DrawFloorToTile struct{}

func (s *DrawFloorToTile) CanApply(ctx gen.Context) bool { return gen.Is[gen.FloorPlanContext](ctx) }

func (s *DrawFloorToTile) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.FloorPlanContext) error {
		plan := c.FloorPlan()
		if plan == nil {
			return gen.ErrNoPlan
		}
		for i, room := range plan.Rooms {
			if err := room.Gen.DrawOnMap(c); err != nil {
				return fmt.Errorf("room %d: %w", i, err)
			}
		}
		for _, conn := range plan.Connections {
			a, b := plan.Rooms[conn.A].Gen, plan.Rooms[conn.B].Gen
			if !carveHall(c, a, b) {
				gen.Logger.Debug("no border for hall", "map", c.ID(), "from", conn.A, "to", conn.B)
			}
		}
		return nil
	})
}

// facing returns the side of a that looks toward b
func facing(a, b world.Rect) world.Dir4 {
	gaps := map[world.Dir4]int{
		world.East:  b.X - (a.X + a.W),
		world.West:  a.X - (b.X + b.W),
		world.South: b.Y - (a.Y + a.H),
		world.North: a.Y - (b.Y + b.H),
	}
	best, bestGap := world.East, gaps[world.East]
	for _, d := range world.AllDir4() {
		if gaps[d] > bestGap {
			best, bestGap = d, gaps[d]
		}
	}
	return best
}

// exitTile picks a fulfillable border tile of g, preferring the given
// side, and returns the tile just outside it
func exitTile(r *rng.Rand, g gen.RoomGen, prefer world.Dir4) (border, outside world.Loc, side world.Dir4, ok bool) {
	sides := gen.OpenSides(g)
	if len(sides) == 0 {
		return border, outside, prefer, false
	}
	side = sides[0]
	for _, d := range sides {
		if d == prefer {
			side = d
			break
		}
	}
	var open []int
	for i, f := range g.FulfillableBorder(side) {
		if f {
			open = append(open, i)
		}
	}
	border = g.Draw().Edge(side)[open[r.IntN(len(open))]]
	return border, border.Move(side), side, true
}

// carveHall joins two drawn rooms with a three-segment corridor
func carveHall(c gen.TiledContext, a, b gen.RoomGen) bool {
	side := facing(a.Draw(), b.Draw())
	fromBorder, from, fromSide, ok := exitTile(c.Rand(), a, side)
	if !ok {
		return false
	}
	toBorder, to, _, ok := exitTile(c.Rand(), b, side.Opposite())
	if !ok {
		return false
	}

	dig(c, fromBorder)
	dig(c, toBorder)
	if fromSide.Vertical() {
		mid := (from.Y + to.Y) / 2
		carveVertical(c, from.X, from.Y, mid)
		carveHorizontal(c, mid, from.X, to.X)
		carveVertical(c, to.X, mid, to.Y)
	} else {
		mid := (from.X + to.X) / 2
		carveHorizontal(c, from.Y, from.X, mid)
		carveVertical(c, mid, from.Y, to.Y)
		carveHorizontal(c, to.Y, mid, to.X)
	}
	return true
}

// dig opens a blocked tile, leaving passable terrain such as water alone
func dig(c gen.TiledContext, l world.Loc) {
	if c.TileBlocked(l) {
		c.SetTile(l, maps.Tile{Data: c.RoomTerrain()})
	}
}

func carveHorizontal(c gen.TiledContext, y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		dig(c, world.Loc{X: x, Y: y})
	}
}

func carveVertical(c gen.TiledContext, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		dig(c, world.Loc{X: x, Y: y})
	}
}

// SetSpecialRoom replaces a random room of a free-form plan passing the
// filters, keeping its halls. Immutable rooms and junctions are never
// replaced and the new room is marked immutable.
type SetSpecialRoom struct {
	Rooms      rng.SpawnList[gen.RoomGen] `yaml:"rooms"`
	Filters    []gen.RoomFilter           `yaml:"-"`
	Components []string                   `yaml:"components,omitempty"`
}

func (s *SetSpecialRoom) CanApply(ctx gen.Context) bool { return gen.Is[gen.FloorPlanContext](ctx) }

func (s *SetSpecialRoom) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.FloorPlanContext) error {
		plan := c.FloorPlan()
		if plan == nil {
			return gen.ErrNoPlan
		}
		filters := append(withImmutable(s.Filters), gen.ComponentFilter{Components: []string{gen.ComponentJunction}, Negate: true})
		candidates := plan.FilterRooms(filters)
		r := c.Rand()
		r.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		tmpl, err := s.Rooms.Pick(r)
		if err != nil {
			return err
		}
		inner := planInterior(plan)
		for _, idx := range candidates {
			g, err := sizeRoom(c, tmpl, inner.Size())
			if err != nil {
				return fmt.Errorf("special room: %w", err)
			}
			old := plan.Rooms[idx]
			g.SetLoc(centerOn(g.Draw().Size(), old.Gen.Draw().Center(), inner))

			comps := gen.CopyComponents(old.Components)
			specialComponents(s.Components).Each(func(tag string) {
				comps.Put(tag)
			})
			err = plan.ReplaceRoom(idx, g, comps)
			if errors.Is(err, gen.ErrRoomOverlap) || errors.Is(err, gen.ErrRoomOutOfBounds) {
				continue
			}
			return err
		}
		gen.Logger.Debug("no room for special room", "map", c.ID(), "candidates", len(candidates))
		return nil
	})
}

// centerOn positions a rectangle of the given size around center, kept
// inside bounds
func centerOn(size, center world.Loc, bounds world.Rect) world.Loc {
	l := world.Loc{X: center.X - size.X/2, Y: center.Y - size.Y/2}
	l.X = max(bounds.X, min(l.X, bounds.X+bounds.W-size.X))
	l.Y = max(bounds.Y, min(l.Y, bounds.Y+bounds.H-size.Y))
	return l
}
