package steps

import (
	"errors"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/rooms"
)

// pickRoom copies a room template from the list, prepares it and sizes it
// to at most limit. A zero-area result is reported with skip set.
func pickRoom(ctx gen.Context, list *rng.SpawnList[gen.RoomGen], limit world.Loc) (g gen.RoomGen, skip bool, err error) {
	tmpl, err := list.Pick(ctx.Rand())
	if err != nil {
		return nil, false, err
	}
	g, err = sizeRoom(ctx, tmpl, limit)
	if errors.Is(err, rooms.ErrDegenerateRoom) {
		gen.Logger.Debug("skipping degenerate room", "room", tmpl, "limit", limit.String())
		return nil, true, nil
	}
	return g, false, err
}

// sizeRoom copies and prepares a room no larger than limit
func sizeRoom(ctx gen.Context, tmpl gen.RoomGen, limit world.Loc) (gen.RoomGen, error) {
	g := tmpl.Copy()
	if err := gen.PrepareRoom(ctx, g); err != nil {
		return nil, err
	}
	size := g.ProposeSize(ctx.Rand())
	size.X = min(size.X, limit.X)
	size.Y = min(size.Y, limit.Y)
	if err := g.PrepareSize(ctx.Rand(), size); err != nil {
		return nil, err
	}
	return g, nil
}

// placeIn moves a room to a random position inside bounds
func placeIn(r *rng.Rand, g gen.RoomGen, bounds world.Rect) {
	size := g.Draw().Size()
	g.SetLoc(world.Loc{
		X: bounds.X + r.Range(0, bounds.W-size.X+1),
		Y: bounds.Y + r.Range(0, bounds.H-size.Y+1),
	})
}

// newJunction creates a one-tile room at l
func newJunction(l world.Loc) (gen.RoomGen, error) {
	j := rooms.NewDefault()
	if err := j.PrepareSize(nil, world.Loc{X: 1, Y: 1}); err != nil {
		return nil, err
	}
	j.SetLoc(l)
	return j, nil
}

func specialComponents(tags []string) gen.Components {
	c := gen.NewComponents(tags...)
	c.Put(gen.ComponentImmutable)
	c.Put(gen.ComponentSpecial)
	return c
}

// withImmutable appends the filter that protects immutable rooms
func withImmutable(filters []gen.RoomFilter) []gen.RoomFilter {
	out := append([]gen.RoomFilter(nil), filters...)
	return append(out, gen.ImmutableFilter)
}

// RoomPicker is implemented by steps drawing rooms from a spawn list
type RoomPicker interface {
	RoomList() *rng.SpawnList[gen.RoomGen]
}

// RoomSelector is implemented by steps that only replace rooms passing
// their filters
type RoomSelector interface {
	FilterList() *[]gen.RoomFilter
}

func (s *GridRooms) RoomList() *rng.SpawnList[gen.RoomGen] { return &s.Rooms }
func (s *FloorRooms) RoomList() *rng.SpawnList[gen.RoomGen] { return &s.Rooms }
func (s *BSPRooms) RoomList() *rng.SpawnList[gen.RoomGen] { return &s.Rooms }
func (s *SetGridSpecialRoom) RoomList() *rng.SpawnList[gen.RoomGen] { return &s.Rooms }
func (s *SetSpecialRoom) RoomList() *rng.SpawnList[gen.RoomGen] { return &s.Rooms }

func (s *SetGridSpecialRoom) FilterList() *[]gen.RoomFilter { return &s.Filters }
func (s *SetSpecialRoom) FilterList() *[]gen.RoomFilter { return &s.Filters }
