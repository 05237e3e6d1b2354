package steps

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
)

// GridRooms fills grid cells with rooms. At least one cell gets a room.
type GridRooms struct {
	Rooms       rng.SpawnList[gen.RoomGen] `yaml:"rooms"`
	FillPercent int                        `yaml:"fill_percent"`
	Components  []string                   `yaml:"components,omitempty"`
}

func (s *GridRooms) CanApply(ctx gen.Context) bool { return gen.Is[gen.GridPlanContext](ctx) }

func (s *GridRooms) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.GridPlanContext) error {
		grid := c.GridPlan()
		if grid == nil {
			return gen.ErrNoPlan
		}
		r := c.Rand()
		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				if grid.Room(x, y) != nil || !r.Percent(s.FillPercent) {
					continue
				}
				if err := s.place(c, grid, x, y); err != nil {
					return err
				}
			}
		}
		if grid.RoomCount() == 0 {
			return s.place(c, grid, r.IntN(grid.CellsX), r.IntN(grid.CellsY))
		}
		return nil
	})
}

func (s *GridRooms) place(c gen.GridPlanContext, grid *gen.GridPlan, x, y int) error {
	g, skip, err := pickRoom(c, &s.Rooms, grid.MaxRoomSize())
	if err != nil || skip {
		return err
	}
	return grid.SetRoom(x, y, g, gen.NewComponents(s.Components...))
}

func (s *GridRooms) String() string {
	return fmt.Sprintf("GridRooms: %d%% of cells", s.FillPercent)
}

// GridHalls joins every cell with a random spanning tree of halls, opens
// extra halls with ConnectPercent chance, then trims dead-end halls that
// lead to empty cells.
type GridHalls struct {
	ConnectPercent int `yaml:"connect_percent"`
}

func (s *GridHalls) CanApply(ctx gen.Context) bool { return gen.Is[gen.GridPlanContext](ctx) }

type cellEdge struct {
	x, y int
	dir  world.Dir4
}

func (s *GridHalls) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.GridPlanContext) error {
		grid := c.GridPlan()
		if grid == nil {
			return gen.ErrNoPlan
		}
		r := c.Rand()

		visited := mapset.New[int]()
		var frontier []cellEdge
		visit := func(x, y int) {
			visited.Put(y*grid.CellsX + x)
			for _, d := range world.AllDir4() {
				if nx, ny, ok := grid.Neighbor(x, y, d); ok && !visited.Has(ny*grid.CellsX+nx) {
					frontier = append(frontier, cellEdge{x: x, y: y, dir: d})
				}
			}
		}
		visit(r.IntN(grid.CellsX), r.IntN(grid.CellsY))
		for len(frontier) > 0 {
			i := r.IntN(len(frontier))
			e := frontier[i]
			frontier = append(frontier[:i], frontier[i+1:]...)
			nx, ny, _ := grid.Neighbor(e.x, e.y, e.dir)
			if visited.Has(ny*grid.CellsX + nx) {
				continue
			}
			grid.SetHall(e.x, e.y, e.dir, true)
			visit(nx, ny)
		}

		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				for _, d := range []world.Dir4{world.East, world.South} {
					if _, _, ok := grid.Neighbor(x, y, d); ok && !grid.HasHall(x, y, d) && r.Percent(s.ConnectPercent) {
						grid.SetHall(x, y, d, true)
					}
				}
			}
		}

		trimDeadEnds(grid)
		return nil
	})
}

// trimDeadEnds closes halls leading only to empty cells until none remain
func trimDeadEnds(grid *gen.GridPlan) {
	for changed := true; changed; {
		changed = false
		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				if grid.Room(x, y) != nil || grid.HallCount(x, y) != 1 {
					continue
				}
				for _, d := range world.AllDir4() {
					if grid.HasHall(x, y, d) {
						grid.SetHall(x, y, d, false)
					}
				}
				changed = true
			}
		}
	}
}

func (s *GridHalls) String() string {
	return fmt.Sprintf("GridHalls: %d%% extra", s.ConnectPercent)
}

// DrawGridToFloor converts the grid plan into the floor plan. Rooms are
// placed at random inside their cells; empty cells crossed by halls get
// a junction.
type DrawGridToFloor struct{}

func (s *DrawGridToFloor) CanApply(ctx gen.Context) bool { return gen.Is[gen.GridPlanContext](ctx) }

func (s *DrawGridToFloor) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.GridPlanContext) error {
		grid, plan := c.GridPlan(), c.FloorPlan()
		if grid == nil || plan == nil {
			return gen.ErrNoPlan
		}
		r := c.Rand()
		index := make([]int, grid.CellsX*grid.CellsY)
		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				i := y*grid.CellsX + x
				index[i] = -1
				bounds := grid.RoomBounds(x, y)

				var g gen.RoomGen
				var comps gen.Components
				if room := grid.Room(x, y); room != nil {
					g, comps = room.Gen, room.Components
					placeIn(r, g, bounds)
				} else if grid.HallCount(x, y) > 0 {
					j, err := newJunction(bounds.Center())
					if err != nil {
						return fmt.Errorf("cell (%d,%d): %w", x, y, err)
					}
					g, comps = j, gen.NewComponents(gen.ComponentJunction)
				} else {
					continue
				}
				idx, err := plan.AddRoom(g, comps)
				if err != nil {
					return fmt.Errorf("cell (%d,%d): %w", x, y, err)
				}
				index[i] = idx
			}
		}

		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				for _, d := range []world.Dir4{world.East, world.South} {
					nx, ny, ok := grid.Neighbor(x, y, d)
					if ok && grid.HasHall(x, y, d) {
						plan.Connect(index[y*grid.CellsX+x], index[ny*grid.CellsX+nx])
					}
				}
			}
		}
		return nil
	})
}

// SetGridSpecialRoom replaces the room of a random grid cell passing the
// filters. Immutable rooms are never replaced and the new room is marked
// immutable.
type SetGridSpecialRoom struct {
	Rooms      rng.SpawnList[gen.RoomGen] `yaml:"rooms"`
	Filters    []gen.RoomFilter           `yaml:"-"`
	Components []string                   `yaml:"components,omitempty"`
}

func (s *SetGridSpecialRoom) CanApply(ctx gen.Context) bool { return gen.Is[gen.GridPlanContext](ctx) }

func (s *SetGridSpecialRoom) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.GridPlanContext) error {
		grid := c.GridPlan()
		if grid == nil {
			return gen.ErrNoPlan
		}
		filters := withImmutable(s.Filters)
		var cells []world.Loc
		for y := 0; y < grid.CellsY; y++ {
			for x := 0; x < grid.CellsX; x++ {
				if room := grid.Room(x, y); room != nil && gen.PassesAll(room.Components, filters) {
					cells = append(cells, world.Loc{X: x, Y: y})
				}
			}
		}
		if len(cells) == 0 {
			gen.Logger.Debug("no cell for special room", "map", c.ID())
			return nil
		}
		cell := cells[c.Rand().IntN(len(cells))]

		tmpl, err := s.Rooms.Pick(c.Rand())
		if err != nil {
			return err
		}
		g, err := sizeRoom(c, tmpl, grid.MaxRoomSize())
		if err != nil {
			return fmt.Errorf("special room in cell %v: %w", cell, err)
		}
		return grid.SetRoom(cell.X, cell.Y, g, specialComponents(s.Components))
	})
}
