// Package steps holds the floor generation steps
package steps

import (
	"fmt"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
)

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid floor size %dx%d", w, h)
	}
	return nil
}

// InitTiles creates a blank map of wall terrain
type InitTiles struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Wrap   bool `yaml:"wrap,omitempty"`
}

func (s *InitTiles) CanApply(ctx gen.Context) bool { return gen.Is[gen.TiledContext](ctx) }

func (s *InitTiles) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.TiledContext) error {
		if err := checkSize(s.Width, s.Height); err != nil {
			return err
		}
		c.CreateNew(s.Width, s.Height, s.Wrap)
		return nil
	})
}

func (s *InitTiles) Summary() string {
	return fmt.Sprintf("%dx%d tiles", s.Width, s.Height)
}

// InitFloorPlan creates a blank map and an empty free-form room plan
type InitFloorPlan struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Wrap   bool `yaml:"wrap,omitempty"`
}

func (s *InitFloorPlan) CanApply(ctx gen.Context) bool { return gen.Is[gen.FloorPlanContext](ctx) }

func (s *InitFloorPlan) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.FloorPlanContext) error {
		if err := checkSize(s.Width, s.Height); err != nil {
			return err
		}
		c.CreateNew(s.Width, s.Height, s.Wrap)
		c.InitPlan(gen.NewFloorPlan(world.Loc{X: s.Width, Y: s.Height}, s.Wrap))
		return nil
	})
}

func (s *InitFloorPlan) Summary() string {
	return fmt.Sprintf("%dx%d floor plan", s.Width, s.Height)
}

// InitGridPlan creates a grid plan and a map sized to hold it
type InitGridPlan struct {
	CellsX     int  `yaml:"cells_x"`
	CellsY     int  `yaml:"cells_y"`
	CellWidth  int  `yaml:"cell_width"`
	CellHeight int  `yaml:"cell_height"`
	Wrap       bool `yaml:"wrap,omitempty"`
}

func (s *InitGridPlan) CanApply(ctx gen.Context) bool { return gen.Is[gen.GridPlanContext](ctx) }

func (s *InitGridPlan) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.GridPlanContext) error {
		grid, err := gen.NewGridPlan(s.CellsX, s.CellsY, s.CellWidth, s.CellHeight, s.Wrap)
		if err != nil {
			return err
		}
		size := grid.Size()
		c.CreateNew(size.X, size.Y, s.Wrap)
		c.InitGrid(grid)
		c.InitPlan(gen.NewFloorPlan(size, s.Wrap))
		return nil
	})
}

func (s *InitGridPlan) Summary() string {
	return fmt.Sprintf("%dx%d grid of %dx%d cells", s.CellsX, s.CellsY, s.CellWidth, s.CellHeight)
}
