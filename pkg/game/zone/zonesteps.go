package zone

import (
	"fmt"
	"strings"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/steps"
)

// RoomOption is a special room in both of its plan flavours
type RoomOption struct {
	Grid    gen.RoomGen      `yaml:"-"`
	List    gen.RoomGen      `yaml:"-"`
	Filters []gen.RoomFilter `yaml:"-"`
}

func (o RoomOption) String() string {
	switch {
	case o.Grid != nil:
		return fmt.Sprint(o.Grid)
	case o.List != nil:
		return fmt.Sprint(o.List)
	}
	return "RoomOption: [EMPTY]"
}

// SpreadRoomZoneStep swaps special rooms into floors across a segment by
// replacing existing rooms
type SpreadRoomZoneStep struct {
	SpreadZoneStep `yaml:",inline"`
	Spawns         rng.SpawnList[RoomOption] `yaml:"-"`
	PriorityGrid   gen.Priority              `yaml:"priority_grid"`
	PriorityList   gen.Priority              `yaml:"priority_list"`
	Components     []string                  `yaml:"components,omitempty"`
}

func NewSpreadRoomZoneStep(priorityGrid, priorityList gen.Priority, plan SpreadPlan) *SpreadRoomZoneStep {
	return &SpreadRoomZoneStep{
		SpreadZoneStep: SpreadZoneStep{Plan: plan},
		PriorityGrid:   priorityGrid,
		PriorityList:   priorityList,
	}
}

func (s *SpreadRoomZoneStep) Instantiate(seed uint64) gen.ZoneStep {
	c := *s
	c.SpreadZoneStep = s.SpreadZoneStep.instantiate(seed)
	return &c
}

func (s *SpreadRoomZoneStep) Apply(zc *gen.ZoneContext, ctx gen.Context, queue *gen.StepQueue) error {
	return s.spread(zc, func(int) (bool, error) {
		return s.applyToFloor(zc, ctx, queue)
	})
}

// applyToFloor always reports the drop as placed, even on floors whose
// plan cannot take a special room
func (s *SpreadRoomZoneStep) applyToFloor(zc *gen.ZoneContext, ctx gen.Context, queue *gen.StepQueue) (bool, error) {
	opt, err := s.Spawns.Pick(ctx.Rand())
	if err != nil {
		return false, fmt.Errorf("spread room on %s: %w", zc.MapID(), err)
	}
	gridStep := &steps.SetGridSpecialRoom{Filters: opt.Filters, Components: s.Components}
	listStep := &steps.SetSpecialRoom{Filters: opt.Filters, Components: s.Components}
	// grid contexts also carry a floor plan, so they never fall back to
	// the list room
	switch {
	case gridStep.CanApply(ctx):
		if opt.Grid == nil {
			break
		}
		gridStep.Rooms.Add(opt.Grid, 1)
		queue.Enqueue(s.PriorityGrid, gridStep)
		return true, nil
	case listStep.CanApply(ctx):
		if opt.List == nil {
			break
		}
		listStep.Rooms.Add(opt.List, 1)
		queue.Enqueue(s.PriorityList, listStep)
		return true, nil
	}
	gen.Logger.Debug("floor takes no special room", "map", zc.MapID(), "room", opt.String())
	return true, nil
}

func (s *SpreadRoomZoneStep) String() string {
	if s.Spawns.Len() == 1 {
		return fmt.Sprintf("SpreadRoom: %v", s.Spawns.Spawns[0].Item)
	}
	return fmt.Sprintf("SpreadRoom[%d]", s.Spawns.Len())
}

// SpreadStepZoneStep spreads a floor step across a segment. Floors the
// step cannot run on do not count as placed.
type SpreadStepZoneStep struct {
	SpreadZoneStep `yaml:",inline"`
	Spawns         rng.SpawnList[gen.Step] `yaml:"-"`
	Priority       gen.Priority            `yaml:"priority"`
}

func NewSpreadStepZoneStep(priority gen.Priority, plan SpreadPlan) *SpreadStepZoneStep {
	return &SpreadStepZoneStep{SpreadZoneStep: SpreadZoneStep{Plan: plan}, Priority: priority}
}

func (s *SpreadStepZoneStep) Instantiate(seed uint64) gen.ZoneStep {
	c := *s
	c.SpreadZoneStep = s.SpreadZoneStep.instantiate(seed)
	return &c
}

func (s *SpreadStepZoneStep) Apply(zc *gen.ZoneContext, ctx gen.Context, queue *gen.StepQueue) error {
	return s.spread(zc, func(int) (bool, error) {
		step, err := s.Spawns.Pick(ctx.Rand())
		if err != nil {
			return false, fmt.Errorf("spread step on %s: %w", zc.MapID(), err)
		}
		if !step.CanApply(ctx) {
			return false, nil
		}
		queue.Enqueue(s.Priority, gen.CopyStep(step))
		return true, nil
	})
}

func (s *SpreadStepZoneStep) String() string {
	return fmt.Sprintf("SpreadStep[%d]", s.Spawns.Len())
}

// MoneySpawnZoneStep scatters money that grows deeper into the segment:
// Start plus Add once per floor
type MoneySpawnZoneStep struct {
	Start     rng.RandRange `yaml:"start"`
	Add       rng.RandRange `yaml:"add"`
	Divisions rng.RandRange `yaml:"divisions"`
	Priority  gen.Priority  `yaml:"priority"`
}

func (s *MoneySpawnZoneStep) Instantiate(uint64) gen.ZoneStep {
	c := *s
	return &c
}

// Amount returns the money range of floor
func (s *MoneySpawnZoneStep) Amount(floor int) rng.RandRange {
	lo := s.Start.Min + s.Add.Min*floor
	hi := max(s.Start.Max-1, s.Start.Min) + max(s.Add.Max-1, s.Add.Min)*floor
	return rng.NewRange(lo, max(hi, lo)+1)
}

func (s *MoneySpawnZoneStep) Apply(zc *gen.ZoneContext, ctx gen.Context, queue *gen.StepQueue) error {
	queue.Enqueue(s.Priority, &steps.MoneySpawn{Amount: s.Amount(zc.CurrentID), Divisions: s.Divisions})
	return nil
}

// FloorNameZoneStep titles every floor of a segment. A %d in Name is
// replaced with the floor number, counted from 1.
type FloorNameZoneStep struct {
	Name     string       `yaml:"name"`
	Priority gen.Priority `yaml:"priority"`
}

func (s *FloorNameZoneStep) Instantiate(uint64) gen.ZoneStep { return s }

// Title formats Name for floor number n
func (s *FloorNameZoneStep) Title(n int) string {
	if strings.Contains(s.Name, "%d") {
		return fmt.Sprintf(s.Name, n)
	}
	return s.Name
}

func (s *FloorNameZoneStep) Apply(zc *gen.ZoneContext, _ gen.Context, queue *gen.StepQueue) error {
	queue.Enqueue(s.Priority, &nameStep{name: s.Title(zc.CurrentID + 1)})
	return nil
}

type nameStep struct {
	name string
}

func (s *nameStep) CanApply(ctx gen.Context) bool { return true }

func (s *nameStep) Apply(ctx gen.Context) error {
	m := ctx.Map()
	if m == nil {
		return gen.ErrNoMap
	}
	m.Name = s.name
	return nil
}

func (s *nameStep) String() string { return "name " + s.name }
