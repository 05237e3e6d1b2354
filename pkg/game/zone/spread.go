package zone

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/gen"
)

// ErrNoSpreadPlan is returned by spread steps built without a plan
var ErrNoSpreadPlan = errors.New("spread step has no plan")

// SpreadPlan decides, once per segment, how many drops land on each floor
type SpreadPlan interface {
	Drops(r *rng.Rand) map[int]int
	// Floors bounds where drops land, carried drops included
	Floors() FloorRange
	// CarriesOver moves drops that could not be placed to the next floor
	CarriesOver() bool
}

// SpreadPlanSpaced drops once every Spacing floors
type SpreadPlanSpaced struct {
	FloorRange FloorRange    `yaml:"floors"`
	Spacing    rng.RandRange `yaml:"spacing"`
}

func (p *SpreadPlanSpaced) Drops(r *rng.Rand) map[int]int {
	drops := make(map[int]int)
	f := p.FloorRange.Start + r.IntN(p.gap(r))
	for f < p.FloorRange.End {
		drops[f]++
		f += p.gap(r)
	}
	return drops
}

func (p *SpreadPlanSpaced) gap(r *rng.Rand) int {
	return max(1, p.Spacing.Pick(r))
}

func (p *SpreadPlanSpaced) Floors() FloorRange { return p.FloorRange }

func (p *SpreadPlanSpaced) CarriesOver() bool { return false }

func (p *SpreadPlanSpaced) String() string {
	return fmt.Sprintf("every %v floors in %v", p.Spacing, p.FloorRange)
}

// SpreadPlanQuota drops a fixed number of times on random floors
type SpreadPlanQuota struct {
	FloorRange FloorRange    `yaml:"floors"`
	Quota      rng.RandRange `yaml:"quota"`
	CarryOver  bool          `yaml:"carry_over"`
}

func (p *SpreadPlanQuota) Drops(r *rng.Rand) map[int]int {
	drops := make(map[int]int)
	if p.FloorRange.Len() <= 0 {
		return drops
	}
	n := p.Quota.Pick(r)
	for i := 0; i < n; i++ {
		drops[r.Range(p.FloorRange.Start, p.FloorRange.End)]++
	}
	return drops
}

func (p *SpreadPlanQuota) Floors() FloorRange { return p.FloorRange }

func (p *SpreadPlanQuota) CarriesOver() bool { return p.CarryOver }

func (p *SpreadPlanQuota) String() string {
	return fmt.Sprintf("%v in %v", p.Quota, p.FloorRange)
}

// SpreadZoneStep distributes drops over the floors of a segment. An
// instance records the drops it missed on each floor. When the plan
// carries over, a floor also takes the drops missed on the nearest earlier
// floor generated so far. Regenerating a floor overwrites its record.
type SpreadZoneStep struct {
	Plan SpreadPlan `yaml:"-"`

	drops  map[int]int
	missed map[int]int
}

func (s SpreadZoneStep) instantiate(seed uint64) SpreadZoneStep {
	out := SpreadZoneStep{Plan: s.Plan, missed: make(map[int]int)}
	if s.Plan != nil {
		out.drops = s.Plan.Drops(rng.New(seed))
	}
	return out
}

// DropsOn returns how many drops the plan put on floor, carry excluded
func (s *SpreadZoneStep) DropsOn(floor int) int {
	return s.drops[floor]
}

// CarriedTo returns how many missed drops floor takes on top of its own
func (s *SpreadZoneStep) CarriedTo(floor int) int {
	if s.Plan == nil || !s.Plan.CarriesOver() {
		return 0
	}
	for f := floor - 1; f >= s.Plan.Floors().Start; f-- {
		if n, ok := s.missed[f]; ok {
			return n
		}
	}
	return 0
}

// spread calls place once for every drop due on the current floor. place
// reports whether the drop counts as placed.
func (s *SpreadZoneStep) spread(zc *gen.ZoneContext, place func(dropIdx int) (bool, error)) error {
	if s.Plan == nil {
		return ErrNoSpreadPlan
	}
	if s.drops == nil {
		*s = s.instantiate(zc.Seed)
	}
	floors := s.Plan.Floors()
	floor := zc.CurrentID
	if !floors.Contains(floor) {
		return nil
	}
	n := s.drops[floor] + s.CarriedTo(floor)
	missed := 0
	for i := 0; i < n; i++ {
		ok, err := place(i)
		if err != nil {
			return err
		}
		if !ok {
			missed++
		}
	}
	if !s.Plan.CarriesOver() || floor+1 >= floors.End {
		return nil
	}
	if s.missed == nil {
		s.missed = make(map[int]int)
	}
	s.missed[floor] = missed
	if missed > 0 {
		gen.Logger.Debug("carrying spread drops", "map", zc.MapID(), "drops", missed)
	}
	return nil
}
