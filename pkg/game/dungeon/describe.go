package dungeon

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/steps"
	"delvegen/pkg/game/zone"
)

// MarshalZone encodes a zone as a definition document
func (r *Registry) MarshalZone(z *zone.Zone) ([]byte, error) {
	def, err := r.DescribeZone(z)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(def)
}

// DescribeZone turns a zone back into its definition
func (r *Registry) DescribeZone(z *zone.Zone) (ZoneDef, error) {
	def := ZoneDef{Name: z.Name}
	for i, zs := range z.Universal {
		zsd, err := r.describeZoneStep(zs)
		if err != nil {
			return def, fmt.Errorf("universal step %d: %w", i, err)
		}
		def.Universal = append(def.Universal, zsd)
	}
	for i, seg := range z.Segments {
		sd, err := r.describeSegment(seg)
		if err != nil {
			return def, fmt.Errorf("segment %d: %w", i, err)
		}
		def.Segments = append(def.Segments, sd)
	}
	return def, nil
}

func (r *Registry) describeSegment(seg zone.Segment) (SegmentDef, error) {
	var def SegmentDef
	var base *zone.SegmentBase
	switch s := seg.(type) {
	case *zone.LayeredSegment:
		def.Kind, base = SegmentLayered, &s.SegmentBase
		for i, g := range s.Floors {
			fd, err := r.DescribeFloor(g)
			if err != nil {
				return def, fmt.Errorf("floor %d: %w", i, err)
			}
			def.Floors = append(def.Floors, fd)
		}
	case *zone.SingularSegment:
		def.Kind, base = SegmentSingular, &s.SegmentBase
		def.Span = s.FloorSpan
		fd, err := r.DescribeFloor(s.Floor)
		if err != nil {
			return def, err
		}
		def.Floor = &fd
	case *zone.RangeDictSegment:
		def.Kind, base = SegmentRange, &s.SegmentBase
		var err error
		s.Floors.Each(func(fr zone.FloorRange, g gen.FloorGen) {
			if err != nil {
				return
			}
			var fd FloorDef
			if fd, err = r.DescribeFloor(g); err == nil {
				def.Ranges = append(def.Ranges, RangeDef{Start: fr.Start, End: fr.End, Floor: fd})
			}
		})
		if err != nil {
			return def, err
		}
	case *zone.DictionarySegment:
		def.Kind, base = SegmentDictionary, &s.SegmentBase
		for _, id := range s.FloorIDs() {
			fd, err := r.DescribeFloor(s.Floors[id])
			if err != nil {
				return def, fmt.Errorf("floor %d: %w", id, err)
			}
			def.Entries = append(def.Entries, EntryDef{ID: id, Floor: fd})
		}
	default:
		return def, fmt.Errorf("%w: segment %T", ErrUnknownKind, seg)
	}

	def.Relevant, def.Comment = base.Relevant, base.Comment
	for i, zs := range base.Steps {
		zsd, err := r.describeZoneStep(zs)
		if err != nil {
			return def, fmt.Errorf("zone step %d: %w", i, err)
		}
		def.Steps = append(def.Steps, zsd)
	}
	return def, nil
}

// DescribeFloor turns a generator back into its definition
func (r *Registry) DescribeFloor(g gen.FloorGen) (FloorDef, error) {
	switch fg := g.(type) {
	case *gen.FloorMapGen[*gen.GridContext]:
		return describeSteps(r, fg)
	case *gen.FloorMapGen[*gen.ListContext]:
		return describeSteps(r, fg)
	case *gen.FloorMapGen[*gen.StairsContext]:
		return describeSteps(r, fg)
	case *gen.FloorMapGen[*gen.MapLoadContext]:
		return describeSteps(r, fg)
	case *gen.ChanceFloorGen:
		def := FloorDef{Kind: FloorChance}
		for i, sp := range fg.Spawns.Spawns {
			fd, err := r.DescribeFloor(sp.Item)
			if err != nil {
				return def, fmt.Errorf("choice %d: %w", i, err)
			}
			def.Choices = append(def.Choices, ChoiceDef{Weight: sp.Weight, Floor: fd})
		}
		return def, nil
	}
	return FloorDef{}, fmt.Errorf("%w: floor %T", ErrUnknownKind, g)
}

func describeSteps[T gen.Context](r *Registry, g *gen.FloorMapGen[T]) (FloorDef, error) {
	def := FloorDef{Kind: g.Kind, Comment: g.Comment}
	for i, ps := range g.Steps {
		sd, err := r.DescribeStep(ps.Priority, ps.Item)
		if err != nil {
			return def, fmt.Errorf("step %d: %w", i, err)
		}
		def.Steps = append(def.Steps, sd)
	}
	return def, nil
}

// DescribeStep turns a floor step back into its definition
func (r *Registry) DescribeStep(p gen.Priority, step gen.Step) (StepDef, error) {
	td, err := r.Steps.describe(step, "rooms")
	if err != nil {
		return StepDef{}, err
	}
	def := StepDef{Type: td.Type, Priority: p, Params: td.Params}
	if picker, ok := step.(steps.RoomPicker); ok {
		if def.Rooms, err = r.describeRooms(*picker.RoomList()); err != nil {
			return def, err
		}
	}
	if sel, ok := step.(steps.RoomSelector); ok {
		if def.Filters, err = r.describeFilters(*sel.FilterList()); err != nil {
			return def, err
		}
	}
	return def, nil
}

func (r *Registry) describeRooms(list rng.SpawnList[gen.RoomGen]) ([]RoomChoice, error) {
	var out []RoomChoice
	for _, sp := range list.Spawns {
		td, err := r.Rooms.describe(sp.Item)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomChoice{Weight: sp.Weight, TypedDef: td})
	}
	return out, nil
}

func (r *Registry) describeFilters(filters []gen.RoomFilter) ([]TypedDef, error) {
	var out []TypedDef
	for _, f := range filters {
		td, err := r.Filters.describe(f)
		if err != nil {
			return nil, err
		}
		out = append(out, td)
	}
	return out, nil
}

func (r *Registry) describeZoneStep(zs gen.ZoneStep) (ZoneStepDef, error) {
	td, err := r.ZoneSteps.describe(zs)
	if err != nil {
		return ZoneStepDef{}, err
	}
	def := ZoneStepDef{Type: td.Type, Params: td.Params}

	var plan zone.SpreadPlan
	switch s := zs.(type) {
	case *zone.SpreadRoomZoneStep:
		plan = s.Plan
		for _, sp := range s.Spawns.Spawns {
			od, err := r.describeRoomOption(sp.Item)
			if err != nil {
				return def, err
			}
			od.Weight = sp.Weight
			def.Options = append(def.Options, od)
		}
	case *zone.SpreadStepZoneStep:
		plan = s.Plan
		for _, sp := range s.Spawns.Spawns {
			sd, err := r.DescribeStep(nil, sp.Item)
			if err != nil {
				return def, err
			}
			def.Steps = append(def.Steps, StepChoice{Weight: sp.Weight, StepDef: sd})
		}
	}
	if plan != nil {
		pd, err := r.Plans.describe(plan)
		if err != nil {
			return def, err
		}
		def.Plan = &pd
	}
	return def, nil
}

func (r *Registry) describeRoomOption(opt zone.RoomOption) (RoomOptionDef, error) {
	var def RoomOptionDef
	if opt.Grid != nil {
		td, err := r.Rooms.describe(opt.Grid)
		if err != nil {
			return def, err
		}
		def.Grid = &td
	}
	if opt.List != nil {
		td, err := r.Rooms.describe(opt.List)
		if err != nil {
			return def, err
		}
		def.List = &td
	}
	filters, err := r.describeFilters(opt.Filters)
	def.Filters = filters
	return def, err
}
