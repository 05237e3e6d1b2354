package dungeon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/steps"
	"delvegen/pkg/game/zone"
)

// LoadZone reads a zone definition file
func (r *Registry) LoadZone(path string) (*zone.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone: %w", err)
	}
	z, err := r.ParseZone(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return z, nil
}

// ParseZone decodes and builds a zone definition. Unknown parameter keys
// on a step, room or filter are an error.
func (r *Registry) ParseZone(data []byte) (*zone.Zone, error) {
	var def ZoneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode zone: %w", err)
	}
	return r.BuildZone(def)
}

// BuildZone turns a definition into a zone ready to generate floors
func (r *Registry) BuildZone(def ZoneDef) (*zone.Zone, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("zone has no name")
	}
	z := zone.NewZone(def.Name)
	for i, zsd := range def.Universal {
		zs, err := r.buildZoneStep(zsd)
		if err != nil {
			return nil, fmt.Errorf("universal step %d: %w", i, err)
		}
		z.Universal = append(z.Universal, zs)
	}
	for i, sd := range def.Segments {
		seg, err := r.buildSegment(sd)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		z.Segments = append(z.Segments, seg)
	}
	return z, nil
}

func (r *Registry) buildSegment(def SegmentDef) (zone.Segment, error) {
	base := zone.SegmentBase{Relevant: def.Relevant, Comment: def.Comment}
	for i, zsd := range def.Steps {
		zs, err := r.buildZoneStep(zsd)
		if err != nil {
			return nil, fmt.Errorf("zone step %d: %w", i, err)
		}
		base.AddStep(zs)
	}

	switch def.Kind {
	case SegmentLayered:
		seg := zone.NewLayeredSegment()
		seg.SegmentBase = base
		for i, fd := range def.Floors {
			g, err := r.BuildFloor(fd)
			if err != nil {
				return nil, fmt.Errorf("floor %d: %w", i, err)
			}
			seg.Floors = append(seg.Floors, g)
		}
		return seg, nil

	case SegmentSingular:
		if def.Floor == nil {
			return nil, fmt.Errorf("singular segment has no floor")
		}
		g, err := r.BuildFloor(*def.Floor)
		if err != nil {
			return nil, err
		}
		seg := zone.NewSingularSegment(def.Span, g)
		seg.SegmentBase = base
		return seg, nil

	case SegmentRange:
		seg := zone.NewRangeDictSegment()
		seg.SegmentBase = base
		for _, rd := range def.Ranges {
			g, err := r.BuildFloor(rd.Floor)
			if err != nil {
				return nil, fmt.Errorf("floors [%d,%d): %w", rd.Start, rd.End, err)
			}
			if err := seg.Floors.Set(zone.FloorRange{Start: rd.Start, End: rd.End}, g); err != nil {
				return nil, err
			}
		}
		return seg, nil

	case SegmentDictionary:
		seg := zone.NewDictionarySegment()
		seg.SegmentBase = base
		for _, ed := range def.Entries {
			if _, dup := seg.Floors[ed.ID]; dup {
				return nil, fmt.Errorf("floor %d listed twice", ed.ID)
			}
			g, err := r.BuildFloor(ed.Floor)
			if err != nil {
				return nil, fmt.Errorf("floor %d: %w", ed.ID, err)
			}
			seg.Floors[ed.ID] = g
		}
		return seg, nil
	}
	return nil, fmt.Errorf("%w: segment %q", ErrUnknownKind, def.Kind)
}

// BuildFloor turns a floor definition into a generator
func (r *Registry) BuildFloor(def FloorDef) (gen.FloorGen, error) {
	switch def.Kind {
	case FloorGrid:
		return buildSteps(r, gen.NewGridFloorGen(), def)
	case FloorRoom:
		return buildSteps(r, gen.NewRoomFloorGen(), def)
	case FloorStairs:
		return buildSteps(r, gen.NewStairsFloorGen(), def)
	case FloorLoad:
		return buildSteps(r, gen.NewLoadFloorGen(), def)
	case FloorChance:
		c := &gen.ChanceFloorGen{}
		for i, cd := range def.Choices {
			g, err := r.BuildFloor(cd.Floor)
			if err != nil {
				return nil, fmt.Errorf("choice %d: %w", i, err)
			}
			c.Spawns.Add(g, cd.Weight)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: floor %q", ErrUnknownKind, def.Kind)
}

func buildSteps[T gen.Context](r *Registry, g *gen.FloorMapGen[T], def FloorDef) (gen.FloorGen, error) {
	g.Comment = def.Comment
	for i, sd := range def.Steps {
		step, err := r.BuildStep(sd)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		g.Steps.Add(sd.Priority, step)
	}
	return g, nil
}

// BuildStep builds a floor step along with its rooms and filters
func (r *Registry) BuildStep(def StepDef) (gen.Step, error) {
	step, err := r.Steps.build(TypedDef{Type: def.Type, Params: def.Params})
	if err != nil {
		return nil, err
	}
	if len(def.Rooms) > 0 {
		picker, ok := step.(steps.RoomPicker)
		if !ok {
			return nil, fmt.Errorf("step %q takes no rooms", def.Type)
		}
		list, err := r.buildRooms(def.Rooms)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", def.Type, err)
		}
		*picker.RoomList() = list
	}
	if len(def.Filters) > 0 {
		sel, ok := step.(steps.RoomSelector)
		if !ok {
			return nil, fmt.Errorf("step %q takes no filters", def.Type)
		}
		filters, err := r.buildFilters(def.Filters)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", def.Type, err)
		}
		*sel.FilterList() = filters
	}
	return step, nil
}

func (r *Registry) buildRooms(defs []RoomChoice) (rng.SpawnList[gen.RoomGen], error) {
	list := rng.NewSpawnList[gen.RoomGen]()
	for _, rc := range defs {
		room, err := r.Rooms.build(rc.TypedDef)
		if err != nil {
			return list, err
		}
		list.Add(room, rc.Weight)
	}
	return list, nil
}

func (r *Registry) buildFilters(defs []TypedDef) ([]gen.RoomFilter, error) {
	var out []gen.RoomFilter
	for _, fd := range defs {
		f, err := r.Filters.build(fd)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *Registry) buildZoneStep(def ZoneStepDef) (gen.ZoneStep, error) {
	zs, err := r.ZoneSteps.build(TypedDef{Type: def.Type, Params: def.Params})
	if err != nil {
		return nil, err
	}
	var plan zone.SpreadPlan
	if def.Plan != nil {
		if plan, err = r.Plans.build(*def.Plan); err != nil {
			return nil, err
		}
	}

	switch s := zs.(type) {
	case *zone.SpreadRoomZoneStep:
		if plan == nil {
			return nil, fmt.Errorf("zone step %q: %w", def.Type, zone.ErrNoSpreadPlan)
		}
		s.Plan = plan
		for i, od := range def.Options {
			opt, err := r.buildRoomOption(od)
			if err != nil {
				return nil, fmt.Errorf("option %d: %w", i, err)
			}
			s.Spawns.Add(opt, od.Weight)
		}
	case *zone.SpreadStepZoneStep:
		if plan == nil {
			return nil, fmt.Errorf("zone step %q: %w", def.Type, zone.ErrNoSpreadPlan)
		}
		s.Plan = plan
		for i, sc := range def.Steps {
			step, err := r.BuildStep(sc.StepDef)
			if err != nil {
				return nil, fmt.Errorf("spread step %d: %w", i, err)
			}
			s.Spawns.Add(step, sc.Weight)
		}
	default:
		if def.Plan != nil || len(def.Options) > 0 || len(def.Steps) > 0 {
			return nil, fmt.Errorf("zone step %q spreads nothing", def.Type)
		}
	}
	return zs, nil
}

func (r *Registry) buildRoomOption(def RoomOptionDef) (zone.RoomOption, error) {
	var opt zone.RoomOption
	var err error
	if def.Grid != nil {
		if opt.Grid, err = r.Rooms.build(*def.Grid); err != nil {
			return opt, err
		}
	}
	if def.List != nil {
		if opt.List, err = r.Rooms.build(*def.List); err != nil {
			return opt, err
		}
	}
	opt.Filters, err = r.buildFilters(def.Filters)
	return opt, err
}
