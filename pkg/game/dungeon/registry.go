package dungeon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/rooms"
	"delvegen/pkg/game/gen/steps"
	"delvegen/pkg/game/zone"
)

var (
	ErrUnknownType = errors.New("unknown type")
	ErrUnknownKind = errors.New("unknown kind")
)

// factory builds values of one family by type name and names them back
type factory[T any] struct {
	family string
	byName map[string]func() T
	byType map[reflect.Type]string
}

func newFactory[T any](family string) *factory[T] {
	return &factory[T]{
		family: family,
		byName: make(map[string]func() T),
		byType: make(map[reflect.Type]string),
	}
}

// register adds a constructor. The constructor must return a pointer so
// parameters can be decoded into it.
func (f *factory[T]) register(name string, ctor func() T) {
	f.byName[name] = ctor
	f.byType[reflect.TypeOf(ctor())] = name
}

func (f *factory[T]) build(def TypedDef) (T, error) {
	ctor, ok := f.byName[def.Type]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownType, f.family, def.Type)
	}
	v := ctor()
	if def.Params != nil {
		if err := decodeParams(def.Params, v); err != nil {
			var zero T
			return zero, fmt.Errorf("%s %q: %w", f.family, def.Type, err)
		}
	}
	return v, nil
}

// decodeParams decodes a params block into v, rejecting keys v has no
// field for. The zone document itself is decoded leniently: strict mode
// there also checks the keys inside each captured node.
func decodeParams(n *yaml.Node, v any) error {
	b, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// describe names v and encodes its parameters, leaving out the given keys
func (f *factory[T]) describe(v T, skip ...string) (TypedDef, error) {
	t := reflect.TypeOf(v)
	name, ok := f.byType[t]
	if !ok && t != nil && t.Kind() != reflect.Pointer {
		name, ok = f.byType[reflect.PointerTo(t)]
	}
	if !ok {
		return TypedDef{}, fmt.Errorf("%w: %s %T", ErrUnknownType, f.family, v)
	}
	params, err := encodeParams(v, skip...)
	if err != nil {
		return TypedDef{}, fmt.Errorf("%s %q: %w", f.family, name, err)
	}
	return TypedDef{Type: name, Params: params}, nil
}

// encodeParams returns nil for values without parameters
func encodeParams(v any, skip ...string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := doc.Encode(v); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.MappingNode {
		return &doc, nil
	}
	kept := doc.Content[:0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if contains(skip, doc.Content[i].Value) {
			continue
		}
		kept = append(kept, doc.Content[i], doc.Content[i+1])
	}
	doc.Content = kept
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return &doc, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Registry knows every step, room, filter, zone step and spread plan a
// definition may name
type Registry struct {
	Steps     *factory[gen.Step]
	Rooms     *factory[gen.RoomGen]
	Filters   *factory[gen.RoomFilter]
	ZoneSteps *factory[gen.ZoneStep]
	Plans     *factory[zone.SpreadPlan]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Steps:     newFactory[gen.Step]("step"),
		Rooms:     newFactory[gen.RoomGen]("room"),
		Filters:   newFactory[gen.RoomFilter]("filter"),
		ZoneSteps: newFactory[gen.ZoneStep]("zone step"),
		Plans:     newFactory[zone.SpreadPlan]("spread plan"),
	}
}

func (r *Registry) RegisterStep(name string, ctor func() gen.Step) { r.Steps.register(name, ctor) }

func (r *Registry) RegisterRoom(name string, ctor func() gen.RoomGen) { r.Rooms.register(name, ctor) }

func (r *Registry) RegisterFilter(name string, ctor func() gen.RoomFilter) {
	r.Filters.register(name, ctor)
}

func (r *Registry) RegisterZoneStep(name string, ctor func() gen.ZoneStep) {
	r.ZoneSteps.register(name, ctor)
}

func (r *Registry) RegisterPlan(name string, ctor func() zone.SpreadPlan) { r.Plans.register(name, ctor) }

// DefaultRegistry holds every built-in type
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RegisterStep("init_tiles", func() gen.Step { return &steps.InitTiles{} })
	r.RegisterStep("init_floor_plan", func() gen.Step { return &steps.InitFloorPlan{} })
	r.RegisterStep("init_grid_plan", func() gen.Step { return &steps.InitGridPlan{} })
	r.RegisterStep("grid_rooms", func() gen.Step { return &steps.GridRooms{} })
	r.RegisterStep("grid_halls", func() gen.Step { return &steps.GridHalls{} })
	r.RegisterStep("draw_grid", func() gen.Step { return &steps.DrawGridToFloor{} })
	r.RegisterStep("grid_special_room", func() gen.Step { return &steps.SetGridSpecialRoom{} })
	r.RegisterStep("floor_rooms", func() gen.Step { return &steps.FloorRooms{} })
	r.RegisterStep("bsp_rooms", func() gen.Step { return &steps.BSPRooms{} })
	r.RegisterStep("draw_floor", func() gen.Step { return &steps.DrawFloorToTile{} })
	r.RegisterStep("special_room", func() gen.Step { return &steps.SetSpecialRoom{} })
	r.RegisterStep("stairs", func() gen.Step { return steps.NewFloorStairs() })
	r.RegisterStep("items", func() gen.Step { return &steps.ItemSpawn{} })
	r.RegisterStep("teams", func() gen.Step { return &steps.TeamSpawn{} })
	r.RegisterStep("money", func() gen.Step { return &steps.MoneySpawn{} })
	r.RegisterStep("terrain_fill", func() gen.Step { return &steps.TerrainFill{} })
	r.RegisterStep("mapped_room", func() gen.Step { return &steps.MappedRoom{} })

	r.RegisterRoom("square", func() gen.RoomGen { return &rooms.Square{} })
	r.RegisterRoom("diamond", func() gen.RoomGen { return &rooms.Diamond{} })
	r.RegisterRoom("junction", func() gen.RoomGen { return rooms.NewDefault() })
	r.RegisterRoom("load_map", func() gen.RoomGen { return &rooms.LoadMap{} })
	r.RegisterRoom("load_map_bordered", func() gen.RoomGen { return &rooms.LoadMapBordered{} })

	r.RegisterFilter("components", func() gen.RoomFilter { return &gen.ComponentFilter{} })

	r.RegisterZoneStep("spread_room", func() gen.ZoneStep { return &zone.SpreadRoomZoneStep{} })
	r.RegisterZoneStep("spread_step", func() gen.ZoneStep { return &zone.SpreadStepZoneStep{} })
	r.RegisterZoneStep("money", func() gen.ZoneStep { return &zone.MoneySpawnZoneStep{} })
	r.RegisterZoneStep("floor_name", func() gen.ZoneStep { return &zone.FloorNameZoneStep{} })

	r.RegisterPlan("spaced", func() zone.SpreadPlan { return &zone.SpreadPlanSpaced{} })
	r.RegisterPlan("quota", func() zone.SpreadPlan { return &zone.SpreadPlanQuota{} })
	return r
}
