package dungeon

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/steps"
	"delvegen/pkg/game/zone"
)

func loadCave(t *testing.T) *zone.Zone {
	t.Helper()
	z, err := DefaultRegistry().LoadZone("testdata/crystal_cave.yaml")
	if err != nil {
		t.Fatalf("LoadZone() error = %v", err)
	}
	return z
}

func TestLoadZone_Structure(t *testing.T) {
	z := loadCave(t)
	if z.Name != "crystal_cave" {
		t.Errorf("Name = %q", z.Name)
	}
	if len(z.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2", len(z.Segments))
	}
	if got := z.Segments[0].String(); got != "Crystal Cave B6F" {
		t.Errorf("Segments[0].String() = %q, want %q", got, "Crystal Cave B6F")
	}
	if got := z.FloorCount(); got != 6 {
		t.Errorf("FloorCount() = %d, want 6", got)
	}

	g, err := z.Segments[0].MapGen(4)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.(interface{ String() string }).String(); got != "room: 40x30 floor plan" {
		t.Errorf("floor 4 gen = %q", got)
	}
	g, _ = z.Segments[1].MapGen(0)
	if got := g.(interface{ String() string }).String(); got != "stairs: crystal chamber" {
		t.Errorf("segment 1 gen = %q", got)
	}

	grid := z.Segments[0].(*zone.RangeDictSegment)
	g, _ = grid.MapGen(0)
	fg := g.(*gen.FloorMapGen[*gen.GridContext])
	rooms := fg.Steps[1].Item.(*steps.GridRooms)
	if rooms.Rooms.Len() != 2 || rooms.Rooms.TotalWeight() != 4 {
		t.Errorf("grid_rooms spawns = %+v", rooms.Rooms)
	}
}

func TestLoadZone_GeneratesEveryFloor(t *testing.T) {
	z := loadCave(t)
	shops := 0
	for floor := 0; floor < 6; floor++ {
		ctx, err := z.GenFloor(1234, 0, floor)
		if err != nil {
			t.Fatalf("GenFloor(0, %d) error = %v", floor, err)
		}
		if !strings.HasSuffix(ctx.Map().Name, "B"+string(rune('1'+floor))+"F") {
			t.Errorf("floor %d name = %q", floor, ctx.Map().Name)
		}
		plan := ctx.(gen.FloorPlanContext).FloorPlan()
		if !plan.IsConnected() {
			t.Errorf("floor %d plan is not connected", floor)
		}
		for _, room := range plan.Rooms {
			if room.Components.Has("shop") {
				shops++
			}
		}
	}
	if shops < 1 || shops > 2 {
		t.Errorf("shops = %d, want 1 or 2", shops)
	}

	ctx, err := z.GenFloor(1234, 1, 0)
	if err != nil {
		t.Fatalf("GenFloor(1, 0) error = %v", err)
	}
	if len(ctx.(gen.StairsGenContext).Ends()) != 1 {
		t.Errorf("chamber exits = %v", ctx.(gen.StairsGenContext).Ends())
	}
	if _, err := z.GenFloor(1234, 1, 1); !errors.Is(err, zone.ErrFloorOutOfRange) {
		t.Errorf("GenFloor(1, 1) error = %v, want %v", err, zone.ErrFloorOutOfRange)
	}
}

func TestMarshalZone_RoundTrip(t *testing.T) {
	reg := DefaultRegistry()
	z := loadCave(t)
	out, err := reg.MarshalZone(z)
	if err != nil {
		t.Fatalf("MarshalZone() error = %v", err)
	}
	again, err := reg.ParseZone(out)
	if err != nil {
		t.Fatalf("ParseZone(marshalled) error = %v\n%s", err, out)
	}
	out2, err := reg.MarshalZone(again)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(out2) {
		t.Errorf("second marshal differs:\n%s\n---\n%s", out, out2)
	}

	for _, floor := range []int{1, 4} {
		a, err := z.GenFloor(99, 0, floor)
		if err != nil {
			t.Fatal(err)
		}
		b, err := again.GenFloor(99, 0, floor)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a.Map().Tiles, b.Map().Tiles) {
			t.Errorf("floor %d differs after a round trip", floor)
		}
	}
}

func TestParseZone_Params(t *testing.T) {
	doc := "name: z\nsegments:\n- kind: layered\n  floors:\n  - kind: stairs\n    steps:\n    - type: init_tiles\n      priority: \"-4\"\n      params: {width: 7, height: 5}\n"
	if _, err := DefaultRegistry().ParseZone([]byte(doc)); err != nil {
		t.Fatalf("ParseZone() error = %v", err)
	}

	var def ZoneDef
	if err := yaml.Unmarshal([]byte(doc), &def); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	step, err := DefaultRegistry().BuildStep(def.Segments[0].Floors[0].Steps[0])
	if err != nil {
		t.Fatalf("BuildStep() error = %v", err)
	}
	tiles, ok := step.(*steps.InitTiles)
	if !ok {
		t.Fatalf("BuildStep() = %T, want *steps.InitTiles", step)
	}
	if tiles.Width != 7 || tiles.Height != 5 {
		t.Errorf("InitTiles = %+v, want width 7 and height 5", *tiles)
	}
}

func TestParseZone_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown step",
			yaml: "name: z\nsegments:\n- kind: layered\n  floors:\n  - kind: grid\n    steps:\n    - type: teleport\n",
			want: ErrUnknownType,
		},
		{
			name: "unknown segment",
			yaml: "name: z\nsegments:\n- kind: spiral\n",
			want: ErrUnknownKind,
		},
		{
			name: "unknown floor",
			yaml: "name: z\nsegments:\n- kind: singular\n  span: 2\n  floor: {kind: cave}\n",
			want: ErrUnknownKind,
		},
		{
			name: "spread without plan",
			yaml: "name: z\nsegments:\n- kind: layered\n  steps:\n  - type: spread_room\n",
			want: zone.ErrNoSpreadPlan,
		},
		{
			name: "overlapping ranges",
			yaml: "name: z\nsegments:\n- kind: range\n  ranges:\n  - {start: 0, end: 3, floor: {kind: stairs}}\n  - {start: 2, end: 4, floor: {kind: stairs}}\n",
			want: zone.ErrRangeOverlap,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultRegistry().ParseZone([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseZone() error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("rooms on a roomless step", func(t *testing.T) {
		doc := "name: z\nsegments:\n- kind: layered\n  floors:\n  - kind: grid\n    steps:\n    - type: draw_grid\n      rooms: [{weight: 1, type: square}]\n"
		if _, err := DefaultRegistry().ParseZone([]byte(doc)); err == nil || !strings.Contains(err.Error(), "takes no rooms") {
			t.Errorf("ParseZone() error = %v", err)
		}
	})
	t.Run("unknown param", func(t *testing.T) {
		doc := "name: z\nsegments:\n- kind: layered\n  floors:\n  - kind: stairs\n    steps:\n    - type: init_tiles\n      priority: \"-4\"\n      params: {widht: 5, height: 5}\n"
		_, err := DefaultRegistry().ParseZone([]byte(doc))
		if err == nil || !strings.Contains(err.Error(), "widht") {
			t.Errorf("ParseZone() error = %v, want the unknown key named", err)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := DefaultRegistry().LoadZone("testdata/none.yaml"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadZone() error = %v, want %v", err, os.ErrNotExist)
		}
	})
}
