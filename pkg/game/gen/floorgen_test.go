package gen

import (
	"errors"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/maps"
)

// recordStep appends its name to a shared log when applied
type recordStep struct {
	name string
	log  *[]string
}

func (s *recordStep) CanApply(ctx Context) bool { return true }

func (s *recordStep) Apply(ctx Context) error {
	*s.log = append(*s.log, s.name)
	return nil
}

// initStep creates a small open map
type initStep struct{ w, h int }

func (s initStep) CanApply(ctx Context) bool { return Is[TiledContext](ctx) }

func (s initStep) Apply(ctx Context) error {
	return With(s, ctx, func(c TiledContext) error {
		c.CreateNew(s.w, s.h, false)
		for y := 1; y < s.h-1; y++ {
			for x := 1; x < s.w-1; x++ {
				c.SetTile(world.Loc{X: x, Y: y}, maps.Tile{Data: c.RoomTerrain()})
			}
		}
		return nil
	})
}

func (s initStep) Summary() string { return "open room" }

// gridOnlyStep records whether it ran and needs a grid plan
type gridOnlyStep struct{ ran *bool }

func (s gridOnlyStep) CanApply(ctx Context) bool { return Is[GridPlanContext](ctx) }

func (s gridOnlyStep) Apply(ctx Context) error {
	*s.ran = true
	return nil
}

// seedRecorder records the first value drawn from the context's stream
type seedRecorder struct{ first *uint64 }

func (s seedRecorder) CanApply(ctx Context) bool { return true }

func (s seedRecorder) Apply(ctx Context) error {
	*s.first = ctx.Rand().Uint64()
	return nil
}

type failStep struct{}

var errBoom = errors.New("boom")

func (failStep) CanApply(ctx Context) bool { return true }
func (failStep) Apply(ctx Context) error   { return errBoom }

// insertZoneStep enqueues a named step at a fixed priority
type insertZoneStep struct {
	name     string
	priority Priority
	log      *[]string
}

func (z insertZoneStep) Instantiate(seed uint64) ZoneStep { return z }

func (z insertZoneStep) Apply(zc *ZoneContext, ctx Context, queue *StepQueue) error {
	queue.Enqueue(z.priority, &recordStep{name: z.name, log: z.log})
	return nil
}

func TestFloorMapGen_StepOrder(t *testing.T) {
	var log []string
	g := NewStairsFloorGen()
	g.Steps.Add(NewPriority(0), initStep{w: 6, h: 6})
	g.Steps.Add(NewPriority(1), &recordStep{name: "A", log: &log})
	g.Steps.Add(NewPriority(2), &recordStep{name: "C", log: &log})
	g.Steps.Add(NewPriority(1), &recordStep{name: "B", log: &log})

	zc := &ZoneContext{Seed: 5, CurrentZone: "z",
		ZoneSteps:      []ZoneStep{insertZoneStep{name: "Z", priority: NewPriority(1, 5), log: &log}},
		UniversalSteps: []ZoneStep{insertZoneStep{name: "U", priority: NewPriority(1), log: &log}},
	}
	if _, err := g.GenMap(zc); err != nil {
		t.Fatalf("GenMap() error = %v", err)
	}
	want := []string{"A", "B", "U", "Z", "C"}
	if len(log) != len(want) {
		t.Fatalf("applied %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("applied %v, want %v", log, want)
		}
	}
}

func TestFloorMapGen_SkipsIncompatibleSteps(t *testing.T) {
	ran := false
	g := NewRoomFloorGen()
	g.Steps.Add(NewPriority(0), initStep{w: 5, h: 5})
	g.Steps.Add(NewPriority(1), gridOnlyStep{ran: &ran})
	if _, err := g.GenMap(&ZoneContext{Seed: 1}); err != nil {
		t.Fatalf("GenMap() error = %v", err)
	}
	if ran {
		t.Error("grid step ran on a list context")
	}

	grid := NewGridFloorGen()
	grid.Steps.Add(NewPriority(0), initStep{w: 5, h: 5})
	grid.Steps.Add(NewPriority(1), gridOnlyStep{ran: &ran})
	if _, err := grid.GenMap(&ZoneContext{Seed: 1}); err != nil {
		t.Fatalf("GenMap() error = %v", err)
	}
	if !ran {
		t.Error("grid step did not run on a grid context")
	}
}

func TestFloorMapGen_Deterministic(t *testing.T) {
	var a, b uint64
	for _, out := range []*uint64{&a, &b} {
		g := NewStairsFloorGen()
		g.Steps.Add(NewPriority(0), initStep{w: 4, h: 4})
		g.Steps.Add(NewPriority(1), seedRecorder{first: out})
		if _, err := g.GenMap(&ZoneContext{Seed: 77}); err != nil {
			t.Fatalf("GenMap() error = %v", err)
		}
	}
	if a != b {
		t.Errorf("same seed drew %d and %d", a, b)
	}
	if want := rng.New(77).Uint64(); a != want {
		t.Errorf("first draw = %d, want the seed's first value %d", a, want)
	}
}

func TestFloorMapGen_Errors(t *testing.T) {
	g := NewStairsFloorGen()
	g.Steps.Add(NewPriority(0), initStep{w: 4, h: 4})
	g.Steps.Add(NewPriority(1), failStep{})
	if _, err := g.GenMap(&ZoneContext{}); !errors.Is(err, errBoom) {
		t.Errorf("GenMap() error = %v, want errBoom", err)
	}

	empty := NewStairsFloorGen()
	if _, err := empty.GenMap(&ZoneContext{}); !errors.Is(err, ErrNoMap) {
		t.Errorf("GenMap() with no steps error = %v, want ErrNoMap", err)
	}
}

func TestFloorMapGen_FinishSealsBorder(t *testing.T) {
	g := NewStairsFloorGen()
	g.Steps.Add(NewPriority(0), stepFunc(func(ctx Context) error {
		c := ctx.(TiledContext)
		c.CreateNew(4, 4, false)
		c.SetTile(world.Loc{X: 0, Y: 1}, maps.Tile{Data: c.RoomTerrain()})
		c.SetTile(world.Loc{X: 1, Y: 1}, maps.Tile{Data: c.RoomTerrain()})
		return nil
	}))
	ctx, err := g.GenMap(&ZoneContext{CurrentZone: "seal"})
	if err != nil {
		t.Fatalf("GenMap() error = %v", err)
	}
	m := ctx.Map()
	if got := m.Tile(world.Loc{X: 0, Y: 1}).Data.ID; got != maps.TerrainUnbreakable {
		t.Errorf("edge tile = %q, want %q", got, maps.TerrainUnbreakable)
	}
	if got := m.Tile(world.Loc{X: 1, Y: 1}).Data.ID; got != maps.TerrainFloor {
		t.Errorf("inner tile = %q, want %q", got, maps.TerrainFloor)
	}
	if m.ID != "seal/0/0" {
		t.Errorf("map ID = %q, want seal/0/0", m.ID)
	}
}

func TestFloorMapGen_String(t *testing.T) {
	g := NewStairsFloorGen()
	if got := g.String(); got != "stairs: [EMPTY]" {
		t.Errorf("String() = %q", got)
	}
	g.Steps.Add(NewPriority(0), initStep{w: 4, h: 4})
	if got := g.String(); got != "stairs: open room" {
		t.Errorf("String() = %q", got)
	}
	g.Comment = "cave"
	if got := g.String(); got != "stairs: cave" {
		t.Errorf("String() = %q", got)
	}
}

func TestChanceFloorGen_PicksWithFloorSeed(t *testing.T) {
	var first, second uint64
	mk := func(out *uint64) FloorGen {
		g := NewStairsFloorGen()
		g.Steps.Add(NewPriority(0), initStep{w: 4, h: 4})
		g.Steps.Add(NewPriority(1), seedRecorder{first: out})
		return g
	}
	c := &ChanceFloorGen{Spawns: rng.NewSpawnList[FloorGen]()}
	c.Spawns.Add(mk(&first), 1)
	c.Spawns.Add(mk(&second), 1)

	seed := uint64(12)
	wantIdx, err := c.Spawns.PickIndex(rng.New(seed))
	if err != nil {
		t.Fatalf("PickIndex() error = %v", err)
	}
	if _, err := c.GenMap(&ZoneContext{Seed: seed}); err != nil {
		t.Fatalf("GenMap() error = %v", err)
	}
	got := []uint64{first, second}
	if got[wantIdx] != rng.New(seed).Uint64() {
		t.Errorf("generator %d did not run with the floor seed", wantIdx)
	}
	if got[1-wantIdx] != 0 {
		t.Errorf("generator %d ran but was not picked", 1-wantIdx)
	}

	empty := &ChanceFloorGen{}
	if _, err := empty.GenMap(&ZoneContext{}); !errors.Is(err, rng.ErrEmptySpawnList) {
		t.Errorf("empty GenMap() error = %v, want ErrEmptySpawnList", err)
	}
}

type stepFunc func(ctx Context) error

func (f stepFunc) CanApply(ctx Context) bool { return true }
func (f stepFunc) Apply(ctx Context) error   { return f(ctx) }
