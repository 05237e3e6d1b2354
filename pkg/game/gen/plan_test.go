package gen

import (
	"errors"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/maps"
)

// boxRoom is a minimal room gen with every border open
type boxRoom struct {
	RoomGenBase
}

func newBoxRoom(x, y, w, h int) *boxRoom {
	b := &boxRoom{}
	b.PrepareSize(nil, world.Loc{X: w, Y: h})
	b.SetLoc(world.Loc{X: x, Y: y})
	return b
}

func (b *boxRoom) ProposeSize(r *rng.Rand) world.Loc { return b.Draw().Size() }

func (b *boxRoom) PrepareSize(r *rng.Rand, size world.Loc) error {
	b.Resize(size)
	for _, d := range world.AllDir4() {
		for i := range b.FulfillableBorder(d) {
			b.SetBorder(d, i, true)
		}
	}
	return nil
}

func (b *boxRoom) DrawOnMap(ctx TiledContext) error { return nil }

func (b *boxRoom) Copy() RoomGen {
	return &boxRoom{RoomGenBase: b.CopyBase()}
}

func TestFloorPlan_AddRoom(t *testing.T) {
	p := NewFloorPlan(world.Loc{X: 20, Y: 10}, false)
	if _, err := p.AddRoom(newBoxRoom(1, 1, 4, 4), NewComponents()); err != nil {
		t.Fatalf("AddRoom() error = %v", err)
	}
	if _, err := p.AddRoom(newBoxRoom(3, 3, 4, 4), NewComponents()); !errors.Is(err, ErrRoomOverlap) {
		t.Errorf("overlapping AddRoom() error = %v, want ErrRoomOverlap", err)
	}
	if _, err := p.AddRoom(newBoxRoom(18, 1, 4, 4), NewComponents()); !errors.Is(err, ErrRoomOutOfBounds) {
		t.Errorf("outside AddRoom() error = %v, want ErrRoomOutOfBounds", err)
	}
	if _, err := p.AddRoom(newBoxRoom(10, 1, 0, 4), NewComponents()); !errors.Is(err, ErrRoomOutOfBounds) {
		t.Errorf("empty AddRoom() error = %v, want ErrRoomOutOfBounds", err)
	}
	if p.RoomCount() != 1 {
		t.Errorf("RoomCount() = %d, want 1", p.RoomCount())
	}
}

func TestFloorPlan_ConnectAndReplace(t *testing.T) {
	p := NewFloorPlan(world.Loc{X: 30, Y: 10}, false)
	a, _ := p.AddRoom(newBoxRoom(1, 1, 3, 3), NewComponents())
	b, _ := p.AddRoom(newBoxRoom(10, 1, 3, 3), NewComponents(ComponentImmutable))
	c, _ := p.AddRoom(newBoxRoom(20, 1, 3, 3), Components{})

	p.Connect(a, b)
	p.Connect(b, a)
	p.Connect(a, a)
	if len(p.Connections) != 1 {
		t.Errorf("Connections = %v, want one", p.Connections)
	}
	if p.IsConnected() {
		t.Error("IsConnected() = true with room c isolated")
	}
	p.Connect(b, c)
	if !p.IsConnected() {
		t.Error("IsConnected() = false after joining c")
	}

	if got := p.FilterRooms([]RoomFilter{ImmutableFilter}); len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("FilterRooms(immutable excluded) = %v, want [%d %d]", got, a, c)
	}

	if err := p.ReplaceRoom(c, newBoxRoom(12, 5, 3, 3), NewComponents(ComponentSpecial)); err != nil {
		t.Fatalf("ReplaceRoom() error = %v", err)
	}
	if !p.Rooms[c].Components.Has(ComponentSpecial) {
		t.Error("replacement lost its components")
	}
	if adj := p.Adjacent(c); len(adj) != 1 || adj[0] != b {
		t.Errorf("Adjacent(c) = %v, want [%d]", adj, b)
	}
	if err := p.ReplaceRoom(c, newBoxRoom(11, 2, 3, 3), NewComponents()); !errors.Is(err, ErrRoomOverlap) {
		t.Errorf("overlapping ReplaceRoom() error = %v, want ErrRoomOverlap", err)
	}
}

func TestComponentFilter(t *testing.T) {
	c := NewComponents("a", "b")
	tests := []struct {
		name   string
		filter ComponentFilter
		want   bool
	}{
		{"has all", ComponentFilter{Components: []string{"a", "b"}}, true},
		{"missing one", ComponentFilter{Components: []string{"a", "c"}}, false},
		{"negate absent", ComponentFilter{Components: []string{"c"}, Negate: true}, true},
		{"negate present", ComponentFilter{Components: []string{"a"}, Negate: true}, false},
		{"empty", ComponentFilter{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Passes(c); got != tt.want {
				t.Errorf("Passes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGridPlan_Halls(t *testing.T) {
	g, err := NewGridPlan(3, 2, 5, 6, false)
	if err != nil {
		t.Fatalf("NewGridPlan() error = %v", err)
	}
	if got := g.Size(); got != (world.Loc{X: 17, Y: 14}) {
		t.Errorf("Size() = %v, want {17 14}", got)
	}
	if got := g.CellBounds(1, 1); got != (world.Rect{X: 6, Y: 7, W: 5, H: 6}) {
		t.Errorf("CellBounds(1,1) = %v", got)
	}
	if err := g.SetHall(0, 0, world.East, true); err != nil {
		t.Fatalf("SetHall() error = %v", err)
	}
	if !g.HasHall(1, 0, world.West) {
		t.Error("hall is not visible from the other cell")
	}
	if err := g.SetHall(2, 0, world.East, true); err == nil {
		t.Error("SetHall() off the grid succeeded")
	}
	g.SetHall(1, 0, world.South, true)
	if got := g.HallCount(1, 0); got != 2 {
		t.Errorf("HallCount(1,0) = %d, want 2", got)
	}
	if g.HasHall(0, 1, world.North) {
		t.Error("unexpected hall at (0,1) north")
	}
}

func TestNewGridPlan_Invalid(t *testing.T) {
	if _, err := NewGridPlan(0, 2, 5, 5, false); err == nil {
		t.Error("zero cells accepted")
	}
	if _, err := NewGridPlan(2, 2, 2, 5, false); err == nil {
		t.Error("cell narrower than minimum accepted")
	}
}

func TestBaseContext_SetTileRespectsMask(t *testing.T) {
	c := NewStairsContext()
	c.CreateNew(5, 5, false)
	l := world.Loc{X: 2, Y: 2}
	c.PostProc(l).AddMask(PostProcTerrain)
	if c.SetTile(l, maps.Tile{Data: c.RoomTerrain()}) {
		t.Error("SetTile() changed protected terrain")
	}
	if !c.TileBlocked(l) {
		t.Error("protected wall became passable")
	}
	if c.SetTile(world.Loc{X: 9, Y: 9}, maps.Tile{Data: c.RoomTerrain()}) {
		t.Error("SetTile() outside the map reported success")
	}
}

func TestStairsContext_AddEnd(t *testing.T) {
	c := NewStairsContext()
	if err := c.AddEnd(world.Loc{}); !errors.Is(err, ErrNoMap) {
		t.Errorf("AddEnd() before map error = %v, want ErrNoMap", err)
	}
	c.CreateNew(4, 4, false)
	l := world.Loc{X: 1, Y: 2}
	if err := c.AddEnd(l); err != nil {
		t.Fatalf("AddEnd() error = %v", err)
	}
	if c.Map().Tile(l).Effect != StairsEffect {
		t.Error("exit tile has no stairs effect")
	}
	if !c.PostProc(l).Has(PostProcItem) {
		t.Error("exit tile accepts items")
	}
	if err := c.AddEnd(world.Loc{X: 7, Y: 7}); !errors.Is(err, maps.ErrOutOfBounds) {
		t.Errorf("AddEnd() outside error = %v, want ErrOutOfBounds", err)
	}

	panel := world.Loc{X: 3, Y: 0}
	c.Map().Tile(panel).Effect = "trap"
	c.PostProc(panel).AddMask(PostProcPanel)
	if err := c.AddEnd(panel); !errors.Is(err, ErrProtectedTile) {
		t.Errorf("AddEnd() on a panel error = %v, want ErrProtectedTile", err)
	}
	if got := c.Map().Tile(panel).Effect; got != "trap" {
		t.Errorf("protected effect = %q, want trap", got)
	}
	if len(c.Ends()) != 1 {
		t.Errorf("Ends() = %v, want one exit", c.Ends())
	}
}

func TestMapLoadContext_SetMapFindsExits(t *testing.T) {
	m := maps.NewMap("src", 3, 3, maps.NewTerrain(maps.TerrainFloor))
	m.Tiles[1][2].Effect = StairsEffect
	c := NewMapLoadContext()
	c.SetID("dst")
	c.InitSeed(9)
	c.SetMap(m)
	if ends := c.Ends(); len(ends) != 1 || ends[0] != (world.Loc{X: 2, Y: 1}) {
		t.Errorf("Ends() = %v, want [(2,1)]", ends)
	}
	if m.ID != "dst" || m.Seed != 9 {
		t.Errorf("map id/seed = %q/%d, want dst/9", m.ID, m.Seed)
	}
}

func TestCapabilities(t *testing.T) {
	if !Is[FloorPlanContext](NewGridContext()) {
		t.Error("grid context is not a floor plan context")
	}
	if Is[GridPlanContext](NewListContext()) {
		t.Error("list context claims a grid plan")
	}
	if Is[FloorPlanContext](NewMapLoadContext()) {
		t.Error("map load context claims a floor plan")
	}
	if Is[MapLoadGenContext](NewStairsContext()) {
		t.Error("stairs context claims map loading")
	}
}
