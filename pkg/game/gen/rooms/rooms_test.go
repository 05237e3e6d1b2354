package rooms

import (
	"errors"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

func newCanvas(t *testing.T, w, h int, store maps.MapStore) *gen.StairsContext {
	t.Helper()
	ctx := gen.NewStairsContext()
	ctx.SetEnv(gen.Env{Maps: store})
	ctx.InitSeed(1)
	ctx.CreateNew(w, h, false)
	return ctx
}

func countOpen(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func TestDiamond_BorderFollowsSilhouette(t *testing.T) {
	d := NewDiamond(rng.Single(5), rng.Single(5))
	if err := d.PrepareSize(nil, world.Loc{X: 5, Y: 5}); err != nil {
		t.Fatalf("PrepareSize() error = %v", err)
	}
	for _, dir := range world.AllDir4() {
		flags := d.FulfillableBorder(dir)
		if len(flags) != 5 {
			t.Fatalf("%v border has %d flags, want 5", dir, len(flags))
		}
		if !flags[2] {
			t.Errorf("%v midpoint is not fulfillable", dir)
		}
		if flags[0] || flags[4] {
			t.Errorf("%v corner is fulfillable: %v", dir, flags)
		}
	}
}

func TestDiamond_DrawsSilhouette(t *testing.T) {
	ctx := newCanvas(t, 7, 7, nil)
	d := NewDiamond(rng.Single(5), rng.Single(5))
	d.PrepareSize(nil, world.Loc{X: 5, Y: 5})
	d.SetLoc(world.Loc{X: 1, Y: 1})
	if err := d.DrawOnMap(ctx); err != nil {
		t.Fatalf("DrawOnMap() error = %v", err)
	}
	if ctx.TileBlocked(world.Loc{X: 3, Y: 3}) {
		t.Error("diamond center is blocked")
	}
	if !ctx.TileBlocked(world.Loc{X: 1, Y: 1}) {
		t.Error("diamond corner was drawn")
	}
	if ctx.TileBlocked(world.Loc{X: 3, Y: 1}) {
		t.Error("diamond top tip is blocked")
	}
}

func TestDiamond_CapsuleHasFlatSides(t *testing.T) {
	d := NewDiamond(rng.Single(9), rng.Single(3))
	d.PrepareSize(nil, world.Loc{X: 9, Y: 3})
	if got := countOpen(d.FulfillableBorder(world.North)); got < 3 {
		t.Errorf("north side of a 9x3 capsule has %d open tiles, want at least 3", got)
	}
	if !d.FulfillableBorder(world.West)[1] {
		t.Error("west tip of the capsule is not fulfillable")
	}
}

func TestRooms_DegenerateSize(t *testing.T) {
	for _, g := range []gen.RoomGen{NewSquare(rng.Single(1), rng.Single(1)), NewDiamond(rng.Single(1), rng.Single(1)), NewDefault()} {
		err := g.PrepareSize(nil, world.Loc{X: 0, Y: 3})
		if !errors.Is(err, ErrDegenerateRoom) {
			t.Errorf("%v PrepareSize(0x3) error = %v, want ErrDegenerateRoom", g, err)
		}
		if len(gen.OpenSides(g)) != 0 {
			t.Errorf("%v zero-area room has open sides", g)
		}
	}
}

func TestSquare_ProposeAndCopy(t *testing.T) {
	s := NewSquare(rng.NewRange(3, 6), rng.Single(4))
	r := rng.New(3)
	for i := 0; i < 20; i++ {
		size := s.ProposeSize(r)
		if size.X < 3 || size.X >= 6 || size.Y != 4 {
			t.Fatalf("ProposeSize() = %v outside 3-5 x 4", size)
		}
	}
	s.PrepareSize(r, world.Loc{X: 3, Y: 4})
	s.SetLoc(world.Loc{X: 2, Y: 2})
	c := s.Copy()
	s.SetLoc(world.Loc{X: 9, Y: 9})
	if c.Draw() != (world.Rect{X: 2, Y: 2, W: 3, H: 4}) {
		t.Errorf("copy Draw() = %v, moved with the original", c.Draw())
	}
	if len(gen.OpenSides(c)) != 4 {
		t.Error("square copy lost its open borders")
	}
}

// vault is a 3x3 map with one item, one team member and an entrance
func vault() *maps.Map {
	m := maps.NewMap("vault", 3, 3, maps.NewTerrain(maps.TerrainFloor))
	m.Tiles[0][0].Data = maps.NewTerrain(maps.TerrainWall)
	m.Tiles[2][2].Data = maps.NewTerrain(maps.TerrainWater)
	m.Items = []maps.MapItem{{ID: "apple", Loc: world.Loc{X: 1, Y: 1}}}
	m.Teams = []*maps.Team{{Members: []maps.Character{{Species: "bat", Level: 3, Loc: world.Loc{X: 2, Y: 0}}}}}
	m.EntryPoints = []maps.EntryPoint{{Loc: world.Loc{X: 2, Y: 2}, Dir: world.Dir8South}}
	layer := m.AddLayer("deco")
	layer.Layer = maps.DrawTop
	layer.Visible = true
	layer.Tiles[1][1] = maps.AutoTile{AutoTileset: "rug"}
	m.Decorations = []*maps.AnimLayer{{Name: "fx", Visible: true, Anims: []maps.GroundAnim{{AnimID: "torch", MapLoc: world.Loc{X: 4, Y: 4}}}}}
	return m
}

func vaultStore() *maps.MemoryStore {
	store := maps.NewMemoryStore()
	store.Put(vault())
	return store
}

func TestLoadMap_StampsContent(t *testing.T) {
	store := vaultStore()
	ctx := newCanvas(t, 8, 8, store)
	room := NewLoadMap("vault")
	room.PreventChanges = gen.PreventChanges
	if err := gen.PrepareRoom(ctx, room); err != nil {
		t.Fatalf("PrepareRoom() error = %v", err)
	}
	size := room.ProposeSize(ctx.Rand())
	if size != (world.Loc{X: 3, Y: 3}) {
		t.Fatalf("ProposeSize() = %v, want 3x3", size)
	}
	if err := room.PrepareSize(ctx.Rand(), size); err != nil {
		t.Fatalf("PrepareSize() error = %v", err)
	}
	room.SetLoc(world.Loc{X: 2, Y: 3})
	if err := room.DrawOnMap(ctx); err != nil {
		t.Fatalf("DrawOnMap() error = %v", err)
	}

	m := ctx.Map()
	if got := m.Tile(world.Loc{X: 4, Y: 5}).Data.ID; got != maps.TerrainWater {
		t.Errorf("stamped tile = %q, want water", got)
	}
	if len(m.Items) != 1 || m.Items[0].Loc != (world.Loc{X: 3, Y: 4}) {
		t.Errorf("items = %v, want apple at (3,4)", m.Items)
	}
	if len(m.Teams) != 1 || m.Teams[0].Members[0].Loc != (world.Loc{X: 4, Y: 3}) {
		t.Errorf("teams = %v, want bat at (4,3)", m.Teams)
	}
	if len(m.EntryPoints) != 1 || m.EntryPoints[0].Loc != (world.Loc{X: 4, Y: 5}) {
		t.Errorf("entry points = %v, want (4,5)", m.EntryPoints)
	}
	if len(m.Layers) != 1 || m.Layers[0].Tiles[4][3].AutoTileset != "rug" {
		t.Errorf("decoration layer not stamped: %v", m.Layers)
	}
	if want := (world.Loc{X: 4 + 2*maps.TileSize, Y: 4 + 3*maps.TileSize}); m.Decorations[0].Anims[0].MapLoc != want {
		t.Errorf("anim at %v, want %v", m.Decorations[0].Anims[0].MapLoc, want)
	}
	if !ctx.PostProc(world.Loc{X: 3, Y: 4}).Has(gen.PreventChanges) {
		t.Error("stamped tile is not protected")
	}
	if ctx.PostProc(world.Loc{X: 1, Y: 1}).Status != 0 {
		t.Error("tile outside the room is protected")
	}

	// the stored template is untouched
	again, _ := store.GetMap("vault")
	if again.Items[0].Loc != (world.Loc{X: 1, Y: 1}) {
		t.Error("stamping moved the stored map's items")
	}

	// north border: wall, floor, floor
	north := room.FulfillableBorder(world.North)
	if north[0] || !north[1] || !north[2] {
		t.Errorf("north border = %v, want [false true true]", north)
	}
	// south border: floor, floor, water
	if south := room.FulfillableBorder(world.South); south[2] {
		t.Errorf("water tile is fulfillable: %v", south)
	}
}

func TestLoadMap_OutOfBoundsFails(t *testing.T) {
	ctx := newCanvas(t, 5, 5, vaultStore())
	room := NewLoadMap("vault")
	if err := gen.PrepareRoom(ctx, room); err != nil {
		t.Fatalf("PrepareRoom() error = %v", err)
	}
	room.PrepareSize(ctx.Rand(), room.ProposeSize(ctx.Rand()))
	room.SetLoc(world.Loc{X: 3, Y: 3})

	err := room.DrawOnMap(ctx)
	if !errors.Is(err, maps.ErrOutOfBounds) {
		t.Fatalf("DrawOnMap() error = %v, want ErrOutOfBounds", err)
	}
	m := ctx.Map()
	if len(m.EntryPoints) != 0 || len(m.Items) != 0 {
		t.Error("failed stamp left content behind")
	}
}

func TestLoadMap_SizeMismatchDrawsDefault(t *testing.T) {
	ctx := newCanvas(t, 8, 8, vaultStore())
	room := NewLoadMap("vault")
	gen.PrepareRoom(ctx, room)
	if err := room.PrepareSize(ctx.Rand(), world.Loc{X: 2, Y: 2}); err != nil {
		t.Fatalf("PrepareSize() error = %v", err)
	}
	room.SetLoc(world.Loc{X: 1, Y: 1})
	if err := room.DrawOnMap(ctx); err != nil {
		t.Fatalf("DrawOnMap() error = %v", err)
	}
	m := ctx.Map()
	if got := m.Tile(world.Loc{X: 1, Y: 1}).Data.ID; got != maps.TerrainFloor {
		t.Errorf("default draw tile = %q, want floor", got)
	}
	if len(m.Items) != 0 {
		t.Error("default draw stamped items")
	}
	for _, d := range world.AllDir4() {
		if countOpen(room.FulfillableBorder(d)) != 2 {
			t.Errorf("%v border not fully open on default draw", d)
		}
	}
}

func TestLoadMap_MissingMap(t *testing.T) {
	ctx := newCanvas(t, 5, 5, maps.NewMemoryStore())
	if err := gen.PrepareRoom(ctx, NewLoadMap("nowhere")); !errors.Is(err, maps.ErrMapNotFound) {
		t.Errorf("PrepareRoom() error = %v, want ErrMapNotFound", err)
	}
	bare := newCanvas(t, 5, 5, nil)
	if err := gen.PrepareRoom(bare, NewLoadMap("vault")); !errors.Is(err, ErrNoMapStore) {
		t.Errorf("PrepareRoom() without store error = %v, want ErrNoMapStore", err)
	}
}

func TestLoadMapBordered(t *testing.T) {
	ctx := newCanvas(t, 8, 8, vaultStore())
	borders := Borders{
		North: []bool{false, true, false},
		East:  []bool{false, false, false},
		South: []bool{true, false, false},
		West:  []bool{false, false, true},
	}
	room := NewLoadMapBordered("vault", borders)
	gen.PrepareRoom(ctx, room)
	if err := room.PrepareSize(ctx.Rand(), world.Loc{X: 3, Y: 3}); err != nil {
		t.Fatalf("PrepareSize() error = %v", err)
	}
	for _, d := range world.AllDir4() {
		got := room.FulfillableBorder(d)
		want := borders.Side(d)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v border = %v, want %v", d, got, want)
				break
			}
		}
	}
	if sides := gen.OpenSides(room); len(sides) != 3 {
		t.Errorf("OpenSides() = %v, want three sides", sides)
	}

	short := NewLoadMapBordered("vault", Borders{North: []bool{true}})
	gen.PrepareRoom(ctx, short)
	if err := short.PrepareSize(ctx.Rand(), world.Loc{X: 3, Y: 3}); err == nil {
		t.Error("PrepareSize() accepted a border list of the wrong length")
	}
}
