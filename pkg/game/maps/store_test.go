package maps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"delvegen/pkg/engine/world"
)

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.GetMap("nope"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("GetMap err = %v, want ErrMapNotFound", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	s.Put(NewMap("room", 2, 2, NewTerrain(TerrainFloor)))

	a, err := s.GetMap("room")
	if err != nil {
		t.Fatalf("GetMap: %v", err)
	}
	a.Tiles[0][0].Data.ID = TerrainWall

	b, _ := s.GetMap("room")
	if b.Tiles[0][0].Data.ID != TerrainFloor {
		t.Error("modifying a returned map changed the stored template")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewMap("vault", 3, 2, NewTerrain(TerrainFloor))
	m.EntryPoints = []EntryPoint{{Loc: world.Loc{X: 1, Y: 1}, Dir: world.Dir8South}}
	m.Items = []MapItem{{ID: "key", Loc: world.Loc{X: 2, Y: 0}}}
	if _, err := SaveMap(dir, m); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	s := NewFileStore(dir, 2)
	got, err := s.GetMap("vault")
	if err != nil {
		t.Fatalf("GetMap: %v", err)
	}
	if got.Width != 3 || got.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", got.Width, got.Height)
	}
	if len(got.EntryPoints) != 1 || got.EntryPoints[0].Dir != world.Dir8South {
		t.Errorf("EntryPoints = %+v", got.EntryPoints)
	}

	got.Items[0].ID = "changed"
	again, _ := s.GetMap("vault")
	if again.Items[0].ID != "key" {
		t.Error("cached map was modified through a returned copy")
	}
}

func TestFileStore_Errors(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, 0)

	if _, err := s.GetMap("missing"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("missing map err = %v, want ErrMapNotFound", err)
	}
	if _, err := s.GetMap("../etc"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("path escape err = %v, want ErrMapNotFound", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.GetMap("broken")
	if err == nil || errors.Is(err, ErrMapNotFound) {
		t.Errorf("broken map err = %v, want a parse error", err)
	}
}
