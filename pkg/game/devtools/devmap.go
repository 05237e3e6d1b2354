package devtools

import (
	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/gen/rooms"
	"delvegen/pkg/game/gen/steps"
	"delvegen/pkg/game/maps"
	"delvegen/pkg/game/zone"
)

// Map ids held by DevStore
const (
	DevVault = "dev_vault"
	DevHall  = "dev_hall"
)

// DevStore returns the hard-coded maps DevZone loads
func DevStore() *maps.MemoryStore {
	store := maps.NewMemoryStore()

	// 5x5 vault: floor with a water centre and a chest
	vault := maps.NewMap(DevVault, 5, 5, maps.NewTerrain(maps.TerrainFloor))
	vault.Tiles[2][2] = maps.Tile{Data: maps.NewTerrain(maps.TerrainWater)}
	vault.Items = append(vault.Items, maps.MapItem{ID: "chest", Loc: world.Loc{X: 1, Y: 1}})
	store.Put(vault)

	// 12x9 hall walled in unbreakable stone, entrance on the left and
	// stairs on the right
	hall := maps.NewMap(DevHall, 12, 9, maps.NewTerrain(maps.TerrainUnbreakable))
	for y := 1; y < 8; y++ {
		for x := 1; x < 11; x++ {
			hall.Tiles[y][x] = maps.Tile{Data: maps.NewTerrain(maps.TerrainFloor)}
		}
	}
	hall.Tiles[4][10].Effect = gen.StairsEffect
	hall.EntryPoints = append(hall.EntryPoints, maps.EntryPoint{Loc: world.Loc{X: 1, Y: 4}, Dir: world.Dir8East})
	hall.Teams = append(hall.Teams, &maps.Team{Members: []maps.Character{
		{Species: "guard", Level: 5, Loc: world.Loc{X: 8, Y: 3}},
		{Species: "guard", Level: 5, Loc: world.Loc{X: 8, Y: 5}},
	}})
	store.Put(hall)
	return store
}

func oneRoom(g gen.RoomGen) rng.SpawnList[gen.RoomGen] {
	list := rng.NewSpawnList[gen.RoomGen]()
	list.Add(g, 1)
	return list
}

func devItems() rng.SpawnList[string] {
	list := rng.NewSpawnList[string]()
	list.Add("apple", 3)
	list.Add("gem", 1)
	return list
}

func devTeams() rng.SpawnList[steps.TeamSpec] {
	list := rng.NewSpawnList[steps.TeamSpec]()
	list.Add(steps.TeamSpec{Species: []string{"rat", "rat"}, Level: rng.NewRange(1, 4)}, 2)
	list.Add(steps.TeamSpec{Species: []string{"bat"}, Level: rng.Single(3)}, 1)
	return list
}

func devGrid() gen.FloorGen {
	g := gen.NewGridFloorGen()
	squares := rng.NewSpawnList[gen.RoomGen]()
	squares.Add(rooms.NewSquare(rng.NewRange(3, 8), rng.NewRange(3, 8)), 3)
	squares.Add(rooms.NewDiamond(rng.Single(7), rng.Single(7)), 1)

	g.Steps.Add(gen.NewPriority(-4), &steps.InitGridPlan{CellsX: 4, CellsY: 3, CellWidth: 9, CellHeight: 9})
	g.Steps.Add(gen.NewPriority(-3), &steps.GridRooms{Rooms: squares, FillPercent: 75})
	g.Steps.Add(gen.NewPriority(-3), &steps.GridHalls{ConnectPercent: 25})
	g.Steps.Add(gen.NewPriority(-3, 5), &steps.SetGridSpecialRoom{Rooms: oneRoom(rooms.NewLoadMap(DevVault)), Components: []string{"vault"}})
	g.Steps.Add(gen.NewPriority(-2), &steps.DrawGridToFloor{})
	g.Steps.Add(gen.NewPriority(-1), &steps.DrawFloorToTile{})
	g.Steps.Add(gen.NewPriority(2), steps.NewFloorStairs())
	g.Steps.Add(gen.NewPriority(3), &steps.ItemSpawn{Items: devItems(), Amount: rng.NewRange(2, 5)})
	g.Steps.Add(gen.NewPriority(3), &steps.TeamSpawn{Teams: devTeams(), Amount: rng.NewRange(1, 3)})
	return g
}

func devRooms() gen.FloorGen {
	g := gen.NewRoomFloorGen()
	g.Steps.Add(gen.NewPriority(-4), &steps.InitFloorPlan{Width: 36, Height: 24})
	g.Steps.Add(gen.NewPriority(-3), &steps.FloorRooms{Rooms: oneRoom(rooms.NewSquare(rng.NewRange(3, 7), rng.NewRange(3, 6))), RoomCount: rng.NewRange(5, 8)})
	g.Steps.Add(gen.NewPriority(-2, 5), &steps.SetSpecialRoom{Rooms: oneRoom(rooms.NewDiamond(rng.Single(7), rng.Single(7))), Components: []string{"shrine"}})
	g.Steps.Add(gen.NewPriority(-1), &steps.DrawFloorToTile{})
	g.Steps.Add(gen.NewPriority(2), &steps.FloorStairs{Entrances: 1, Exits: 2})
	g.Steps.Add(gen.NewPriority(3), &steps.ItemSpawn{Items: devItems(), Amount: rng.NewRange(1, 4)})
	return g
}

func devCave(pool bool) gen.FloorGen {
	g := gen.NewStairsFloorGen()
	g.Steps.Add(gen.NewPriority(0), &steps.InitTiles{Width: 14, Height: 10})
	g.Steps.Add(gen.NewPriority(1), &steps.TerrainFill{Rect: world.Rect{X: 1, Y: 1, W: 12, H: 8}})
	if pool {
		g.Comment = "cave with a pool"
		g.Steps.Add(gen.NewPriority(1, 1), &steps.TerrainFill{Rect: world.Rect{X: 5, Y: 3, W: 4, H: 3}, Terrain: maps.TerrainWater})
	}
	g.Steps.Add(gen.NewPriority(2), steps.NewFloorStairs())
	return g
}

func devHall() gen.FloorGen {
	g := gen.NewLoadFloorGen()
	g.Steps.Add(gen.NewPriority(0), &steps.MappedRoom{MapID: DevHall})
	g.Steps.Add(gen.NewPriority(2), steps.NewFloorStairs())
	return g
}

// DevZone returns a hard-coded zone with one floor of every kind: grid,
// free-form rooms, a cave, a loaded hall and a random pick of caves. Every
// room kind appears on some floor.
func DevZone() *zone.Zone {
	chance := &gen.ChanceFloorGen{}
	chance.Spawns.Add(devCave(false), 1)
	chance.Spawns.Add(devCave(true), 1)

	seg := zone.NewLayeredSegment(devGrid(), devRooms(), devCave(true), devHall(), chance)
	seg.Relevant = true
	seg.Comment = "one floor of every kind"
	seg.AddStep(&zone.FloorNameZoneStep{Name: "Dev Floor %d", Priority: gen.NewPriority(5)})
	seg.AddStep(&zone.MoneySpawnZoneStep{
		Start:     rng.NewRange(10, 21),
		Add:       rng.Single(10),
		Divisions: rng.NewRange(1, 4),
		Priority:  gen.NewPriority(3, 1),
	})

	z := zone.NewZone("dev", seg)
	z.Env = gen.Env{Maps: DevStore()}
	return z
}
