// Package devtools dumps and prints generated floors for debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// TerrainSymbol returns the symbol of a tile without spawns
func TerrainSymbol(t *maps.Tile) rune {
	if t == nil {
		return ' '
	}
	switch {
	case t.Effect == gen.StairsEffect:
		return '>'
	case t.Effect != "":
		return '^'
	}
	switch t.Data.ID {
	case maps.TerrainFloor:
		return '.'
	case maps.TerrainWall:
		return '#'
	case maps.TerrainUnbreakable:
		return '%'
	case maps.TerrainWater:
		return '~'
	case "":
		return ' '
	}
	return '?'
}

// Symbol returns the symbol of a location with entrances, characters and
// items drawn over the terrain
func Symbol(m *maps.Map, l world.Loc) rune {
	for _, ep := range m.EntryPoints {
		if ep.Loc == l {
			return '<'
		}
	}
	if m.CharAt(l) {
		return 'm'
	}
	if i := m.ItemAt(l); i >= 0 {
		if m.Items[i].ID == maps.MoneyItem {
			return '$'
		}
		return '*'
	}
	return TerrainSymbol(m.Tile(l))
}

// Legend describes every symbol
const Legend = ". = floor  # = wall  % = unbreakable  ~ = water  ? = other terrain  > = stairs  ^ = other effect  < = entrance  m = character  $ = money  * = item"

// writeMapGrid writes one row of symbols per map row
func writeMapGrid(w io.Writer, m *maps.Map, spawns bool) {
	for y := 0; y < m.Height; y++ {
		var row strings.Builder
		for x := 0; x < m.Width; x++ {
			l := world.Loc{X: x, Y: y}
			if spawns {
				row.WriteRune(Symbol(m, l))
			} else {
				row.WriteRune(TerrainSymbol(m.Tile(l)))
			}
		}
		fmt.Fprintln(w, row.String())
	}
}

// DumpFloor writes a sectioned text dump of a generated floor: metadata,
// legend, the map with and without spawns, the room plan and every spawn
func DumpFloor(w io.Writer, ctx gen.Context) error {
	m := ctx.Map()
	if m == nil {
		return gen.ErrNoMap
	}

	fmt.Fprintln(w, "=== FLOOR DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "id: %s\n", m.ID)
	fmt.Fprintf(w, "name: %q\n", m.Name)
	fmt.Fprintf(w, "seed: %d\n", ctx.Seed())
	fmt.Fprintf(w, "width: %d\n", m.Width)
	fmt.Fprintf(w, "height: %d\n", m.Height)
	fmt.Fprintf(w, "wrap: %v\n", m.Wrap)
	fmt.Fprintf(w, "money: %v\n", m.Money)
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, Legend)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (terrain) ---")
	writeMapGrid(w, m, false)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (with spawns) ---")
	writeMapGrid(w, m, true)
	fmt.Fprintln(w, "")

	if fp, ok := ctx.(gen.FloorPlanContext); ok && fp.FloorPlan() != nil {
		plan := fp.FloorPlan()
		fmt.Fprintln(w, "Rooms:")
		for i, room := range plan.Rooms {
			var comps []string
			room.Components.Each(func(c string) { comps = append(comps, c) })
			slices.Sort(comps)
			r := room.Gen.Draw()
			fmt.Fprintf(w, "  index: %d x: %d y: %d w: %d h: %d gen: %q components: %v adjacent: %v\n",
				i, r.X, r.Y, r.W, r.H, fmt.Sprint(room.Gen), comps, plan.Adjacent(i))
		}
		fmt.Fprintf(w, "connected: %v\n", plan.IsConnected())
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "Entrances:")
	for _, ep := range m.EntryPoints {
		fmt.Fprintf(w, "  x: %d y: %d dir: %v\n", ep.Loc.X, ep.Loc.Y, ep.Dir)
	}
	fmt.Fprintln(w, "")

	if sc, ok := ctx.(gen.StairsGenContext); ok {
		fmt.Fprintln(w, "Exits:")
		for _, l := range sc.Ends() {
			fmt.Fprintf(w, "  x: %d y: %d\n", l.X, l.Y)
		}
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "Items:")
	for _, it := range m.Items {
		fmt.Fprintf(w, "  x: %d y: %d id: %q amount: %d\n", it.Loc.X, it.Loc.Y, it.ID, it.Amount)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Teams:")
	for i, team := range m.Teams {
		for _, c := range team.Members {
			fmt.Fprintf(w, "  team: %d x: %d y: %d species: %q level: %d\n", i, c.Loc.X, c.Loc.Y, c.Species, c.Level)
		}
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "=== END FLOOR DUMP ===")
	return nil
}

// DumpFloorToFile writes DumpFloor to <dir>/<map id>.txt and returns the
// absolute path
func DumpFloorToFile(ctx gen.Context, dir string) (string, error) {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(ctx.ID()) + ".txt"
	absPath, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpFloor(f, ctx); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
