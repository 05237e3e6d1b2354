package world

import "testing"

// openGrid builds a passable predicate from an ASCII layout ('.' is open).
func openGrid(rows []string) (Rect, func(Loc) bool) {
	rect := Rect{W: len(rows[0]), H: len(rows)}
	return rect, func(l Loc) bool {
		if !rect.Contains(l) {
			return false
		}
		return rows[l.Y][l.X] == '.'
	}
}

func TestFloodFill_StopsAtWalls(t *testing.T) {
	rect, open := openGrid([]string{
		"..#..",
		"..#..",
		"#####",
	})
	got := ConnectedTiles(rect, open, Loc{0, 0})
	if len(got) != 4 {
		t.Errorf("len(ConnectedTiles) = %d, want 4", len(got))
	}
	for _, l := range got {
		if l.X > 1 {
			t.Errorf("reached %v across the wall", l)
		}
	}
}

func TestFloodFill_BlockedStart(t *testing.T) {
	rect, open := openGrid([]string{"#."})
	calls := 0
	FloodFill(rect, func(l Loc) bool { return !open(l) }, func(Loc) { calls++ }, Loc{0, 0})
	if calls != 0 {
		t.Errorf("fill called %d times from a blocked start, want 0", calls)
	}
}

func TestIsConnected(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{"single region", []string{"...", ".#.", "..."}, true},
		{"split", []string{".#.", ".#.", ".#."}, false},
		{"empty", []string{"###"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, open := openGrid(tt.rows)
			if got := IsConnected(rect, open); got != tt.want {
				t.Errorf("IsConnected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBorderTiles_Square(t *testing.T) {
	rect, open := openGrid([]string{
		"###",
		"#.#",
		"###",
	})
	border := BorderTiles(rect, open)
	if len(border) != 1 || border[0] != (Loc{1, 1}) {
		t.Errorf("BorderTiles = %v, want [(1,1)]", border)
	}

	full := Rect{W: 3, H: 3}
	all := BorderTiles(full, full.Contains)
	if len(all) != 8 {
		t.Errorf("len(BorderTiles) of a full 3x3 = %d, want 8 (centre excluded)", len(all))
	}
}

func TestRect_Edge(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 3, H: 2}
	south := r.Edge(South)
	if len(south) != 3 || south[0] != (Loc{2, 4}) || south[2] != (Loc{4, 4}) {
		t.Errorf("Edge(South) = %v", south)
	}
	east := r.Edge(East)
	if len(east) != 2 || east[0] != (Loc{4, 3}) {
		t.Errorf("Edge(East) = %v", east)
	}
	if r.EdgeLength(North) != 3 || r.EdgeLength(West) != 2 {
		t.Errorf("EdgeLength = %d/%d, want 3/2", r.EdgeLength(North), r.EdgeLength(West))
	}
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	if !a.Intersects(Rect{X: 3, Y: 3, W: 2, H: 2}) {
		t.Error("overlapping corner not detected")
	}
	if a.Intersects(Rect{X: 4, Y: 0, W: 2, H: 2}) {
		t.Error("touching rectangles reported as intersecting")
	}
	if a.Intersects(Rect{X: 1, Y: 1}) {
		t.Error("empty rectangle reported as intersecting")
	}
}

func TestDir8_Opposite(t *testing.T) {
	for _, d := range AllDir8() {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v opposite %v has delta (%d,%d), want (%d,%d)", d, d.Opposite(), ox, oy, -dx, -dy)
		}
	}
	if Dir8None.Opposite() != Dir8None {
		t.Error("Dir8None.Opposite() should stay Dir8None")
	}
}

func TestGrid_Perimeter(t *testing.T) {
	g := NewGrid[int](4, 3)
	if !g.IsOnPerimeter(Loc{0, 1}) || !g.IsOnPerimeter(Loc{3, 2}) {
		t.Error("edge tile not reported on perimeter")
	}
	if g.IsOnPerimeter(Loc{1, 1}) {
		t.Error("interior tile reported on perimeter")
	}
	if g.Set(Loc{4, 0}, 1) {
		t.Error("Set out of bounds returned true")
	}
	g.Fill(7)
	sum := 0
	g.ForEachCell(func(_ Loc, v int) { sum += v })
	if sum != 7*12 {
		t.Errorf("sum after Fill = %d, want %d", sum, 7*12)
	}
}

func TestIsChokePoint(t *testing.T) {
	_, open := openGrid([]string{
		"#######",
		"#...#.#",
		"#......",
		"#...#.#",
		"#######",
	})
	tests := []struct {
		name string
		loc  Loc
		want bool
	}{
		{"room interior", Loc{2, 2}, false},
		{"room edge", Loc{1, 1}, false},
		{"doorway", Loc{4, 2}, true},
		{"crossroads", Loc{5, 2}, true},
		{"dead end", Loc{5, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChokePoint(tt.loc, open); got != tt.want {
				t.Errorf("IsChokePoint(%v) = %v, want %v", tt.loc, got, tt.want)
			}
		})
	}
}

func TestDir8_Rotate(t *testing.T) {
	tests := []struct {
		d    Dir8
		n    int
		want Dir8
	}{
		{Dir8North, 2, Dir8East},
		{Dir8West, 3, Dir8NorthEast},
		{Dir8North, -1, Dir8NorthWest},
		{Dir8South, 8, Dir8South},
		{Dir8None, 1, Dir8None},
	}
	for _, tt := range tests {
		if got := tt.d.Rotate(tt.n); got != tt.want {
			t.Errorf("%v.Rotate(%d) = %v, want %v", tt.d, tt.n, got, tt.want)
		}
	}
}
