package world

import (
	"github.com/zyedidia/generic/mapset"
)

// FloodFill visits every tile 4-connected to start inside rect that is not
// blocked, calling fill once per tile in breadth-first order.
func FloodFill(rect Rect, blocked func(Loc) bool, fill func(Loc), start Loc) {
	if !rect.Contains(start) || blocked(start) {
		return
	}

	visited := mapset.New[Loc]()
	queue := []Loc{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		fill(current)

		for _, dir := range AllDir4() {
			next := current.Move(dir)
			if !rect.Contains(next) || visited.Has(next) || blocked(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
}

// ConnectedTiles returns all tiles reachable from start through passable
// tiles, in breadth-first order.
func ConnectedTiles(rect Rect, passable func(Loc) bool, start Loc) []Loc {
	var tiles []Loc
	FloodFill(rect, func(l Loc) bool { return !passable(l) }, func(l Loc) {
		tiles = append(tiles, l)
	}, start)
	return tiles
}

// IsConnected returns true if every passable tile in rect can reach every
// other one. An area with no passable tiles counts as connected.
func IsConnected(rect Rect, passable func(Loc) bool) bool {
	total := 0
	var first *Loc
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			l := Loc{X: x, Y: y}
			if passable(l) {
				total++
				if first == nil {
					first = &l
				}
			}
		}
	}
	if first == nil {
		return true
	}
	return len(ConnectedTiles(rect, passable, *first)) == total
}

// BorderTiles returns the tiles of a region that touch a tile outside the
// region (or outside rect) on at least one cardinal side.
func BorderTiles(rect Rect, inside func(Loc) bool) []Loc {
	var border []Loc
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			l := Loc{X: x, Y: y}
			if !inside(l) {
				continue
			}
			for _, dir := range AllDir4() {
				n := l.Move(dir)
				if !rect.Contains(n) || !inside(n) {
					border = append(border, l)
					break
				}
			}
		}
	}
	return border
}

// IsChokePoint returns true when the open tiles around l fall into two or
// more separate runs, so that closing l would cut a path through it. Runs
// made only of diagonal tiles are ignored since movement is 4-connected.
func IsChokePoint(l Loc, open func(Loc) bool) bool {
	ring := AllDir8()
	start := -1
	for i, d := range ring {
		if !open(l.Move8(d)) {
			start = i
			break
		}
	}
	if start < 0 {
		return false
	}

	runs := 0
	inRun, orthogonal := false, false
	for i := 1; i <= len(ring); i++ {
		d := ring[(start+i)%len(ring)]
		if open(l.Move8(d)) {
			inRun = true
			orthogonal = orthogonal || !d.Diagonal()
			continue
		}
		if inRun && orthogonal {
			runs++
		}
		inRun, orthogonal = false, false
	}
	return runs >= 2
}
