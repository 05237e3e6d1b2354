// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import "fmt"

// Loc is a tile coordinate. X grows right, Y grows down.
type Loc struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// NewLoc creates a location
func NewLoc(x, y int) Loc {
	return Loc{X: x, Y: y}
}

// Add returns the sum of two locations
func (l Loc) Add(o Loc) Loc {
	return Loc{X: l.X + o.X, Y: l.Y + o.Y}
}

// Sub returns the difference of two locations
func (l Loc) Sub(o Loc) Loc {
	return Loc{X: l.X - o.X, Y: l.Y - o.Y}
}

// Scale multiplies both coordinates by n
func (l Loc) Scale(n int) Loc {
	return Loc{X: l.X * n, Y: l.Y * n}
}

// Move returns the neighbouring location in the given direction
func (l Loc) Move(d Dir4) Loc {
	dx, dy := d.Delta()
	return Loc{X: l.X + dx, Y: l.Y + dy}
}

// Move8 returns the neighbouring location in the given eight-way direction
func (l Loc) Move8(d Dir8) Loc {
	dx, dy := d.Delta()
	return Loc{X: l.X + dx, Y: l.Y + dy}
}

// ManhattanDistance returns |dx| + |dy|
func (l Loc) ManhattanDistance(o Loc) int {
	return abs(l.X-o.X) + abs(l.Y-o.Y)
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Rect is an axis-aligned rectangle of tiles. The end edge is exclusive.
type Rect struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// NewRect creates a rectangle from a start and size
func NewRect(start, size Loc) Rect {
	return Rect{X: start.X, Y: start.Y, W: size.X, H: size.Y}
}

// Start returns the top-left tile
func (r Rect) Start() Loc {
	return Loc{X: r.X, Y: r.Y}
}

// End returns the exclusive bottom-right corner
func (r Rect) End() Loc {
	return Loc{X: r.X + r.W, Y: r.Y + r.H}
}

// Size returns the width and height as a location
func (r Rect) Size() Loc {
	return Loc{X: r.W, Y: r.H}
}

// Center returns the middle tile, rounding toward the start
func (r Rect) Center() Loc {
	return Loc{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns W*H, or zero for degenerate rectangles
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty returns true if the rectangle has no tiles
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the location is inside the rectangle
func (r Rect) Contains(l Loc) bool {
	return l.X >= r.X && l.X < r.X+r.W && l.Y >= r.Y && l.Y < r.Y+r.H
}

// ContainsRect returns true if o lies entirely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects returns true if the rectangles share at least one tile
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Inflate grows the rectangle by n tiles on every side
func (r Rect) Inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Edge returns the tiles along one side of the rectangle, ordered by
// increasing X for North/South and increasing Y for East/West.
func (r Rect) Edge(d Dir4) []Loc {
	if r.Empty() {
		return nil
	}
	var locs []Loc
	switch d {
	case North, South:
		y := r.Y
		if d == South {
			y = r.Y + r.H - 1
		}
		for x := r.X; x < r.X+r.W; x++ {
			locs = append(locs, Loc{X: x, Y: y})
		}
	case East, West:
		x := r.X
		if d == East {
			x = r.X + r.W - 1
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			locs = append(locs, Loc{X: x, Y: y})
		}
	}
	return locs
}

// EdgeLength returns how many tiles lie along the given side
func (r Rect) EdgeLength(d Dir4) int {
	if d.Vertical() {
		return r.W
	}
	return r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
