package gen

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/world"
)

var (
	// ErrRoomOutOfBounds is returned when a room does not fit inside the plan
	ErrRoomOutOfBounds = errors.New("room outside floor plan")
	// ErrRoomOverlap is returned when a room collides with another room
	ErrRoomOverlap = errors.New("room overlaps another room")
)

// Room components understood by the built-in steps
const (
	// ComponentImmutable rooms are never replaced by special rooms
	ComponentImmutable = "immutable"
	// ComponentSpecial marks rooms placed by a special-room step
	ComponentSpecial = "special"
	// ComponentJunction marks one-tile rooms where halls meet
	ComponentJunction = "junction"
)

// Components is a set of room tags
type Components = mapset.Set[string]

// NewComponents creates a component set
func NewComponents(tags ...string) Components {
	c := mapset.New[string]()
	for _, t := range tags {
		c.Put(t)
	}
	return c
}

// CopyComponents returns an independent copy of c
func CopyComponents(c Components) Components {
	out := mapset.New[string]()
	c.Each(func(t string) {
		out.Put(t)
	})
	return out
}

// RoomFilter decides whether a room may be picked by a step
type RoomFilter interface {
	Passes(c Components) bool
}

// ComponentFilter passes rooms having every listed component, or none of
// them when Negate is set
type ComponentFilter struct {
	Components []string `yaml:"components"`
	Negate     bool     `yaml:"negate,omitempty"`
}

func (f ComponentFilter) Passes(c Components) bool {
	for _, tag := range f.Components {
		if c.Has(tag) == f.Negate {
			return false
		}
	}
	return true
}

// ImmutableFilter rejects immutable rooms
var ImmutableFilter = ComponentFilter{Components: []string{ComponentImmutable}, Negate: true}

// PassesAll returns true if every filter passes
func PassesAll(c Components, filters []RoomFilter) bool {
	for _, f := range filters {
		if !f.Passes(c) {
			return false
		}
	}
	return true
}

// FloorRoom is a placed room of a floor plan
type FloorRoom struct {
	Gen        RoomGen
	Components Components
}

// Connection joins two rooms of a floor plan by index
type Connection struct {
	A, B int
}

// FloorPlan is the room-and-hall layout of a floor before it is drawn
type FloorPlan struct {
	Size        world.Loc
	Wrap        bool
	Rooms       []*FloorRoom
	Connections []Connection
}

// NewFloorPlan creates an empty plan
func NewFloorPlan(size world.Loc, wrap bool) *FloorPlan {
	return &FloorPlan{Size: size, Wrap: wrap}
}

// Bounds returns the plan's rectangle
func (p *FloorPlan) Bounds() world.Rect {
	return world.NewRect(world.Loc{}, p.Size)
}

// RoomCount returns the number of rooms
func (p *FloorPlan) RoomCount() int {
	return len(p.Rooms)
}

// CanPlace returns nil if the rectangle fits and overlaps no room except skip
func (p *FloorPlan) CanPlace(r world.Rect, skip int) error {
	if r.Empty() || !p.Bounds().ContainsRect(r) {
		return fmt.Errorf("%w: %v", ErrRoomOutOfBounds, r)
	}
	for i, room := range p.Rooms {
		if i != skip && room.Gen.Draw().Intersects(r) {
			return fmt.Errorf("%w: %v and room %d", ErrRoomOverlap, r, i)
		}
	}
	return nil
}

// AddRoom places a prepared room and returns its index. The components are
// copied; a zero set is allowed.
func (p *FloorPlan) AddRoom(g RoomGen, c Components) (int, error) {
	if err := p.CanPlace(g.Draw(), -1); err != nil {
		return -1, err
	}
	p.Rooms = append(p.Rooms, &FloorRoom{Gen: g, Components: CopyComponents(c)})
	return len(p.Rooms) - 1, nil
}

// ReplaceRoom swaps the room at idx, keeping its connections. The
// components are copied.
func (p *FloorPlan) ReplaceRoom(idx int, g RoomGen, c Components) error {
	if idx < 0 || idx >= len(p.Rooms) {
		return fmt.Errorf("room index %d out of range", idx)
	}
	if err := p.CanPlace(g.Draw(), idx); err != nil {
		return err
	}
	p.Rooms[idx] = &FloorRoom{Gen: g, Components: CopyComponents(c)}
	return nil
}

// Connect joins two rooms. Duplicate and self connections are ignored.
func (p *FloorPlan) Connect(a, b int) {
	if a == b || a < 0 || b < 0 || a >= len(p.Rooms) || b >= len(p.Rooms) {
		return
	}
	if p.Connected(a, b) {
		return
	}
	p.Connections = append(p.Connections, Connection{A: a, B: b})
}

// Connected returns true if a hall joins the two rooms
func (p *FloorPlan) Connected(a, b int) bool {
	for _, c := range p.Connections {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

// Adjacent returns the rooms connected to idx in connection order
func (p *FloorPlan) Adjacent(idx int) []int {
	var out []int
	for _, c := range p.Connections {
		switch idx {
		case c.A:
			out = append(out, c.B)
		case c.B:
			out = append(out, c.A)
		}
	}
	return out
}

// FilterRooms returns the indices of rooms passing every filter
func (p *FloorPlan) FilterRooms(filters []RoomFilter) []int {
	var out []int
	for i, room := range p.Rooms {
		if PassesAll(room.Components, filters) {
			out = append(out, i)
		}
	}
	return out
}

// IsConnected returns true if every room can reach every other room
func (p *FloorPlan) IsConnected() bool {
	if len(p.Rooms) == 0 {
		return true
	}
	seen := mapset.New[int]()
	stack := []int{0}
	seen.Put(0)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range p.Adjacent(cur) {
			if !seen.Has(n) {
				seen.Put(n)
				stack = append(stack, n)
			}
		}
	}
	return seen.Size() == len(p.Rooms)
}
