package steps

import (
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
)

// DefaultMinLeaf is the smallest side BSPRooms splits a partition down to
const DefaultMinLeaf = 8

// BSPRooms fills a free-form plan by binary space partitioning: the plan
// interior is split until partitions are smaller than twice MinLeaf, one
// room is placed in each leaf and sibling subtrees are joined by a hall.
type BSPRooms struct {
	Rooms      rng.SpawnList[gen.RoomGen] `yaml:"rooms"`
	MinLeaf    int                        `yaml:"min_leaf,omitempty"`
	Components []string                   `yaml:"components,omitempty"`
}

// bspNode is one partition of the plan
type bspNode struct {
	rect        world.Rect
	left, right *bspNode
	room        int // plan index, -1 when the leaf holds no room
}

func (s *BSPRooms) CanApply(ctx gen.Context) bool { return gen.Is[gen.FloorPlanContext](ctx) }

func (s *BSPRooms) Apply(ctx gen.Context) error {
	return gen.With(s, ctx, func(c gen.FloorPlanContext) error {
		plan := c.FloorPlan()
		if plan == nil {
			return gen.ErrNoPlan
		}
		minLeaf := s.MinLeaf
		if minLeaf <= 0 {
			minLeaf = DefaultMinLeaf
		}

		root := &bspNode{rect: planInterior(plan), room: -1}
		splitBSP(c.Rand(), root, minLeaf)
		if err := s.createRooms(c, plan, root); err != nil {
			return err
		}
		connectRooms(c.Rand(), plan, root)
		return nil
	})
}

// splitBSP recursively splits a node across its longer side
func splitBSP(r *rng.Rand, node *bspNode, minSize int) {
	w, h := node.rect.W, node.rect.H
	canW, canH := w >= minSize*2, h >= minSize*2

	var horizontal bool
	switch {
	case w > h && canW:
		horizontal = false
	case h > w && canH:
		horizontal = true
	case canW && canH:
		horizontal = r.Bool()
	case canW:
		horizontal = false
	case canH:
		horizontal = true
	default:
		return
	}

	a, b := node.rect, node.rect
	if horizontal {
		split := minSize + r.IntN(h-minSize*2+1)
		a.H = split
		b.Y, b.H = b.Y+split, h-split
	} else {
		split := minSize + r.IntN(w-minSize*2+1)
		a.W = split
		b.X, b.W = b.X+split, w-split
	}
	node.left = &bspNode{rect: a, room: -1}
	node.right = &bspNode{rect: b, room: -1}

	splitBSP(r, node.left, minSize)
	splitBSP(r, node.right, minSize)
}

// createRooms places a room in every leaf, one tile in from its edges so
// neighbouring leaves never touch
func (s *BSPRooms) createRooms(c gen.FloorPlanContext, plan *gen.FloorPlan, node *bspNode) error {
	if node.left != nil {
		if err := s.createRooms(c, plan, node.left); err != nil {
			return err
		}
		return s.createRooms(c, plan, node.right)
	}

	inner := node.rect.Inflate(-1)
	if inner.Empty() {
		return nil
	}
	g, skip, err := pickRoom(c, &s.Rooms, inner.Size())
	if err != nil || skip {
		return err
	}
	placeIn(c.Rand(), g, inner)
	idx, err := plan.AddRoom(g, gen.NewComponents(s.Components...))
	if err != nil {
		gen.Logger.Debug("bsp leaf room rejected", "map", c.ID(), "rect", node.rect.String(), "err", err)
		return nil
	}
	node.room = idx
	return nil
}

// connectRooms joins a room from each side of every split
func connectRooms(r *rng.Rand, plan *gen.FloorPlan, node *bspNode) {
	if node.left == nil {
		return
	}
	a, b := pickLeafRoom(r, node.left), pickLeafRoom(r, node.right)
	if a >= 0 && b >= 0 {
		plan.Connect(a, b)
	}
	connectRooms(r, plan, node.left)
	connectRooms(r, plan, node.right)
}

// pickLeafRoom returns the room of a random leaf under node, or -1
func pickLeafRoom(r *rng.Rand, node *bspNode) int {
	if node.left == nil {
		return node.room
	}
	a, b := pickLeafRoom(r, node.left), pickLeafRoom(r, node.right)
	switch {
	case a >= 0 && b >= 0:
		if r.Bool() {
			return a
		}
		return b
	case a >= 0:
		return a
	}
	return b
}

func (s *BSPRooms) String() string {
	leaf := s.MinLeaf
	if leaf <= 0 {
		leaf = DefaultMinLeaf
	}
	return fmt.Sprintf("BSPRooms: leaves of %d+", leaf)
}
