package zone

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/avl"
)

var (
	// ErrEmptyRange is returned when a range holds no floors
	ErrEmptyRange = errors.New("empty floor range")

	// ErrRangeOverlap is returned when a range shares floors with one already set
	ErrRangeOverlap = errors.New("floor range overlaps an existing range")
)

// FloorRange is the half-open range of floors [Start, End)
type FloorRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

func (r FloorRange) Len() int { return r.End - r.Start }

func (r FloorRange) Contains(floor int) bool { return floor >= r.Start && floor < r.End }

func (r FloorRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// ranges compare equal when they overlap, so a lookup with a single-floor
// range finds the range containing it
func rangeLess(a, b FloorRange) bool {
	return a.End <= b.Start
}

// RangeDict maps disjoint floor ranges to values
type RangeDict[V any] struct {
	tree *avl.Tree[FloorRange, V]
}

func NewRangeDict[V any]() *RangeDict[V] {
	return &RangeDict[V]{tree: avl.New[FloorRange, V](rangeLess)}
}

// Set maps every floor of r to v. Ranges may not overlap.
func (d *RangeDict[V]) Set(r FloorRange, v V) error {
	if r.Len() <= 0 {
		return fmt.Errorf("%w: %v", ErrEmptyRange, r)
	}
	if _, ok := d.tree.Get(r); ok {
		return fmt.Errorf("%w: %v", ErrRangeOverlap, r)
	}
	d.tree.Put(r, v)
	return nil
}

// Get returns the value of the range holding floor
func (d *RangeDict[V]) Get(floor int) (V, bool) {
	return d.tree.Get(FloorRange{Start: floor, End: floor + 1})
}

func (d *RangeDict[V]) Contains(floor int) bool {
	_, ok := d.Get(floor)
	return ok
}

// Ranges returns the ranges in floor order
func (d *RangeDict[V]) Ranges() []FloorRange {
	var out []FloorRange
	d.tree.Each(func(r FloorRange, _ V) {
		out = append(out, r)
	})
	return out
}

// Each visits the ranges in floor order
func (d *RangeDict[V]) Each(fn func(r FloorRange, v V)) {
	d.tree.Each(fn)
}

func (d *RangeDict[V]) Len() int {
	n := 0
	d.tree.Each(func(FloorRange, V) { n++ })
	return n
}
