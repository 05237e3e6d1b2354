// Package zone resolves a requested floor of a dungeon to its generator and
// runs it with the zone-wide steps of the floor's segment.
package zone

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"delvegen/pkg/game/gen"
)

// ErrFloorOutOfRange is returned when a segment has no generator for a floor
var ErrFloorOutOfRange = errors.New("floor out of range")

// Segment is a run of floors sharing a generator assignment policy
type Segment interface {
	// FloorCount is negative for segments without an end
	FloorCount() int
	FloorIDs() []int
	MapGen(floor int) (gen.FloorGen, error)
	ZoneSteps() []gen.ZoneStep
	IsRelevant() bool
	fmt.Stringer
}

// SegmentBase holds what every segment kind carries
type SegmentBase struct {
	Steps []gen.ZoneStep `yaml:"-"`
	// Relevant segments count toward the dungeon's floor total
	Relevant bool   `yaml:"relevant"`
	Comment  string `yaml:"comment,omitempty"`
}

func (b *SegmentBase) ZoneSteps() []gen.ZoneStep { return b.Steps }

func (b *SegmentBase) IsRelevant() bool { return b.Relevant }

// AddStep appends a zone step
func (b *SegmentBase) AddStep(s gen.ZoneStep) {
	b.Steps = append(b.Steps, s)
}

// describe names a segment by its floor title step if it has one
func (b *SegmentBase) describe(kind string, count int) string {
	for _, s := range b.Steps {
		if fn, ok := s.(*FloorNameZoneStep); ok {
			return strings.ReplaceAll(fn.Title(count), "\n", " ")
		}
	}
	return fmt.Sprintf("[%s] %dF", kind, count)
}

func outOfRange(floor int) error {
	return fmt.Errorf("%w: %d", ErrFloorOutOfRange, floor)
}

// GetMap generates floor zc.CurrentID of s
func GetMap(s Segment, zc *gen.ZoneContext) (gen.Context, error) {
	g, err := s.MapGen(zc.CurrentID)
	if err != nil {
		return nil, err
	}
	return g.GenMap(zc)
}

// LayeredSegment gives every floor its own generator, with no gaps
type LayeredSegment struct {
	SegmentBase `yaml:",inline"`
	Floors      []gen.FloorGen `yaml:"-"`
}

// NewLayeredSegment creates a segment with one generator per floor, in order
func NewLayeredSegment(floors ...gen.FloorGen) *LayeredSegment {
	return &LayeredSegment{Floors: floors}
}

func (s *LayeredSegment) FloorCount() int { return len(s.Floors) }

func (s *LayeredSegment) FloorIDs() []int {
	return floorSpan(len(s.Floors))
}

func (s *LayeredSegment) MapGen(floor int) (gen.FloorGen, error) {
	if floor < 0 || floor >= len(s.Floors) {
		return nil, outOfRange(floor)
	}
	return s.Floors[floor], nil
}

func (s *LayeredSegment) String() string { return s.describe("Layered", s.FloorCount()) }

// SingularSegment serves the same generator to every floor. A negative
// FloorSpan never runs out of floors.
type SingularSegment struct {
	SegmentBase `yaml:",inline"`
	Floor       gen.FloorGen `yaml:"-"`
	FloorSpan   int          `yaml:"span"`
}

// NewSingularSegment creates a segment of span floors sharing one generator
func NewSingularSegment(span int, floor gen.FloorGen) *SingularSegment {
	return &SingularSegment{Floor: floor, FloorSpan: span}
}

func (s *SingularSegment) FloorCount() int { return s.FloorSpan }

func (s *SingularSegment) FloorIDs() []int {
	return floorSpan(s.FloorSpan)
}

func (s *SingularSegment) MapGen(floor int) (gen.FloorGen, error) {
	if floor < 0 || (s.FloorSpan >= 0 && floor >= s.FloorSpan) {
		return nil, outOfRange(floor)
	}
	return s.Floor, nil
}

func (s *SingularSegment) String() string { return s.describe("Singular", s.FloorCount()) }

// RangeDictSegment maps ranges of floors to generators
type RangeDictSegment struct {
	SegmentBase `yaml:",inline"`
	Floors      *RangeDict[gen.FloorGen] `yaml:"-"`
}

// NewRangeDictSegment creates a segment with no floor ranges set
func NewRangeDictSegment() *RangeDictSegment {
	return &RangeDictSegment{Floors: NewRangeDict[gen.FloorGen]()}
}

// FloorCount sums the lengths of all ranges
func (s *RangeDictSegment) FloorCount() int {
	total := 0
	for _, r := range s.Floors.Ranges() {
		total += r.Len()
	}
	return total
}

func (s *RangeDictSegment) FloorIDs() []int {
	var ids []int
	for _, r := range s.Floors.Ranges() {
		for f := r.Start; f < r.End; f++ {
			ids = append(ids, f)
		}
	}
	return ids
}

func (s *RangeDictSegment) MapGen(floor int) (gen.FloorGen, error) {
	g, ok := s.Floors.Get(floor)
	if !ok {
		return nil, outOfRange(floor)
	}
	return g, nil
}

func (s *RangeDictSegment) String() string { return s.describe("RangeDict", s.FloorCount()) }

// DictionarySegment gives chosen floors their own generator. Floors
// without one are an error.
type DictionarySegment struct {
	SegmentBase `yaml:",inline"`
	Floors      map[int]gen.FloorGen `yaml:"-"`
}

func NewDictionarySegment() *DictionarySegment {
	return &DictionarySegment{Floors: make(map[int]gen.FloorGen)}
}

func (s *DictionarySegment) FloorCount() int { return len(s.Floors) }

// FloorIDs returns the mapped floors in ascending order
func (s *DictionarySegment) FloorIDs() []int {
	ids := make([]int, 0, len(s.Floors))
	for id := range s.Floors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *DictionarySegment) MapGen(floor int) (gen.FloorGen, error) {
	g, ok := s.Floors[floor]
	if !ok {
		return nil, outOfRange(floor)
	}
	return g, nil
}

func (s *DictionarySegment) String() string { return s.describe("Dictionary", s.FloorCount()) }

func floorSpan(n int) []int {
	ids := make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		ids = append(ids, i)
	}
	return ids
}
