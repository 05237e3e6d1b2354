package zone

import (
	"errors"
	"fmt"
	"sync"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/gen"
)

// ErrNoSegment is returned for a segment index outside the zone
var ErrNoSegment = errors.New("no such segment")

// Zone is a dungeon: an ordered list of segments plus the steps that run
// on all of its floors
type Zone struct {
	Name      string
	Segments  []Segment
	Universal []gen.ZoneStep
	Env       gen.Env

	mu sync.Mutex

	// cache holds the zone steps instantiated for cacheSeed only
	cache     map[segmentKey][]gen.ZoneStep
	cacheSeed uint64
}

type segmentKey struct {
	seed    uint64
	segment int
}

func NewZone(name string, segments ...Segment) *Zone {
	return &Zone{Name: name, Segments: segments}
}

// SegmentSeed derives the seed shared by all floors of a segment
func SegmentSeed(seed uint64, segment int) uint64 {
	return rng.DeriveSeed(seed, uint64(segment))
}

// FloorSeed derives the seed of one floor
func FloorSeed(seed uint64, segment, floor int) uint64 {
	return rng.DeriveSeed(SegmentSeed(seed, segment), uint64(floor)<<32|0x5eed)
}

// FloorCount sums the floors of the relevant segments. Segments without an
// end are skipped.
func (z *Zone) FloorCount() int {
	total := 0
	for _, s := range z.Segments {
		if s.IsRelevant() && s.FloorCount() > 0 {
			total += s.FloorCount()
		}
	}
	return total
}

// GenFloor generates one floor of one segment. Zone steps are instantiated
// once per zone seed and segment and then reused for each floor, so spread
// steps see the floors of a segment as a sequence.
func (z *Zone) GenFloor(seed uint64, segment, floor int) (gen.Context, error) {
	if segment < 0 || segment >= len(z.Segments) {
		return nil, fmt.Errorf("%w: %d", ErrNoSegment, segment)
	}
	seg := z.Segments[segment]
	g, err := seg.MapGen(floor)
	if err != nil {
		return nil, fmt.Errorf("%s segment %d: %w", z.Name, segment, err)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	zc := &gen.ZoneContext{
		Seed:           FloorSeed(seed, segment, floor),
		CurrentZone:    z.Name,
		CurrentSegment: segment,
		CurrentID:      floor,
		ZoneSteps:      z.instantiated(seed, segment, seg),
		UniversalSteps: z.instantiated(seed, -1, nil),
		Env:            z.Env,
	}
	gen.Logger.Debug("generating floor", "map", zc.MapID(), "segment", seg.String(), "seed", zc.Seed)
	return g.GenMap(zc)
}

// instantiated returns the cached zone steps of a segment. Segment -1 holds
// the universal steps. A new seed starts a fresh cache.
func (z *Zone) instantiated(seed uint64, segment int, seg Segment) []gen.ZoneStep {
	key := segmentKey{seed: seed, segment: segment}
	if z.cache == nil || z.cacheSeed != seed {
		z.cache = make(map[segmentKey][]gen.ZoneStep)
		z.cacheSeed = seed
	}
	if cached, ok := z.cache[key]; ok {
		return cached
	}
	templates := z.Universal
	if seg != nil {
		templates = seg.ZoneSteps()
	}
	segSeed := SegmentSeed(seed, segment)
	out := make([]gen.ZoneStep, len(templates))
	for i, t := range templates {
		out[i] = t.Instantiate(rng.DeriveSeed(segSeed, uint64(i)))
	}
	z.cache[key] = out
	return out
}

// Reset drops every instantiated zone step
func (z *Zone) Reset() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.cache = nil
}
