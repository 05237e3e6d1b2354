package gen

import "fmt"

// ZoneContext describes which floor of which zone is being generated
type ZoneContext struct {
	Seed           uint64
	CurrentZone    string
	CurrentSegment int
	CurrentID      int
	// ZoneSteps are the segment's floor-independent steps, already
	// instantiated for this floor
	ZoneSteps []ZoneStep
	// UniversalSteps run on every floor of the zone after ZoneSteps
	UniversalSteps []ZoneStep
	Env            Env
}

// MapID returns the identifier given to the floor's map
func (zc *ZoneContext) MapID() string {
	return fmt.Sprintf("%s/%d/%d", zc.CurrentZone, zc.CurrentSegment, zc.CurrentID)
}

// ZoneStep contributes steps to floors of a segment. A step is a template;
// Instantiate returns the copy used for one floor.
type ZoneStep interface {
	Instantiate(seed uint64) ZoneStep
	// Apply may enqueue, remove or reorder the floor's steps
	Apply(zc *ZoneContext, ctx Context, queue *StepQueue) error
}
