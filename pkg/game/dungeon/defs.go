// Package dungeon reads and writes zone definitions. A definition names
// every step, room and filter by a registered type and carries its
// parameters as YAML.
package dungeon

import (
	"gopkg.in/yaml.v3"

	"delvegen/pkg/game/gen"
)

// Segment kinds
const (
	SegmentLayered    = "layered"
	SegmentSingular   = "singular"
	SegmentRange      = "range"
	SegmentDictionary = "dictionary"
)

// Floor kinds
const (
	FloorGrid   = "grid"
	FloorRoom   = "room"
	FloorStairs = "stairs"
	FloorLoad   = "load"
	FloorChance = "chance"
)

type ZoneDef struct {
	Name      string        `yaml:"name"`
	Universal []ZoneStepDef `yaml:"universal,omitempty"`
	Segments  []SegmentDef  `yaml:"segments"`
}

// SegmentDef uses Floor for singular segments, Floors for layered ones,
// Ranges for range segments and Entries for dictionary segments
type SegmentDef struct {
	Kind     string        `yaml:"kind"`
	Relevant bool          `yaml:"relevant,omitempty"`
	Comment  string        `yaml:"comment,omitempty"`
	Span     int           `yaml:"span,omitempty"`
	Floor    *FloorDef     `yaml:"floor,omitempty"`
	Floors   []FloorDef    `yaml:"floors,omitempty"`
	Ranges   []RangeDef    `yaml:"ranges,omitempty"`
	Entries  []EntryDef    `yaml:"entries,omitempty"`
	Steps    []ZoneStepDef `yaml:"steps,omitempty"`
}

type RangeDef struct {
	Start int      `yaml:"start"`
	End   int      `yaml:"end"`
	Floor FloorDef `yaml:"floor"`
}

type EntryDef struct {
	ID    int      `yaml:"id"`
	Floor FloorDef `yaml:"floor"`
}

// FloorDef is a floor generator. Chance floors list Choices instead of
// Steps.
type FloorDef struct {
	Kind    string      `yaml:"kind"`
	Comment string      `yaml:"comment,omitempty"`
	Steps   []StepDef   `yaml:"steps,omitempty"`
	Choices []ChoiceDef `yaml:"choices,omitempty"`
}

type ChoiceDef struct {
	Weight int      `yaml:"weight"`
	Floor  FloorDef `yaml:"floor"`
}

type StepDef struct {
	Type     string       `yaml:"type"`
	Priority gen.Priority `yaml:"priority"`
	Params   *yaml.Node   `yaml:"params,omitempty"`
	Rooms    []RoomChoice `yaml:"rooms,omitempty"`
	Filters  []TypedDef   `yaml:"filters,omitempty"`
}

// TypedDef is anything built from a type name and parameters
type TypedDef struct {
	Type   string     `yaml:"type"`
	Params *yaml.Node `yaml:"params,omitempty"`
}

type RoomChoice struct {
	Weight   int `yaml:"weight"`
	TypedDef `yaml:",inline"`
}

type ZoneStepDef struct {
	Type    string          `yaml:"type"`
	Params  *yaml.Node      `yaml:"params,omitempty"`
	Plan    *TypedDef       `yaml:"plan,omitempty"`
	Options []RoomOptionDef `yaml:"options,omitempty"`
	Steps   []StepChoice    `yaml:"steps,omitempty"`
}

type RoomOptionDef struct {
	Weight  int        `yaml:"weight"`
	Grid    *TypedDef  `yaml:"grid,omitempty"`
	List    *TypedDef  `yaml:"list,omitempty"`
	Filters []TypedDef `yaml:"filters,omitempty"`
}

type StepChoice struct {
	Weight  int `yaml:"weight"`
	StepDef `yaml:",inline"`
}
