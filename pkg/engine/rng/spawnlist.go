package rng

import (
	"errors"
	"fmt"
)

// ErrEmptySpawnList is returned when picking from a list with no weight.
var ErrEmptySpawnList = errors.New("spawn list has no weighted entries")

// RandRange is a half-open integer range [Min, Max).
type RandRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// NewRange creates a half-open range.
func NewRange(min, max int) RandRange {
	return RandRange{Min: min, Max: max}
}

// Single creates a range that always yields v.
func Single(v int) RandRange {
	return RandRange{Min: v, Max: v + 1}
}

// Pick draws a value from the range. Ranges holding a single value never
// consume the stream.
func (rr RandRange) Pick(r *Rand) int {
	if rr.Max <= rr.Min+1 {
		return rr.Min
	}
	return r.Range(rr.Min, rr.Max)
}

// String returns "min" or "min-max" (inclusive upper bound).
func (rr RandRange) String() string {
	if rr.Max <= rr.Min+1 {
		return fmt.Sprintf("%d", rr.Min)
	}
	return fmt.Sprintf("%d-%d", rr.Min, rr.Max-1)
}

// Spawn is one weighted entry in a SpawnList.
type Spawn[T any] struct {
	Item   T   `yaml:"item"`
	Weight int `yaml:"weight"`
}

// SpawnList is a weighted list of outcomes.
type SpawnList[T any] struct {
	Spawns []Spawn[T] `yaml:"spawns"`
}

// NewSpawnList creates an empty list.
func NewSpawnList[T any]() SpawnList[T] {
	return SpawnList[T]{}
}

// Add appends an outcome with the given weight.
func (s *SpawnList[T]) Add(item T, weight int) {
	s.Spawns = append(s.Spawns, Spawn[T]{Item: item, Weight: weight})
}

// Len returns the number of entries.
func (s *SpawnList[T]) Len() int {
	return len(s.Spawns)
}

// TotalWeight returns the sum of all positive weights.
func (s *SpawnList[T]) TotalWeight() int {
	total := 0
	for _, sp := range s.Spawns {
		if sp.Weight > 0 {
			total += sp.Weight
		}
	}
	return total
}

// Items returns every outcome in insertion order.
func (s *SpawnList[T]) Items() []T {
	items := make([]T, 0, len(s.Spawns))
	for _, sp := range s.Spawns {
		items = append(items, sp.Item)
	}
	return items
}

// PickIndex returns the index of a weighted random entry.
func (s *SpawnList[T]) PickIndex(r *Rand) (int, error) {
	total := s.TotalWeight()
	if total <= 0 {
		return -1, ErrEmptySpawnList
	}
	roll := r.IntN(total)
	cumulative := 0
	for i, sp := range s.Spawns {
		if sp.Weight <= 0 {
			continue
		}
		cumulative += sp.Weight
		if roll < cumulative {
			return i, nil
		}
	}
	return len(s.Spawns) - 1, nil
}

// Pick returns a weighted random outcome.
func (s *SpawnList[T]) Pick(r *Rand) (T, error) {
	idx, err := s.PickIndex(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Spawns[idx].Item, nil
}
