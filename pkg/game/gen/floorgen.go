package gen

import (
	"fmt"

	"delvegen/pkg/engine/rng"
)

// FloorGen produces one floor for a zone context
type FloorGen interface {
	GenMap(zc *ZoneContext) (Context, error)
}

// FloorMapGen generates a floor by draining its steps against a fresh
// context of type T
type FloorMapGen[T Context] struct {
	Kind    string
	New     func() T
	Steps   GenSteps
	Comment string
}

// NewGridFloorGen creates a generator laying floors out on a grid plan
func NewGridFloorGen() *FloorMapGen[*GridContext] {
	return &FloorMapGen[*GridContext]{Kind: "grid", New: NewGridContext}
}

// NewRoomFloorGen creates a generator laying floors out on a free-form plan
func NewRoomFloorGen() *FloorMapGen[*ListContext] {
	return &FloorMapGen[*ListContext]{Kind: "room", New: NewListContext}
}

// NewStairsFloorGen creates a generator drawing tiles directly
func NewStairsFloorGen() *FloorMapGen[*StairsContext] {
	return &FloorMapGen[*StairsContext]{Kind: "stairs", New: NewStairsContext}
}

// NewLoadFloorGen creates a generator starting from a stored map
func NewLoadFloorGen() *FloorMapGen[*MapLoadContext] {
	return &FloorMapGen[*MapLoadContext]{Kind: "load", New: NewMapLoadContext}
}

// GenMap generates the floor. Zone steps see the context before any floor
// step has run.
func (g *FloorMapGen[T]) GenMap(zc *ZoneContext) (Context, error) {
	ctx := g.New()
	ctx.SetID(zc.MapID())
	ctx.SetEnv(zc.Env)
	ctx.InitSeed(zc.Seed)

	queue := g.Steps.Queue()
	for _, zs := range zc.ZoneSteps {
		if err := zs.Apply(zc, ctx, queue); err != nil {
			return nil, fmt.Errorf("zone step %T on %s: %w", zs, zc.MapID(), err)
		}
	}
	for _, zs := range zc.UniversalSteps {
		if err := zs.Apply(zc, ctx, queue); err != nil {
			return nil, fmt.Errorf("universal step %T on %s: %w", zs, zc.MapID(), err)
		}
	}

	if ListenGen {
		Logger.Info("generating floor", "map", zc.MapID(), "gen", g.String(), "seed", zc.Seed, "steps", queue.Count())
		for _, ps := range queue.Entries() {
			Logger.Info("queued step", "priority", ps.Priority.String(), "step", StepName(ps.Item))
		}
	}

	if err := ApplyGenSteps(ctx, queue); err != nil {
		return nil, fmt.Errorf("generate %s: %w", zc.MapID(), err)
	}
	if err := ctx.FinishGen(); err != nil {
		return nil, fmt.Errorf("finish %s: %w", zc.MapID(), err)
	}
	return ctx, nil
}

// String describes the generator by the first step that can summarize it
func (g *FloorMapGen[T]) String() string {
	if g.Comment != "" {
		return fmt.Sprintf("%s: %s", g.Kind, g.Comment)
	}
	for _, ps := range g.Steps {
		if s, ok := ps.Item.(Summarizer); ok {
			return fmt.Sprintf("%s: %s", g.Kind, s.Summary())
		}
	}
	return g.Kind + ": [EMPTY]"
}

// ChanceFloorGen picks one of several generators per floor. The pick uses
// a stream seeded with the floor seed, the same seed the chosen generator
// starts from.
type ChanceFloorGen struct {
	Spawns rng.SpawnList[FloorGen]
}

// GenMap picks a generator and runs it
func (c *ChanceFloorGen) GenMap(zc *ZoneContext) (Context, error) {
	g, err := c.Spawns.Pick(rng.New(zc.Seed))
	if err != nil {
		return nil, fmt.Errorf("pick floor gen for %s: %w", zc.MapID(), err)
	}
	return g.GenMap(zc)
}

func (c *ChanceFloorGen) String() string {
	return fmt.Sprintf("chance: %d gens", c.Spawns.Len())
}
