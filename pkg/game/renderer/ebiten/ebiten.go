package ebiten

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// RegenFunc generates the floor for a seed
type RegenFunc func(seed uint64) (*maps.Map, error)

// Preview is an ebiten.Game that draws one floor and can regenerate it with
// another seed
type Preview struct {
	mu      sync.RWMutex
	floor   *maps.Map
	seed    uint64
	regen   RegenFunc
	lastErr error

	windowWidth  int
	windowHeight int
	tileSize     int
	camX, camY   int
	showSpawns   bool

	monoFontSource     *text.GoTextFaceSource
	cachedMonoFace     *text.GoTextFace
	cachedTileFontSize float64
}

// New creates a preview of floor. regen may be nil, in which case the seed
// keys do nothing.
func New(floor *maps.Map, seed uint64, regen RegenFunc) *Preview {
	return &Preview{
		floor:        floor,
		seed:         seed,
		regen:        regen,
		windowWidth:  1024,
		windowHeight: 768,
		tileSize:     defaultTileSize,
		showSpawns:   true,
	}
}

// Run opens the window and blocks until it is closed
func (p *Preview) Run() error {
	src, err := loadMonoFont()
	if err != nil {
		return err
	}
	p.monoFontSource = src

	ebiten.SetWindowSize(p.windowWidth, p.windowHeight)
	ebiten.SetWindowTitle(p.title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	gen.Logger.Info("opening floor preview", "map", p.floor.ID, "seed", p.seed)
	return ebiten.RunGame(p)
}

func (p *Preview) title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.floor.Name != "" {
		return p.floor.Name
	}
	return p.floor.ID
}

// reroll regenerates the floor with seed, keeping the old floor on failure
func (p *Preview) reroll(seed uint64) {
	if p.regen == nil {
		return
	}
	m, err := p.regen(seed)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		gen.Logger.Warn("regenerating floor", "seed", seed, "err", err)
		p.lastErr = err
		return
	}
	p.floor, p.seed, p.lastErr = m, seed, nil
	p.camX, p.camY = 0, 0
}
