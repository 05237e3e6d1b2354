package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Update handles input (Ebiten interface)
func (p *Preview) Update() error {
	p.handleZoom()
	p.handleScroll()

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		p.showSpawns = !p.showSpawns
	}
	// N and P step through seeds
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		p.reroll(p.seed + 1)
		ebiten.SetWindowTitle(p.title())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && p.seed > 0 {
		p.reroll(p.seed - 1)
		ebiten.SetWindowTitle(p.title())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

// handleZoom handles =/- for tile size adjustment
func (p *Preview) handleZoom() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		p.setTileSize(p.tileSize + tileSizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		p.setTileSize(p.tileSize - tileSizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0) {
		p.setTileSize(defaultTileSize)
	}
}

func (p *Preview) setTileSize(size int) {
	p.tileSize = max(minTileSize, min(maxTileSize, size))
	p.invalidateFontCache()
	p.clampCamera()
}

// handleScroll moves the camera one tile per arrow key press or repeat
func (p *Preview) handleScroll() {
	step := func(k ebiten.Key) bool {
		d := inpututil.KeyPressDuration(k)
		return d == 1 || (d > 30 && d%4 == 0)
	}
	switch {
	case step(ebiten.KeyArrowLeft):
		p.camX--
	case step(ebiten.KeyArrowRight):
		p.camX++
	}
	switch {
	case step(ebiten.KeyArrowUp):
		p.camY--
	case step(ebiten.KeyArrowDown):
		p.camY++
	}
	p.clampCamera()
}

// viewport returns how many tiles fit in the map area
func (p *Preview) viewport() (cols, rows int) {
	return max(1, p.windowWidth/p.tileSize), max(1, (p.windowHeight-headerHeight)/p.tileSize)
}

// clampCamera keeps the camera inside the floor
func (p *Preview) clampCamera() {
	p.mu.RLock()
	w, h := p.floor.Width, p.floor.Height
	p.mu.RUnlock()

	cols, rows := p.viewport()
	p.camX = max(0, min(p.camX, w-cols))
	p.camY = max(0, min(p.camY, h-rows))
}

// Layout returns the logical screen size (Ebiten interface)
func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		p.windowWidth, p.windowHeight = outsideWidth, outsideHeight
	}
	return p.windowWidth, p.windowHeight
}
