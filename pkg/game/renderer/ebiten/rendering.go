package ebiten

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/devtools"
	"delvegen/pkg/game/maps"
)

// tileStyle is how one symbol is drawn
type tileStyle struct {
	Color         color.RGBA
	HasBackground bool
	Background    color.RGBA
}

func styleFor(sym rune) tileStyle {
	switch sym {
	case '#':
		return tileStyle{Color: colorWall, HasBackground: true, Background: colorWallBg}
	case '%':
		return tileStyle{Color: colorSubtle, HasBackground: true, Background: colorUnbreakableBg}
	case '~':
		return tileStyle{Color: colorWater, HasBackground: true, Background: colorWaterBg}
	case '.':
		return tileStyle{Color: colorFloor}
	case '>':
		return tileStyle{Color: pulse(colorStairs, 0.5, 1)}
	case '^':
		return tileStyle{Color: colorTrap}
	case '<':
		return tileStyle{Color: colorEntrance}
	case 'm':
		return tileStyle{Color: colorCharacter}
	case '$':
		return tileStyle{Color: colorMoney}
	case '*':
		return tileStyle{Color: colorItem}
	}
	return tileStyle{Color: colorSubtle}
}

// Draw renders the floor (Ebiten interface)
func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	p.mu.RLock()
	m, seed, lastErr := p.floor, p.seed, p.lastErr
	p.mu.RUnlock()

	p.drawHeader(screen, m, seed, lastErr)
	p.drawMap(screen, m)
}

func (p *Preview) drawHeader(screen *ebiten.Image, m *maps.Map, seed uint64, lastErr error) {
	name := strings.ReplaceAll(m.Name, "\n", " ")
	if name == "" {
		name = m.ID
	}
	line := fmt.Sprintf("%s  seed %d  %dx%d  [N/P] seed  [S] spawns  [+/-/0] zoom", name, seed, m.Width, m.Height)
	p.drawText(screen, line, 8, 6, colorText)
	if lastErr != nil {
		p.drawText(screen, lastErr.Error(), p.windowWidth/2, 6, colorDenied)
	}
}

func (p *Preview) drawMap(screen *ebiten.Image, m *maps.Map) {
	cols, rows := p.viewport()
	vector.DrawFilledRect(screen, 0, headerHeight,
		float32(min(cols, m.Width)*p.tileSize), float32(min(rows, m.Height)*p.tileSize),
		colorMapBackground, false)

	for vy := 0; vy < rows && p.camY+vy < m.Height; vy++ {
		for vx := 0; vx < cols && p.camX+vx < m.Width; vx++ {
			l := world.Loc{X: p.camX + vx, Y: p.camY + vy}
			sym := devtools.TerrainSymbol(m.Tile(l))
			if p.showSpawns {
				sym = devtools.Symbol(m, l)
			}
			p.drawTile(screen, sym, vx*p.tileSize, headerHeight+vy*p.tileSize)
		}
	}
}

// drawTile draws a single tile with an optional block background
func (p *Preview) drawTile(screen *ebiten.Image, sym rune, x, y int) {
	if sym == ' ' {
		return
	}
	style := styleFor(sym)
	if style.HasBackground {
		margin := float32(1)
		vector.DrawFilledRect(screen, float32(x)+margin, float32(y)+margin,
			float32(p.tileSize)-margin*2, float32(p.tileSize)-margin*2,
			style.Background, false)
	}
	p.drawColoredChar(screen, string(sym), x, y, style.Color)
}
