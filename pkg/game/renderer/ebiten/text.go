package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawColoredChar draws a character centred in the tile at x, y
func (p *Preview) drawColoredChar(screen *ebiten.Image, char string, x, y int, col color.Color) {
	face := p.getMonoFontFace()
	w, h := text.Measure(char, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(p.tileSize)-w)/2, float64(y)+(float64(p.tileSize)-h)/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, char, face, op)
}

// drawText draws a line of UI text at x, y
func (p *Preview) drawText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	face := &text.GoTextFace{Source: p.monoFontSource, Size: baseFontSize * 0.8}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}
