package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

func loadMonoFont() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
}

// getTileFontSize returns the font size for map tiles, scaled to the current tile size
func (p *Preview) getTileFontSize() float64 {
	return baseFontSize * float64(p.tileSize) / defaultTileSize
}

// getMonoFontFace returns a cached monospace font face for map tiles
func (p *Preview) getMonoFontFace() *text.GoTextFace {
	size := p.getTileFontSize()
	if p.cachedMonoFace == nil || p.cachedTileFontSize != size {
		p.cachedTileFontSize = size
		p.cachedMonoFace = &text.GoTextFace{
			Source: p.monoFontSource,
			Size:   size,
		}
	}
	return p.cachedMonoFace
}

// invalidateFontCache clears cached font faces (call when tile size changes)
func (p *Preview) invalidateFontCache() {
	p.cachedMonoFace = nil
}
