// Package ebiten provides an Ebiten window that previews generated floors.
package ebiten

import "image/color"

// Color palette for the preview
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}
	colorMapBackground = color.RGBA{15, 15, 26, 255}
	colorWall          = color.RGBA{180, 180, 200, 255}
	colorWallBg        = color.RGBA{60, 60, 80, 255}
	colorUnbreakableBg = color.RGBA{40, 40, 56, 255}
	colorFloor         = color.RGBA{100, 100, 120, 255}
	colorWater         = color.RGBA{90, 140, 255, 255}
	colorWaterBg       = color.RGBA{20, 40, 90, 255}
	colorEntrance      = color.RGBA{0, 255, 0, 255}
	colorStairs        = color.RGBA{100, 255, 100, 255}
	colorTrap          = color.RGBA{255, 80, 80, 255}
	colorCharacter     = color.RGBA{255, 100, 100, 255}
	colorMoney         = color.RGBA{255, 200, 100, 255}
	colorItem          = color.RGBA{220, 170, 255, 255}
	colorSubtle        = color.RGBA{120, 130, 180, 255}
	colorText          = color.RGBA{200, 210, 245, 255}
	colorDenied        = color.RGBA{255, 100, 100, 255}
)

// Tile size constraints
const (
	minTileSize     = 8
	maxTileSize     = 96
	defaultTileSize = 20
	tileSizeStep    = 4
	baseFontSize    = 16.0
	headerHeight    = 28
)
