package ebiten

import (
	"image/color"
	"math"
	"time"
)

// pulse returns c scaled between lo and hi brightness on a two second sine wave
func pulse(c color.RGBA, lo, hi float64) color.RGBA {
	const pulsePeriod = 2000.0
	now := time.Now().UnixMilli()

	pulsePhase := float64(now%int64(pulsePeriod)) / pulsePeriod
	pulseValue := (math.Sin(pulsePhase*2*math.Pi) + 1.0) / 2.0
	brightness := lo + (hi-lo)*pulseValue

	return color.RGBA{
		uint8(float64(c.R) * brightness),
		uint8(float64(c.G) * brightness),
		uint8(float64(c.B) * brightness),
		c.A,
	}
}
