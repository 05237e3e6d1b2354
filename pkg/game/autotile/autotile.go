// Package autotile resolves neighbour-dependent texture codes for terrain
// tilesets. A tile's code depends on which of its neighbours belong to the
// same (or an associated) tileset.
package autotile

import (
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
)

// Mode selects how many neighbours feed the mask
type Mode int

const (
	// Neighbors8 uses all eight neighbours, reduced to 47 blob codes
	Neighbors8 Mode = 8
	// Neighbors4 uses the cardinal neighbours only, giving 16 codes
	Neighbors4 Mode = 4
)

// Mask bits, one per Dir8 in clockwise order from north.
const (
	BitN uint8 = 1 << iota
	BitNE
	BitE
	BitSE
	BitS
	BitSW
	BitW
	BitNW
)

// BlobCodes is the number of distinct codes produced in Neighbors8 mode.
const BlobCodes = 47

// CardinalCodes is the number of distinct codes produced in Neighbors4 mode.
const CardinalCodes = 16

var (
	blobTable     [256]int
	cardinalTable [256]int
)

func init() {
	// canonical masks are their own reduction; numbering them in ascending
	// order keeps codes stable
	var canonical [256]int
	next := 0
	for m := 0; m < 256; m++ {
		if ReduceMask(uint8(m)) == uint8(m) {
			canonical[m] = next
			next++
		}
	}
	for m := 0; m < 256; m++ {
		blobTable[m] = canonical[ReduceMask(uint8(m))]

		code := 0
		if uint8(m)&BitN != 0 {
			code |= 1
		}
		if uint8(m)&BitE != 0 {
			code |= 2
		}
		if uint8(m)&BitS != 0 {
			code |= 4
		}
		if uint8(m)&BitW != 0 {
			code |= 8
		}
		cardinalTable[m] = code
	}
}

// ReduceMask clears each diagonal bit unless both cardinals beside it are set.
func ReduceMask(m uint8) uint8 {
	keep := func(diag, a, b uint8) {
		if m&diag != 0 && (m&a == 0 || m&b == 0) {
			m &^= diag
		}
	}
	keep(BitNE, BitN, BitE)
	keep(BitSE, BitS, BitE)
	keep(BitSW, BitS, BitW)
	keep(BitNW, BitN, BitW)
	return m
}

// Tileset describes one autotiled terrain texture
type Tileset struct {
	ID string `yaml:"id"`
	// Mode is 4 or 8; zero means 8
	Mode Mode `yaml:"mode"`
	// Variants is the number of interchangeable textures per code
	Variants int `yaml:"variants"`
	// Codes optionally remaps canonical codes to sheet indices
	Codes []int `yaml:"codes,omitempty"`
}

// Validate checks the tileset for authoring mistakes
func (t *Tileset) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tileset has no id")
	}
	switch t.Mode {
	case 0, Neighbors4, Neighbors8:
	default:
		return fmt.Errorf("tileset %s: invalid mode %d", t.ID, t.Mode)
	}
	if len(t.Codes) > 0 && len(t.Codes) != t.CodeCount() {
		return fmt.Errorf("tileset %s: %d codes given, want %d", t.ID, len(t.Codes), t.CodeCount())
	}
	return nil
}

// CodeCount returns how many distinct codes the tileset's mode produces
func (t *Tileset) CodeCount() int {
	if t.Mode == Neighbors4 {
		return CardinalCodes
	}
	return BlobCodes
}

// Code maps a raw eight-neighbour mask to this tileset's neighbour code
func (t *Tileset) Code(mask uint8) int {
	var code int
	if t.Mode == Neighbors4 {
		code = cardinalTable[mask]
	} else {
		code = blobTable[mask]
	}
	if len(t.Codes) == t.CodeCount() {
		return t.Codes[code]
	}
	return code
}

// Area computes codes for every tile in the rectangle that belongs to the
// tileset. query reports whether a tile is one to compute; present reports
// whether a neighbour counts as connected. set receives the result with a
// noise-selected variant.
func (t *Tileset) Area(noise rng.Noise, rect world.Rect,
	set func(l world.Loc, code, variant int),
	query func(l world.Loc) bool,
	present func(l world.Loc) bool) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			l := world.Loc{X: x, Y: y}
			if !query(l) {
				continue
			}
			var mask uint8
			for i, dir := range world.AllDir8() {
				if present(l.Move8(dir)) {
					mask |= 1 << uint(i)
				}
			}
			set(l, t.Code(mask), noise.Pick2D(x, y, t.Variants))
		}
	}
}
