package rooms

import (
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// Diamond is a diamond-shaped room. Square sizes give a perfect diamond,
// rectangular ones give a capsule with flat sides.
type Diamond struct {
	gen.RoomGenBase `yaml:"-"`
	Width           rng.RandRange `yaml:"width"`
	Height          rng.RandRange `yaml:"height"`
}

// NewDiamond creates a diamond room with sizes drawn from the ranges
func NewDiamond(width, height rng.RandRange) *Diamond {
	return &Diamond{Width: width, Height: height}
}

func (d *Diamond) ProposeSize(r *rng.Rand) world.Loc {
	return world.Loc{X: d.Width.Pick(r), Y: d.Height.Pick(r)}
}

// PrepareSize opens only the border tiles that lie on the silhouette
func (d *Diamond) PrepareSize(r *rng.Rand, size world.Loc) error {
	if err := prepareSize(&d.RoomGenBase, size); err != nil {
		return err
	}
	diameter := min(size.X, size.Y)
	for i := 0; i < size.X; i++ {
		if withinDiamond(i, 0, diameter, size) {
			d.SetBorder(world.North, i, true)
			d.SetBorder(world.South, i, true)
		}
	}
	for i := 0; i < size.Y; i++ {
		if withinDiamond(0, i, diameter, size) {
			d.SetBorder(world.West, i, true)
			d.SetBorder(world.East, i, true)
		}
	}
	return nil
}

func (d *Diamond) DrawOnMap(ctx gen.TiledContext) error {
	draw := d.Draw()
	diameter := min(draw.W, draw.H)
	for y := 0; y < draw.H; y++ {
		for x := 0; x < draw.W; x++ {
			if withinDiamond(x, y, diameter, draw.Size()) {
				ctx.SetTile(world.Loc{X: draw.X + x, Y: draw.Y + y}, maps.Tile{Data: ctx.RoomTerrain()})
			}
		}
	}
	return nil
}

func (d *Diamond) Copy() gen.RoomGen {
	return &Diamond{RoomGenBase: d.CopyBase(), Width: d.Width, Height: d.Height}
}

func (d *Diamond) String() string {
	return fmt.Sprintf("Diamond: %vx%v", d.Width, d.Height)
}

// withinDiamond tests tile (x,y) of a room of the given size. Coordinates
// are doubled so tile centers land on odd integers.
func withinDiamond(x, y, diameter int, size world.Loc) bool {
	x2, y2 := x*2+1, y*2+1
	w2, h2 := size.X*2, size.Y*2

	var xdiff int
	switch {
	case x2 < diameter:
		xdiff = diameter - x2
	case x2 > w2-diameter:
		xdiff = x2 - (w2 - diameter)
	default:
		return true
	}

	var ydiff int
	switch {
	case y2 < diameter:
		ydiff = diameter - y2
	case y2 > h2-diameter:
		ydiff = y2 - (h2 - diameter)
	default:
		return true
	}
	return xdiff+ydiff <= diameter
}
