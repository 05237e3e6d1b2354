// Package rooms provides the room shapes floors are built from
package rooms

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
)

// ErrDegenerateRoom is returned when a room is sized to zero area
var ErrDegenerateRoom = errors.New("room has zero area")

func prepareSize(b *gen.RoomGenBase, size world.Loc) error {
	b.Resize(size)
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDegenerateRoom, size.X, size.Y)
	}
	return nil
}

func openAll(b *gen.RoomGenBase) {
	for _, d := range world.AllDir4() {
		for i := range b.FulfillableBorder(d) {
			b.SetBorder(d, i, true)
		}
	}
}

// drawRect paints every tile of the rectangle with the room terrain
func drawRect(ctx gen.TiledContext, r world.Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			ctx.SetTile(world.Loc{X: x, Y: y}, maps.Tile{Data: ctx.RoomTerrain()})
		}
	}
}

// Square is a filled rectangular room
type Square struct {
	gen.RoomGenBase `yaml:"-"`
	Width           rng.RandRange `yaml:"width"`
	Height          rng.RandRange `yaml:"height"`
}

// NewSquare creates a square room with sizes drawn from the ranges
func NewSquare(width, height rng.RandRange) *Square {
	return &Square{Width: width, Height: height}
}

func (s *Square) ProposeSize(r *rng.Rand) world.Loc {
	return world.Loc{X: s.Width.Pick(r), Y: s.Height.Pick(r)}
}

func (s *Square) PrepareSize(r *rng.Rand, size world.Loc) error {
	if err := prepareSize(&s.RoomGenBase, size); err != nil {
		return err
	}
	openAll(&s.RoomGenBase)
	return nil
}

func (s *Square) DrawOnMap(ctx gen.TiledContext) error {
	drawRect(ctx, s.Draw())
	return nil
}

func (s *Square) Copy() gen.RoomGen {
	return &Square{RoomGenBase: s.CopyBase(), Width: s.Width, Height: s.Height}
}

func (s *Square) String() string {
	return fmt.Sprintf("Square: %vx%v", s.Width, s.Height)
}

// Default is a single open tile where halls meet
type Default struct {
	gen.RoomGenBase `yaml:"-"`
}

// NewDefault creates a junction room
func NewDefault() *Default {
	return &Default{}
}

func (d *Default) ProposeSize(r *rng.Rand) world.Loc {
	return world.Loc{X: 1, Y: 1}
}

func (d *Default) PrepareSize(r *rng.Rand, size world.Loc) error {
	if err := prepareSize(&d.RoomGenBase, size); err != nil {
		return err
	}
	openAll(&d.RoomGenBase)
	return nil
}

func (d *Default) DrawOnMap(ctx gen.TiledContext) error {
	drawRect(ctx, d.Draw())
	return nil
}

func (d *Default) Copy() gen.RoomGen {
	return &Default{RoomGenBase: d.CopyBase()}
}

func (d *Default) String() string {
	return "Default"
}
