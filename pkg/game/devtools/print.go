package devtools

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/maps"
)

var (
	colorFloor    = color.Style{color.FgGray}
	colorWall     = color.Style{color.FgWhite, color.BgBlack}
	colorWater    = color.Style{color.FgBlue, color.OpBold}
	colorStairs   = color.Style{color.FgYellow, color.OpBold}
	colorEntrance = color.Style{color.FgGreen, color.OpBold}
	colorChar     = color.Style{color.FgRed, color.OpBold}
	colorMoney    = color.Style{color.FgYellow}
	colorItem     = color.Style{color.FgMagenta, color.OpBold}
	colorSubtle   = color.Style{color.FgGray, color.OpBold}
)

func symbolStyle(sym rune) color.Style {
	switch sym {
	case '.':
		return colorFloor
	case '#', '%':
		return colorWall
	case '~':
		return colorWater
	case '>', '^':
		return colorStairs
	case '<':
		return colorEntrance
	case 'm':
		return colorChar
	case '$':
		return colorMoney
	case '*':
		return colorItem
	}
	return colorSubtle
}

// PrintFloor writes the map with spawns, at most width columns wide.
// Colour is used only when useColor is set.
func PrintFloor(w io.Writer, m *maps.Map, width int, useColor bool) {
	cols := m.Width
	if width > 0 && cols > width {
		cols = width
	}
	if m.Name != "" {
		title := strings.ReplaceAll(m.Name, "\n", " ")
		if useColor {
			title = colorEntrance.Sprint(title)
		}
		fmt.Fprintln(w, title)
	}
	for y := 0; y < m.Height; y++ {
		var row strings.Builder
		for x := 0; x < cols; x++ {
			sym := Symbol(m, world.Loc{X: x, Y: y})
			if useColor {
				row.WriteString(symbolStyle(sym).Sprint(string(sym)))
			} else {
				row.WriteRune(sym)
			}
		}
		fmt.Fprintln(w, row.String())
	}
	if cols < m.Width {
		msg := fmt.Sprintf("(%d of %d columns shown)", cols, m.Width)
		if useColor {
			msg = colorSubtle.Sprint(msg)
		}
		fmt.Fprintln(w, msg)
	}
}
