package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/maps"
)

// htmlColors mirrors the terminal palette
var htmlColors = map[rune]string{
	'.': "#64647a",
	'#': "#b4b4c8",
	'%': "#78788c",
	'~': "#5a8cff",
	'>': "#ffff00",
	'^': "#ffa500",
	'<': "#00ff00",
	'm': "#ff5050",
	'$': "#ffc864",
	'*': "#dcaaff",
}

// WriteFloorHTML writes the map as a standalone HTML page
func WriteFloorHTML(w io.Writer, m *maps.Map) error {
	var b strings.Builder
	title := html.EscapeString(strings.ReplaceAll(m.Name, "\n", " "))
	if title == "" {
		title = html.EscapeString(m.ID)
	}

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>`)
	b.WriteString(title)
	b.WriteString(`</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .legend {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            line-height: 1;
        }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&b, "<div class=\"header\">%s</div>\n", title)
	fmt.Fprintf(&b, "<div class=\"legend\">%s</div>\n", html.EscapeString(Legend))
	b.WriteString("<div class=\"map-container\"><pre>\n")
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sym := Symbol(m, world.Loc{X: x, Y: y})
			c, ok := htmlColors[sym]
			if !ok {
				c = "#888888"
			}
			fmt.Fprintf(&b, "<span style=\"color:%s\">%s</span>", c, html.EscapeString(string(sym)))
		}
		b.WriteString("\n")
	}
	b.WriteString("</pre></div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveFloorHTML writes the map to a timestamped HTML file in dir and
// returns its path
func SaveFloorHTML(m *maps.Map, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("floor-%s.html", timestamp))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteFloorHTML(f, m); err != nil {
		return path, err
	}
	return path, nil
}
