package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"

	"delvegen/pkg/engine/terminal"
	"delvegen/pkg/game/autotile"
	"delvegen/pkg/game/devtools"
	"delvegen/pkg/game/dungeon"
	"delvegen/pkg/game/gen"
	"delvegen/pkg/game/maps"
	"delvegen/pkg/game/renderer/ebiten"
	"delvegen/pkg/game/zone"
)

type options struct {
	zonePath string
	mapsDir  string
	tilesets string
	locale   string
	segment  int
	floor    int
	seed     uint64
	dumpDir  string
	htmlDir  string
	saveDir  string
	color    string
	view     bool
	trace    bool
	dev      bool
	verbose  bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.zonePath, "zone", "", "zone definition (YAML) to generate from")
	flag.StringVar(&o.mapsDir, "maps", "maps", "directory of authored maps (JSON)")
	flag.StringVar(&o.tilesets, "tilesets", "", "tileset catalog (YAML) used for autotiling")
	flag.StringVar(&o.locale, "locale", "", "directory of translations (<dir>/<lang>/LC_MESSAGES/default.po)")
	flag.IntVar(&o.segment, "segment", 0, "segment index")
	flag.IntVar(&o.floor, "floor", 0, "floor index within the segment")
	flag.Uint64Var(&o.seed, "seed", 1, "zone seed")
	flag.StringVar(&o.dumpDir, "dump", "", "write a text dump of the floor into this directory")
	flag.StringVar(&o.htmlDir, "html", "", "write an HTML snapshot of the floor into this directory")
	flag.StringVar(&o.saveDir, "save", "", "save the floor as JSON into this directory")
	flag.StringVar(&o.color, "color", "auto", "colour output: auto, always or never")
	flag.BoolVar(&o.view, "view", false, "open the floor in a preview window")
	flag.BoolVar(&o.trace, "trace", false, "log every queued and applied generation step")
	flag.BoolVar(&o.dev, "dev", false, "use the built-in developer zone instead of -zone")
	flag.BoolVar(&o.verbose, "v", false, "log at debug level")
	flag.Parse()
	return o
}

func initLocale(dir string) {
	if dir == "" {
		return
	}
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = "en_GB"
	}
	gotext.Configure(dir, lang, "default")
}

func initLogger(o options) {
	level := slog.LevelInfo
	if o.verbose || o.trace {
		level = slog.LevelDebug
	}
	gen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	gen.ListenGen = o.trace
}

func loadZone(o options) (*zone.Zone, error) {
	if o.dev {
		return devtools.DevZone(), nil
	}
	if o.zonePath == "" {
		return nil, errors.New(gotext.Get("no zone given: pass -zone or -dev"))
	}

	z, err := dungeon.DefaultRegistry().LoadZone(o.zonePath)
	if err != nil {
		return nil, err
	}
	z.Env.Maps = maps.NewFileStore(o.mapsDir, 0)
	if o.tilesets != "" {
		catalog, err := autotile.LoadCatalog(o.tilesets)
		if err != nil {
			return nil, err
		}
		z.Env.Tilesets = catalog
	}
	return z, nil
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return terminal.IsTerminal(os.Stdout)
}

func run(o options) error {
	z, err := loadZone(o)
	if err != nil {
		return err
	}

	ctx, err := z.GenFloor(o.seed, o.segment, o.floor)
	if err != nil {
		return err
	}
	m := ctx.Map()

	devtools.PrintFloor(os.Stdout, m, terminal.GetWidth(os.Stdout), useColor(o.color))

	if o.dumpDir != "" {
		path, err := devtools.DumpFloorToFile(ctx, o.dumpDir)
		if err != nil {
			return err
		}
		fmt.Println(gotext.Get("Floor dump written to %s", path))
	}
	if o.htmlDir != "" {
		path, err := devtools.SaveFloorHTML(m, o.htmlDir)
		if err != nil {
			return err
		}
		fmt.Println(gotext.Get("HTML snapshot written to %s", path))
	}
	if o.saveDir != "" {
		path, err := maps.SaveMap(o.saveDir, m)
		if err != nil {
			return err
		}
		fmt.Println(gotext.Get("Map saved to %s", path))
	}

	if o.view {
		regen := func(seed uint64) (*maps.Map, error) {
			ctx, err := z.GenFloor(seed, o.segment, o.floor)
			if err != nil {
				return nil, err
			}
			return ctx.Map(), nil
		}
		return ebiten.New(m, o.seed, regen).Run()
	}
	return nil
}

func main() {
	o := parseFlags()
	initLocale(o.locale)
	initLogger(o)

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, gotext.Get("Error: %v", err))
		os.Exit(1)
	}
}
