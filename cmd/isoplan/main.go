package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"isoplan/internal/arrange"
	"isoplan/internal/geom"
	"isoplan/internal/raster"
	"isoplan/internal/shape"
	"isoplan/internal/tui"
)

func main() {
	var (
		regions = flag.Bool("regions", false, "print the enclosed regions of the input and exit")
		geoOut  = flag.String("geojson", "", "write regions as a GeoJSON FeatureCollection to `file`")
		pngOut  = flag.String("png", "", "render lines and regions to a PNG `file`")
		plan    = flag.Bool("plan", false, "use the top-down plan projection instead of isometric")
		snap    = flag.Float64("snap", arrange.DefaultSnap, "endpoint snapping grid step")
		eps     = flag.Float64("eps", arrange.DefaultEpsilon, "geometric tolerance")
		debug   = flag.Bool("debug", false, "log engine diagnostics to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.{geojson,json,csv,kml,wkt}]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		arrange.SetLogger(l)
		shape.SetLogger(l)
	}
	proj := raster.Iso
	if *plan {
		proj = raster.Plan
	}
	store := shape.NewStore(nil, arrange.WithSnap(*snap), arrange.WithEpsilon(*eps))

	if *regions || *geoOut != "" || *pngOut != "" {
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		if err := headless(store, flag.Arg(0), *regions, *geoOut, *pngOut, proj); err != nil {
			log.Fatal(err)
		}
		return
	}

	var m tui.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(store, flag.Arg(0))
	} else {
		m = tui.New(store)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

func headless(store *shape.Store, path string, dump bool, geoOut, pngOut string, proj raster.Projection) error {
	d, err := geom.Load(path)
	if err != nil {
		return err
	}
	store.AddLines(d.Segments)
	res := store.Regions()
	if dump {
		for _, r := range res.Regions {
			parent := r.Parent
			if parent == "" {
				parent = "-"
			}
			fmt.Printf("%s\tarea=%g\tdepth=%d\tholes=%d\tparent=%s\tcentroid=%s\n",
				r.ID, r.Area, r.Depth, len(r.Holes), parent, r.Centroid)
		}
		dg := res.Diagnostics
		fmt.Printf("# regions=%d edges=%d vertices=%d cycles=%d abandoned=%d\n",
			dg.RegionCount, dg.EdgeCount, dg.VertexCount, dg.CycleCount, dg.AbandonedWalks)
	}
	if geoOut != "" {
		if err := geom.SaveRegions(geoOut, res.Regions); err != nil {
			return err
		}
	}
	if pngOut != "" {
		sc := raster.Scene{Segments: store.Segments(), Regions: res.Regions}
		if err := raster.SavePNG(pngOut, sc, raster.WithProjection(proj)); err != nil {
			return err
		}
	}
	return nil
}
