// Command gowfc runs the overlapping wave function collapse generator
// against an exemplar image or text grid and displays or saves the
// result, in the same flag-parse-then-wire-then-run shape as the
// teacher's root command.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/tilebound/wfc/exemplar"
	"github.com/tilebound/wfc/render"
	"github.com/tilebound/wfc/wfc"
)

var (
	exemplarPath = flag.String("exemplar", "", "Path to the exemplar PNG or text grid.")
	outWidth     = flag.Int("width", 48, "Output width in cells.")
	outHeight    = flag.Int("height", 48, "Output height in cells.")
	seed         = flag.Uint64("seed", 1, "RNG seed (must be non-zero).")
	mode         = flag.String("mode", "window", "Display mode: window, terminal, png, or debug.")
	outPNG       = flag.String("out", "out.png", "Output path when -mode=png.")
	scale        = flag.Int("scale", 8, "Pixel scale factor for -mode=window and -mode=png.")
)

func main() {
	flag.Parse()

	if *exemplarPath == "" {
		log.Fatal("gowfc: -exemplar is required")
	}

	grid, err := exemplar.Load(*exemplarPath)
	if err != nil {
		log.Fatalf("Invalid exemplar: %v", err)
	}

	state, err := wfc.New(wfc.Config{
		ExemplarWidth:  grid.Width,
		ExemplarHeight: grid.Height,
		Exemplar:       grid.Cells,
		OutputWidth:    *outWidth,
		OutputHeight:   *outHeight,
		Seed:           uint32(*seed),
	})
	if err != nil {
		log.Fatalf("Couldn't initialize generator: %v", err)
	}
	defer state.Close()

	switch *mode {
	case "window":
		if err := render.Run(state, *scale); err != nil {
			log.Fatal(err)
		}
	case "terminal":
		term, err := render.NewTerminal()
		if err != nil {
			log.Fatal(err)
		}
		defer term.Close()
		if err := term.Run(state, time.Second/30); err != nil {
			log.Fatal(err)
		}
	case "png":
		if _, err := state.Run(); err != nil {
			log.Fatalf("Run: %v", err)
		}
		if err := writePNG(state, *outPNG, *scale); err != nil {
			log.Fatal(err)
		}
	case "debug":
		state.DebugREPL()
	default:
		log.Fatalf("gowfc: unknown -mode %q", *mode)
	}
}

func writePNG(state *wfc.State, path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := render.Upscale(render.Image(state, render.DefaultPalette()), scale)
	return png.Encode(f, img)
}
