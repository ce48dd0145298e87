package palette

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Faultbox/tilebake/internal/engine/tracer"
	"github.com/Faultbox/tilebake/pkg/imaging"
)

// Generate writes placeholder surface files for every block def that
// names a surface, skipping pairs that already exist. It returns the
// number of surfaces written. This gives a fresh checkout something to
// render before real art is dropped into the texture directory.
func Generate(dir string, defs []BlockDef) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating texture dir: %w", err)
	}

	written := 0
	for _, def := range defs {
		if def.Surface == "" {
			continue
		}
		base := filepath.Join(dir, def.Surface)
		if exists(base+".hm.png") && exists(base+".dm.png") {
			continue
		}

		hm, dm := synthSurface(def.ID)
		if err := imaging.SavePNG(hm, base+".hm.png"); err != nil {
			return written, fmt.Errorf("block %q (id %d): %w", def.Name, def.ID, err)
		}
		if err := imaging.SavePNG(dm, base+".dm.png"); err != nil {
			return written, fmt.Errorf("block %q (id %d): %w", def.Name, def.ID, err)
		}
		written++
	}
	return written, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// synthSurface builds a dome-shaped height map and a checkered diffuse
// map, both deterministic functions of the block id so repeated runs
// produce identical files.
func synthSurface(id uint8) (hm, dm *imaging.Image[imaging.BGRA]) {
	peak := 80.0 + float64(id)*24.0
	if peak > 255 {
		peak = 255
	}
	half := float64(tracer.Grid) / 2.0

	hm = imaging.FromFn(tracer.Grid, tracer.Grid, func(x, y int) imaging.BGRA {
		dx := (float64(x) + 0.5 - half) / half
		dy := (float64(y) + 0.5 - half) / half
		d := math.Min(1, dx*dx+dy*dy)
		h := uint8(peak * (1 - d))
		return imaging.BGRA{B: h, G: h, R: h, A: 255}
	})

	// One base color per id, darkened on alternating 8x8 cells.
	base := imaging.BGRA{
		B: uint8(64 + (int(id)*37)%160),
		G: uint8(64 + (int(id)*57)%160),
		R: uint8(64 + (int(id)*97)%160),
		A: 255,
	}
	dm = imaging.FromFn(tracer.Grid, tracer.Grid, func(x, y int) imaging.BGRA {
		c := base
		if (x/8+y/8)%2 == 0 {
			c.B -= c.B / 4
			c.G -= c.G / 4
			c.R -= c.R / 4
		}
		return c
	})
	return hm, dm
}
