// Package palette builds the ordered surface palette that maps block
// ids to 3D-textured block definitions.
package palette

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/tilebake/internal/engine/tracer"
)

// BlockDef names a block id and the base name of its surface files.
type BlockDef struct {
	ID      uint8  `yaml:"id"`
	Name    string `yaml:"name"`
	Surface string `yaml:"surface"`
}

// Load builds a palette from block definitions. Each block's surface is
// read from <dir>/<surface>.hm.png and <dir>/<surface>.dm.png. Slot 0
// and any id without a definition get the fully transparent zero-height
// surface.
func Load(dir string, defs []BlockDef) (tracer.Palette, error) {
	maxID := uint8(0)
	for _, def := range defs {
		if def.ID > maxID {
			maxID = def.ID
		}
	}

	pal := make(tracer.Palette, int(maxID)+1)
	for i := range pal {
		pal[i] = tracer.EmptySurface()
	}

	for _, def := range defs {
		if def.ID == 0 || def.Surface == "" {
			continue
		}
		s, err := tracer.LoadSurface(filepath.Join(dir, def.Surface))
		if err != nil {
			return nil, fmt.Errorf("block %q (id %d): %w", def.Name, def.ID, err)
		}
		pal[def.ID] = s
	}
	return pal, nil
}
