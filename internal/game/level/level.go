// Package level holds a rectangular grid of block ids and turns grid
// positions into the 3x3 neighborhood keys the tracer renders.
package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilebake/internal/engine/tracer"
)

// Level is a rectangular block map with an optional overlay layer.
type Level struct {
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
	Blocks  [][]uint8 `yaml:"blocks"`
	Goodies [][]uint8 `yaml:"goodies,omitempty"`
}

// New returns an empty level of the given size.
func New(w, h int) *Level {
	blocks := make([][]uint8, h)
	for i := range blocks {
		blocks[i] = make([]uint8, w)
	}
	return &Level{Width: w, Height: h, Blocks: blocks}
}

// Load reads a level from a YAML file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return &l, nil
}

// Save writes the level to a YAML file.
func (l *Level) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (l *Level) validate() error {
	if len(l.Blocks) != l.Height {
		return fmt.Errorf("blocks has %d rows, want %d", len(l.Blocks), l.Height)
	}
	for y, row := range l.Blocks {
		if len(row) != l.Width {
			return fmt.Errorf("blocks row %d has %d cells, want %d", y, len(row), l.Width)
		}
	}
	if l.Goodies != nil {
		if len(l.Goodies) != l.Height {
			return fmt.Errorf("goodies has %d rows, want %d", len(l.Goodies), l.Height)
		}
		for y, row := range l.Goodies {
			if len(row) != l.Width {
				return fmt.Errorf("goodies row %d has %d cells, want %d", y, len(row), l.Width)
			}
		}
	}
	return nil
}

// BlockAt returns the block id at (x, y), or 0 outside the level.
func (l *Level) BlockAt(x, y int) uint8 {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0
	}
	return l.Blocks[y][x]
}

// GoodyAt returns the overlay id at (x, y), or 0 if none.
func (l *Level) GoodyAt(x, y int) uint8 {
	if l.Goodies == nil || x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0
	}
	return l.Goodies[y][x]
}

// KeyAt builds the tracer key for the tile at (x, y): the tile's block
// in the center, its eight neighbors around it, cells outside the level
// empty.
func (l *Level) KeyAt(x, y int) tracer.TileKey {
	var k tracer.TileKey
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			k.Blocks[dy+1][dx+1] = l.BlockAt(x+dx, y+dy)
		}
	}
	k.Goody = l.GoodyAt(x, y)
	return k
}
