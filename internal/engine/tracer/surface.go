// Package tracer pre-renders lighting for tile-based terrain blocks.
//
// Each block type, combined with its eight neighbors and an optional
// overlay, is ray-traced offline into a small diffuse-lit texture.
// Results are cached by neighborhood fingerprint and baked
// asynchronously by a fixed worker pool; callers always get an
// immediately usable texture, whose quality improves once the full
// bake completes.
package tracer

import (
	"fmt"

	"github.com/Faultbox/tilebake/pkg/imaging"
	vmath "github.com/Faultbox/tilebake/pkg/math"
)

// Grid is the tile resolution, in pixels per side.
const Grid = 64

// HeightMax is the physical height a full-white height map pixel maps to.
const HeightMax = 0.5

// heightScale converts a height map byte to a physical height.
const heightScale = HeightMax / 255.0

// Surface is an immutable 3D-textured block definition: a height map
// and a gamma-encoded diffuse map, with cached height extremes.
type Surface struct {
	hm *imaging.Image[uint8]
	dm *imaging.Image[imaging.BGRA]

	// Cached because they are consulted for every canonicalization
	// and every ray march.
	hmMin, hmMax uint8
}

// NewSurface constructs a surface from a height map and a diffuse map.
func NewSurface(hm *imaging.Image[uint8], dm *imaging.Image[imaging.BGRA]) Surface {
	var mn, mx uint8 = 255, 0
	for _, h := range hm.Pixels() {
		if h < mn {
			mn = h
		}
		if h > mx {
			mx = h
		}
	}
	if len(hm.Pixels()) == 0 {
		mn = 0
	}
	return Surface{hm: hm, dm: dm, hmMin: mn, hmMax: mx}
}

// EmptySurface returns the fully transparent, zero-height surface used
// for block id 0.
func EmptySurface() Surface {
	return NewSurface(imaging.New[uint8](Grid, Grid), imaging.New[imaging.BGRA](Grid, Grid))
}

// LoadSurface loads a surface from height map and diffuse map files
// with the given base name. ".hm.png" and ".dm.png" are appended to
// find the height map and diffuse map files, respectively.
// Source images are rescaled to Grid x Grid.
func LoadSurface(base string) (Surface, error) {
	hm, err := imaging.LoadGray(base+".hm.png", Grid, Grid)
	if err != nil {
		return Surface{}, fmt.Errorf("loading height map: %w", err)
	}
	dm, err := imaging.LoadBGRA(base+".dm.png", Grid, Grid)
	if err != nil {
		return Surface{}, fmt.Errorf("loading diffuse map: %w", err)
	}
	return NewSurface(hm, dm), nil
}

// SurfaceFromFn builds a surface with a height map from a function
// (heights between 0 and 255) and a blank diffuse map. Used for testing.
func SurfaceFromFn(w, h int, f func(x, y int) uint8) Surface {
	return NewSurface(imaging.FromFn(w, h, f), imaging.New[imaging.BGRA](w, h))
}

// HMMax returns the maximum height of the height map, in physical units.
// The ray tracer stops early once a ray has escaped above this height.
func (s *Surface) HMMax() float64 {
	return float64(s.hmMax) * heightScale
}

// HMMin returns the minimum height of the height map, in physical units.
// Used to eliminate neighbors that sit fully below another surface and
// therefore cannot cast shadows on it.
func (s *Surface) HMMin() float64 {
	return float64(s.hmMin) * heightScale
}

// Dimensions returns the width and height in pixels.
func (s *Surface) Dimensions() (int, int) {
	return s.hm.Width(), s.hm.Height()
}

// DiffuseAt returns the diffuse map color at pixel (x, y).
func (s *Surface) DiffuseAt(x, y int) imaging.BGRA {
	return s.dm.At(x, y)
}

// HeightAt returns the height map's physical height at pixel (x, y).
func (s *Surface) HeightAt(x, y int) float64 {
	return float64(s.hm.At(x, y)) * heightScale
}

// HeightAtUV returns the height at a UV position (between 0 and 1),
// using nearest-neighbor sampling with coordinates clamped into range.
func (s *Surface) HeightAtUV(u, v float64) float64 {
	w, h := s.Dimensions()
	x := clampPix(int(u*float64(w)), w)
	y := clampPix(int(v*float64(h)), h)
	return s.HeightAt(x, y)
}

// NormalAt returns the surface normal at pixel (x, y), computed as the
// central difference gradient of the height map. Border pixels clamp
// to the image edges.
func (s *Surface) NormalAt(x, y int) vmath.Vec3 {
	w, h := s.Dimensions()

	yminus := max(y-1, 0)
	yplus := min(y+1, h-1)
	xminus := max(x-1, 0)
	xplus := min(x+1, w-1)

	partialY := (s.HeightAt(x, yplus) - s.HeightAt(x, yminus)) / (2.0 / float64(w))
	partialX := (s.HeightAt(xplus, y) - s.HeightAt(xminus, y)) / (2.0 / float64(h))
	return vmath.Vec3{X: -partialX, Y: -partialY, Z: 1.0}.Normalize()
}

func clampPix(x, limit int) int {
	if x >= limit {
		return limit - 1
	}
	if x < 0 {
		return 0
	}
	return x
}

// Palette maps block ids to surfaces. Id 0 must be the empty surface.
type Palette []Surface
