package tracer

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/Faultbox/tilebake/pkg/imaging"
	vmath "github.com/Faultbox/tilebake/pkg/math"
)

// SharedData is the read-only rendering context shared by all worker
// goroutines: the block palette and lighting configuration. It is never
// mutated after construction, so no locking is needed for reads.
type SharedData struct {
	palette Palette
	lights  Lights

	// cpuMillis accumulates total worker CPU time spent baking.
	// Diagnostics only.
	cpuMillis atomic.Int64
}

// NewSharedData builds the shared rendering context.
func NewSharedData(palette Palette, lights Lights) *SharedData {
	return &SharedData{palette: palette, lights: lights}
}

// Lights returns the lighting configuration.
func (s *SharedData) Lights() Lights {
	return s.lights
}

// RenderCentralBlock ray-traces the full Grid x Grid texture for the
// central block of the given neighborhood.
func (s *SharedData) RenderCentralBlock(key TileKey) *imaging.Image[imaging.BGRA] {
	start := time.Now()
	img := imaging.FromFn(Grid, Grid, func(x, y int) imaging.BGRA {
		return s.shadePix(key, x, y)
	})
	s.cpuMillis.Add(time.Since(start).Milliseconds())
	return img
}

// shadePix computes the shaded color of one pixel of the central tile.
func (s *SharedData) shadePix(key TileKey, px, py int) imaging.BGRA {
	dm := s.diffuseAt(key, px, py)

	if s.lights.InvertDM {
		dm.B = 255 - dm.B
		dm.G = 255 - dm.G
		dm.R = 255 - dm.R
	}

	normal := s.normalAt(key, px, py)

	x, y := toAbsPos(1, 1, px, py)
	z := s.heightAt(key, px, py)

	// Offset slightly along the normal to avoid self-shadowing.
	pos := vmath.Vec3{X: x, Y: y, Z: z}.Add(normal.Scale(0.02))

	// Per-pixel scramble offset for the Halton samples.
	ru, rv := rand.Float64(), rand.Float64()

	ambient := s.lights.Ambient.Scale(float32(s.ambientFraction(key, pos, normal, ru, rv)))
	sunlight := s.lights.SunColor.Scale(float32(s.sunFraction(key, pos, normal, ru, rv)))
	totalLight := ambient.Add(sunlight).Add(s.lights.FakeAmbient)

	dml := dm.Linear()
	return imaging.BGRA{
		B: imaging.LinearToSRGB8Fast(dml.B * totalLight.B),
		G: imaging.LinearToSRGB8Fast(dml.G * totalLight.G),
		R: imaging.LinearToSRGB8Fast(dml.R * totalLight.R),
		A: dm.A,
	}
}

// ambientFraction returns the unoccluded fraction of cosine-weighted
// hemisphere samples around the normal.
func (s *SharedData) ambientFraction(key TileKey, pos, normal vmath.Vec3, ru, rv float64) float64 {
	total := 0.0
	n := s.lights.AmbientRays
	for i := 0; i < n; i++ {
		u, v := Halton23Scrambled(i, ru, rv)
		dir := cosineSphere(u, v, normal)
		if !s.intersects(key, NewRay(pos, dir)) {
			total += 1.0 / float64(n)
		}
	}
	return total
}

// sunFraction returns the diffuse-weighted unoccluded fraction of
// samples within the sun's cone.
func (s *SharedData) sunFraction(key TileKey, pos, normal vmath.Vec3, ru, rv float64) float64 {
	total := 0.0
	n := s.lights.SunRays
	for i := 0; i < n; i++ {
		u, v := Halton23Scrambled(i, ru, rv)
		dir := s.lights.SampleSunDir(u, v)
		if !s.intersects(key, NewRay(pos, dir)) {
			total += math.Max(0, normal.Dot(dir)) / float64(n)
		}
	}
	return total
}

// intersects is the shadow test: it marches the ray in fixed steps over
// the neighborhood's height fields and reports whether it hits anything.
func (s *SharedData) intersects(key TileKey, r Ray) bool {
	// A ray pointing down will eventually hit something for sure.
	if r.Dir.Z <= 0.0 {
		return true
	}

	// Stride sized to advance ~0.7 pixels per step in the XY plane;
	// steeper rays take proportionally larger absolute strides.
	stride := 0.7 / (math.Cos(r.Dir.Z) * Grid)
	t := stride

	maxh := s.maxHeight(key)
	for i := 0; i < Grid-2; i++ {
		t += stride
		p := r.At(t)
		if p.Z > maxh {
			return false
		}
		if s.heightAtPos(key, p.X, p.Y) > p.Z {
			return true
		}
	}
	return false
}

// maxHeight returns the maximum height of all blocks in the
// neighborhood, used to abort marching once a ray escapes above it.
func (s *SharedData) maxHeight(key TileKey) float64 {
	mx := 0.0
	for _, row := range key.Blocks {
		for _, b := range row {
			mx = math.Max(mx, s.palette[b].HMMax())
		}
	}
	if key.Goody != 0 {
		mx = math.Max(mx, s.palette[key.Goody].HMMax())
	}
	return mx
}

// toAbsPos converts a pixel position inside a tile of the 3x3
// neighborhood to an absolute position in tile units.
func toAbsPos(tileX, tileY, px, py int) (x, y float64) {
	x = float64(tileX) + float64(px)/Grid
	y = float64(tileY) + float64(py)/Grid
	return x, y
}

// diffuseAt returns the diffuse color of the central tile's pixel,
// compositing the goody over the center block with the standard
// over-operator.
func (s *SharedData) diffuseAt(key TileKey, px, py int) imaging.BGRA {
	dm := s.palette[key.Center()].DiffuseAt(px, py)
	if key.Goody == 0 {
		return dm
	}

	fg := s.palette[key.Goody].DiffuseAt(px, py)
	return imaging.BGRA{
		B: blend(fg.B, fg.A, dm.B, dm.A),
		G: blend(fg.G, fg.A, dm.G, dm.A),
		R: blend(fg.R, fg.A, dm.R, dm.A),
		A: max(fg.A, dm.A),
	}
}

// blend composites channel c1 (alpha a1) over c2 (alpha a2).
// https://en.wikipedia.org/wiki/Alpha_compositing
func blend(c1, a1, c2, a2 uint8) uint8 {
	fc1 := float32(c1) / 255.0
	fa1 := float32(a1) / 255.0
	fc2 := float32(c2) / 255.0
	fa2 := float32(a2) / 255.0

	ao := fa1 + fa2*(1.0-fa1)
	if ao == 0 {
		return 0
	}
	return uint8(((fc1*fa1 + fc2*fa2*(1.0-fa1)) / ao) * 255.0)
}

// normalAt returns the normal of the central tile's pixel. Where the
// goody is present (nonzero alpha) its surface wins, else the center
// block's.
func (s *SharedData) normalAt(key TileKey, px, py int) vmath.Vec3 {
	if key.Goody != 0 {
		g := &s.palette[key.Goody]
		if g.DiffuseAt(px, py).A != 0 {
			return g.NormalAt(px, py)
		}
	}
	return s.palette[key.Center()].NormalAt(px, py)
}

// heightAt returns the height of the central tile's pixel, preferring
// the goody's surface where it is visible.
func (s *SharedData) heightAt(key TileKey, px, py int) float64 {
	if key.Goody != 0 {
		g := &s.palette[key.Goody]
		if g.DiffuseAt(px, py).A != 0 {
			return g.HeightAt(px, py)
		}
	}
	return s.palette[key.Center()].HeightAt(px, py)
}

// heightAtPos returns the neighborhood's surface height at an absolute
// position.
func (s *SharedData) heightAtPos(key TileKey, x, y float64) float64 {
	tx, ty, u, v := PosToTile(x, y)
	blk := key.Blocks[ty][tx]

	if key.Goody != 0 && tx == 1 && ty == 1 {
		bg := s.palette[blk].HeightAtUV(u, v)
		fg := s.palette[key.Goody].HeightAtUV(u, v)
		return math.Max(fg, bg)
	}
	return s.palette[blk].HeightAtUV(u, v)
}

// PosToTile decomposes an absolute position into an integer tile index
// and the fractional offset within that tile.
func PosToTile(x, y float64) (tx, ty int, u, v float64) {
	fx := math.Floor(x)
	fy := math.Floor(y)
	return int(fx), int(fy), x - fx, y - fy
}

// CPUMillis returns the cumulative worker CPU time spent baking,
// in milliseconds.
func (s *SharedData) CPUMillis() int64 {
	return s.cpuMillis.Load()
}
