package tracer

import (
	"testing"

	vmath "github.com/Faultbox/tilebake/pkg/math"
)

func TestPosToTile(t *testing.T) {
	tx, ty, u, v := PosToTile(1.25, 4.125)
	if tx != 1 || ty != 4 {
		t.Errorf("tile = (%d,%d), want (1,4)", tx, ty)
	}
	if u != 0.25 || v != 0.125 {
		t.Errorf("offset = (%v,%v), want (0.25,0.125)", u, v)
	}
}

// stepPalette is a two-block palette whose block 1 is flat with a
// raised step on its right half.
func stepPalette() Palette {
	return Palette{
		EmptySurface(),
		SurfaceFromFn(Grid, Grid, func(x, y int) uint8 {
			if x > Grid/2 {
				return 255
			}
			return 0
		}),
	}
}

func TestIntersects(t *testing.T) {
	s := NewSharedData(stepPalette(), DefaultLights())

	key := KeyWithCenter(1)
	key.Blocks[0][0] = 1

	start := vmath.Vec3{X: 1.25, Y: 1.5, Z: 0.0}

	tests := []struct {
		name string
		dir  vmath.Vec3
		want bool
	}{
		{"straight up escapes", vmath.Vec3{Z: 1}, false},
		{"horizontal y is occluded", vmath.Vec3{Y: 1}, true},
		{"horizontal x hits the step", vmath.Vec3{X: 1}, true},
		{"shallow ray hits the step", vmath.Vec3{X: 1, Z: 0.01}.Normalize(), true},
		{"steep ray escapes above", vmath.Vec3{X: 1, Z: 2}.Normalize(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.intersects(key, NewRay(start, tt.dir)); got != tt.want {
				t.Errorf("intersects(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestMaxHeight(t *testing.T) {
	s := NewSharedData(stepPalette(), DefaultLights())

	key := KeyWithCenter(0)
	if got := s.maxHeight(key); got != 0 {
		t.Errorf("maxHeight(empty) = %v, want 0", got)
	}

	key.Blocks[2][1] = 1
	if got := s.maxHeight(key); got != HeightMax {
		t.Errorf("maxHeight = %v, want %v", got, HeightMax)
	}

	key = KeyWithCenter(0)
	key.Goody = 1
	if got := s.maxHeight(key); got != HeightMax {
		t.Errorf("maxHeight with goody = %v, want %v", got, HeightMax)
	}
}

func TestBlend(t *testing.T) {
	// Opaque foreground wins completely.
	if got := blend(200, 255, 10, 255); got != 200 {
		t.Errorf("opaque over opaque = %d, want 200", got)
	}
	// Transparent foreground leaves the background.
	if got := blend(200, 0, 10, 255); got != 10 {
		t.Errorf("transparent over opaque = %d, want 10", got)
	}
	// Both transparent stays zero rather than dividing by zero.
	if got := blend(200, 0, 10, 0); got != 0 {
		t.Errorf("transparent over transparent = %d, want 0", got)
	}
}

func TestDiffuseAtGoodyFallback(t *testing.T) {
	// Goody with zero alpha at a pixel must leave the center block's
	// height and normal untouched.
	center := SurfaceFromFn(Grid, Grid, func(x, y int) uint8 { return 100 })
	goody := SurfaceFromFn(Grid, Grid, func(x, y int) uint8 { return 255 })
	pal := Palette{EmptySurface(), center, goody}

	s := NewSharedData(pal, DefaultLights())
	key := KeyWithCenter(1)
	key.Goody = 2

	// The goody's diffuse map is all transparent (blank), so height
	// falls back to the center block.
	want := pal[1].HeightAt(5, 5)
	if got := s.heightAt(key, 5, 5); got != want {
		t.Errorf("heightAt with transparent goody = %v, want %v", got, want)
	}
	if got := s.normalAt(key, 5, 5); got != pal[1].NormalAt(5, 5) {
		t.Errorf("normalAt with transparent goody = %v, want %v", got, pal[1].NormalAt(5, 5))
	}
}

func TestRenderCentralBlockDimensions(t *testing.T) {
	lights := DefaultLights()
	lights.SunRays = 1
	lights.AmbientRays = 1

	s := NewSharedData(stepPalette(), lights)
	img := s.RenderCentralBlock(KeyWithCenter(1))
	if img.Width() != Grid || img.Height() != Grid {
		t.Errorf("rendered image is %dx%d, want %dx%d", img.Width(), img.Height(), Grid, Grid)
	}
	if s.CPUMillis() < 0 {
		t.Error("CPU counter went negative")
	}
}

func TestSampleSunDirNormalized(t *testing.T) {
	l := DefaultLights()
	for i := 0; i < 16; i++ {
		u, v := Halton23(i)
		dir := l.SampleSunDir(u, v)
		if !dir.IsNormalized() {
			t.Errorf("SampleSunDir(%v,%v) = %v, not normalized", u, v, dir)
		}
		// Samples stay within the sun's cone, roughly.
		if dir.Dot(l.SunDir) < 0.9 {
			t.Errorf("SampleSunDir(%v,%v) = %v, too far from sun direction", u, v, dir)
		}
	}
}

func TestCosineSphereAboveSurface(t *testing.T) {
	n := vmath.Vec3{Z: 1}
	for i := 0; i < 32; i++ {
		u, v := Halton23(i)
		dir := cosineSphere(u, v, n)
		if dir.Z < 0 {
			t.Errorf("cosineSphere sample %v below the surface", dir)
		}
		if !dir.IsNormalized() {
			t.Errorf("cosineSphere sample %v not normalized", dir)
		}
	}
}
