package tracer

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilebake/pkg/imaging"
)

func TestSurfaceHeightExtremes(t *testing.T) {
	s := SurfaceFromFn(Grid, Grid, func(x, y int) uint8 {
		if x == 0 && y == 0 {
			return 255
		}
		return 10
	})
	if got := s.HMMax(); got != HeightMax {
		t.Errorf("HMMax = %v, want %v", got, HeightMax)
	}
	want := 10.0 * HeightMax / 255.0
	if got := s.HMMin(); got != want {
		t.Errorf("HMMin = %v, want %v", got, want)
	}
}

func TestEmptySurface(t *testing.T) {
	s := EmptySurface()
	if s.HMMax() != 0 || s.HMMin() != 0 {
		t.Errorf("empty surface heights = %v..%v, want 0..0", s.HMMin(), s.HMMax())
	}
	w, h := s.Dimensions()
	if w != Grid || h != Grid {
		t.Errorf("empty surface is %dx%d, want %dx%d", w, h, Grid, Grid)
	}
	if s.DiffuseAt(0, 0).A != 0 {
		t.Error("empty surface is not transparent")
	}
	if s.HeightAtUV(0.99, 0.99) != 0 {
		t.Error("empty surface has nonzero height")
	}
}

func TestHeightAtUVClamps(t *testing.T) {
	s := SurfaceFromFn(4, 4, func(x, y int) uint8 { return uint8(x) })

	// UV of exactly 1.0 maps past the last pixel and must clamp.
	if got, want := s.HeightAtUV(1.0, 0.5), s.HeightAt(3, 2); got != want {
		t.Errorf("HeightAtUV(1.0, 0.5) = %v, want %v", got, want)
	}
	if got, want := s.HeightAtUV(-0.1, 0.0), s.HeightAt(0, 0); got != want {
		t.Errorf("HeightAtUV(-0.1, 0) = %v, want %v", got, want)
	}
}

func TestNormalAtFlatSurface(t *testing.T) {
	s := SurfaceFromFn(Grid, Grid, func(x, y int) uint8 { return 100 })
	n := s.NormalAt(10, 10)
	if n.X != 0 || n.Y != 0 || n.Z != 1 {
		t.Errorf("flat surface normal = %v, want (0,0,1)", n)
	}
	// Border pixels clamp rather than panic.
	_ = s.NormalAt(0, 0)
	_ = s.NormalAt(Grid-1, Grid-1)
}

func TestNormalAtRamp(t *testing.T) {
	// A ramp rising along +x tilts the normal towards -x.
	s := SurfaceFromFn(Grid, Grid, func(x, y int) uint8 { return uint8(x * 4) })
	n := s.NormalAt(10, 10)
	if n.X >= 0 {
		t.Errorf("ramp normal X = %v, want negative", n.X)
	}
	if n.Y != 0 {
		t.Errorf("ramp normal Y = %v, want 0", n.Y)
	}
	if n.Z <= 0 {
		t.Errorf("ramp normal Z = %v, want positive", n.Z)
	}
	if !n.IsNormalized() {
		t.Errorf("normal %v is not unit length", n)
	}
}

func TestLoadSurface(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "test-block")

	hm := imaging.FromFn(8, 8, func(x, y int) imaging.BGRA {
		return imaging.BGRA{B: 200, G: 200, R: 200, A: 255}
	})
	dm := imaging.FromFn(8, 8, func(x, y int) imaging.BGRA {
		return imaging.BGRA{B: 10, G: 20, R: 30, A: 255}
	})
	if err := imaging.SavePNG(hm, base+".hm.png"); err != nil {
		t.Fatal(err)
	}
	if err := imaging.SavePNG(dm, base+".dm.png"); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSurface(base)
	if err != nil {
		t.Fatalf("LoadSurface: %v", err)
	}
	w, h := s.Dimensions()
	if w != Grid || h != Grid {
		t.Errorf("loaded surface is %dx%d, want %dx%d (rescaled)", w, h, Grid, Grid)
	}
	if s.DiffuseAt(0, 0) != (imaging.BGRA{B: 10, G: 20, R: 30, A: 255}) {
		t.Errorf("diffuse = %v", s.DiffuseAt(0, 0))
	}
	if s.HMMax() == 0 {
		t.Error("height map loaded as all zero")
	}
}

func TestLoadSurfaceMissing(t *testing.T) {
	if _, err := LoadSurface("/nonexistent/base"); err == nil {
		t.Error("expected error for missing files, got nil")
	}
}

func TestTileKeyHelpers(t *testing.T) {
	k := KeyWithCenter(5)
	if k.Center() != 5 {
		t.Errorf("Center = %d, want 5", k.Center())
	}
	if !k.isCenterOnly() {
		t.Error("KeyWithCenter is not center-only")
	}

	k.Blocks[0][2] = 7
	if k.isCenterOnly() {
		t.Error("key with a neighbor reported center-only")
	}

	k.Goody = 9
	cg := k.centerAndGoody()
	if cg.Center() != 5 || cg.Goody != 9 {
		t.Errorf("centerAndGoody = %+v", cg)
	}
	if !cg.isCenterOnly() {
		t.Error("centerAndGoody kept neighbor cells")
	}
}
