package tracer

import (
	"fmt"

	"github.com/Faultbox/tilebake/internal/logger"
	"github.com/Faultbox/tilebake/pkg/imaging"
)

// Tile is a baked Grid x Grid tile texture. Handles returned by the
// Renderer are shared; callers must treat them as read-only.
type Tile = imaging.Image[imaging.BGRA]

// Renderer is the caching ray tracer. It canonicalizes neighborhood
// keys, deduplicates in-flight work and serves the best currently
// available result for each request. Not safe for concurrent use: the
// cache and in-flight set belong to the single dispatcher goroutine.
type Renderer struct {
	cache  map[TileKey]*Tile
	baking map[TileKey]struct{}
	empty  *Tile

	palette Palette
	bakery  *Bakery
}

// NewRenderer constructs a renderer over the given palette and lights
// and starts its worker pool.
func NewRenderer(palette Palette, lights Lights) *Renderer {
	return &Renderer{
		cache:   make(map[TileKey]*Tile),
		baking:  make(map[TileKey]struct{}),
		empty:   imaging.New[imaging.BGRA](Grid, Grid),
		palette: palette,
		bakery:  NewBakery(palette, lights),
	}
}

// Lights returns the lighting configuration in use.
func (r *Renderer) Lights() Lights {
	return r.bakery.shared.Lights()
}

// RenderTile returns the texture for the central tile of the key.
// Never blocks: if the exact texture is not yet done baking, a
// lower-quality stand-in (center block without neighbor shadows) or
// the empty texture is returned instead, and the full texture keeps
// baking in the background.
func (r *Renderer) RenderTile(key TileKey) *Tile {
	// Degradation loop: each pass either returns a texture or moves to
	// a strictly simpler key, ending at the always-available empty one.
	for {
		// Ignore neighboring surfaces that cannot throw a shadow.
		key = r.canonicalize(key)

		// Already baked.
		if tex, ok := r.cache[key]; ok {
			return tex
		}

		if r.isBaking(key) {
			// Currently baking: check if done.
			if tex := r.tryRecv(key); tex != nil {
				return tex
			}
		} else {
			// Not yet started: start baking.
			r.startBaking(key)
		}

		// The requested texture is not available yet. Fall back to the
		// center block without neighbor shadows, or to empty.
		if key.isCenterOnly() {
			return r.empty
		}
		key = key.centerAndGoody()
	}
}

// canonicalize replaces the key by the simplest key that renders into
// the same result, zeroing neighboring blocks that can never cast a
// shadow on the central block because they sit strictly below it.
// This significantly reduces the number of tiles to render and cache.
func (r *Renderer) canonicalize(k TileKey) TileKey {
	c := k.Center()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == 1 && j == 1 {
				continue
			}
			k.Blocks[i][j] = r.canonicalize1(k.Blocks[i][j], c)
		}
	}
	return k
}

func (r *Renderer) canonicalize1(block, center uint8) uint8 {
	if r.isBelow(block, center) {
		return 0
	}
	return block
}

// isBelow reports whether surface a lies entirely below surface b, in
// which case a cannot cast a shadow on b.
func (r *Renderer) isBelow(a, b uint8) bool {
	return r.palette[a].HMMax() <= r.palette[b].HMMin()
}

func (r *Renderer) startBaking(key TileKey) {
	r.baking[key] = struct{}{}
	r.bakery.Send(key)
}

func (r *Renderer) isBaking(key TileKey) bool {
	_, ok := r.baking[key]
	return ok
}

func (r *Renderer) tryRecv(key TileKey) *Tile {
	img := r.bakery.TryRecv(key)
	if img == nil {
		return nil
	}
	return r.create(key, img)
}

func (r *Renderer) create(key TileKey, img *Tile) *Tile {
	delete(r.baking, key)
	r.cache[key] = img
	return img
}

// Close shuts down the worker pool.
func (r *Renderer) Close() {
	r.bakery.Close()
}

// Stats describes the renderer's cache and queue state.
type Stats struct {
	Baking     int
	Cached     int
	CPUSeconds float64
}

// Stats returns diagnostic counts. Advisory only.
func (r *Renderer) Stats() Stats {
	return Stats{
		Baking:     len(r.baking),
		Cached:     len(r.cache),
		CPUSeconds: float64(r.bakery.CPUMillis()) / 1000.0,
	}
}

// LogStats logs diagnostic counts.
func (r *Renderer) LogStats() {
	st := r.Stats()
	logger.Sugar.Infof("renderer: baking: %d, cached: %d, CPU: %.1f s",
		st.Baking, st.Cached, st.CPUSeconds)
	r.bakery.LogStats()
}

// String implements fmt.Stringer for debug output.
func (s Stats) String() string {
	return fmt.Sprintf("baking: %d, cached: %d, CPU: %.1f s", s.Baking, s.Cached, s.CPUSeconds)
}
