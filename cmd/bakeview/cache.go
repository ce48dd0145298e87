package main

import (
	"github.com/Faultbox/tilebake/internal/engine/tracer"
)

// textureCache maps baked tiles to their uploaded textures. Degraded
// stand-in tiles stop being returned once their full bake lands, so
// entries not touched between two sweeps are destroyed instead of
// accumulating until shutdown.
type textureCache[T any] struct {
	entries map[*tracer.Tile]T
	used    map[*tracer.Tile]struct{}
	destroy func(T)
}

func newTextureCache[T any](destroy func(T)) *textureCache[T] {
	return &textureCache[T]{
		entries: make(map[*tracer.Tile]T),
		used:    make(map[*tracer.Tile]struct{}),
		destroy: destroy,
	}
}

// get returns the cached texture for the tile and marks it as in use
// until the next sweep.
func (c *textureCache[T]) get(tile *tracer.Tile) (T, bool) {
	c.used[tile] = struct{}{}
	tex, ok := c.entries[tile]
	return tex, ok
}

// put stores a freshly uploaded texture for the tile.
func (c *textureCache[T]) put(tile *tracer.Tile, tex T) {
	c.used[tile] = struct{}{}
	c.entries[tile] = tex
}

// sweep destroys every texture whose tile was not requested since the
// previous sweep and clears the usage marks.
func (c *textureCache[T]) sweep() {
	for tile, tex := range c.entries {
		if _, ok := c.used[tile]; !ok {
			c.destroy(tex)
			delete(c.entries, tile)
		}
	}
	clear(c.used)
}

// close destroys all remaining textures.
func (c *textureCache[T]) close() {
	for _, tex := range c.entries {
		c.destroy(tex)
	}
	clear(c.entries)
	clear(c.used)
}
