package tracer

// TileKey identifies a 3x3 piece of the block map plus an optional
// overlay block ("goody"). The Bakery renders the central block,
// considering shadows cast by its neighbors; the neighbor cells only
// influence shadowing.
//
// TileKey is comparable and is used directly as a cache key.
type TileKey struct {
	// Blocks holds block ids row-major; the center is Blocks[1][1].
	Blocks [3][3]uint8

	// Goody is an optional decorative block composited on top of the
	// center block. 0 means none.
	Goody uint8
}

// KeyWithCenter returns a key with only the central block set.
func KeyWithCenter(block uint8) TileKey {
	var k TileKey
	k.Blocks[1][1] = block
	return k
}

// Center returns the central block id.
func (k TileKey) Center() uint8 {
	return k.Blocks[1][1]
}

// centerAndGoody strips all neighbor cells, keeping only the central
// block and overlay. This is the degraded-quality stand-in key.
func (k TileKey) centerAndGoody() TileKey {
	c := KeyWithCenter(k.Center())
	c.Goody = k.Goody
	return c
}

// isCenterOnly reports whether all neighbor cells are empty.
func (k TileKey) isCenterOnly() bool {
	masked := k.Blocks
	masked[1][1] = 0
	return masked == [3][3]uint8{}
}
