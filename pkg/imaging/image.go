// Package imaging provides small in-memory pixel buffers for the tile
// tracer: a generic rectangular image, BGRA and float colors, sRGB
// conversions and PNG loading/saving.
package imaging

import "fmt"

// Image is a rectangular 2D array of pixel values stored in row-major
// order. The zero value is an empty 0x0 image.
type Image[C any] struct {
	w, h int
	pix  []C
}

// New constructs a zeroed image with the given width and height.
func New[C any](w, h int) *Image[C] {
	return &Image[C]{
		w:   w,
		h:   h,
		pix: make([]C, w*h),
	}
}

// FromFn constructs an image by evaluating f at every pixel.
func FromFn[C any](w, h int, f func(x, y int) C) *Image[C] {
	img := New[C](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.pix[y*w+x] = f(x, y)
		}
	}
	return img
}

// Width returns the width in pixels.
func (im *Image[C]) Width() int { return im.w }

// Height returns the height in pixels.
func (im *Image[C]) Height() int { return im.h }

// At returns the pixel at (x, y).
// Out-of-range coordinates are a bug in the caller and panic.
func (im *Image[C]) At(x, y int) C {
	if x < 0 || x >= im.w || y < 0 || y >= im.h {
		panic(fmt.Sprintf("imaging: pixel (%d,%d) outside %dx%d image", x, y, im.w, im.h))
	}
	return im.pix[y*im.w+x]
}

// Set stores the pixel at (x, y).
// Out-of-range coordinates are a bug in the caller and panic.
func (im *Image[C]) Set(x, y int, c C) {
	if x < 0 || x >= im.w || y < 0 || y >= im.h {
		panic(fmt.Sprintf("imaging: pixel (%d,%d) outside %dx%d image", x, y, im.w, im.h))
	}
	im.pix[y*im.w+x] = c
}

// Pixels returns the backing pixel slice in row-major order.
func (im *Image[C]) Pixels() []C { return im.pix }
