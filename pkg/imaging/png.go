package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// LoadBGRA reads a PNG file and returns it as a BGRA image rescaled to
// w x h with nearest-neighbor sampling. Block art is pixel art; any
// smoothing filter would bleed colors across height steps.
func LoadBGRA(path string, w, h int) (*Image[BGRA], error) {
	src, err := decodePNG(path)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := New[BGRA](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := dst.PixOffset(x, y)
			out.Set(x, y, BGRA{
				R: dst.Pix[i],
				G: dst.Pix[i+1],
				B: dst.Pix[i+2],
				A: dst.Pix[i+3],
			})
		}
	}
	return out, nil
}

// LoadGray reads a PNG file and returns its luma channel rescaled to
// w x h with nearest-neighbor sampling.
func LoadGray(path string, w, h int) (*Image[uint8], error) {
	src, err := decodePNG(path)
	if err != nil {
		return nil, err
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := New[uint8](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, dst.GrayAt(x, y).Y)
		}
	}
	return out, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// SavePNG writes a BGRA image to a PNG file.
func SavePNG(im *Image[BGRA], path string) error {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width(), im.Height()))
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			c := im.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// RawBGRA returns the image's pixels as a flat B,G,R,A byte slice,
// the layout expected by streaming texture uploads.
func RawBGRA(im *Image[BGRA]) []byte {
	raw := make([]byte, 0, im.Width()*im.Height()*4)
	for _, c := range im.Pixels() {
		raw = append(raw, c.B, c.G, c.R, c.A)
	}
	return raw
}
