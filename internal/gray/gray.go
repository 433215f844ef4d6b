// Package gray reduces images to the single 8-bit luminance channel the
// watermark operates on.
package gray

import "image"

// Grid is a row-major single-channel grid of 8-bit intensity samples.
type Grid struct {
	W, H int
	Pix  []uint8
}

// New allocates a zeroed grid of the given size.
func New(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]uint8, w*h)}
}

// FromImage flattens src to one channel. Gray images pass through sample by
// sample; everything else is reduced by an unweighted average of the 8-bit
// R, G and B channels, truncated to the unsigned 8-bit range.
func FromImage(src image.Image) *Grid {
	bounds := src.Bounds()
	g := New(bounds.Dx(), bounds.Dy())
	idx := 0
	if gr, ok := src.(*image.Gray); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				g.Pix[idx] = gr.GrayAt(x, y).Y
				idx++
			}
		}
		return g
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gg, b, _ := src.At(x, y).RGBA()
			g.Pix[idx] = uint8(((r >> 8) + (gg >> 8) + (b >> 8)) / 3)
			idx++
		}
	}
	return g
}

// Image rebuilds a standard library image from the grid.
func (g *Grid) Image() *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(dst.Pix, g.Pix)
	return dst
}
