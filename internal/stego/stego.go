// Package stego implements the spatial-domain block embedding scheme: one
// payload bit per 8x8 luminance block, cycled across the block grid, and
// read back against the median of the per-block means.
package stego

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/screenmark/screenmark/internal/gray"
)

// Embed returns a copy of g with one bit of mark applied to every complete
// block: +strength on every pixel for a 1 bit, -strength for a 0 bit, block
// k taking mark[k%len(mark)]. The result is clipped to [0, 255] and rounded
// back to integer samples. g itself is never modified; a grid with no
// complete block comes back as an unmodified copy.
func Embed(g *gray.Grid, mark []bool, strength float64) *gray.Grid {
	pix := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		pix[i] = float64(v)
	}
	if len(mark) > 0 {
		blocks := newBlockGrid(g.W, g.H)
		for at := 0; at < blocks.total(); at++ {
			delta := -strength
			if mark[at%len(mark)] {
				delta = strength
			}
			x, y := blocks.origin(at)
			for row := y; row < y+BlockSize; row++ {
				off := row*g.W + x
				for i := off; i < off+BlockSize; i++ {
					pix[i] += delta
				}
			}
		}
	}
	out := gray.New(g.W, g.H)
	for i, v := range pix {
		out.Pix[i] = uint8(math.Round(math.Min(255, math.Max(0, v))))
	}
	return out
}

// Extract reads markLen bits back from g in two explicit passes: the first
// collects the mean intensity of up to markLen complete blocks in embed
// order, the second classifies each mean against the median of the collected
// means (strictly above reads as 1). Blocks the grid cannot supply read as
// 0 bits, so degenerate grids yield an all-zero sequence.
func Extract(g *gray.Grid, markLen int) []bool {
	bits := make([]bool, markLen)
	blocks := newBlockGrid(g.W, g.H)
	n := blocks.total()
	if n > markLen {
		n = markLen
	}
	if n == 0 {
		return bits
	}

	means := make([]float64, n)
	buf := make([]float64, BlockSize*BlockSize)
	for at := 0; at < n; at++ {
		x, y := blocks.origin(at)
		i := 0
		for row := y; row < y+BlockSize; row++ {
			off := row*g.W + x
			for _, v := range g.Pix[off : off+BlockSize] {
				buf[i] = float64(v)
				i++
			}
		}
		means[at] = stat.Mean(buf, nil)
	}

	// The median holds up against a handful of outlier blocks where the
	// population mean would drift.
	threshold := median(means)
	for at, m := range means {
		bits[at] = m > threshold
	}
	return bits
}

// Confidence is the fraction of bits agreeing with the majority bit value,
// a self-consistency score over the block population. An even split counts
// the zero bits as the majority, yielding 0.5.
func Confidence(bits []bool) float64 {
	if len(bits) == 0 {
		return 0
	}
	var ones int
	for _, b := range bits {
		if b {
			ones++
		}
	}
	majority := len(bits) - ones
	if ones > majority {
		majority = ones
	}
	return float64(majority) / float64(len(bits))
}

// median returns the middle value of xs, averaging the two central values
// when the count is even.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
