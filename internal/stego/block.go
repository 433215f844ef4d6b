package stego

// BlockSize is the side length of the square pixel blocks that each carry
// one payload bit.
const BlockSize = 8

// blockGrid addresses the complete BlockSize x BlockSize blocks of a pixel
// grid in row-major order from the origin. Trailing rows and columns that do
// not fill a complete block are dropped.
type blockGrid struct {
	cols, rows int
}

func newBlockGrid(w, h int) blockGrid {
	return blockGrid{cols: w / BlockSize, rows: h / BlockSize}
}

func (b blockGrid) total() int { return b.cols * b.rows }

// origin returns the top-left pixel coordinates of block at.
func (b blockGrid) origin(at int) (x, y int) {
	return (at % b.cols) * BlockSize, (at / b.cols) * BlockSize
}
