// Package bitconv converts between byte slices and bit sequences in the
// watermark wire order: byte order preserved, least significant bit first
// within each byte.
package bitconv

func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 0; i < 8; i++ {
			bits = append(bits, (bb>>uint(i))&1 == 1)
		}
	}
	return bits
}

func BoolsToBytes(bits []bool) []byte {
	// calculate padded length without modifying input
	n := len(bits)
	paddedLen := n
	if n%8 != 0 {
		paddedLen += 8 - n%8
	}

	// missing tail bits pack as zero
	out := make([]byte, paddedLen/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
