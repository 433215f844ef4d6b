package screenmark

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/screenmark/screenmark/internal/bitconv"
)

const (
	// PayloadSize is the length of the embedded payload, in bytes.
	PayloadSize = 32
	// MarkBits is the length of the embedded bit sequence.
	MarkBits = PayloadSize * 8

	idSize = PayloadSize / 2
)

// Payload is the fixed 32-byte value carried by the watermark: bytes [0:16]
// hold the device identifier, bytes [16:32] the session identifier, each
// encoded as UTF-8, truncated to 16 bytes and right-padded with NUL.
//
// Truncation is silent and byte-level. A multi-byte code point cut at the
// 16-byte boundary leaves an invalid tail that parsing drops again, so
// identifiers longer than 16 bytes may lose their final character entirely.
type Payload [PayloadSize]byte

// NewPayload builds a payload from the device and session identifiers.
// Inputs are accepted as-is; there is no error path.
func NewPayload(deviceID, sessionID string) Payload {
	var p Payload
	copy(p[:idSize], deviceID)
	copy(p[idSize:], sessionID)
	return p
}

// PayloadFromBits packs a bit sequence back into a payload. Bits beyond
// MarkBits are ignored and a missing tail is treated as zero bits.
func PayloadFromBits(bits []bool) Payload {
	if len(bits) > MarkBits {
		bits = bits[:MarkBits]
	}
	var p Payload
	copy(p[:], bitconv.BoolsToBytes(bits))
	return p
}

// Bits returns the 256-bit wire sequence of the payload: payload byte order,
// least significant bit first within each byte.
func (p Payload) Bits() []bool {
	return bitconv.BytesToBools(p[:])
}

// DeviceID returns the decoded device identifier.
func (p Payload) DeviceID() string { return decodeID(p[:idSize]) }

// SessionID returns the decoded session identifier.
func (p Payload) SessionID() string { return decodeID(p[idSize:]) }

// Hex returns the lowercase hexadecimal encoding of the payload.
func (p Payload) Hex() string { return hex.EncodeToString(p[:]) }

// decodeID strips the trailing NUL padding and drops any byte sequence that
// is not valid UTF-8 rather than failing.
func decodeID(b []byte) string {
	return strings.ToValidUTF8(string(bytes.TrimRight(b, "\x00")), "")
}
