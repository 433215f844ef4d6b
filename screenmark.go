// Package screenmark embeds a fixed device/session identifying payload into
// a raster image as an invisible luminance watermark, and recovers it from a
// (possibly re-captured) copy together with a confidence score.
//
// The scheme is deliberately simple and spatial-domain only: the image is
// tiled into 8x8 luminance blocks and every block carries one payload bit as
// a small brightness offset, cycling the 256-bit payload across the block
// grid. It survives re-capture of the rendered image but makes no attempt to
// resist compression, cropping, rotation or scaling.
package screenmark

import (
	"context"
	"image"

	"github.com/screenmark/screenmark/internal/gray"
	"github.com/screenmark/screenmark/internal/stego"
)

// DefaultStrength is the per-pixel intensity delta applied per block. One
// intensity step keeps the peak signal-to-noise ratio above 40 dB against
// the source image, i.e. visually imperceptible.
const DefaultStrength = 1.0

// Embed embeds the (deviceID, sessionID) payload into src with the specified
// options. This is a convenience function that creates an Embedder and calls
// its Embed method.
func Embed(ctx context.Context, src image.Image, deviceID, sessionID string, opts ...Option) image.Image {
	return NewEmbedder(deviceID, sessionID, opts...).Embed(ctx, src)
}

// Detect extracts the identifying payload from src. This is a convenience
// function that creates a Detector and calls its Detect method.
func Detect(ctx context.Context, src image.Image) Result {
	return NewDetector().Detect(ctx, src)
}

// Embedder writes one fixed payload into any number of images. The payload
// and its bit sequence are derived once at construction and never change
// afterwards, so a single Embedder is safe for concurrent use across frames.
type Embedder struct {
	payload  Payload
	mark     []bool
	strength float64
}

// NewEmbedder initializes an Embedder for the given identifiers.
// Identifiers longer than 16 UTF-8 bytes are silently truncated; see Payload.
func NewEmbedder(deviceID, sessionID string, opts ...Option) *Embedder {
	e := &Embedder{
		payload:  NewPayload(deviceID, sessionID),
		strength: DefaultStrength,
	}
	e.mark = e.payload.Bits()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Payload returns the payload value this Embedder writes.
func (e *Embedder) Payload() Payload { return e.payload }

// Embed embeds the payload into src.
//
// Process:
//  1. Reduces the image to a single 8-bit luminance channel.
//  2. Scans complete 8x8 blocks in row-major order from the origin.
//  3. Raises every pixel of block k by the strength delta when payload bit
//     k mod 256 is 1, lowers it otherwise.
//  4. Clips to [0, 255] and rounds back to 8-bit samples.
//
// src itself is never modified and the output is deterministic. An image too
// small for a single complete block comes back as an untouched single-channel
// copy; there is no error path.
func (e *Embedder) Embed(ctx context.Context, src image.Image) image.Image {
	return stego.Embed(gray.FromImage(src), e.mark, e.strength).Image()
}

// Detector recovers payloads from images. It holds no state; the zero value
// is ready to use and safe for concurrent use.
type Detector struct{}

// NewDetector initializes a Detector.
func NewDetector() *Detector { return &Detector{} }

// Detect extracts the payload from src.
//
// Process:
//  1. Reduces the image to a single 8-bit luminance channel.
//  2. Collects the mean intensity of up to 256 complete 8x8 blocks in the
//     same row-major order the embedder uses.
//  3. Classifies each block against the median of the collected means; a
//     mean above the median reads as bit 1. Missing blocks read as bit 0.
//  4. Reassembles the 32-byte payload and parses the identifiers.
//
// Confidence is the fraction of the 256 decoded bits that agree with the
// majority bit value: a self-consistency score over the block population,
// not a match against any known payload. Found reports a non-empty device
// identifier with confidence above 0.5. The payload carries no checksum, so
// a statistically skewed block population can produce a false positive.
//
// Detect never fails: every input, however degenerate, produces a Result.
func (d *Detector) Detect(ctx context.Context, src image.Image) Result {
	bits := stego.Extract(gray.FromImage(src), MarkBits)
	payload := PayloadFromBits(bits)
	confidence := stego.Confidence(bits)
	deviceID := payload.DeviceID()
	return Result{
		Found:      deviceID != "" && confidence > 0.5,
		DeviceID:   deviceID,
		SessionID:  payload.SessionID(),
		Confidence: confidence,
		Payload:    payload.Hex(),
	}
}
