package bench_test

import (
	"context"
	"image"
	"testing"

	"github.com/screenmark/screenmark"
)

func newFHDFrame() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 1920, 1080))
	for y := 0; y < 1080; y++ {
		for x := 0; x < 1920; x++ {
			img.Pix[y*img.Stride+x] = uint8((x + y) % 256)
		}
	}
	return img
}

// BenchmarkEmbed_FHD measures a full embed pass over a 1920x1080 frame.
func BenchmarkEmbed_FHD(b *testing.B) {
	ctx := context.Background()
	img := newFHDFrame()
	e := screenmark.NewEmbedder("DEVICE-001", "SESSION-001")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Embed(ctx, img)
	}
}

// BenchmarkDetect_FHD measures a full detect pass over a watermarked
// 1920x1080 frame.
func BenchmarkDetect_FHD(b *testing.B) {
	ctx := context.Background()
	img := screenmark.Embed(ctx, newFHDFrame(), "DEVICE-001", "SESSION-001")
	d := screenmark.NewDetector()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Detect(ctx, img)
	}
}
