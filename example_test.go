package screenmark_test

import (
	"context"
	"fmt"
	"image"

	"github.com/screenmark/screenmark"
)

func Example_watermark() {
	// Flat mid-gray frame standing in for a rendered screen. 128x128 pixels
	// give the 256 blocks a full payload needs.
	img := image.NewGray(image.Rect(0, 0, 128, 128))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	ctx := context.Background()

	// Embed the device/session payload
	marked := screenmark.Embed(ctx, img, "DEVICE-001", "SESSION-001")

	// Recover it from the (re-captured) frame
	result := screenmark.Detect(ctx, marked)

	fmt.Println("found:", result.Found)
	fmt.Println("device:", result.DeviceID)
	fmt.Println("session:", result.SessionID)

	// Output:
	// found: true
	// device: DEVICE-001
	// session: SESSION-001
}
