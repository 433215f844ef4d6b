package screenmark

// Option configures an Embedder.
type Option func(*Embedder)

// WithStrength sets the per-pixel intensity delta applied to each block.
// The default of 1.0 is visually imperceptible (PSNR > 40 dB); larger values
// survive noisier re-capture at the cost of visible block banding.
// Non-positive values are ignored and the current strength is kept.
func WithStrength(strength float64) Option {
	return func(e *Embedder) {
		if strength > 0 {
			e.strength = strength
		}
	}
}
