package screenmark

// Result is the outcome of a single detection pass. A fresh value is
// produced per Detect call; nothing is persisted inside the core.
type Result struct {
	// Found reports whether a watermark was considered present: a non-empty
	// decoded device identifier with confidence above 0.5.
	Found bool `json:"found"`
	// DeviceID and SessionID are the identifiers parsed from the decoded
	// payload, empty when nothing legible was recovered.
	DeviceID  string `json:"device_id"`
	SessionID string `json:"session_id"`
	// Confidence is the fraction of decoded bits agreeing with the majority
	// bit value, in [0, 1]. It measures how unanimous the block population
	// is, which is high both for a strong watermark and for a blank image.
	Confidence float64 `json:"confidence"`
	// Payload is the hexadecimal encoding of the raw 32 decoded bytes.
	Payload string `json:"payload"`
}
