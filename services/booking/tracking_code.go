package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	trackingCodePrefix   = "TRK-"
	trackingCodeLength   = 6
	trackingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTrackingCode returns a fresh customer-facing code of the form
// TRK-XXXXXX. Uniqueness is enforced by the database; callers retry on
// collision.
func GenerateTrackingCode() (string, error) {
	buf := make([]byte, trackingCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)]
	}
	return trackingCodePrefix + string(buf), nil
}
