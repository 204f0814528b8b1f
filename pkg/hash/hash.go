package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns a 12-character hash prefix, enough for log correlation
// and rate-limit keying without storing the raw value.
func ShortHash(input string) string {
	return SHA256Hex(input)[:12]
}
