package mrpack

import (
	"crypto/sha1"
	"encoding/hex"
)

// SHA1Hex computes the SHA-1 digest of data as a lowercase hex string.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// VerifySHA1 reports whether data's SHA-1 matches expectedHex. Comparison
// need not be constant-time (spec.md §4.2: no secret material involved).
func VerifySHA1(data []byte, expectedHex string) bool {
	if expectedHex == "" {
		return true
	}
	return SHA1Hex(data) == expectedHex
}
