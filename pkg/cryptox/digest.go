package cryptox

import (
	"crypto/md5" //nolint:gosec // wire format of the remote API, not a security boundary
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// MD5Hex returns the lowercase hex MD5 digest of s. The remote API signs
// every request with it, so the exact encoding matters for interoperability.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Loggers use it so a token can be correlated across records without the
// token itself ever being written out.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
