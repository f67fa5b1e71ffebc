// Package hash derives short, stable IDs for stored records.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IDLength is the number of hex characters in a truncated ID.
const IDLength = 16

// TruncatedSHA256 returns the first IDLength hex characters of the SHA-256 of data.
func TruncatedSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:IDLength]
}

// ID joins parts with ":" and hashes the result, so ("a", "b:c") and
// ("a:b", "c") collide only if the caller puts separators in parts.
func ID(parts ...string) string {
	return TruncatedSHA256(strings.Join(parts, ":"))
}
