package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a filesystem-safe identifier for a user ID. The OAuth
// subject can contain characters that are awkward in object keys, so storage
// paths always use this digest instead. Truncated to 32 hex chars to keep
// keys readable.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:32]
}
