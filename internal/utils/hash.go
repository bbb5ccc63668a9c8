package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns a stable hex id for the given parts. Used as a doc id when
// re-seeding must overwrite the same document.
func Hash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
