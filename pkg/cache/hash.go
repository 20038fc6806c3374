package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "kind:" followed by the SHA-256 of the JSON-encoded
// parts. Struct parts hash by field values, so adding a field to
// ParseKeyOpts changes every parse key.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Parts are strings and plain structs; this cannot fail.
		panic("cache: unhashable key part: " + err.Error())
	}
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
