package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in declaration
// order and map keys sorted, so equal values always hash alike.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return Hash(data), nil
}

// hashKey builds "prefix:digest" from the JSON encoding of parts. Parts must
// be JSON-encodable.
func hashKey(prefix string, parts ...any) string {
	digest, err := HashJSON(parts)
	if err != nil {
		panic(fmt.Sprintf("cache: unhashable key parts for %s: %v", prefix, err))
	}
	return prefix + ":" + digest
}
