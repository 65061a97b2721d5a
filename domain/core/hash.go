package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Hash represents a content hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// HashRecords hashes string-keyed records independent of map iteration order
func HashRecords(records []map[string]string) Hash {
	hasher := sha256.New()
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			hasher.Write([]byte(k))
			hasher.Write([]byte{0})
			hasher.Write([]byte(rec[k]))
			hasher.Write([]byte{0})
		}
		hasher.Write([]byte{'\n'})
	}
	return Hash(hex.EncodeToString(hasher.Sum(nil)))
}
