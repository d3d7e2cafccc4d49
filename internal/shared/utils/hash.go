package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// HashAlgorithm represents the hashing algorithm to use
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha256"
)

// Hasher computes content checksums
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a new hasher with the specified algorithm
func NewHasher(algorithm HashAlgorithm) *Hasher {
	return &Hasher{algorithm: algorithm}
}

// DefaultHasher returns a hasher with the default algorithm
func DefaultHasher() *Hasher {
	return NewHasher(SHA256)
}

// Algorithm returns the algorithm name
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

func (h *Hasher) new() hash.Hash {
	switch h.algorithm {
	case SHA256:
		return sha256.New()
	default:
		return sha256.New()
	}
}

// Hash returns the hex digest of data
func (h *Hasher) Hash(data []byte) string {
	d := h.new()
	d.Write(data)
	return hex.EncodeToString(d.Sum(nil))
}

// HashReader returns the hex digest of everything read from r
func (h *Hasher) HashReader(r io.Reader) (string, error) {
	d := h.new()
	if _, err := io.Copy(d, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// Short returns the first 12 characters of a digest for display
func Short(digest string) string {
	if len(digest) < 12 {
		return digest
	}
	return digest[:12]
}
