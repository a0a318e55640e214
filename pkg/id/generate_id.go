package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Short returns the first n hex characters of a fresh ID32, n clamped to [1,32].
func Short(n int) string {
	switch {
	case n < 1:
		n = 1
	case n > 32:
		n = 32
	}
	return NewID32()[:n]
}
