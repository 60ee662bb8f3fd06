package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewHex returns 2*n lowercase hex characters drawn from crypto/rand.
func NewHex(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// New returns a canonical UUID string used as a row primary key.
func New() string { return uuid.NewString() }
