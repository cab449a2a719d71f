package correlation

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// MaxReferenceIDLength is the gateway's refId limit.
const MaxReferenceIDLength = 20

// IDGenerator produces reference IDs; swapped in tests to force collisions.
type IDGenerator func(now time.Time) (string, error)

// NewReferenceID joins a base36 millisecond timestamp with random hex and
// truncates to MaxReferenceIDLength.
func NewReferenceID(now time.Time) (string, error) {
	ts := strconv.FormatInt(now.UnixMilli(), 36)

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	id := ts + hex.EncodeToString(randomBytes)
	if len(id) > MaxReferenceIDLength {
		id = id[:MaxReferenceIDLength]
	}
	return id, nil
}
