package systemid

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Confidence classifies how stable an [ID] is expected to be.
//
// It is a hint for fallback ordering only: prefer high over low when both
// are available, and do not infer anything stronger from it.
type Confidence int

const (
	// ConfidenceLow marks values known to change across boots, updates or
	// hardware swaps, or whose generation is platform-dependent.
	ConfidenceLow Confidence = iota
	// ConfidenceHigh marks values expected to stay the same for the lifetime
	// of an OS installation.
	ConfidenceHigh
)

// String returns "high" or "low".
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceLow:
		return "low"
	default:
		return fmt.Sprintf("Confidence(%d)", int(c))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (c Confidence) MarshalText() ([]byte, error) {
	switch c {
	case ConfidenceHigh, ConfidenceLow:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("invalid confidence %d", int(c))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Confidence) UnmarshalText(text []byte) error {
	switch string(text) {
	case "high":
		*c = ConfidenceHigh
	case "low":
		*c = ConfidenceLow
	default:
		return fmt.Errorf("invalid confidence %q", text)
	}

	return nil
}

// ID is an opaque machine identifier plus the confidence of the source it
// was read from. The zero value is not a valid identifier; a resolved ID
// always holds at least one byte and is never mutated after construction.
type ID struct {
	value      []byte
	confidence Confidence
}

// Bytes returns a copy of the identifier bytes.
func (id ID) Bytes() []byte {
	return bytes.Clone(id.value)
}

// Len returns the number of identifier bytes.
func (id ID) Len() int {
	return len(id.value)
}

// Confidence returns the confidence classification of the source.
func (id ID) Confidence() Confidence {
	return id.confidence
}

// HighConfidence reports whether the identifier came from a source expected
// to be stable for the lifetime of the OS installation.
func (id ID) HighConfidence() bool {
	return id.confidence == ConfidenceHigh
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return len(id.value) == 0
}

// Equal reports whether both identifiers hold the same bytes and confidence.
func (id ID) Equal(other ID) bool {
	return id.confidence == other.confidence && bytes.Equal(id.value, other.value)
}

// String returns the identifier bytes as lower-case hex.
func (id ID) String() string {
	return hex.EncodeToString(id.value)
}

func idFromUint32(v uint32, c Confidence) ID {
	return ID{value: binary.BigEndian.AppendUint32(nil, v), confidence: c}
}

func idFromUint64(v uint64, c Confidence) ID {
	return ID{value: binary.BigEndian.AppendUint64(nil, v), confidence: c}
}

func idFromUUID(u uuid.UUID, c Confidence) ID {
	return ID{value: bytes.Clone(u[:]), confidence: c}
}

func idFromBytes(b []byte, c Confidence) ID {
	return ID{value: bytes.Clone(b), confidence: c}
}

// idFromDigestOf is used for native values without a fixed byte layout.
func idFromDigestOf(s string, c Confidence) ID {
	sum := sha256.Sum224([]byte(s))

	return ID{value: sum[:], confidence: c}
}
