package cryptovar

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"github.com/romulus-crypto/romulus/romulus/keystream"
)

const (
	// MinSize is the minimum cryptovariable length: 11 bytes cover the
	// 31+29+23 = 83 bits of register state.
	MinSize = 11

	// RecommendedSize gives headroom over the minimum.
	RecommendedSize = 16
)

var (
	// ErrInsufficientKeyMaterial is returned when a cryptovariable is
	// shorter than MinSize. Short material is never padded or truncated.
	ErrInsufficientKeyMaterial = errors.New("cryptovar: insufficient key material")
)

// States holds the three derived register initial states.
type States struct {
	A uint32 // 31 bits
	B uint32 // 29 bits
	C uint32 // 23 bits
}

// DeriveStates maps a cryptovariable buffer onto the three register
// initial states. The layout is fixed and big-endian:
//
//	A: bytes [0,4) as a big-endian uint32, masked to 31 bits
//	B: bytes [4,8) as a big-endian uint32, masked to 29 bits
//	C: bytes [8,11) assembled byte8<<16 | byte9<<8 | byte10, masked to 23 bits
//
// Any byte ordering change breaks cross-implementation interoperability.
func DeriveStates(cv []byte) (States, error) {
	if len(cv) < MinSize {
		return States{}, ErrInsufficientKeyMaterial
	}
	return States{
		A: binary.BigEndian.Uint32(cv[0:4]) & (1<<keystream.LengthA - 1),
		B: binary.BigEndian.Uint32(cv[4:8]) & (1<<keystream.LengthB - 1),
		C: (uint32(cv[8])<<16 | uint32(cv[9])<<8 | uint32(cv[10])) & (1<<keystream.LengthC - 1),
	}, nil
}

// Generate produces a fresh random cryptovariable of RecommendedSize
// bytes from the system entropy source. An entropy failure is fatal to
// key generation; there is no retry.
func Generate() ([]byte, error) {
	cv := make([]byte, RecommendedSize)
	if _, err := io.ReadFull(rand.Reader, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

// TestStates returns the fixed test-vector register states. These are
// published constants with no secrecy whatsoever: they exist for
// development and interoperability fixtures only, never for operational
// key handling.
func TestStates() States {
	return States{
		A: 0x5A5A5A5A,
		B: 0x12345678,
		C: 0x00ABCDEF,
	}
}
