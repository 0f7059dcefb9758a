package fec

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/klauspost/reedsolomon"
)

var (
	ErrTooManyLost   = errors.New("fec: too many shards lost, cannot recover")
	ErrInvalidConfig = errors.New("fec: invalid data/parity configuration")
)

// Codec protects payloads with Reed-Solomon coding: up to parityShards
// of every shard group may be lost or damaged.
type Codec struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewCodec creates a codec with the given data/parity split.
func NewCodec(dataShards, parityShards int) (*Codec, error) {
	if dataShards <= 0 || parityShards <= 0 {
		return nil, ErrInvalidConfig
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Codec{
		enc:          enc,
		dataShards:   dataShards,
		parityShards: parityShards,
	}, nil
}

// DataShards returns the number of data shards per group.
func (c *Codec) DataShards() int { return c.dataShards }

// ParityShards returns the number of parity shards per group.
func (c *Codec) ParityShards() int { return c.parityShards }

// TotalShards returns the group size (data + parity).
func (c *Codec) TotalShards() int { return c.dataShards + c.parityShards }

// Protect splits a payload into data shards (padding the last one) and
// computes the parity shards. The returned slice has TotalShards
// elements of equal length.
func (c *Codec) Protect(payload []byte) ([][]byte, error) {
	shards, err := c.enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// Recover reconstructs the original payload of the given size from a
// shard group. Lost or damaged shards must be set to nil; recovery
// fails with ErrTooManyLost when more than ParityShards are missing.
func (c *Codec) Recover(shards [][]byte, size int) ([]byte, error) {
	if err := c.enc.ReconstructData(shards); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return nil, ErrTooManyLost
		}
		return nil, err
	}

	payload := make([]byte, 0, size)
	for i := 0; i < c.dataShards && len(payload) < size; i++ {
		remaining := size - len(payload)
		if remaining >= len(shards[i]) {
			payload = append(payload, shards[i]...)
		} else {
			payload = append(payload, shards[i][:remaining]...)
		}
	}
	return payload, nil
}

// Checksum stamps a shard with a truncated SHA-256 digest. It detects
// transmission damage, not tampering.
func Checksum(shard []byte) uint32 {
	sum := sha256.Sum256(shard)
	return binary.BigEndian.Uint32(sum[:4])
}
