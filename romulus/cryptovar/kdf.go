package cryptovar

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// FromPassphrase stretches an operator passphrase into a
// RecommendedSize-byte cryptovariable using HKDF-SHA256. The salt binds
// the derivation to a circuit or key period; the same passphrase and
// salt always yield the same cryptovariable, so both ends of a circuit
// can derive matching key material.
//
// This is a convenience for exercises and testing. Operationally,
// randomly generated material (Generate) is preferred.
func FromPassphrase(passphrase, salt string) ([]byte, error) {
	hk := hkdf.New(sha256.New, []byte(passphrase), []byte(salt), []byte("romulus-cryptovariable"))
	cv := make([]byte, RecommendedSize)
	if _, err := io.ReadFull(hk, cv); err != nil {
		return nil, err
	}
	return cv, nil
}
