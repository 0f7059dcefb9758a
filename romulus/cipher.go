package romulus

import (
	"github.com/romulus-crypto/romulus/romulus/baudot"
	"github.com/romulus-crypto/romulus/romulus/cryptovar"
	"github.com/romulus-crypto/romulus/romulus/keystream"
)

// Cipher binds a keystream engine to cryptovariable loading and exposes
// encrypt/decrypt over 5-bit symbol codes. Encryption and decryption
// are the same operation (XOR is self-inverse); two Ciphers loaded with
// the same cryptovariable and kept position-synchronized are exact
// mirrors of each other.
//
// A Cipher exclusively owns its engine. It is not safe for concurrent
// use; concurrent sessions need one Cipher each.
type Cipher struct {
	engine *keystream.Engine
}

// New creates a Cipher keyed from the given cryptovariable. The buffer
// must be at least cryptovar.MinSize bytes; it is consumed during state
// derivation and not retained.
func New(cv []byte) (*Cipher, error) {
	st, err := cryptovar.DeriveStates(cv)
	if err != nil {
		return nil, err
	}
	return &Cipher{engine: keystream.NewEngine(st.A, st.B, st.C)}, nil
}

// NewTestVector creates a Cipher loaded with the fixed, published
// test-vector states. It exists for development and interoperability
// fixtures and must not carry operational traffic.
func NewTestVector() *Cipher {
	st := cryptovar.TestStates()
	return &Cipher{engine: keystream.NewEngine(st.A, st.B, st.C)}
}

// Encrypt XOR-masks each symbol with 5 fresh keystream bits, strictly
// in sequence: symbol i consumes the bits immediately after those used
// by symbols 0..i-1.
func (c *Cipher) Encrypt(symbols []byte) []byte {
	out := make([]byte, len(symbols))
	for i, s := range symbols {
		out[i] = s ^ byte(c.engine.NextBits(baudot.SymbolWidth))
	}
	return out
}

// Decrypt is byte-identical to Encrypt. It recovers the plaintext when
// this Cipher holds the same cryptovariable as the encrypting one and
// both started from position 0.
func (c *Cipher) Decrypt(symbols []byte) []byte {
	return c.Encrypt(symbols)
}

// EncryptText encodes text to ITA2 symbols and encrypts them.
func (c *Cipher) EncryptText(text string) []byte {
	return c.Encrypt(baudot.Encode(text))
}

// DecryptText decrypts symbols and decodes them back to text.
func (c *Cipher) DecryptText(symbols []byte) string {
	return baudot.Decode(c.Decrypt(symbols))
}

// Reset rekeys the Cipher from a new cryptovariable and rewinds the
// keystream position to 0. The load is all-or-nothing: on error the
// previous state is untouched.
func (c *Cipher) Reset(cv []byte) error {
	st, err := cryptovar.DeriveStates(cv)
	if err != nil {
		return err
	}
	c.engine.Reset(st.A, st.B, st.C)
	return nil
}

// ResetTestVector rewinds the Cipher onto the fixed test-vector states.
func (c *Cipher) ResetTestVector() {
	st := cryptovar.TestStates()
	c.engine.Reset(st.A, st.B, st.C)
}

// State returns a read-only diagnostic snapshot: the keystream position
// and the three register states. It never mutates the engine.
func (c *Cipher) State() keystream.Snapshot {
	return c.engine.Snapshot()
}
