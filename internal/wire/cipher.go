package wire

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Cipher applies AES in CTR mode under a single pre-shared key and nonce that
// are fixed for the lifetime of the deployment.
//
// SECURITY: reusing one CTR nonce across every message is a real stream-cipher
// weakness. It is kept solely for byte compatibility with the legacy callers
// of this protocol; do not copy this scheme into new protocols.
type Cipher struct {
	block cipher.Block
	iv    [aes.BlockSize]byte
}

// NewCipher builds a Cipher from an AES key (16, 24, or 32 bytes) and a nonce
// of at most one block. The nonce is zero-padded on the right to form the
// initial counter block, matching the legacy wire layout.
func NewCipher(key, nonce []byte) (*Cipher, error) {
	if len(nonce) == 0 || len(nonce) > aes.BlockSize {
		return nil, fmt.Errorf("nonce must be 1..%d bytes, got %d", aes.BlockSize, len(nonce))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes key: %w", err)
	}
	c := &Cipher{block: block}
	copy(c.iv[:], nonce)
	return c, nil
}

// Encrypt returns the CTR keystream XOR of plaintext. Decrypt is the same
// operation; the two names exist for call-site clarity.
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	return c.xor(plaintext)
}

// Decrypt reverses Encrypt: Decrypt(Encrypt(m)) == m for any m.
func (c *Cipher) Decrypt(ciphertext []byte) []byte {
	return c.xor(ciphertext)
}

func (c *Cipher) xor(in []byte) []byte {
	out := make([]byte, len(in))
	iv := c.iv // fresh counter block per message, per the legacy scheme
	cipher.NewCTR(c.block, iv[:]).XORKeyStream(out, in)
	return out
}
