package wire

import (
	"encoding/json"
)

// Codec turns envelope values into frame payloads and back. Envelopes are
// flat JSON objects with string keys; values are strings, integers, booleans,
// or arrays of such objects.
type Codec struct {
	cipher *Cipher
}

func NewCodec(cipher *Cipher) *Codec {
	return &Codec{cipher: cipher}
}

// Encode marshals v to JSON and encrypts it. The server always emits the
// encrypted form; plaintext is accepted on decode only.
func (c *Codec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.cipher.Encrypt(raw), nil
}

// Decode recovers the plaintext JSON envelope from a frame payload. Legacy
// callers predate the encryption layer, so raw bytes that already parse as a
// JSON object are accepted as-is; everything else is decrypted first. A
// payload that fails both interpretations is a ProtocolError.
func (c *Codec) Decode(payload []byte) ([]byte, error) {
	if isJSONObject(payload) {
		return payload, nil
	}
	plain := c.cipher.Decrypt(payload)
	if isJSONObject(plain) {
		return plain, nil
	}
	return nil, &ProtocolError{Reason: "payload is neither plaintext nor decryptable JSON"}
}

func isJSONObject(b []byte) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal(b, &m) == nil && m != nil
}
