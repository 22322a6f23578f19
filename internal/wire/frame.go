package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize bounds the declared payload length of a single frame. A header
// announcing more than this is treated as a protocol error rather than an
// allocation request.
const MaxFrameSize = 16 << 20

// WriteFrame writes a 4-byte big-endian length header followed by the payload.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return &ProtocolError{Reason: fmt.Sprintf("frame too large: %d bytes", len(payload))}
	}
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one length-prefixed frame, accumulating across short reads
// until exactly the declared number of payload bytes has arrived. io.EOF is
// returned unchanged when the peer closes before the first header byte.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &ProtocolError{Reason: "short frame header", Err: err}
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n > MaxFrameSize {
		return nil, &ProtocolError{Reason: fmt.Sprintf("declared frame length %d exceeds limit", n)}
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, &ProtocolError{Reason: "short frame payload", Err: err}
	}
	return payload, nil
}
