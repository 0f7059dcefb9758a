package link

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type FrameType uint8

const (
	// FrameTraffic carries enciphered symbols, one per payload byte.
	FrameTraffic FrameType = 1
	// FrameShard carries one Reed-Solomon shard of a traffic payload.
	FrameShard FrameType = 2
	// FrameRestart tells the far end to reload its cryptovariable and
	// rewind to keystream position 0.
	FrameRestart FrameType = 3
	// FrameClose terminates the circuit.
	FrameClose FrameType = 4
)

func (t FrameType) String() string {
	switch t {
	case FrameTraffic:
		return "TRAFFIC"
	case FrameShard:
		return "SHARD"
	case FrameRestart:
		return "RESTART"
	case FrameClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// MaxFramePayload limits a single circuit frame payload.
const MaxFramePayload = 1 << 16

var (
	ErrFrameTooLarge = errors.New("link: frame payload too large")
	ErrInvalidType   = errors.New("link: invalid frame type")
)

// Frame is the wire container.
// Format:
//
//	1 byte: type
//	4 bytes: payload length (big endian)
//	N bytes: payload
//
// Frames are read back-to-back from the same stream, so reads never
// buffer past the frame boundary.
type Frame struct {
	Type    FrameType
	Payload []byte
}

func WriteFrame(w io.Writer, f Frame) error {
	if f.Type == 0 {
		return ErrInvalidType
	}
	if len(f.Payload) > MaxFramePayload {
		return ErrFrameTooLarge
	}

	buf := make([]byte, 5+len(f.Payload))
	buf[0] = byte(f.Type)
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(f.Payload)))
	copy(buf[5:], f.Payload)
	_, err := w.Write(buf)
	return err
}

func ReadFrame(r io.Reader) (Frame, error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, err
	}
	t := FrameType(header[0])
	if t == 0 {
		return Frame{}, ErrInvalidType
	}
	payloadLen := binary.BigEndian.Uint32(header[1:5])
	if payloadLen > MaxFramePayload {
		return Frame{}, fmt.Errorf("%w: %d", ErrFrameTooLarge, payloadLen)
	}
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, err
		}
	}
	return Frame{Type: t, Payload: payload}, nil
}
