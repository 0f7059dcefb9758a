package link

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/romulus-crypto/romulus/romulus"
	"github.com/romulus-crypto/romulus/romulus/baudot"
	"github.com/romulus-crypto/romulus/romulus/link/fec"
)

// DefaultFrameSymbols is the number of 5-bit symbols carried per
// traffic frame. Short messages are padded with enciphered NULL fill,
// so every traffic frame on the circuit has the same size.
const DefaultFrameSymbols = 64

// shardHeaderSize is the per-shard header: index, group size, 4-byte
// payload size, 4-byte checksum. The checksum covers the header fields
// and the shard body, so header corruption is detected too.
const shardHeaderSize = 10

var (
	ErrSymbolRange = errors.New("link: symbol out of range")
	ErrShardGroup  = errors.New("link: malformed shard group")
)

// FrameTap observes every frame a Sender transmits, e.g. for traffic
// capture (see the tape package).
type FrameTap interface {
	Record(Frame) error
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithFrameSymbols sets the traffic frame size in symbols.
func WithFrameSymbols(n int) SenderOption {
	return func(s *Sender) {
		if n > 0 && n <= MaxFramePayload {
			s.frameSymbols = n
		}
	}
}

// WithFEC transmits each traffic frame as a Reed-Solomon shard group.
// Shard groups are limited to 255 shards.
func WithFEC(codec *fec.Codec) SenderOption {
	return func(s *Sender) { s.codec = codec }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(log zerolog.Logger) SenderOption {
	return func(s *Sender) { s.log = log }
}

// WithTap attaches a frame tap.
func WithTap(tap FrameTap) SenderOption {
	return func(s *Sender) { s.tap = tap }
}

// Sender drives the transmit side of a synchronous circuit. It owns
// the transmit Cipher and the line's encode shift state; not safe for
// concurrent use.
type Sender struct {
	cipher       *romulus.Cipher
	w            io.Writer
	enc          baudot.Encoder
	frameSymbols int
	codec        *fec.Codec
	tap          FrameTap
	log          zerolog.Logger
}

// NewSender creates a sender transmitting frames to w, enciphering with
// cipher. The cipher must be keyed with the same cryptovariable as the
// far end's receiver, both at position 0.
func NewSender(cipher *romulus.Cipher, w io.Writer, opts ...SenderOption) *Sender {
	s := &Sender{
		cipher:       cipher,
		w:            w,
		frameSymbols: DefaultFrameSymbols,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendText encodes text to ITA2 symbols and transmits it. The encode
// shift state persists across messages, matching the receiving end's
// decoder.
func (s *Sender) SendText(text string) error {
	return s.SendSymbols(s.enc.Encode(text))
}

// SendSymbols enciphers and transmits symbol codes, packed into
// fixed-size traffic frames padded with NULL fill.
func (s *Sender) SendSymbols(symbols []byte) error {
	for _, sym := range symbols {
		if sym > baudot.MaxSymbol {
			return fmt.Errorf("%w: %d", ErrSymbolRange, sym)
		}
	}

	if len(symbols) == 0 {
		return nil
	}
	for start := 0; start < len(symbols); start += s.frameSymbols {
		end := start + s.frameSymbols
		if end > len(symbols) {
			end = len(symbols)
		}
		frame := make([]byte, s.frameSymbols)
		copy(frame, symbols[start:end])
		if err := s.sendTraffic(frame); err != nil {
			return err
		}
	}
	s.log.Debug().Int("symbols", len(symbols)).Msg("traffic transmitted")
	return nil
}

// SendFill transmits one full frame of enciphered NULL fill. A circuit
// under traffic-flow security never idles: the sender emits fill
// whenever no traffic is queued, and an observer cannot distinguish it
// from traffic.
func (s *Sender) SendFill() error {
	s.log.Debug().Msg("fill transmitted")
	return s.sendTraffic(make([]byte, s.frameSymbols))
}

// Restart rekeys the transmit cipher from a new cryptovariable and
// tells the far end to do the same. The new material must reach the far
// end out of band.
func (s *Sender) Restart(cv []byte) error {
	if err := s.cipher.Reset(cv); err != nil {
		return err
	}
	s.enc.Reset()
	s.log.Info().Msg("circuit restart transmitted")
	return s.writeFrame(Frame{Type: FrameRestart})
}

// Close terminates the circuit.
func (s *Sender) Close() error {
	return s.writeFrame(Frame{Type: FrameClose})
}

func (s *Sender) sendTraffic(plain []byte) error {
	payload := s.cipher.Encrypt(plain)
	if s.codec == nil {
		return s.writeFrame(Frame{Type: FrameTraffic, Payload: payload})
	}

	shards, err := s.codec.Protect(payload)
	if err != nil {
		return err
	}
	if len(shards) > 255 {
		return fmt.Errorf("%w: %d shards", ErrShardGroup, len(shards))
	}
	for i, shard := range shards {
		buf := make([]byte, shardHeaderSize+len(shard))
		buf[0] = byte(i)
		buf[1] = byte(len(shards))
		binary.BigEndian.PutUint32(buf[2:6], uint32(len(payload)))
		copy(buf[shardHeaderSize:], shard)
		binary.BigEndian.PutUint32(buf[6:10], shardChecksum(buf))
		if err := s.writeFrame(Frame{Type: FrameShard, Payload: buf}); err != nil {
			return err
		}
	}
	return nil
}

// shardChecksum covers a shard frame's header fields and body,
// everything except the checksum field itself.
func shardChecksum(frame []byte) uint32 {
	buf := make([]byte, 0, len(frame)-4)
	buf = append(buf, frame[:6]...)
	buf = append(buf, frame[shardHeaderSize:]...)
	return fec.Checksum(buf)
}

func (s *Sender) writeFrame(f Frame) error {
	if s.tap != nil {
		if err := s.tap.Record(f); err != nil {
			return err
		}
	}
	return WriteFrame(s.w, f)
}

// Message is one received circuit event.
type Message struct {
	Type FrameType
	// Text is the decoded traffic; empty for pure fill and for control
	// frames.
	Text string
}

// ReceiverOption configures a Receiver.
type ReceiverOption func(*Receiver)

// WithReceiverFEC must mirror the sender's WithFEC configuration.
func WithReceiverFEC(codec *fec.Codec) ReceiverOption {
	return func(r *Receiver) { r.codec = codec }
}

// WithReceiverLogger attaches a logger; the default is a no-op logger.
func WithReceiverLogger(log zerolog.Logger) ReceiverOption {
	return func(r *Receiver) { r.log = log }
}

// Receiver drives the receive side of a synchronous circuit. Every
// arriving symbol is deciphered in order, so the receive cipher stays
// bit-synchronized with the far end whether the symbols are traffic or
// fill. Not safe for concurrent use.
type Receiver struct {
	cipher *romulus.Cipher
	r      io.Reader
	dec    baudot.Decoder
	codec  *fec.Codec
	log    zerolog.Logger
}

// NewReceiver creates a receiver reading frames from r, deciphering
// with cipher.
func NewReceiver(cipher *romulus.Cipher, r io.Reader, opts ...ReceiverOption) *Receiver {
	rx := &Receiver{
		cipher: cipher,
		r:      r,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rx)
	}
	return rx
}

// Next reads and processes one circuit event. Traffic frames are
// deciphered and decoded (fill decodes to an empty Text). On a RESTART
// the caller must call Reset with the new cryptovariable before reading
// further traffic.
func (rx *Receiver) Next() (Message, error) {
	f, err := ReadFrame(rx.r)
	if err != nil {
		return Message{}, err
	}

	switch f.Type {
	case FrameTraffic:
		return rx.deliver(f.Payload)
	case FrameShard:
		payload, err := rx.recoverShardGroup(f)
		if err != nil {
			return Message{}, err
		}
		return rx.deliver(payload)
	case FrameRestart:
		rx.log.Info().Msg("circuit restart received")
		return Message{Type: FrameRestart}, nil
	case FrameClose:
		return Message{Type: FrameClose}, nil
	default:
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidType, f.Type)
	}
}

// Reset rekeys the receive cipher after a RESTART.
func (rx *Receiver) Reset(cv []byte) error {
	if err := rx.cipher.Reset(cv); err != nil {
		return err
	}
	rx.dec.Reset()
	return nil
}

func (rx *Receiver) deliver(payload []byte) (Message, error) {
	plain := rx.cipher.Decrypt(payload)
	return Message{Type: FrameTraffic, Text: rx.dec.Decode(plain)}, nil
}

// recoverShardGroup reads the remaining shards of a group whose first
// shard is in f, discards damaged shards by checksum, and reconstructs
// the traffic payload.
func (rx *Receiver) recoverShardGroup(f Frame) ([]byte, error) {
	if rx.codec == nil {
		return nil, fmt.Errorf("%w: shard frame on a circuit without FEC", ErrShardGroup)
	}

	total := rx.codec.TotalShards()
	shards := make([][]byte, total)
	var size uint32
	damaged := 0

	place := func(payload []byte) error {
		if len(payload) < shardHeaderSize {
			return fmt.Errorf("%w: short shard frame", ErrShardGroup)
		}
		// A failed checksum invalidates the header fields along with the
		// body, so nothing from this shard may be trusted.
		if shardChecksum(payload) != binary.BigEndian.Uint32(payload[6:10]) {
			damaged++
			return nil // leave nil, reconstruction will recover it
		}
		idx := int(payload[0])
		if int(payload[1]) != total || idx >= total {
			return fmt.Errorf("%w: shard %d of %d, expected group of %d",
				ErrShardGroup, idx, payload[1], total)
		}
		if shards[idx] != nil {
			return fmt.Errorf("%w: duplicate shard %d", ErrShardGroup, idx)
		}
		size = binary.BigEndian.Uint32(payload[2:6])
		shards[idx] = payload[shardHeaderSize:]
		return nil
	}

	if err := place(f.Payload); err != nil {
		return nil, err
	}
	for i := 1; i < total; i++ {
		next, err := ReadFrame(rx.r)
		if err != nil {
			return nil, err
		}
		if next.Type != FrameShard {
			return nil, fmt.Errorf("%w: %s frame inside shard group", ErrShardGroup, next.Type)
		}
		if err := place(next.Payload); err != nil {
			return nil, err
		}
	}

	if damaged > 0 {
		rx.log.Warn().Int("damaged", damaged).Msg("recovering damaged shards")
	}
	return rx.codec.Recover(shards, int(size))
}
