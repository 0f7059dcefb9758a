package link

import (
	"bytes"
	"errors"
	"testing"

	"github.com/romulus-crypto/romulus/romulus"
	"github.com/romulus-crypto/romulus/romulus/link/fec"
)

func testKey(fill byte) []byte {
	cv := make([]byte, 16)
	for i := range cv {
		cv[i] = fill + byte(i)
	}
	return cv
}

func newCircuit(t *testing.T, buf *bytes.Buffer, sOpts []SenderOption, rOpts []ReceiverOption) (*Sender, *Receiver) {
	t.Helper()
	cv := testKey(0x20)
	tx, err := romulus.New(cv)
	if err != nil {
		t.Fatalf("New sender cipher: %v", err)
	}
	rxCipher, err := romulus.New(cv)
	if err != nil {
		t.Fatalf("New receiver cipher: %v", err)
	}
	return NewSender(tx, buf, sOpts...), NewReceiver(rxCipher, buf, rOpts...)
}

func TestCircuitRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tx, rx := newCircuit(t, &buf, nil, nil)

	messages := []string{"HELLO WORLD", "ATTACK AT 0600!", "ACKNOWLEDGED"}
	for _, msg := range messages {
		if err := tx.SendText(msg); err != nil {
			t.Fatalf("SendText: %v", err)
		}
	}

	for _, want := range messages {
		got, err := rx.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got.Type != FrameTraffic || got.Text != want {
			t.Fatalf("received %+v, want %q", got, want)
		}
	}
}

func TestCircuitFillKeepsSynchronization(t *testing.T) {
	var buf bytes.Buffer
	tx, rx := newCircuit(t, &buf, nil, nil)

	// Fill between messages: the receiver must decipher it to stay
	// bit-synchronized, and it must decode to nothing.
	if err := tx.SendText("FIRST"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := tx.SendFill(); err != nil {
			t.Fatalf("SendFill: %v", err)
		}
	}
	if err := tx.SendText("SECOND"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	var texts []string
	for i := 0; i < 7; i++ {
		msg, err := rx.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if msg.Text != "" {
			texts = append(texts, msg.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "FIRST" || texts[1] != "SECOND" {
		t.Fatalf("traffic after fill: %v", texts)
	}
}

func TestCircuitLongMessageSpansFrames(t *testing.T) {
	var buf bytes.Buffer
	tx, rx := newCircuit(t, &buf,
		[]SenderOption{WithFrameSymbols(8)}, nil)

	// Figures span a frame boundary; the line shift state must carry
	// across frames.
	const msg = "REPORT 123456789 READY"
	if err := tx.SendText(msg); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	var got string
	for buf.Len() > 0 {
		m, err := rx.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got += m.Text
	}
	if got != msg {
		t.Fatalf("reassembled %q, want %q", got, msg)
	}
}

func TestCircuitRejectsOutOfRangeSymbols(t *testing.T) {
	var buf bytes.Buffer
	tx, _ := newCircuit(t, &buf, nil, nil)
	if err := tx.SendSymbols([]byte{0x01, 0x20}); !errors.Is(err, ErrSymbolRange) {
		t.Fatalf("expected ErrSymbolRange, got %v", err)
	}
}

func TestCircuitRestart(t *testing.T) {
	var buf bytes.Buffer
	tx, rx := newCircuit(t, &buf, nil, nil)

	if err := tx.SendText("BEFORE REKEY"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	newKey := testKey(0x77)
	if err := tx.Restart(newKey); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if err := tx.SendText("AFTER REKEY"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	msg, err := rx.Next()
	if err != nil || msg.Text != "BEFORE REKEY" {
		t.Fatalf("first message: %+v, %v", msg, err)
	}
	msg, err = rx.Next()
	if err != nil || msg.Type != FrameRestart {
		t.Fatalf("expected RESTART, got %+v, %v", msg, err)
	}
	if err := rx.Reset(newKey); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	msg, err = rx.Next()
	if err != nil || msg.Text != "AFTER REKEY" {
		t.Fatalf("post-rekey message: %+v, %v", msg, err)
	}
}

func TestCircuitRestartRejectsBadKeyMaterial(t *testing.T) {
	var buf bytes.Buffer
	tx, _ := newCircuit(t, &buf, nil, nil)
	if err := tx.Restart(make([]byte, 3)); err == nil {
		t.Fatalf("expected error for short key material")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed restart must not transmit a frame")
	}
}

func TestCircuitClose(t *testing.T) {
	var buf bytes.Buffer
	tx, rx := newCircuit(t, &buf, nil, nil)
	if err := tx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	msg, err := rx.Next()
	if err != nil || msg.Type != FrameClose {
		t.Fatalf("expected CLOSE, got %+v, %v", msg, err)
	}
}

func newFECCircuit(t *testing.T, buf *bytes.Buffer) (*Sender, *Receiver, *fec.Codec) {
	t.Helper()
	codec, err := fec.NewCodec(4, 2)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	tx, rx := newCircuit(t, buf,
		[]SenderOption{WithFEC(codec)},
		[]ReceiverOption{WithReceiverFEC(codec)})
	return tx, rx, codec
}

func TestCircuitFECRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tx, rx, _ := newFECCircuit(t, &buf)

	if err := tx.SendText("PROTECTED TRAFFIC"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	msg, err := rx.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if msg.Text != "PROTECTED TRAFFIC" {
		t.Fatalf("received %q", msg.Text)
	}
}

func TestCircuitFECRecoversDamagedShards(t *testing.T) {
	var buf bytes.Buffer
	tx, _, codec := newFECCircuit(t, &buf)

	if err := tx.SendText("NOISY CIRCUIT"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	// Reparse the transmitted shard frames and damage two shard bodies
	// (the parity budget) before handing them to the receiver.
	var frames []Frame
	for buf.Len() > 0 {
		f, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		frames = append(frames, f)
	}
	if len(frames) != codec.TotalShards() {
		t.Fatalf("expected %d shard frames, got %d", codec.TotalShards(), len(frames))
	}
	frames[1].Payload[shardHeaderSize] ^= 0xFF
	frames[4].Payload[len(frames[4].Payload)-1] ^= 0x55

	var relay bytes.Buffer
	for _, f := range frames {
		if err := WriteFrame(&relay, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	rxCipher, err := romulus.New(testKey(0x20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rx := NewReceiver(rxCipher, &relay, WithReceiverFEC(codec))

	msg, err := rx.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if msg.Text != "NOISY CIRCUIT" {
		t.Fatalf("recovered %q", msg.Text)
	}
}

func TestCircuitFECRecoversDamagedHeaders(t *testing.T) {
	var buf bytes.Buffer
	tx, _, codec := newFECCircuit(t, &buf)

	if err := tx.SendText("GARBLED HEADERS"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	var frames []Frame
	for buf.Len() > 0 {
		f, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		frames = append(frames, f)
	}
	// Corrupt one shard's index byte and another's payload-size field.
	// Both headers must fail the checksum rather than misplace the shard
	// or poison the recovered payload size.
	frames[0].Payload[0] ^= 0xFF
	frames[3].Payload[2] ^= 0xFF

	var relay bytes.Buffer
	for _, f := range frames {
		if err := WriteFrame(&relay, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	rxCipher, err := romulus.New(testKey(0x20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rx := NewReceiver(rxCipher, &relay, WithReceiverFEC(codec))

	msg, err := rx.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if msg.Text != "GARBLED HEADERS" {
		t.Fatalf("recovered %q", msg.Text)
	}
}

func TestCircuitFECRejectsDuplicateShards(t *testing.T) {
	var buf bytes.Buffer
	tx, _, codec := newFECCircuit(t, &buf)

	if err := tx.SendText("DUPLICATED"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	var frames []Frame
	for buf.Len() > 0 {
		f, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		frames = append(frames, f)
	}
	// A checksum-valid shard arriving twice is a framing fault, not
	// damage that parity can absorb.
	frames[2] = frames[1]

	var relay bytes.Buffer
	for _, f := range frames {
		if err := WriteFrame(&relay, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	rxCipher, err := romulus.New(testKey(0x20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rx := NewReceiver(rxCipher, &relay, WithReceiverFEC(codec))

	if _, err := rx.Next(); !errors.Is(err, ErrShardGroup) {
		t.Fatalf("expected ErrShardGroup, got %v", err)
	}
}

func TestCircuitFECTooMuchDamage(t *testing.T) {
	var buf bytes.Buffer
	tx, _, codec := newFECCircuit(t, &buf)

	if err := tx.SendText("LOST"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	var frames []Frame
	for buf.Len() > 0 {
		f, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		frames = append(frames, f)
	}
	// Damage one more shard than parity can absorb.
	for i := 0; i < 3; i++ {
		frames[i].Payload[shardHeaderSize] ^= 0xFF
	}

	var relay bytes.Buffer
	for _, f := range frames {
		if err := WriteFrame(&relay, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	rxCipher, err := romulus.New(testKey(0x20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rx := NewReceiver(rxCipher, &relay, WithReceiverFEC(codec))

	if _, err := rx.Next(); !errors.Is(err, fec.ErrTooManyLost) {
		t.Fatalf("expected ErrTooManyLost, got %v", err)
	}
}

func TestReceiverRejectsShardWithoutFEC(t *testing.T) {
	var relay bytes.Buffer
	payload := make([]byte, shardHeaderSize+4)
	if err := WriteFrame(&relay, Frame{Type: FrameShard, Payload: payload}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	rxCipher := romulus.NewTestVector()
	rx := NewReceiver(rxCipher, &relay)
	if _, err := rx.Next(); !errors.Is(err, ErrShardGroup) {
		t.Fatalf("expected ErrShardGroup, got %v", err)
	}
}
