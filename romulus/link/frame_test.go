package link

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	frames := []Frame{
		{Type: FrameTraffic, Payload: []byte{0x01, 0x1F, 0x00}},
		{Type: FrameRestart},
		{Type: FrameShard, Payload: bytes.Repeat([]byte{0xAB}, 100)},
		{Type: FrameClose},
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	// Back-to-back reads from the same stream must not over-read.
	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Fatalf("frame %d mismatch: %+v", i, got)
		}
	}
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Fatalf("expected EOF after last frame, got %v", err)
	}
}

func TestWriteFrameRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Type: 0}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if err := WriteFrame(&buf, Frame{Type: FrameTraffic, Payload: make([]byte, MaxFramePayload+1)}); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	raw := []byte{byte(FrameTraffic), 0xFF, 0xFF, 0xFF, 0xFF}
	if _, err := ReadFrame(bytes.NewReader(raw)); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	cases := map[FrameType]string{
		FrameTraffic: "TRAFFIC",
		FrameShard:   "SHARD",
		FrameRestart: "RESTART",
		FrameClose:   "CLOSE",
		FrameType(9): "UNKNOWN",
	}
	for ft, want := range cases {
		if got := ft.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", ft, got, want)
		}
	}
}
