package tape

import (
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/romulus-crypto/romulus/romulus/link"
)

var ErrRecorderClosed = errors.New("tape: recorder closed")

// Recorder writes circuit frames to an LZ4-compressed capture. It
// implements link.FrameTap, so it can be attached to a Sender with
// link.WithTap.
type Recorder struct {
	lzw    *lz4.Writer
	closed bool
}

// NewRecorder creates a recorder writing a compressed capture to w.
func NewRecorder(w io.Writer) *Recorder {
	lzw := lz4.NewWriter(w)
	_ = lzw.Apply(lz4.CompressionLevelOption(lz4.Fast))
	return &Recorder{lzw: lzw}
}

// Record appends one frame to the capture.
func (r *Recorder) Record(f link.Frame) error {
	if r.closed {
		return ErrRecorderClosed
	}
	return link.WriteFrame(r.lzw, f)
}

// Close flushes the compressed stream. The recorder cannot be used
// afterwards.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.lzw.Close()
}

// Replay reads a capture back into the recorded frames.
func Replay(r io.Reader) ([]link.Frame, error) {
	lzr := lz4.NewReader(r)
	var frames []link.Frame
	for {
		f, err := link.ReadFrame(lzr)
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}
