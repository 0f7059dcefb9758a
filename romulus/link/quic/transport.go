// Package quic carries circuit frames over a QUIC stream. The QUIC
// layer is transport, not confidentiality: the symbol traffic inside is
// already enciphered and stays enciphered end to end.
//
// A teleprinter circuit is a single full-duplex line, so each QUIC
// connection carries exactly one bidirectional stream. AcceptCircuit
// and DialCircuit hand back that stream as a Circuit, ready to attach
// to a link.Sender or link.Receiver.
package quic

import (
	"context"
	"net"

	q "github.com/quic-go/quic-go"
)

// Circuit is one established teleprinter circuit: a single
// bidirectional stream over its own QUIC connection. It satisfies
// io.ReadWriteCloser, which is all the link layer needs.
type Circuit struct {
	conn   *q.Conn
	stream *q.Stream
}

func (c *Circuit) Read(p []byte) (int, error)  { return c.stream.Read(p) }
func (c *Circuit) Write(p []byte) (int, error) { return c.stream.Write(p) }

// RemoteAddr returns the far end's address.
func (c *Circuit) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// Close tears down the circuit, stream and connection both.
func (c *Circuit) Close() error {
	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "circuit closed")
}

// Listener accepts incoming circuits.
type Listener struct {
	inner *q.Listener
}

func Listen(addr string) (*Listener, error) {
	tlsConf, err := NewServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// AcceptCircuit waits for the next connection and its circuit stream.
// The stream is opened by the dialing end, so this blocks until the far
// end transmits its first frame.
func (l *Listener) AcceptCircuit(ctx context.Context) (*Circuit, error) {
	conn, err := l.inner.Accept(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "no circuit stream")
		return nil, err
	}
	return &Circuit{conn: conn, stream: stream}, nil
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) Close() error { return l.inner.Close() }

// DialCircuit connects to a listening endpoint and opens the circuit
// stream.
func DialCircuit(ctx context.Context, addr string) (*Circuit, error) {
	tlsConf, err := NewClientTLSConfig()
	if err != nil {
		return nil, err
	}
	conn, err := q.DialAddr(ctx, addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "no circuit stream")
		return nil, err
	}
	return &Circuit{conn: conn, stream: stream}, nil
}
