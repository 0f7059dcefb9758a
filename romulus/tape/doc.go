// Package tape records and replays circuit traffic. A Recorder taps the
// frames a sender transmits and writes them to an LZ4-compressed
// capture stream; Replay reads a capture back into frames.
//
// Captures hold enciphered traffic only, so archiving them reveals
// nothing without the cryptovariable. Replaying a capture through a
// live receiver consumes its keystream like any other reception.
package tape
