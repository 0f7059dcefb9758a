// Package link implements a synchronous teleprinter circuit over any
// byte stream: enciphered 5-bit symbol traffic packed into fixed-size
// frames, with NULL fill keeping the line busy when no messages are
// queued. This is traffic-flow security: an observer cannot tell fill
// from traffic without the key.
//
// Both ends of a circuit hold Ciphers keyed with the same
// cryptovariable and stay bit-synchronized by deciphering every symbol
// in arrival order. An explicit RESTART frame coordinates rekeying.
//
// Optionally, each traffic frame can be transmitted as a Reed-Solomon
// shard group (see the fec subpackage) to survive corruption on lossy
// circuits.
package link
