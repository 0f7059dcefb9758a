// Package fec provides Reed-Solomon forward error correction for
// circuit frames. Radio teleprinter circuits corrupt and drop bytes;
// transmitting each traffic payload as data+parity shards lets the
// receiving end discard damaged shards and reconstruct the payload
// without retransmission. A synchronous cipher cannot afford
// retransmission; a lost symbol would desynchronize the keystream for
// good.
//
// Each shard is stamped with a truncated SHA-256 checksum so the
// receiver can tell damaged shards apart from good ones before
// reconstruction.
package fec
