// Package romulus implements a KW-26-style synchronous additive stream
// cipher: three maximal-length LFSRs of coprime lengths clocked in
// lockstep, combined by a fixed nonlinear majority function into one
// keystream bit per clock, XOR-masked over 5-bit teleprinter symbol
// codes.
//
// The Cipher type at the package root is the façade; the building
// blocks live in the subpackages (keystream, cryptovar, baudot) and the
// circuit layer (link, tape) sits on top.
//
// This is a self-consistent reconstruction of a 1950s-era design, not a
// security-hardened primitive. It offers no resistance to modern
// cryptanalysis and must not be used to protect real traffic.
package romulus
