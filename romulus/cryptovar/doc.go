// Package cryptovar handles cryptovariable (key material) buffers: the
// externally supplied secret bytes from which the three register initial
// states are derived.
//
// A cryptovariable is an opaque byte buffer of at least 11 bytes
// (16 recommended). It is consumed once at load time and never retained;
// secure storage and destruction are the caller's responsibility.
package cryptovar
