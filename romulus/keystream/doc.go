// Package keystream implements the ROMULUS keystream generator: three
// linear-feedback shift registers of coprime lengths (31, 29, 23) clocked
// in lockstep and combined through a fixed nonlinear majority function
// into one output bit per clock.
//
// The generator is fully synchronous: two engines loaded with identical
// register states produce identical bit streams forever. There is no
// look-ahead and no caching; every generated bit advances real register
// state. The engine supports unbounded continuous generation, which is
// what makes fill transmission (traffic-flow security) possible at the
// circuit layer.
package keystream
