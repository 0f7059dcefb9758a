// Package baudot implements the ITA2 (Baudot) 5-bit teleprinter code:
// the symbol codec at the cipher boundary.
//
// ITA2 has two shift planes, LETTERS and FIGURES, switched by two
// reserved non-printing codes. The codec tracks the implicit shift
// state while encoding and decoding; shift codes never produce output
// characters. The cipher core is agnostic to all of this: it only
// XORs 5-bit integers.
package baudot
