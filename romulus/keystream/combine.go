package keystream

// Combine is the nonlinear combining function: majority of the three
// register output bits, XORed with the third. This is the entire
// nonlinearity budget of the cipher; the truth table is fixed and must
// not change.
func Combine(a, b, c byte) byte {
	majority := (a & b) | (b & c) | (a & c)
	return majority ^ c
}
