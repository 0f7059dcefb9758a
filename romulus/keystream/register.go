package keystream

// Register is a single Fibonacci-configuration linear-feedback shift
// register. The output bit is the rightmost bit; feedback is the XOR of
// the configured tap positions (0-indexed from the output end) and is
// inserted at the leftmost position on each clock.
type Register struct {
	length int
	taps   []int
	mask   uint32
	state  uint32
}

// NewRegister creates a register with the given bit-length and tap set.
// The state starts at 1; call Load to seed it.
func NewRegister(length int, taps []int) *Register {
	return &Register{
		length: length,
		taps:   taps,
		mask:   (1 << length) - 1,
		state:  1,
	}
}

// Load seeds the register from an initial value, masked to the register
// length. An all-zero state is a fixed point under linear feedback and
// would lock the register, so it is remapped to 1.
func (r *Register) Load(v uint32) {
	r.state = v & r.mask
	if r.state == 0 {
		r.state = 1
	}
}

// Clock advances the register once and returns the output bit.
//
// The returned bit is the pre-shift rightmost bit, i.e. the bit about to
// be discarded, not the freshly computed feedback bit. This ordering is
// part of the keystream contract; changing it changes every stream.
func (r *Register) Clock() byte {
	out := byte(r.state & 1)

	var feedback uint32
	for _, tap := range r.taps {
		feedback ^= (r.state >> tap) & 1
	}

	r.state = ((r.state >> 1) | (feedback << (r.length - 1))) & r.mask
	return out
}

// State returns the current register contents.
func (r *Register) State() uint32 { return r.state }

// Length returns the register bit-length.
func (r *Register) Length() int { return r.length }
