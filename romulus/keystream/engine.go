package keystream

// Register bit-lengths. The three lengths are pairwise coprime so the
// combined state period is the product of the individual periods.
const (
	LengthA = 31
	LengthB = 29
	LengthC = 23
)

// Feedback tap sets, one per register role. The polynomials
// x^31+x^3+1, x^29+x^2+1 and x^23+x^5+1 are primitive, so every
// register is maximal-length.
var (
	tapsA = []int{0, 3}
	tapsB = []int{0, 2}
	tapsC = []int{0, 5}
)

// Fixed register roles. The role-to-argument binding of Combine
// (A→a, B→b, C→c) is part of the keystream contract: reordering it
// produces a different, incompatible stream.
const (
	regA = iota
	regB
	regC
)

// Engine owns the three registers and a monotonically increasing
// position counter. It is not safe for concurrent use; give each
// session its own engine.
type Engine struct {
	regs     [3]*Register
	position uint64
}

// NewEngine creates an engine with the three registers loaded from the
// given initial states (each masked to its register length, zero states
// remapped to 1).
func NewEngine(stateA, stateB, stateC uint32) *Engine {
	e := &Engine{
		regs: [3]*Register{
			regA: NewRegister(LengthA, tapsA),
			regB: NewRegister(LengthB, tapsB),
			regC: NewRegister(LengthC, tapsC),
		},
	}
	e.Reset(stateA, stateB, stateC)
	return e
}

// NextBit clocks all three registers once, in role order, and returns
// the combined keystream bit. Every call advances real register state;
// there is no peek.
func (e *Engine) NextBit() byte {
	a := e.regs[regA].Clock()
	b := e.regs[regB].Clock()
	c := e.regs[regC].Clock()
	e.position++
	return Combine(a, b, c)
}

// NextByte returns 8 keystream bits accumulated most-significant first.
func (e *Engine) NextByte() byte {
	return byte(e.NextBits(8))
}

// NextBits returns width keystream bits accumulated most-significant
// first. width must be in [1, 32]; the cipher façade uses 5.
func (e *Engine) NextBits(width int) uint32 {
	var v uint32
	for i := 0; i < width; i++ {
		v = (v << 1) | uint32(e.NextBit())
	}
	return v
}

// Position returns the number of keystream bits generated since the
// engine was constructed or last reset.
func (e *Engine) Position() uint64 {
	return e.position
}

// Reset reloads the registers and rewinds the position counter to 0.
// The engine is then indistinguishable from a freshly constructed one
// with the same states.
func (e *Engine) Reset(stateA, stateB, stateC uint32) {
	e.regs[regA].Load(stateA)
	e.regs[regB].Load(stateB)
	e.regs[regC].Load(stateC)
	e.position = 0
}

// Snapshot is a read-only view of the engine state for diagnostics.
type Snapshot struct {
	Position uint64
	StateA   uint32
	StateB   uint32
	StateC   uint32
}

// Snapshot captures the current position and register states without
// mutating the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Position: e.position,
		StateA:   e.regs[regA].State(),
		StateB:   e.regs[regB].State(),
		StateC:   e.regs[regC].State(),
	}
}
