package cpu

// Register is a 4-bit register selector.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_ZR = Register(0)  // zr
	REG_R0 = Register(1)  // r0
	REG_R1 = Register(2)  // r1
	REG_R2 = Register(3)  // r2
	REG_F0 = Register(4)  // f0
	REG_F1 = Register(5)  // f1
	REG_F2 = Register(6)  // f2
	REG_P0 = Register(7)  // p0
	REG_P1 = Register(8)  // p1
	REG_P2 = Register(9)  // p2
	REG_S0 = Register(10) // s0
	REG_S1 = Register(11) // s1
	REG_S2 = Register(12) // s2
	REG_X0 = Register(13) // x0
	REG_X1 = Register(14) // x1
	REG_X2 = Register(15) // x2
)

// REG_COUNT is the number of addressable registers.
const REG_COUNT = 16

// RegisterFamily groups registers by their storage class.
type RegisterFamily int

const (
	FAMILY_ZERO    = RegisterFamily(0) // Reads as zero, discards writes.
	FAMILY_GENERAL = RegisterFamily(1) // Scalar integer.
	FAMILY_FLOAT   = RegisterFamily(2) // Scalar IEEE-754 double.
	FAMILY_POINTER = RegisterFamily(3) // Scalar integer.
	FAMILY_VEC128  = RegisterFamily(4) // Two 64-bit lanes.
	FAMILY_VEC256  = RegisterFamily(5) // Four 64-bit lanes.
)

// regMap maps register mnemonics to register ids.
var regMap = func() map[string]Register {
	m := make(map[string]Register, REG_COUNT)
	for reg := range Register(REG_COUNT) {
		m[reg.String()] = reg
	}
	return m
}()

// RegisterOf returns the register named by a mnemonic.
func RegisterOf(name string) (reg Register, err error) {
	reg, ok := regMap[name]
	if !ok {
		err = ErrMnemonic(name)
	}
	return
}

// Valid returns true if the register id is one of the 16 defined registers.
func (reg Register) Valid() bool {
	return reg < REG_COUNT
}

// Family returns the storage class of the register.
func (reg Register) Family() RegisterFamily {
	switch {
	case reg == REG_ZR:
		return FAMILY_ZERO
	case reg <= REG_R2:
		return FAMILY_GENERAL
	case reg <= REG_F2:
		return FAMILY_FLOAT
	case reg <= REG_P2:
		return FAMILY_POINTER
	case reg <= REG_S2:
		return FAMILY_VEC128
	default:
		return FAMILY_VEC256
	}
}

// Lanes returns the number of 64-bit lanes held by the register.
func (reg Register) Lanes() int {
	switch reg.Family() {
	case FAMILY_VEC128:
		return 2
	case FAMILY_VEC256:
		return 4
	default:
		return 1
	}
}

// Float returns true if arithmetic on the register uses IEEE-754 doubles.
func (reg Register) Float() bool {
	return reg.Family() == FAMILY_FLOAT
}
