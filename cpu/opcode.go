package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeOp is the 8-bit opcode tag of an instruction.
type CodeOp uint8

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_NOP    = CodeOp(0)  // nop
	OP_SET    = CodeOp(1)  // set
	OP_GET    = CodeOp(2)  // get
	OP_UPDATE = CodeOp(3)  // update
	OP_DELETE = CodeOp(4)  // delete
	OP_SWAP   = CodeOp(5)  // swap
	OP_AND    = CodeOp(6)  // and
	OP_OR     = CodeOp(7)  // or
	OP_XOR    = CodeOp(8)  // xor
	OP_NOT    = CodeOp(9)  // not
	OP_SHL    = CodeOp(10) // shl
	OP_SHR    = CodeOp(11) // shr
	OP_DAND   = CodeOp(12) // dand
	OP_DOR    = CodeOp(13) // dor
	OP_DXOR   = CodeOp(14) // dxor
	OP_DNOT   = CodeOp(15) // dnot
	OP_DSHL   = CodeOp(16) // dshl
	OP_DSHR   = CodeOp(17) // dshr
	OP_ADD    = CodeOp(18) // add
	OP_SUB    = CodeOp(19) // sub
	OP_MUL    = CodeOp(20) // mul
	OP_DIV    = CodeOp(21) // div
	OP_MOD    = CodeOp(22) // mod
	OP_INC    = CodeOp(23) // inc
	OP_DEC    = CodeOp(24) // dec
	OP_NEG    = CodeOp(25) // neg
	OP_DADD   = CodeOp(26) // dadd
	OP_DSUB   = CodeOp(27) // dsub
	OP_DMUL   = CodeOp(28) // dmul
	OP_DDIV   = CodeOp(29) // ddiv
	OP_DMOD   = CodeOp(30) // dmod
	OP_DINC   = CodeOp(31) // dinc
	OP_DDEC   = CodeOp(32) // ddec
	OP_DNEG   = CodeOp(33) // dneg
)

// OP_COUNT is the number of defined opcodes.
const OP_COUNT = 34

// opMap maps opcode mnemonics to opcodes.
var opMap = func() map[string]CodeOp {
	m := make(map[string]CodeOp, OP_COUNT)
	for op := range CodeOp(OP_COUNT) {
		m[op.String()] = op
	}
	return m
}()

// CodeOpOf returns the opcode named by a mnemonic.
func CodeOpOf(name string) (op CodeOp, err error) {
	op, ok := opMap[name]
	if !ok {
		err = ErrMnemonic(name)
	}
	return
}

// Valid returns true if the opcode tag is mapped to a behavior.
func (op CodeOp) Valid() bool {
	return op < OP_COUNT
}

// Literal returns true if the opcode consumes the data field as an operand.
// All other opcodes use the data field as a signed branch displacement.
func (op CodeOp) Literal() bool {
	switch op {
	case OP_SET,
		OP_DAND, OP_DOR, OP_DXOR, OP_DSHL, OP_DSHR,
		OP_DADD, OP_DSUB, OP_DMUL, OP_DDIV, OP_DMOD,
		OP_DINC, OP_DDEC, OP_DNEG:
		return true
	}
	return false
}

// Code is a single decoded instruction.
//
// Word layout, high to low:
//
//	[data:16][reg1:4][reg0:4][opcode:8]
type Code struct {
	Op   CodeOp
	Reg0 Register
	Reg1 Register
	Data uint16
}

// MakeCode creates an instruction.
func MakeCode(op CodeOp, reg0, reg1 Register, data uint16) Code {
	return Code{
		Op:   op,
		Reg0: reg0 & 0xf,
		Reg1: reg1 & 0xf,
		Data: data,
	}
}

// DecodeCode splits an instruction word into its fields.
func DecodeCode(word uint32) (code Code) {
	regs := uint8((word >> 8) & 0xff)
	code = Code{
		Op:   CodeOp(word & 0xff),
		Reg0: Register(regs & 0xf),
		Reg1: Register(regs >> 4),
		Data: uint16((word >> 16) & 0xffff),
	}
	return
}

// Regs returns the packed register byte.
func (code Code) Regs() uint8 {
	return uint8(code.Reg0&0xf) | (uint8(code.Reg1&0xf) << 4)
}

// Word encodes the instruction.
func (code Code) Word() uint32 {
	return uint32(code.Op) | (uint32(code.Regs()) << 8) | (uint32(code.Data) << 16)
}

// Displacement returns the signed branch displacement, or 0 for literal opcodes.
func (code Code) Displacement() int {
	if code.Op.Literal() {
		return 0
	}
	return int(int16(code.Data))
}

// Target returns the program counter that follows this instruction at pc.
func (code Code) Target(pc int) int {
	disp := code.Displacement()
	if disp == 0 {
		return pc + 1
	}
	return pc + disp
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	return fmt.Sprintf("%v %v %v %d", code.Op, code.Reg0, code.Reg1, int16(code.Data))
}

// ParseCode parses a single `<mnemonic> <reg0> <reg1> <data>` line.
// Missing trailing words default to nop, zr, zr and 0.
func ParseCode(line string) (code Code, err error) {
	words := strings.Fields(line)
	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	for n, word := range words {
		switch n {
		case 0:
			code.Op, err = CodeOpOf(word)
		case 1:
			code.Reg0, err = RegisterOf(word)
		case 2:
			code.Reg1, err = RegisterOf(word)
		case 3:
			var v64 int64
			v64, err = strconv.ParseInt(word, 10, 16)
			if err != nil {
				err = ErrParseNumber(word)
			}
			code.Data = uint16(int16(v64))
		}
		if err != nil {
			return
		}
	}

	return
}
