package cpu

import (
	"math"
)

// CodeAluOp is a lane-wise ALU operation.
type CodeAluOp int

const (
	ALU_OP_AND = CodeAluOp(iota)
	ALU_OP_OR
	ALU_OP_XOR
	ALU_OP_SHL
	ALU_OP_SHR
	ALU_OP_ADD
	ALU_OP_SUB
	ALU_OP_MUL
	ALU_OP_DIV
	ALU_OP_MOD
)

// aluMap maps the binary opcodes, register and immediate forms, to their ALU operation.
var aluMap = map[CodeOp]CodeAluOp{
	OP_AND:  ALU_OP_AND,
	OP_OR:   ALU_OP_OR,
	OP_XOR:  ALU_OP_XOR,
	OP_SHL:  ALU_OP_SHL,
	OP_SHR:  ALU_OP_SHR,
	OP_ADD:  ALU_OP_ADD,
	OP_SUB:  ALU_OP_SUB,
	OP_MUL:  ALU_OP_MUL,
	OP_DIV:  ALU_OP_DIV,
	OP_MOD:  ALU_OP_MOD,
	OP_DAND: ALU_OP_AND,
	OP_DOR:  ALU_OP_OR,
	OP_DXOR: ALU_OP_XOR,
	OP_DSHL: ALU_OP_SHL,
	OP_DSHR: ALU_OP_SHR,
	OP_DADD: ALU_OP_ADD,
	OP_DSUB: ALU_OP_SUB,
	OP_DMUL: ALU_OP_MUL,
	OP_DDIV: ALU_OP_DIV,
	OP_DMOD: ALU_OP_MOD,
}

// Divides returns true if the operation faults on a zero right hand side.
func (op CodeAluOp) Divides() bool {
	return op == ALU_OP_DIV || op == ALU_OP_MOD
}

// Arithmetic returns true if the operation respects floating point lanes.
func (op CodeAluOp) Arithmetic() bool {
	return op >= ALU_OP_ADD
}

// isZero returns true if a lane value is a zero divisor.
func isZero(float bool, value uint64) bool {
	if float {
		return math.Float64frombits(value) == 0
	}
	return value == 0
}

// doAlu performs the requested ALU action on a single lane.
// Division by zero must be excluded by the caller.
func doAlu(op CodeAluOp, float bool, input uint64, value uint64) (output uint64) {
	if float && op.Arithmetic() {
		a := math.Float64frombits(input)
		b := math.Float64frombits(value)
		var r float64
		switch op {
		case ALU_OP_ADD:
			r = a + b
		case ALU_OP_SUB:
			r = a - b
		case ALU_OP_MUL:
			r = a * b
		case ALU_OP_DIV:
			r = a / b
		case ALU_OP_MOD:
			r = math.Mod(a, b)
		}
		return math.Float64bits(r)
	}

	switch op {
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_OR:
		output = input | value
	case ALU_OP_XOR:
		output = input ^ value
	case ALU_OP_SHL:
		// Shifts of 64 or more clear the lane.
		output = input << value
	case ALU_OP_SHR:
		output = input >> value
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_MUL:
		output = input * value
	case ALU_OP_DIV:
		output = input / value
	case ALU_OP_MOD:
		output = input % value
	}

	return
}

// doStep adds delta (+1 or -1) to a lane.
func doStep(float bool, input uint64, delta int) uint64 {
	if float {
		return math.Float64bits(math.Float64frombits(input) + float64(delta))
	}
	return input + uint64(int64(delta))
}

// doNeg negates a lane.
func doNeg(float bool, input uint64) uint64 {
	if float {
		return math.Float64bits(-math.Float64frombits(input))
	}
	return -input
}

// immediate converts the data field into a lane value.
func immediate(float bool, data uint16) uint64 {
	if float {
		return math.Float64bits(float64(data))
	}
	return uint64(data)
}
