// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/bits"
)

var _cpu_defines = map[string]string{
	"REG_COUNT":  fmt.Sprintf("%v", REG_COUNT),
	"OP_COUNT":   fmt.Sprintf("%v", OP_COUNT),
	"SLICE_BITS": fmt.Sprintf("%v", SLICE_BITS),
	"LANES_S":    fmt.Sprintf("%v", REG_S0.Lanes()),
	"LANES_X":    fmt.Sprintf("%v", REG_X0.Lanes()),
}

// Cpu is the simulation context of the s64 register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       int          // Current program counter.
	Register RegisterFile // Register bank.

	Power int // Power (register bits flipped) counter.
	Ticks int // CPU ticks counter.
}

// NewCpu creates a new, zeroed, CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers.
// - Zeros statistics counters.
// - Sets the program counter to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.Power = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	text += cpu.Register.String()
	return
}

// Execute executes a single decoded instruction, and advances the program
// counter. On error, the CPU state is unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc, code)
	}

	if !code.Op.Valid() {
		err = ErrOpcodeUnknown
		return
	}

	rf := &cpu.Register
	prior := rf.bank

	op := code.Op
	reg0 := code.Reg0
	reg1 := code.Reg1
	data := code.Data

	switch op {
	case OP_NOP:
		rf.Clear(reg0)
		rf.Clear(reg1)
	case OP_SET:
		rf.SetSlice(reg0, uint8(reg1), data)
	case OP_GET:
		// The accumulator receives the slice at the same position.
		value := rf.Slice(reg0, uint8(reg1))
		rf.SetSlice(REG_R0, uint8(reg1)%(64/SLICE_BITS), value)
	case OP_UPDATE:
		rf.Write(reg0, rf.Read(reg1))
	case OP_DELETE:
		rf.Write(reg0, rf.Read(reg1))
		rf.Clear(reg1)
	case OP_SWAP:
		a := rf.Read(reg0)
		b := rf.Read(reg1)
		rf.Write(reg0, b)
		rf.Write(reg1, a)
	case OP_NOT, OP_DNOT:
		not := func(_ int, value uint64) uint64 { return ^value }
		rf.Apply(reg0, not)
		rf.Apply(reg1, not)
	case OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR,
		OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
		alu := aluMap[op]
		float := reg0.Float() && alu.Arithmetic()
		src := rf.Read(reg1)
		if alu == ALU_OP_SHL || alu == ALU_OP_SHR {
			// Shift amount is the scalar in the first lane.
			src = Broadcast(reg0, src[0])
		}
		if cpu.divideFault(code) {
			err = ErrDivideFault
			return
		}
		rf.Apply(reg0, func(n int, value uint64) uint64 {
			return doAlu(alu, float, value, src[n])
		})
	case OP_DAND, OP_DOR, OP_DXOR, OP_DSHL, OP_DSHR,
		OP_DADD, OP_DSUB, OP_DMUL, OP_DDIV, OP_DMOD:
		alu := aluMap[op]
		float := reg0.Float() && alu.Arithmetic()
		imm := immediate(float, data)
		if cpu.divideFault(code) {
			err = ErrDivideFault
			return
		}
		src := rf.Read(reg1)
		rf.Apply(reg0, func(n int, _ uint64) uint64 {
			return doAlu(alu, float, src[n], imm)
		})
	case OP_INC, OP_DEC:
		delta := 1
		if op == OP_DEC {
			delta = -1
		}
		for _, reg := range [2]Register{reg1, reg0} {
			float := reg.Float()
			rf.Apply(reg, func(_ int, value uint64) uint64 {
				return doStep(float, value, delta)
			})
		}
	case OP_NEG:
		for _, reg := range [2]Register{reg1, reg0} {
			float := reg.Float()
			rf.Apply(reg, func(_ int, value uint64) uint64 {
				return doNeg(float, value)
			})
		}
	case OP_DINC, OP_DDEC, OP_DNEG:
		float := reg0.Float()
		value := immediate(float, data)
		switch op {
		case OP_DINC:
			value = doStep(float, value, 1)
		case OP_DDEC:
			value = doStep(float, value, -1)
		case OP_DNEG:
			value = doNeg(float, value)
		}
		rf.Write(reg0, Broadcast(reg0, value))
		rf.Write(reg1, Broadcast(reg1, immediate(reg1.Float(), data)))
	default:
		err = ErrOpcodeUnknown
		return
	}

	cpu.Pc = code.Target(cpu.Pc)

	cpu.Ticks += 1
	for n := range prior {
		for lane := range prior[n] {
			cpu.Power += bits.OnesCount64(prior[n][lane] ^ rf.bank[n][lane])
		}
	}

	return
}

// divideFault returns true if code is a division with a zero divisor in
// any active lane of its destination.
func (cpu *Cpu) divideFault(code Code) bool {
	alu, ok := aluMap[code.Op]
	if !ok || !alu.Divides() {
		return false
	}

	float := code.Reg0.Float()
	if code.Op.Literal() {
		return isZero(float, immediate(float, code.Data))
	}

	src := cpu.Register.Read(code.Reg1)
	for n := range (code.Reg0 & 0xf).Lanes() {
		if isZero(float, src[n]) {
			return true
		}
	}
	return false
}

// Tick fetches and executes the instruction at the program counter.
//
// Returns ErrPcEnd when the program counter has run off the end of the
// program. A divide fault skips the instruction, and is returned so the
// caller may log it.
func (cpu *Cpu) Tick(program []Code) (err error) {
	pc := cpu.Pc
	if pc == len(program) {
		err = ErrPcEnd
		return
	}

	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Err: err}
		}
	}()

	if pc < 0 || pc > len(program) {
		err = ErrPcRange
		return
	}

	code := program[pc]

	// A divide fault never branches, so its target is not checked.
	if code.Op.Valid() && !cpu.divideFault(code) {
		target := code.Target(pc)
		if target < 0 || target > len(program) {
			err = errors.Join(ErrOpcode(code), ErrPcRange)
			return
		}
	}

	err = cpu.Execute(code)
	if errors.Is(err, ErrDivideFault) {
		if cpu.Verbose {
			log.Printf("%03x: %v", pc, err)
		}
		cpu.Pc = pc + 1
		cpu.Ticks += 1
	}

	return
}

// Run executes the program from the current program counter until it
// runs off the end of the program. Divide faults are skipped; any other
// fault stops the run and is returned as an *ErrFault.
func (cpu *Cpu) Run(program []Code) (err error) {
	for {
		err = cpu.Tick(program)
		switch {
		case errors.Is(err, ErrPcEnd):
			return nil
		case errors.Is(err, ErrDivideFault):
			continue
		case err != nil:
			return
		}
	}
}
