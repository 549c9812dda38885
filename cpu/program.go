package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo    int      // Source line, or 0 if decoded from a binary.
	Ip        int      // Program index of the instruction.
	Words     []string // Source words, after equate expansion.
	Code      Code     // Generated instruction.
	LinkLabel string   // Label resolved into the data field at link time.
}

// Program is an assembled instruction stream.
type Program struct {
	Opcodes []Opcode
}

// NewProgram creates a program from a decoded instruction word stream.
func NewProgram(words []uint32) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, len(words)),
	}

	for ip, word := range words {
		prog.Opcodes[ip] = Opcode{Ip: ip, Code: DecodeCode(word)}
	}

	return
}

// Debug returns the opcode at an instruction index, or nil.
func (prog *Program) Debug(ip int) (dbg *Opcode) {
	for n, op := range prog.Opcodes {
		if op.Ip == ip {
			dbg = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the encoded instruction words of the program.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, code.Word())
	}

	return
}

// Code returns the instruction stream of the program, ready to execute.
func (prog *Program) Code() (codes []Code) {
	codes = make([]Code, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	return
}

// Codes iterates over the instructions of the program.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}
