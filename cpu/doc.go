// Package cpu implements the processor and assembler for the s64 system.
//
// The processor is a register machine with a program counter and sixteen
// registers in six families: the zero register (zr), general purpose
// scalars (r0-r2), floating point scalars (f0-f2), pointers (p0-p2), and
// two and four lane vectors (s0-s2, x0-x2). Every instruction is a single
// 32-bit word. Opcodes either consume their data field as an operand, or
// use it as a relative branch displacement.
//
// The assembler provides a line oriented assembly language for the s64
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
