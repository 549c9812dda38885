// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/s64/cpu"
	"github.com/ezrec/s64/internal"
	"github.com/ezrec/s64/sfile"
)

const (
	TICK_LIMIT = 1 << 24 // Default maximum ticks per run.
)

var _emulator_defines = map[string]string{
	"TICK_LIMIT": fmt.Sprintf("%v", TICK_LIMIT),
}

// Emulator state. CPU + program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Limit    int          // Maximum ticks per run; 0 for unlimited.

	code []cpu.Code // Instruction stream of Program, captured at Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Limit:   TICK_LIMIT,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load replaces the program with the contents of an executable container.
// The CPU state is kept; call Reset to restart from the first instruction.
func (emu *Emulator) Load(input io.Reader) (err error) {
	hdr, words, err := sfile.Read(input)
	if err != nil {
		return
	}

	if hdr.FileType != sfile.FILETYPE_EXECUTABLE {
		err = fmt.Errorf("%w: %v", sfile.ErrFileType, hdr.FileType)
		return
	}

	if hdr.Arch != sfile.ARCH_SS64 {
		err = fmt.Errorf("%w: %v", sfile.ErrArch, hdr.Arch)
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d words", len(words))
	}

	emu.Program = cpu.NewProgram(words)
	emu.code = emu.Program.Code()

	return
}

// Reset the emulator state, and rewind to the start of the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}
	emu.code = emu.Program.Code()

	emu.Cpu.Reset()

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Power returns the total power consumed.
func (emu *Emulator) Power() int {
	return emu.Cpu.Power
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	pc := emu.Cpu.Pc
	if pc < 0 || pc >= len(emu.code) {
		return cpu.Code{}
	}

	return emu.code[pc]
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	// A program that ends on its last permitted tick is not over the limit.
	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit && emu.Cpu.Pc != len(emu.code) {
		err = ErrTickLimit
		return
	}

	err = emu.Cpu.Tick(emu.code)
	switch {
	case errors.Is(err, cpu.ErrPcEnd):
		err = nil
		done = true
	case errors.Is(err, cpu.ErrDivideFault):
		// Skipped by the CPU; execution continues.
		err = nil
	}

	return
}

// Run ticks the emulator until the program completes or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
