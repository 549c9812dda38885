package cpu

import (
	"errors"

	"github.com/ezrec/s64/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEnd       = errors.New(f("pc end of program"))
	ErrPcRange     = errors.New(f("pc out of range"))
	ErrDivideFault = errors.New(f("divide by zero"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroRecursion  = errors.New(f(".macro expands itself"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrMnemonicInvalid = errors.New(f("mnemonic invalid"))
	ErrDataRange       = errors.New(f("data out of 16-bit range"))
	ErrParseCharacter  = errors.New(f("character literal invalid"))
	ErrWorkersNegative = errors.New(f("worker count negative"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrMnemonic is an unrecognized opcode or register mnemonic.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("'%v' is not a valid mnemonic", string(em))
}

func (em ErrMnemonic) Unwrap() error {
	return ErrMnemonicInvalid
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x %v", Code(eo).Word(), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrFault locates a failed instruction in a running program.
type ErrFault struct {
	Pc  int
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
