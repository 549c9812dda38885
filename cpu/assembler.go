// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Argument names, bound as equates during expansion.
	Lines  []string // Body text, comments removed.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for the s64 system.
//
// Each source line assembles to at most one instruction:
//
//	[label:] <opcode> [<reg0> [<reg1> [<data>]]] [; comment]
//
// The data word may be a number, a character literal, an equate, a
// $(expression), or a label. Labels resolve to a relative displacement
// for branching opcodes, and to an absolute instruction index for
// opcodes that take data as an operand.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	expansion int                 // Count of macro expansions.
	expanding map[string]bool     // Macros currently being expanded.
	Label     map[string]int      // Map of jump labels to instruction indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[equ] = value
}

// valueOf returns the 16-bit data value of a numeric word.
// Negative values are stored as two's complement, and a leading
// '~' inverts the result.
func valueOf(word string) (value uint16, err error) {
	word, invert := strings.CutPrefix(word, "~")
	switch {
	case len(word) == 0:
		err = ErrParseNumber("~")
		return
	case word[0] == '\'':
		// Valid character literals were already replaced by parseLine().
		err = ErrParseCharacter
		return
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrDataRange
		return
	}

	value = uint16(v64)
	if invert {
		value = ^value
	}

	return
}

// escapeMap is the set of backslash escapes allowed in character literals.
var escapeMap = map[byte]byte{
	'\\': '\\',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
}

// charValue replaces a quoted character literal by its decimal value.
// Unknown escapes are left in place, and later fail in valueOf().
func charValue(word string) string {
	str := word[1 : len(word)-1]
	switch {
	case len(str) == 1 && str[0] != '\\':
		return strconv.Itoa(int(str[0]))
	case len(str) == 2:
		ch, ok := escapeMap[str[1]]
		if ok {
			return strconv.Itoa(int(ch))
		}
	}

	return word
}

// evaluate does compile-time $(...) evaluation of a starlark expression,
// with integer equates and labels visible as globals.
func (asm *Assembler) evaluate(expr string) (value int64, err error) {
	globals := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Not every equate is numeric; registers are common.
			continue
		}
		globals[key] = starlark.MakeInt64(v64)
	}
	for key, ip := range asm.Label {
		globals[key] = starlark.MakeInt(ip)
	}

	thread := &starlark.Thread{Name: "expr"}
	rc, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "expr", expr, globals)
	if err != nil {
		return
	}

	st_int, ok := rc.(starlark.Int)
	if ok {
		value, ok = st_int.Int64()
	}
	if !ok {
		err = ErrParseExpression(expr)
	}

	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// parseLine expands a single line into words, handling equates, labels and macros.
// Macro invocations are assembled in place, and return no words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line = reCharacter.ReplaceAllStringFunc(line, charValue)

	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, e := asm.evaluate(str[2 : len(str)-1])
		if e != nil && err == nil {
			err = e
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		err = asm.defineEquate(words[1:])
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		err = asm.defineLabel(strings.TrimSuffix(words[0], ":"))
		if err != nil {
			return
		}
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expandMacro(words[0], macro, words[1:])
		words = nil
	}

	return
}

// defineEquate handles the arguments of an .equ directive.
func (asm *Assembler) defineEquate(args []string) (err error) {
	if len(args) != 2 {
		err = ErrEquateSyntax
		return
	}

	_, ok := asm.Equate[args[0]]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	asm.Equate[args[0]] = args[1]
	return
}

// defineLabel binds a label to the next instruction index.
func (asm *Assembler) defineLabel(label string) (err error) {
	_, ok := asm.Label[label]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	asm.Label[label] = len(asm.Opcode)
	return
}

// expandMacro assembles the body of a macro, with its arguments bound
// as equates. Each '@' in the body becomes a prefix unique to this
// expansion, for local labels.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.expanding[name] {
		err = ErrMacroRecursion
		return
	}
	if asm.expanding == nil {
		asm.expanding = make(map[string]bool)
	}
	asm.expanding[name] = true
	defer delete(asm.expanding, name)

	asm.expansion++
	local := fmt.Sprintf("%v_%v_", name, asm.expansion)

	saved := maps.Clone(asm.Equate)
	defer func() { asm.Equate = saved }()

	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n
		line = strings.ReplaceAll(line, "@", local)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// defineMacro handles a .macro directive.
func (asm *Assembler) defineMacro(words []string, lineno int) (macro *Macro, err error) {
	if len(words) < 2 {
		err = ErrMacroSyntax
		return
	}

	name := words[1]
	_, ok := asm.Macro[name]
	if ok {
		err = ErrMacroDuplicate
		return
	}

	macro = &Macro{
		LineNo: lineno + 1,
		Args:   words[2:],
	}
	asm.Macro[name] = macro

	return
}

// reset prepares the assembler for a new source.
func (asm *Assembler) reset() {
	clear(asm.Label)
	asm.expansion = 0
	clear(asm.expanding)
	asm.Opcode = asm.Opcode[:0]

	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)

	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)
		words := strings.Fields(line)

		directive := ""
		if len(words) > 0 {
			directive = words[0]
		}

		switch {
		case directive == ".macro":
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			macro, err = asm.defineMacro(words, lineno)
		case directive == ".endm":
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
		case macro != nil:
			macro.Lines = append(macro.Lines, line)
		default:
			words, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(words, lineno)
			}
		}
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		err = asm.link(op)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link resolves the label of an opcode into its data field.
func (asm *Assembler) link(op *Opcode) (err error) {
	if len(op.LinkLabel) == 0 {
		return
	}

	ip, ok := asm.Label[op.LinkLabel]
	if !ok {
		err = ErrLabelMissing(op.LinkLabel)
		return
	}

	if !op.Code.Op.Literal() {
		ip -= op.Ip
	}

	op.Code.Data, err = valueOf(strconv.Itoa(ip))
	return
}

// parseWords assembles the expanded words of a line into an opcode.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	opcode := Opcode{LineNo: lineno, Ip: len(asm.Opcode), Words: words}
	code := &opcode.Code

	code.Op, err = CodeOpOf(words[0])
	if err != nil {
		return
	}

	for n, reg := range []*Register{&code.Reg0, &code.Reg1} {
		if len(words) > n+1 {
			*reg, err = RegisterOf(words[n+1])
			if err != nil {
				return
			}
		}
	}

	if len(words) > 3 {
		data := words[3]
		if reLabel.MatchString(data) {
			opcode.LinkLabel = data
		} else {
			code.Data, err = valueOf(data)
			if err != nil {
				return
			}
		}
	}

	asm.Opcode = append(asm.Opcode, opcode)

	return
}
