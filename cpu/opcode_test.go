package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOpOf(t *testing.T) {
	assert := assert.New(t)

	for op := range CodeOp(OP_COUNT) {
		found, err := CodeOpOf(op.String())
		assert.NoError(err)
		assert.Equal(op, found)
		assert.True(op.Valid())
	}

	assert.False(CodeOp(OP_COUNT).Valid())
	assert.False(CodeOp(0xff).Valid())

	_, err := CodeOpOf("jmp")
	assert.True(errors.Is(err, ErrMnemonicInvalid))
}

func TestCodeOpLiteral(t *testing.T) {
	assert := assert.New(t)

	literal := map[CodeOp]bool{
		OP_SET:  true,
		OP_DAND: true, OP_DOR: true, OP_DXOR: true, OP_DSHL: true, OP_DSHR: true,
		OP_DADD: true, OP_DSUB: true, OP_DMUL: true, OP_DDIV: true, OP_DMOD: true,
		OP_DINC: true, OP_DDEC: true, OP_DNEG: true,
	}

	for op := range CodeOp(OP_COUNT) {
		assert.Equal(literal[op], op.Literal(), op.String())

		code := MakeCode(op, REG_R0, REG_R1, 5)
		if op.Literal() {
			assert.Equal(0, code.Displacement(), op.String())
			assert.Equal(11, code.Target(10), op.String())
		} else {
			assert.Equal(5, code.Displacement(), op.String())
			assert.Equal(15, code.Target(10), op.String())
		}
	}

	// Dnot branches, despite its name.
	assert.False(OP_DNOT.Literal())
}

func TestCodeTarget(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		data   uint16
		pc     int
		target int
	}){
		{0, 0, 1},
		{0, 7, 8},
		{1, 7, 8},
		{2, 0, 2},
		{0xffff, 3, 2},
		{0x8000, 0, -0x8000},
		{0x7fff, 0, 0x7fff},
	}

	for _, entry := range table {
		code := MakeCode(OP_NOP, REG_ZR, REG_ZR, entry.data)
		assert.Equal(entry.target, code.Target(entry.pc), "%#v", entry)
	}
}

func TestCodeWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		word uint32
	}){
		{Code{}, 0x0000_0000},
		{MakeCode(OP_DADD, REG_R0, REG_R1, 3), 0x0003_211a},
		{MakeCode(OP_SET, REG_X2, REG_ZR, 0xbeef), 0xbeef_0f01},
		{MakeCode(OP_DNEG, REG_X2, REG_X2, 0xffff), 0xffff_ff21},
	}

	for _, entry := range table {
		assert.Equal(entry.word, entry.code.Word(), entry.code.String())
		assert.Equal(entry.code, DecodeCode(entry.word), entry.code.String())
	}

	// Out of range register ids are truncated to 4 bits.
	assert.Equal(REG_R0, MakeCode(OP_NOP, Register(0x11), REG_ZR, 0).Reg0)

	// Unmapped opcode tags still decode, and are rejected at execution.
	code := DecodeCode(0x0000_00fe)
	assert.Equal(CodeOp(0xfe), code.Op)
	assert.False(code.Op.Valid())
}

func TestParseCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		code Code
		text string
	}){
		{"", Code{}, "nop zr zr 0"},
		{"set", MakeCode(OP_SET, REG_ZR, REG_ZR, 0), "set zr zr 0"},
		{"dadd r0", MakeCode(OP_DADD, REG_R0, REG_ZR, 0), "dadd r0 zr 0"},
		{"swap s0 x1", MakeCode(OP_SWAP, REG_S0, REG_X1, 0), "swap s0 x1 0"},
		{"  dadd   r0 r1   3 ", MakeCode(OP_DADD, REG_R0, REG_R1, 3), "dadd r0 r1 3"},
		{"nop zr zr -1", MakeCode(OP_NOP, REG_ZR, REG_ZR, 0xffff), "nop zr zr -1"},
		{"ddiv f0 f1 32767", MakeCode(OP_DDIV, REG_F0, REG_F1, 0x7fff), "ddiv f0 f1 32767"},
		{"add p0 p1 -32768", MakeCode(OP_ADD, REG_P0, REG_P1, 0x8000), "add p0 p1 -32768"},
	}

	for _, entry := range table {
		code, err := ParseCode(entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.code, code, entry.line)
		assert.Equal(entry.text, code.String(), entry.line)

		again, err := ParseCode(code.String())
		assert.NoError(err, entry.line)
		assert.Equal(code, again, entry.line)
	}
}

func TestParseCodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		err  error
	}){
		{"jmp r0 r1 0", ErrMnemonicInvalid},
		{"add r9 r1 0", ErrMnemonicInvalid},
		{"add r0 q1 0", ErrMnemonicInvalid},
		{"add r0 r1 0 0", ErrOpcodeExtraArgs},
	}

	for _, entry := range table {
		_, err := ParseCode(entry.line)
		assert.True(errors.Is(err, entry.err), entry.line)
	}

	for _, line := range []string{"add r0 r1 x", "add r0 r1 32768", "add r0 r1 0x10"} {
		_, err := ParseCode(line)
		var pn ErrParseNumber
		assert.True(errors.As(err, &pn), line)
	}
}
