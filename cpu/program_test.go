package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	words := []uint32{0x0005_0101, 0x0003_111a, 0x0000_00ff}

	prog := NewProgram(words)
	assert.Equal(3, len(prog.Opcodes))
	for ip, op := range prog.Opcodes {
		assert.Equal(ip, op.Ip)
		assert.Equal(0, op.LineNo)
		assert.Equal(DecodeCode(words[ip]), op.Code)
	}

	assert.Equal(words, prog.Binary())
	assert.Equal([]Code{
		MakeCode(OP_SET, REG_R0, REG_ZR, 5),
		MakeCode(OP_DADD, REG_R0, REG_R0, 3),
		DecodeCode(0xff),
	}, prog.Code())

	empty := NewProgram(nil)
	assert.Equal(0, len(empty.Code()))
	assert.Nil(empty.Binary())
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"; header",
		"set r0 zr 5",
		"",
		"dadd r0 r0 3",
	}, "\n")))
	assert.NoError(err)

	dbg := prog.Debug(0)
	assert.NotNil(dbg)
	assert.Equal(2, dbg.LineNo)

	dbg = prog.Debug(1)
	assert.NotNil(dbg)
	assert.Equal(4, dbg.LineNo)

	assert.Nil(prog.Debug(2))
	assert.Nil(prog.Debug(-1))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram([]uint32{0x0000_0001, 0x0000_0002, 0x0000_0003})

	ips := []int{}
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		if code.Op == OP_GET {
			break
		}
	}
	assert.Equal([]int{0, 1}, ips)
}
