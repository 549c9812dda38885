package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFileZero(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	rf.Write(REG_ZR, Lanes{1, 2, 3, 4})
	rf.SetSlice(REG_ZR, 0, 0xffff)
	rf.Apply(REG_ZR, func(_ int, _ uint64) uint64 { return 7 })

	assert.Equal(Lanes{}, rf.Read(REG_ZR))
	assert.Equal(uint16(0), rf.Slice(REG_ZR, 0))
}

func TestRegisterFileWidth(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	rf.Write(REG_R0, Lanes{1, 2, 3, 4})
	rf.Write(REG_S0, Lanes{1, 2, 3, 4})
	rf.Write(REG_X0, Lanes{1, 2, 3, 4})

	assert.Equal(Lanes{1}, rf.Read(REG_R0))
	assert.Equal(Lanes{1, 2}, rf.Read(REG_S0))
	assert.Equal(Lanes{1, 2, 3, 4}, rf.Read(REG_X0))

	assert.Equal(Lanes{9, 9}, Broadcast(REG_S1, 9))
	assert.Equal(Lanes{9, 9, 9, 9}, Broadcast(REG_X1, 9))
	assert.Equal(Lanes{}, Broadcast(REG_ZR, 0))

	rf.Apply(REG_S0, func(lane int, value uint64) uint64 {
		return value + uint64(lane)*10
	})
	assert.Equal(Lanes{1, 12}, rf.Read(REG_S0))

	rf.Clear(REG_X0)
	assert.Equal(Lanes{}, rf.Read(REG_X0))

	rf.Reset()
	assert.Equal(Lanes{}, rf.Read(REG_R0))
	assert.Equal(Lanes{}, rf.Read(REG_S0))
}

func TestRegisterFileSlice(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		reg   Register
		sel   uint8
		lanes Lanes
	}){
		{REG_R0, 0, Lanes{0x0000_0000_0000_abcd}},
		{REG_R0, 1, Lanes{0x0000_0000_abcd_0000}},
		{REG_R0, 3, Lanes{0xabcd_0000_0000_0000}},
		{REG_R0, 4, Lanes{0x0000_0000_0000_abcd}},   // degrades
		{REG_R0, 255, Lanes{0x0000_0000_0000_abcd}}, // degrades
		{REG_S0, 4, Lanes{0, 0x0000_0000_0000_abcd}},
		{REG_S0, 7, Lanes{0, 0xabcd_0000_0000_0000}},
		{REG_S0, 8, Lanes{0x0000_0000_0000_abcd}}, // degrades
		{REG_X0, 13, Lanes{0, 0, 0, 0x0000_0000_abcd_0000}},
		{REG_X0, 16, Lanes{0x0000_0000_0000_abcd}}, // degrades
	}

	for _, entry := range table {
		rf := &RegisterFile{}
		rf.SetSlice(entry.reg, entry.sel, 0xabcd)
		assert.Equal(entry.lanes, rf.Read(entry.reg), "%v %v", entry.reg, entry.sel)
		assert.Equal(uint16(0xabcd), rf.Slice(entry.reg, entry.sel), "%v %v", entry.reg, entry.sel)
	}
}

func TestRegisterFileSliceReplace(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Write(REG_P0, Lanes{0xffff_ffff_ffff_ffff})

	// Setting a slice clears the previous contents of the slice only.
	rf.SetSlice(REG_P0, 2, 0x1234)
	assert.Equal(Lanes{0xffff_1234_ffff_ffff}, rf.Read(REG_P0))
	assert.Equal(uint16(0x1234), rf.Slice(REG_P0, 2))
	assert.Equal(uint16(0xffff), rf.Slice(REG_P0, 1))
	assert.Equal(uint64(0xffff_1234_ffff_ffff), rf.Scalar(REG_P0))
}

func TestRegisterFileString(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Write(REG_R1, Lanes{0x1234})
	rf.Write(REG_S2, Lanes{1, 2})

	text := rf.String()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Equal(REG_COUNT-1, len(lines))
	assert.NotContains(text, "zr")
	assert.Contains(text, "   r1: 0000_0000_0000_1234\n")
	assert.Contains(text, "   s2: 0000_0000_0000_0002:0000_0000_0000_0001\n")
}
