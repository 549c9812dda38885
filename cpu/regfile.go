package cpu

import (
	"fmt"
)

// LANE_MAX is the widest register, in 64-bit lanes.
const LANE_MAX = 4

// SLICE_BITS is the width of a lane slice addressed by Set and Get.
const SLICE_BITS = 16

// Lanes is the contents of a register. Lanes beyond the register's width
// are always zero.
type Lanes [LANE_MAX]uint64

// Broadcast returns value replicated into every lane of reg.
func Broadcast(reg Register, value uint64) (lanes Lanes) {
	for n := range reg.Lanes() {
		lanes[n] = value
	}
	return
}

// RegisterFile is the register bank, indexed by register id.
type RegisterFile struct {
	bank [REG_COUNT]Lanes
}

// Reset zeros every register.
func (rf *RegisterFile) Reset() {
	clear(rf.bank[:])
}

// Read returns all lanes of a register.
func (rf *RegisterFile) Read(reg Register) (lanes Lanes) {
	reg &= 0xf
	if reg == REG_ZR {
		return
	}
	lanes = rf.bank[reg]
	return
}

// Write replaces all lanes of a register. Lanes past the register's width
// are dropped, and writes to the zero register are discarded.
func (rf *RegisterFile) Write(reg Register, lanes Lanes) {
	reg &= 0xf
	if reg == REG_ZR {
		return
	}
	width := reg.Lanes()
	clear(lanes[width:])
	rf.bank[reg] = lanes
}

// Clear zeros a register.
func (rf *RegisterFile) Clear(reg Register) {
	rf.Write(reg, Lanes{})
}

// Apply replaces each active lane of reg with fn(lane, value).
func (rf *RegisterFile) Apply(reg Register, fn func(lane int, value uint64) uint64) {
	lanes := rf.Read(reg)
	for n := range (reg & 0xf).Lanes() {
		lanes[n] = fn(n, lanes[n])
	}
	rf.Write(reg, lanes)
}

// Scalar returns the first lane of a register.
func (rf *RegisterFile) Scalar(reg Register) uint64 {
	return rf.Read(reg)[0]
}

// slicePos returns the lane and bit shift of a 16-bit slice selector.
// Selectors past the width of reg select lane 0, shift 0.
func slicePos(reg Register, sel uint8) (lane int, shift uint) {
	per_lane := 64 / SLICE_BITS
	if int(sel) >= (reg&0xf).Lanes()*per_lane {
		return
	}
	lane = int(sel) / per_lane
	shift = uint(SLICE_BITS * (int(sel) % per_lane))
	return
}

// Slice returns the 16-bit slice of reg addressed by sel.
func (rf *RegisterFile) Slice(reg Register, sel uint8) uint16 {
	lane, shift := slicePos(reg, sel)
	return uint16(rf.Read(reg)[lane] >> shift)
}

// SetSlice replaces the 16-bit slice of reg addressed by sel.
func (rf *RegisterFile) SetSlice(reg Register, sel uint8, value uint16) {
	lane, shift := slicePos(reg, sel)
	lanes := rf.Read(reg)
	lanes[lane] &= ^(uint64(0xffff) << shift)
	lanes[lane] |= uint64(value) << shift
	rf.Write(reg, lanes)
}

// String returns a dump of every register but zr.
func (rf *RegisterFile) String() (text string) {
	for reg := range Register(REG_COUNT) {
		if reg == REG_ZR {
			continue
		}
		lanes := rf.Read(reg)
		strval := ""
		for n := reg.Lanes() - 1; n >= 0; n-- {
			val := lanes[n]
			strval += fmt.Sprintf("%04X_%04X_%04X_%04X", val>>48, (val>>32)&0xffff, (val>>16)&0xffff, val&0xffff)
			if n > 0 {
				strval += ":"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}
	return
}
