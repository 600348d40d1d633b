package cpu

import (
	"github.com/ezrec/tenjit/memory"
)

// Operand read uops.

func (cpu *Cpu) uopReadImmediate() error {
	cpu.AR = Word(cpu.MA)
	return nil
}

func (cpu *Cpu) uopReadMemory() (err error) {
	cpu.AR, err = cpu.ReadMemory(cpu.MA)
	cpu.BR = 0
	return
}

func (cpu *Cpu) uopReadAc() error {
	cpu.AR = cpu.FM[cpu.AC]
	return nil
}

func (cpu *Cpu) uopReadAcImmediate() error {
	cpu.AR = cpu.FM[cpu.AC]
	cpu.BR = Word(cpu.MA)
	return nil
}

func (cpu *Cpu) uopReadBoth() (err error) {
	cpu.AR = cpu.FM[cpu.AC]
	cpu.BR, err = cpu.ReadMemory(cpu.MA)
	return
}

func (cpu *Cpu) uopReadSwapped() (err error) {
	cpu.AR, err = cpu.ReadMemory(cpu.MA)
	cpu.BR = cpu.FM[cpu.AC]
	return
}

func (cpu *Cpu) uopReadSelf() (err error) {
	cpu.AR, err = cpu.ReadMemory(cpu.MA)
	cpu.BR = cpu.AR
	return
}

// Write back uops.

func (cpu *Cpu) uopWriteAc() error {
	cpu.setAc(cpu.AC, cpu.AR)
	return nil
}

func (cpu *Cpu) uopWriteAcnz() error {
	if cpu.AC != 0 {
		cpu.setAc(cpu.AC, cpu.AR)
	}
	return nil
}

func (cpu *Cpu) uopWriteMemory() error {
	return cpu.WriteMemory(cpu.MA, cpu.AR)
}

func (cpu *Cpu) uopWriteBoth() error {
	cpu.setAc(cpu.AC, cpu.AR)
	return cpu.WriteMemory(cpu.MA, cpu.AR)
}

func (cpu *Cpu) uopWriteAcMemory() error {
	cpu.setAc(cpu.AC, cpu.AR)
	return cpu.WriteMemory(cpu.MA, cpu.BR)
}

func (cpu *Cpu) uopWriteSame() error {
	if cpu.AC != 0 {
		cpu.setAc(cpu.AC, cpu.AR)
	}
	return cpu.WriteMemory(cpu.MA, cpu.AR)
}

// Operate uops.

func (cpu *Cpu) uopMuuo() error {
	if cpu.Monitor == nil {
		return ErrTrap
	}
	return cpu.Monitor.Trap(cpu)
}

func (cpu *Cpu) uopMovs() error {
	cpu.AR = cpu.AR.Swap()
	return nil
}

func (cpu *Cpu) uopMovn() error {
	var flags Word
	cpu.AR, flags = negate(cpu.AR)
	cpu.Flags |= flags
	return nil
}

func (cpu *Cpu) uopMovm() error {
	if cpu.AR.Negative() {
		return cpu.uopMovn()
	}
	return nil
}

func (cpu *Cpu) uopExch() error {
	cpu.AR, cpu.BR = cpu.BR, cpu.AR
	return nil
}

func (cpu *Cpu) uopJrst() error {
	cpu.PC = cpu.MA
	if cpu.AC&4 != 0 {
		return ErrHalt
	}
	return nil
}

func (cpu *Cpu) uopJfcl() error {
	mask := Word(cpu.AC) << 14
	if cpu.Flags&mask != 0 {
		cpu.Flags &^= mask
		cpu.PC = cpu.MA
	}
	return nil
}

// pcWord is the flags,,PC word saved by subroutine calls.
func (cpu *Cpu) pcWord() Word {
	return memory.MakeWord(cpu.Flags, Word(cpu.PC))
}

func (cpu *Cpu) uopPushj() (err error) {
	cpu.AR = stepPointer(cpu.AR, false)
	err = cpu.WriteMemory(uint32(cpu.AR.Right()), cpu.pcWord())
	if err != nil {
		return
	}
	cpu.PC = cpu.MA
	return
}

func (cpu *Cpu) uopPush() error {
	cpu.AR = stepPointer(cpu.AR, false)
	return cpu.WriteMemory(uint32(cpu.AR.Right()), cpu.BR)
}

func (cpu *Cpu) uopPop() (err error) {
	cpu.MB, err = cpu.ReadMemory(uint32(cpu.AR.Right()))
	if err != nil {
		return
	}
	err = cpu.WriteMemory(cpu.MA, cpu.MB)
	if err != nil {
		return
	}
	cpu.AR = stepPointer(cpu.AR, true)
	return
}

func (cpu *Cpu) uopPopj() (err error) {
	cpu.MB, err = cpu.ReadMemory(uint32(cpu.AR.Right()))
	if err != nil {
		return
	}
	cpu.PC = uint32(cpu.MB.Right())
	cpu.Flags = cpu.MB.Left()
	cpu.AR = stepPointer(cpu.AR, true)
	return
}

func (cpu *Cpu) uopJsr() (err error) {
	err = cpu.WriteMemory(cpu.MA, cpu.pcWord())
	if err != nil {
		return
	}
	cpu.PC = (cpu.MA + 1) & ADDRESS_MASK
	return
}

func (cpu *Cpu) uopJsp() error {
	cpu.AR = cpu.pcWord()
	cpu.PC = cpu.MA
	return nil
}

func (cpu *Cpu) uopAdd() error {
	var flags Word
	cpu.AR, flags = add(cpu.AR, cpu.BR)
	cpu.Flags |= flags
	return nil
}

func (cpu *Cpu) uopSub() error {
	var flags Word
	cpu.AR, flags = sub(cpu.AR, cpu.BR)
	cpu.Flags |= flags
	return nil
}

// condition of the executing instruction.
func (cpu *Cpu) condition() Condition {
	return Condition(cpu.IR>>OPCODE_SHIFT) & 7
}

func (cpu *Cpu) uopSkip() error {
	if cpu.condition().Test(cpu.AR, cpu.BR) {
		cpu.Skip()
	}
	return nil
}

func (cpu *Cpu) uopJump() error {
	if cpu.condition().Test(cpu.AR, 0) {
		cpu.PC = cpu.MA
	}
	return nil
}

// count adds delta to AR, and returns the condition's verdict on the
// result.
func (cpu *Cpu) count(delta Word) bool {
	var flags Word
	cpu.AR, flags = add(cpu.AR, delta)
	cpu.Flags |= flags
	return cpu.condition().Test(cpu.AR, 0)
}

func (cpu *Cpu) uopAoj() error {
	if cpu.count(1) {
		cpu.PC = cpu.MA
	}
	return nil
}

func (cpu *Cpu) uopAos() error {
	if cpu.count(1) {
		cpu.Skip()
	}
	return nil
}

func (cpu *Cpu) uopSoj() error {
	if cpu.count(WORD_MASK) {
		cpu.PC = cpu.MA
	}
	return nil
}

func (cpu *Cpu) uopSos() error {
	if cpu.count(WORD_MASK) {
		cpu.Skip()
	}
	return nil
}

// Boolean functions. AR holds the accumulator, BR the memory operand,
// except for the functions of a single operand, which find it in AR.

func (cpu *Cpu) uopSetz() error {
	cpu.AR = 0
	return nil
}

func (cpu *Cpu) uopAnd() error {
	cpu.AR &= cpu.BR
	return nil
}

func (cpu *Cpu) uopAndca() error {
	cpu.AR = ^cpu.AR & cpu.BR & WORD_MASK
	return nil
}

func (cpu *Cpu) uopAndcm() error {
	cpu.AR = cpu.AR &^ cpu.BR
	return nil
}

func (cpu *Cpu) uopXor() error {
	cpu.AR ^= cpu.BR
	return nil
}

func (cpu *Cpu) uopIor() error {
	cpu.AR |= cpu.BR
	return nil
}

func (cpu *Cpu) uopAndcb() error {
	cpu.AR = ^(cpu.AR | cpu.BR) & WORD_MASK
	return nil
}

func (cpu *Cpu) uopEqv() error {
	cpu.AR = ^(cpu.AR ^ cpu.BR) & WORD_MASK
	return nil
}

func (cpu *Cpu) uopSetc() error {
	cpu.AR = ^cpu.AR & WORD_MASK
	return nil
}

func (cpu *Cpu) uopOrca() error {
	cpu.AR = (^cpu.AR | cpu.BR) & WORD_MASK
	return nil
}

func (cpu *Cpu) uopOrcm() error {
	cpu.AR = (cpu.AR | ^cpu.BR) & WORD_MASK
	return nil
}

func (cpu *Cpu) uopOrcb() error {
	cpu.AR = ^(cpu.AR & cpu.BR) & WORD_MASK
	return nil
}

func (cpu *Cpu) uopSeto() error {
	cpu.AR = WORD_MASK
	return nil
}

// Half-word hold forms. BR is the source, AR the destination.

func (cpu *Cpu) uopHll() error {
	cpu.AR = cpu.BR&LEFT | cpu.AR&RIGHT
	return nil
}

func (cpu *Cpu) uopHrl() error {
	cpu.AR = memory.MakeWord(cpu.BR.Right(), cpu.AR.Right())
	return nil
}

func (cpu *Cpu) uopHrr() error {
	cpu.AR = cpu.AR&LEFT | cpu.BR&RIGHT
	return nil
}

func (cpu *Cpu) uopHlr() error {
	cpu.AR = memory.MakeWord(cpu.AR.Left(), cpu.BR.Left())
	return nil
}

// Half-word forms that clear (Z), set (O), or sign-extend into (E) the
// other half. The source is AR.

// extend returns all ones when half is negative as an 18-bit number.
func extend(half Word) Word {
	if half&0400000 != 0 {
		return RIGHT
	}
	return 0
}

func (cpu *Cpu) uopHllz() error {
	cpu.AR = memory.MakeWord(cpu.AR.Left(), 0)
	return nil
}

func (cpu *Cpu) uopHrlz() error {
	cpu.AR = memory.MakeWord(cpu.AR.Right(), 0)
	return nil
}

func (cpu *Cpu) uopHrrz() error {
	cpu.AR = memory.MakeWord(0, cpu.AR.Right())
	return nil
}

func (cpu *Cpu) uopHlrz() error {
	cpu.AR = memory.MakeWord(0, cpu.AR.Left())
	return nil
}

func (cpu *Cpu) uopHllo() error {
	cpu.AR = memory.MakeWord(cpu.AR.Left(), RIGHT)
	return nil
}

func (cpu *Cpu) uopHrlo() error {
	cpu.AR = memory.MakeWord(cpu.AR.Right(), RIGHT)
	return nil
}

func (cpu *Cpu) uopHrro() error {
	cpu.AR = memory.MakeWord(RIGHT, cpu.AR.Right())
	return nil
}

func (cpu *Cpu) uopHlro() error {
	cpu.AR = memory.MakeWord(RIGHT, cpu.AR.Left())
	return nil
}

func (cpu *Cpu) uopHlle() error {
	half := cpu.AR.Left()
	cpu.AR = memory.MakeWord(half, extend(half))
	return nil
}

func (cpu *Cpu) uopHrle() error {
	half := cpu.AR.Right()
	cpu.AR = memory.MakeWord(half, extend(half))
	return nil
}

func (cpu *Cpu) uopHrre() error {
	half := cpu.AR.Right()
	cpu.AR = memory.MakeWord(extend(half), half)
	return nil
}

func (cpu *Cpu) uopHlre() error {
	half := cpu.AR.Left()
	cpu.AR = memory.MakeWord(extend(half), half)
	return nil
}

// Test instructions, 600-677. The opcode selects:
//   - bit 0: swap the mask halves (L and S forms),
//   - bits 1-2: skip never, if all masked bits are zero, always, or if
//     any masked bit is set,
//   - bit 3: mask from E (R, L) or C(E) (D, S), already loaded into BR,
//   - bits 4-5: leave, zero, complement, or set the masked bits.
const (
	TEST_SIDE_SWAP  = 01
	TEST_SKIP_SHIFT = 1
	TEST_MODE_SHIFT = 4
)

const (
	TEST_SKIP_NEVER  = 0
	TEST_SKIP_E      = 1
	TEST_SKIP_ALWAYS = 2
	TEST_SKIP_N      = 3
)

const (
	TEST_MODE_N = 0
	TEST_MODE_Z = 1
	TEST_MODE_C = 2
	TEST_MODE_O = 3
)

func (cpu *Cpu) uopTest() error {
	opcode := int(cpu.IR>>OPCODE_SHIFT) & OPCODE_MASK

	mask := cpu.BR
	if opcode&TEST_SIDE_SWAP != 0 {
		mask = mask.Swap()
	}

	selected := cpu.AR & mask

	var skip bool
	switch (opcode >> TEST_SKIP_SHIFT) & 3 {
	case TEST_SKIP_NEVER:
		skip = false
	case TEST_SKIP_E:
		skip = selected == 0
	case TEST_SKIP_ALWAYS:
		skip = true
	case TEST_SKIP_N:
		skip = selected != 0
	}

	switch (opcode >> TEST_MODE_SHIFT) & 3 {
	case TEST_MODE_Z:
		cpu.AR &^= mask
	case TEST_MODE_C:
		cpu.AR ^= mask
	case TEST_MODE_O:
		cpu.AR |= mask
	}

	if skip {
		cpu.Skip()
	}

	return nil
}
