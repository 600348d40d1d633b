package cpu

import (
	"log"
)

// ReadMemory reads the word at address. Fast registers are read from the
// register bank; unmapped words fail with ErrUnmappedAccess.
func (cpu *Cpu) ReadMemory(address uint32) (value Word, err error) {
	address &= ADDRESS_MASK

	switch {
	case address < FAST_REGISTERS:
		value = cpu.FM[address]
	case !cpu.Mapped(address):
		err = ErrUnmappedAccess(address)
		return
	default:
		value, err = cpu.Memory.GetWord(address)
		if err != nil {
			return
		}
	}

	if cpu.Verbose {
		log.Printf("READ %06o %v", address, value)
	}

	return
}

// WriteMemory writes the word at address, discarding any translation of
// it. Unmapped words fail with ErrUnmappedAccess.
func (cpu *Cpu) WriteMemory(address uint32, value Word) (err error) {
	address &= ADDRESS_MASK
	value &= WORD_MASK

	if cpu.Verbose {
		log.Printf("WRITE %06o %v", address, value)
	}

	switch {
	case address < FAST_REGISTERS:
		cpu.FM[address] = value
	case !cpu.Mapped(address):
		err = ErrUnmappedAccess(address)
		return
	default:
		err = cpu.Memory.SetWord(address, value)
		if err != nil {
			return
		}
	}

	cpu.Invalidate(address)

	return
}

// setAc writes an accumulator.
func (cpu *Cpu) setAc(ac int, value Word) {
	ac &= AC_MASK
	cpu.FM[ac] = value & WORD_MASK
	cpu.Invalidate(uint32(ac))
}
