package cpu

import (
	"log"

	"github.com/ezrec/tenjit/memory"
)

// fillPage sets the first count slots of every word in the page containing
// address.
func (cpu *Cpu) fillPage(address uint32, uop Uop, count int) {
	page := memory.PageOf(address & ADDRESS_MASK)
	for n := range uint32(PAGE_SIZE) {
		slots := cpu.slots(page + n)
		for s := range count {
			slots[s] = uop
		}
	}
}

func (cpu *Cpu) slots(address uint32) []Uop {
	base := SLOT_COUNT * address
	return cpu.uops[base : base+SLOT_COUNT]
}

// PurePage marks the page containing address as pure: the first execution
// of any word in it decodes the entire page.
func (cpu *Cpu) PurePage(address uint32) {
	if cpu.Verbose {
		log.Printf("cpu: pure page %06o", memory.PageOf(address&ADDRESS_MASK))
	}
	cpu.fillPage(address, UOP_DECODE_PAGE, 1)
}

// UnpurePage marks the page containing address as unpure: each word is
// decoded on its own first execution.
func (cpu *Cpu) UnpurePage(address uint32) {
	if cpu.Verbose {
		log.Printf("cpu: unpure page %06o", memory.PageOf(address&ADDRESS_MASK))
	}
	cpu.fillPage(address, UOP_DECODE_WORD, 1)
}

// UnmappedPage makes every access to the page containing address fail.
func (cpu *Cpu) UnmappedPage(address uint32) {
	if cpu.Verbose {
		log.Printf("cpu: unmapped page %06o", memory.PageOf(address&ADDRESS_MASK))
	}
	cpu.fillPage(address, UOP_UNMAPPED, SLOT_COUNT)
}

// Mapped returns true if the word at address is in a pure or unpure page.
func (cpu *Cpu) Mapped(address uint32) bool {
	return cpu.uops[SLOT_COUNT*(address&ADDRESS_MASK)+SLOT_READ] != UOP_UNMAPPED
}

// Invalidate discards the translation of a mapped word, so it is decoded
// again on its next execution. Unmapped words stay unmapped.
func (cpu *Cpu) Invalidate(address uint32) {
	address &= ADDRESS_MASK
	if !cpu.Mapped(address) {
		return
	}
	cpu.uops[SLOT_COUNT*address+SLOT_READ] = UOP_DECODE_WORD
}

// Slots returns the cached uops at address.
func (cpu *Cpu) Slots(address uint32) (slots [SLOT_COUNT]Uop) {
	copy(slots[:], cpu.slots(address&ADDRESS_MASK))
	return
}

// decode installs the uops for word at address.
func (cpu *Cpu) decode(address uint32, word Word) {
	entry := DecodeWord(word)

	slots := cpu.slots(address)
	slots[SLOT_READ] = entry.Read
	slots[SLOT_OPERATE] = entry.Operate
	slots[SLOT_WRITE] = entry.Write

	cpu.Decodes++
}

// redispatch runs the now-decoded read uop of the executing instruction.
func (cpu *Cpu) redispatch() error {
	return cpu.exec(cpu.uops[SLOT_COUNT*cpu.here+SLOT_READ])
}

func (cpu *Cpu) uopUnmapped() error {
	return ErrUnmappedAccess(cpu.here)
}

func (cpu *Cpu) uopDecodeWord() (err error) {
	if cpu.Verbose {
		log.Printf("cpu: decode word %06o", cpu.here)
	}

	cpu.decode(cpu.here, cpu.IR)

	return cpu.redispatch()
}

func (cpu *Cpu) uopDecodePage() (err error) {
	page := memory.PageOf(cpu.here)
	if cpu.Verbose {
		log.Printf("cpu: decode page %06o", page)
	}

	for n := range uint32(PAGE_SIZE) {
		var word Word
		word, err = cpu.ReadMemory(page + n)
		if err != nil {
			return
		}
		cpu.decode(page+n, word)
	}

	return cpu.redispatch()
}

func (cpu *Cpu) uopUnimplemented() error {
	return ErrUnimplemented
}

func (cpu *Cpu) uopNop() error {
	return nil
}
