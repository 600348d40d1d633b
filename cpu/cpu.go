package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tenjit/memory"
)

// Word is a 36-bit machine word.
type Word = memory.Word

// Memory is the backing store the CPU reads and writes through.
type Memory = memory.Memory

// MakeWord packs two 18-bit halves.
func MakeWord(left, right Word) Word {
	return memory.MakeWord(left, right)
}

const (
	WORD_MASK    = memory.WORD_MASK
	SIGN_BIT     = memory.SIGN_BIT
	LEFT         = memory.LEFT
	RIGHT        = memory.RIGHT
	ADDRESS_MASK = memory.ADDRESS_MASK
	MOBY         = memory.MOBY
	PAGE_SIZE    = memory.PAGE_SIZE

	FAST_REGISTERS = 16 // Accumulators aliased to addresses 0-15.
)

// Processor flags, as saved in the left half of a PC word.
const (
	FLAG_AROV = Word(0400000) // Arithmetic overflow.
	FLAG_CRY0 = Word(0200000) // Carry out of bit 0.
	FLAG_CRY1 = Word(0100000) // Carry out of bit 1.
	FLAG_FOV  = Word(0040000) // Floating overflow.
)

var _cpu_defines = map[string]string{
	"MOBY":      fmt.Sprintf("0%o", MOBY),
	"PAGE_SIZE": fmt.Sprintf("0%o", PAGE_SIZE),
	"FLAG_AROV": fmt.Sprintf("0%o", FLAG_AROV),
	"FLAG_CRY0": fmt.Sprintf("0%o", FLAG_CRY0),
	"FLAG_CRY1": fmt.Sprintf("0%o", FLAG_CRY1),
	"FLAG_FOV":  fmt.Sprintf("0%o", FLAG_FOV),
}

// Monitor handles monitor calls (opcodes 040-047).
type Monitor interface {
	// Trap is called during the operate stage. PC has already been
	// advanced past the calling instruction; AC and MA hold its decoded
	// fields.
	Trap(cpu *Cpu) error
}

// Cpu is the machine state of a single PDP-10 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory  Memory  // Backing store for addresses 16 and above.
	Monitor Monitor // Monitor call handler, or nil.

	PC    uint32 // Program counter.
	IR    Word   // Instruction register.
	AC    int    // Accumulator field of IR.
	Flags Word   // Processor flags.
	MA    uint32 // Effective address.
	AR    Word   // Arithmetic register.
	BR    Word   // Buffer register.
	MB    Word   // Memory buffer.

	FM [FAST_REGISTERS]Word // Fast registers.

	Ticks   int // Completed instructions.
	Decodes int // Words translated into uops.

	here uint32 // Address of the executing instruction.
	uops []Uop  // Translation cache, SLOT_COUNT per address.
}

// NewCpu creates a CPU backed by mem, with every page unmapped.
func NewCpu(mem Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: mem,
		uops:   make([]Uop, SLOT_COUNT*MOBY),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears the registers and statistics, and unmaps every page.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.PC = 0
	cpu.IR = 0
	cpu.AC = 0
	cpu.Flags = 0
	cpu.MA = 0
	cpu.AR = 0
	cpu.BR = 0
	cpu.MB = 0
	clear(cpu.FM[:])

	cpu.Ticks = 0
	cpu.Decodes = 0

	cpu.here = 0
	clear(cpu.uops)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   pc: %06o\n", cpu.PC)
	text += fmt.Sprintf("   ir: %v %v\n", cpu.IR, Instruction(cpu.IR))
	text += fmt.Sprintf("flags: %06o\n", uint64(cpu.Flags))
	text += fmt.Sprintf("   ma: %06o\n", cpu.MA)
	text += fmt.Sprintf("   ar: %v\n", cpu.AR)
	text += fmt.Sprintf("   br: %v\n", cpu.BR)
	for n := 0; n < FAST_REGISTERS; n += 4 {
		text += fmt.Sprintf("%5s: %v %v %v %v\n",
			fmt.Sprintf("%02o", n),
			cpu.FM[n], cpu.FM[n+1], cpu.FM[n+2], cpu.FM[n+3])
	}

	return
}

// Tick executes a single instruction.
//
// An indirect chain that never clears its indirect bit never completes,
// so neither does Tick.
func (cpu *Cpu) Tick() (err error) {
	cpu.here = cpu.PC
	defer func() {
		if err != nil {
			err = &ErrInstruction{Address: cpu.here, Word: cpu.IR, Err: err}
		}
	}()

	cpu.IR, err = cpu.ReadMemory(cpu.here)
	if err != nil {
		return
	}
	cpu.AC = int(cpu.IR>>AC_SHIFT) & AC_MASK

	if cpu.Verbose {
		log.Printf("%06o: %v %v", cpu.here, cpu.IR, Instruction(cpu.IR))
	}

	err = cpu.calculateEA()
	if err != nil {
		return
	}

	slot := SLOT_COUNT * cpu.here

	err = cpu.exec(cpu.uops[slot+SLOT_READ])
	if err != nil {
		return
	}

	cpu.PC = (cpu.PC + 1) & ADDRESS_MASK

	err = cpu.exec(cpu.uops[slot+SLOT_OPERATE])
	if err != nil {
		return
	}

	err = cpu.exec(cpu.uops[slot+SLOT_WRITE])
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Run executes from start until an instruction fails. ErrHalt, wrapped in
// an *ErrInstruction, is the normal way out.
func (cpu *Cpu) Run(start uint32) (err error) {
	cpu.PC = start & ADDRESS_MASK

	for {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}
}

// Skip advances PC past the next instruction.
func (cpu *Cpu) Skip() {
	cpu.PC = (cpu.PC + 1) & ADDRESS_MASK
}
