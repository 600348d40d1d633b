// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tenjit/cpu"
	"github.com/ezrec/tenjit/internal"
	"github.com/ezrec/tenjit/memory"
	"github.com/ezrec/tenjit/monitor"
)

const (
	TICK_LIMIT = 10_000_000 // Default instruction budget of a run.
)

var _emulator_defines = map[string]string{
	"FAST_REGISTERS": fmt.Sprintf("0%o", cpu.FAST_REGISTERS),
	"TICK_LIMIT":     fmt.Sprintf("%d.", TICK_LIMIT),
}

// Emulator state. CPU + memory + monitor.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Mon *monitor.Monitor // Monitor call handler of the job.
}

// NewEmulator creates a new emulator over an empty core. Cpu.Memory may be
// replaced before Load.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(memory.NewCore()),
		Program: &cpu.Program{},
		Mon:     &monitor.Monitor{},
	}

	emu.Cpu.Monitor = emu.Mon

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Mon.Defines(),
	)
}

// Assemble parses a program, with all of the defines predefined.
func (emu *Emulator) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(input)
	return
}

// Reset the processor and close all channels. Memory is untouched.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Mon.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Mon.Reset()
}

// Load resets the emulator, then writes the program into memory.
//
// Pages already populated in a store that can list them are mapped unpure.
// A page holding program words is mapped pure when every one of its words
// was assembled pure, else unpure. All other pages are unmapped.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Reset()
	emu.Program = prog

	pager, ok := emu.Cpu.Memory.(memory.Pager)
	if ok {
		for page := range pager.Pages() {
			emu.Cpu.UnpurePage(page)
		}
		err = pager.Err()
		if err != nil {
			return
		}
	}

	for address, word := range prog.Words() {
		if address < cpu.FAST_REGISTERS {
			emu.Cpu.FM[address] = word
			continue
		}
		err = emu.Cpu.Memory.SetWord(address, word)
		if err != nil {
			return
		}
	}

	for page, pure := range prog.Pages() {
		if pure {
			emu.Cpu.PurePage(page)
		} else {
			emu.Cpu.UnpurePage(page)
		}
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d words", len(prog.Locations))
	}

	return
}

// lineAt returns the source line assembled at address, or 0.
func (emu *Emulator) lineAt(address uint32) int {
	loc := emu.Program.Debug(address)
	if loc == nil {
		return 0
	}
	return loc.LineNo
}

// LineNo returns the source line at the program counter.
func (emu *Emulator) LineNo() int {
	return emu.lineAt(emu.Cpu.PC)
}

// Run executes from start until the program halts, fails, or has run limit
// instructions. A limit of zero or less is no limit. A halt returns nil.
func (emu *Emulator) Run(start uint32, limit int) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Mon.Verbose = emu.Verbose

	emu.Cpu.PC = start & cpu.ADDRESS_MASK

	defer func() {
		if err != nil {
			lineno := emu.LineNo()
			var in *cpu.ErrInstruction
			if errors.As(err, &in) {
				lineno = emu.lineAt(in.Address)
			}
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	for ticks := 0; limit <= 0 || ticks < limit; ticks++ {
		err = emu.Cpu.Tick()
		if errors.Is(err, cpu.ErrHalt) {
			if emu.Verbose {
				log.Printf("emulator: halt at %06o after %d ticks", emu.Cpu.PC, emu.Cpu.Ticks)
			}
			err = nil
			return
		}
		if err != nil {
			return
		}
	}

	err = ErrTickLimit
	return
}

// Start returns the start address of the loaded program.
func (emu *Emulator) Start() (start uint32, err error) {
	start, ok := emu.Program.Start()
	if !ok {
		err = ErrNoStart
	}
	return
}
