// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/tenjit/emulator"
	"github.com/ezrec/tenjit/memory"
)

func main() {
	var compile string
	var start string
	var limit int
	var dir string
	var verbose bool
	var listing bool

	flag.StringVar(&compile, "c", "", "assembly file to run")
	flag.StringVar(&start, "s", "", "octal start address (default: START, or the lowest address)")
	flag.IntVar(&limit, "n", emulator.TICK_LIMIT, "instruction limit, 0 for none")
	flag.StringVar(&dir, "d", "", "pebble directory holding persistent memory")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&listing, "l", false, "print a listing, do not execute")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	prog, err := emu.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		return
	}

	address, ok := prog.Start()
	if len(start) != 0 {
		value, err := strconv.ParseUint(start, 8, 18)
		if err != nil {
			log.Fatalf("-s %v: %v", start, err)
		}
		address = uint32(value)
	} else if !ok {
		log.Fatalf("%v: %v", compile, emulator.ErrNoStart)
	}

	var store *memory.Pebble
	if len(dir) != 0 {
		store, err = memory.OpenPebble(dir, nil)
		if err != nil {
			log.Fatalf("%v: %v", dir, err)
		}
		emu.Cpu.Memory = store
	}

	err = emu.Load(prog)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		log.Fatalf("%v: %v", compile, err)
	}

	emu.Mon.Tty.Input = os.Stdin
	emu.Mon.Tty.Output = os.Stdout

	err = emu.Run(address, limit)
	if err != nil && verbose {
		log.Print(emu.Cpu.String())
	}

	// The store must be closed to persist memory, even after a failure.
	if store != nil {
		close_err := store.Close()
		if err == nil && close_err != nil {
			log.Fatalf("%v: %v", dir, close_err)
		}
	}

	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
}
