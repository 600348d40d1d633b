package monitor

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tenjit/cpu"
	"github.com/ezrec/tenjit/memory"
)

// Monitor call opcodes.
const (
	OP_IOT    = 040
	OP_OPEN   = 041
	OP_OPER   = 042
	OP_CALL   = 043
	OP_USET   = 044
	OP_BREAK  = 045
	OP_STATUS = 046
	OP_ACCESS = 047
)

const (
	CHANNELS = 16 // I/O channels per job.

	MODE_OUTPUT = 1 // .OPEN mode bit: output.

	BREAK_HALT = 016 // .BREAK accumulator that halts the job.
	OPER_CLOSE = 7   // .OPER address that closes a channel.

	IOT_EOF = memory.Word(0777777000003) // Read at end of input: -1,,^C.
)

var callName = map[int]string{
	OP_IOT:    ".IOT",
	OP_OPEN:   ".OPEN",
	OP_OPER:   ".OPER",
	OP_CALL:   ".CALL",
	OP_USET:   ".USET",
	OP_BREAK:  ".BREAK",
	OP_STATUS: ".STATUS",
	OP_ACCESS: ".ACCESS",
}

var _monitor_defines = map[string]string{
	".VALUE":  opdef(OP_BREAK, BREAK_HALT, 0),
	".CLOSE":  opdef(OP_OPER, 0, OPER_CLOSE),
	".UAI":    "0",
	".UAO":    fmt.Sprintf("%o", MODE_OUTPUT),
	"DEV_TTY": fmt.Sprintf("0%o", Sixbit("TTY").Left()),
}

func init() {
	for opcode, name := range callName {
		_monitor_defines[name] = opdef(opcode, 0, 0)
	}
}

// opdef is the assembler text of an instruction word.
func opdef(opcode int, ac int, y uint32) string {
	return fmt.Sprintf("0%o", uint64(cpu.MakeInstruction(opcode, ac, false, 0, y).Word()))
}

// channel is the state of one I/O channel.
type channel struct {
	open   bool
	output bool
}

// Monitor is the monitor of a single job.
type Monitor struct {
	Verbose bool // Set to enable verbose logging.
	Tty     Tty  // Console device.

	channel [CHANNELS]channel
}

var _ cpu.Monitor = (*Monitor)(nil)

// Defines returns the monitor call definitions, for the assembler.
func (mon *Monitor) Defines() iter.Seq2[string, string] {
	return maps.All(_monitor_defines)
}

// Reset closes all channels.
func (mon *Monitor) Reset() {
	clear(mon.channel[:])
}

// Trap performs the monitor call in the CPU's instruction register.
func (mon *Monitor) Trap(c *cpu.Cpu) (err error) {
	opcode := cpu.Instruction(c.IR).Opcode()
	name, ok := callName[opcode]
	if !ok {
		name = cpu.Mnemonic(opcode)
	}

	if mon.Verbose {
		log.Printf("monitor: %v %o,%06o", name, c.AC, c.MA)
	}

	switch opcode {
	case OP_IOT:
		err = mon.iot(c)
	case OP_OPEN:
		err = mon.open(c)
	case OP_OPER:
		err = mon.oper(c)
	case OP_BREAK:
		if c.AC == BREAK_HALT {
			return cpu.ErrHalt
		}
		err = ErrUnsupported
	default:
		err = ErrUnsupported
	}

	if err != nil {
		err = &ErrCall{Name: name, Channel: c.AC, Err: err}
	}

	return
}

// open opens the channel in AC on the device named by C(E), skipping on
// success. An unknown device leaves the channel closed and does not skip.
func (mon *Monitor) open(c *cpu.Cpu) (err error) {
	block, err := c.ReadMemory(c.MA)
	if err != nil {
		return
	}

	ch := &mon.channel[c.AC]
	*ch = channel{}

	device := SixbitString(block.Right() << 18)
	if device != "TTY" {
		if mon.Verbose {
			log.Printf("monitor: no device %q", device)
		}
		return
	}

	ch.open = true
	ch.output = block.Left()&MODE_OUTPUT != 0

	c.Skip()
	return
}

// iot moves one character between C(E) and the channel in AC.
func (mon *Monitor) iot(c *cpu.Cpu) (err error) {
	ch := mon.channel[c.AC]
	if !ch.open {
		err = ErrChannelClosed
		return
	}

	if ch.output {
		var value memory.Word
		value, err = c.ReadMemory(c.MA)
		if err != nil {
			return
		}
		err = mon.Tty.WriteByte(byte(value & 0177))
		return
	}

	value := IOT_EOF
	in, err := mon.Tty.ReadByte()
	switch {
	case errors.Is(err, io.EOF):
		err = nil
	case err != nil:
		return
	default:
		value = memory.Word(in)
	}

	err = c.WriteMemory(c.MA, value)
	return
}

// oper performs the .OPER function selected by E.
func (mon *Monitor) oper(c *cpu.Cpu) (err error) {
	switch c.MA {
	case OPER_CLOSE:
		mon.channel[c.AC] = channel{}
	default:
		err = ErrUnsupported
	}
	return
}
