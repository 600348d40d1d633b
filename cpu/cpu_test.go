package cpu

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/tenjit/memory"
)

// op builds an instruction word with no index or indirection.
func op(opcode int, ac int, y uint32) Word {
	return MakeInstruction(opcode, ac, false, 0, y).Word()
}

// newMachine builds a CPU over an empty core.
func newMachine() (cpu *Cpu, core *memory.Core) {
	core = memory.NewCore()
	cpu = NewCpu(core)
	return
}

// load stores words at address, and marks the page unpure.
func load(t *testing.T, cpu *Cpu, core *memory.Core, address uint32, words ...Word) {
	require.NoError(t, core.Load(address, words...))
	cpu.UnpurePage(address)
}

// state is the register file visible to a program.
type state struct {
	PC    uint32
	Flags Word
	FM    [FAST_REGISTERS]Word
}

func snapshot(cpu *Cpu) state {
	return state{PC: cpu.PC, Flags: cpu.Flags, FM: cpu.FM}
}

// countingMemory counts backing store reads.
type countingMemory struct {
	memory.Core
	reads int
}

func (cm *countingMemory) GetWord(address uint32) (Word, error) {
	cm.reads++
	return cm.Core.GetWord(address)
}

func TestUopString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unmapped", UOP_UNMAPPED.String())
	assert.Equal("read_memory", UOP_READ_MEMORY.String())
	assert.Equal("write_ac_memory", UOP_WRITE_AC_MEMORY.String())
	assert.Equal("test", UOP_TEST.String())
	assert.Equal("Uop(999)", Uop(999).String())

	for uop, handler := range uopHandler {
		assert.NotNil(handler, Uop(uop).String())
	}
}

func TestDecodeTable(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode int
		decode Decode
	}){
		{0040, Decode{UOP_READ_IMMEDIATE, UOP_MUUO, UOP_NOP}},
		{0200, Decode{UOP_READ_MEMORY, UOP_MOVE, UOP_WRITE_AC}},
		{0201, Decode{UOP_READ_IMMEDIATE, UOP_MOVE, UOP_WRITE_AC}},
		{0202, Decode{UOP_READ_AC, UOP_MOVE, UOP_WRITE_MEMORY}},
		{0203, Decode{UOP_READ_MEMORY, UOP_MOVE, UOP_WRITE_SAME}},
		{0220, Decode{UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED}},
		{0250, Decode{UOP_READ_BOTH, UOP_EXCH, UOP_WRITE_AC_MEMORY}},
		{0273, Decode{UOP_READ_BOTH, UOP_ADD, UOP_WRITE_BOTH}},
		{0307, Decode{UOP_READ_AC_IMMEDIATE, UOP_SKIP, UOP_NOP}},
		{0332, Decode{UOP_READ_MEMORY, UOP_SKIP, UOP_WRITE_ACNZ}},
		{0414, Decode{UOP_READ_MEMORY, UOP_SETM, UOP_WRITE_AC}},
		{0502, Decode{UOP_READ_SWAPPED, UOP_HLL, UOP_WRITE_MEMORY}},
		{0503, Decode{UOP_READ_SELF, UOP_HLL, UOP_WRITE_SAME}},
		{0507, Decode{UOP_READ_SELF, UOP_HRL, UOP_WRITE_SAME}},
		{0547, Decode{UOP_READ_SELF, UOP_HLR, UOP_WRITE_SAME}},
		{0551, Decode{UOP_READ_IMMEDIATE, UOP_HRRZ, UOP_WRITE_AC}},
		{0600, Decode{UOP_READ_AC_IMMEDIATE, UOP_TEST, UOP_NOP}},
		{0671, Decode{UOP_READ_BOTH, UOP_TEST, UOP_WRITE_AC}},
		{0700, Decode{UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED}},
	}

	for _, entry := range table {
		assert.Equal(entry.decode, DecodeOpcode(entry.opcode), "%03o", entry.opcode)
	}

	// Opcode 0777 selects its operate uop by I/O sub-function.
	for sub := range 4 {
		word := op(OPCODE_IOT, sub, 0)
		assert.Equal(UOP_UNIMPLEMENTED, DecodeWord(word).Operate)
	}

	// Nothing decodes to a filler.
	for opcode := range OPCODE_MASK + 1 {
		entry := DecodeOpcode(opcode)
		assert.NotEqual(UOP_UNMAPPED, entry.Read, "%03o", opcode)
		assert.NotEqual(UOP_DECODE_WORD, entry.Read, "%03o", opcode)
		assert.NotEqual(UOP_DECODE_PAGE, entry.Read, "%03o", opcode)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100, op(0201, 1, 1))

	assert.Equal([SLOT_COUNT]Uop{UOP_DECODE_WORD, UOP_UNMAPPED, UOP_UNMAPPED}, cpu.Slots(0100))

	for range 3 {
		cpu.PC = 0100
		assert.NoError(cpu.Tick())
		assert.Equal(1, cpu.Decodes)
		assert.Equal([SLOT_COUNT]Uop{UOP_READ_IMMEDIATE, UOP_MOVE, UOP_WRITE_AC}, cpu.Slots(0100))
	}

	assert.Equal(3, cpu.Ticks)
	assert.Equal(Word(1), cpu.FM[1])
}

func TestWriteInvalidation(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 02000, op(0201, 1, 1), op(0201, 2, 2), op(0201, 3, 3))

	cpu.PC = 02000
	for range 3 {
		assert.NoError(cpu.Tick())
	}

	before := [3][SLOT_COUNT]Uop{cpu.Slots(02000), cpu.Slots(02001), cpu.Slots(02002)}

	assert.NoError(cpu.WriteMemory(02001, op(0201, 2, 5)))

	assert.Equal(before[0], cpu.Slots(02000))
	assert.Equal(before[2], cpu.Slots(02002))

	after := cpu.Slots(02001)
	assert.Equal(UOP_DECODE_WORD, after[SLOT_READ])
	assert.Equal(before[1][SLOT_OPERATE], after[SLOT_OPERATE])
	assert.Equal(before[1][SLOT_WRITE], after[SLOT_WRITE])

	cpu.PC = 02001
	assert.NoError(cpu.Tick())
	assert.Equal(Word(5), cpu.FM[2])
	assert.Equal(4, cpu.Decodes)
}

func TestPurePage(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	require.NoError(t, core.Load(02000,
		op(0201, 1, 5), // MOVEI 1,5
		op(0271, 1, 3), // ADDI 1,3
		op(0254, 4, 0), // JRST 4,
	))
	cpu.PurePage(02000)

	for address := uint32(02000); address < 04000; address++ {
		assert.Equal(UOP_DECODE_PAGE, cpu.Slots(address)[SLOT_READ])
	}

	err := cpu.Run(02000)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(Word(010), cpu.FM[1])
	assert.Equal(PAGE_SIZE, cpu.Decodes)
	assert.Equal(2, cpu.Ticks)

	for address := uint32(02000); address < 04000; address++ {
		read := cpu.Slots(address)[SLOT_READ]
		assert.NotEqual(UOP_DECODE_PAGE, read)
		assert.NotEqual(UOP_DECODE_WORD, read)
		assert.NotEqual(UOP_UNMAPPED, read)
	}

	// A write demotes only the written word.
	assert.NoError(cpu.WriteMemory(02001, op(0275, 1, 3)))
	assert.Equal(UOP_DECODE_WORD, cpu.Slots(02001)[SLOT_READ])
	assert.Equal(UOP_READ_IMMEDIATE, cpu.Slots(02000)[SLOT_READ])
	assert.Equal(UOP_READ_IMMEDIATE, cpu.Slots(02002)[SLOT_READ])

	err = cpu.Run(02000)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(Word(2), cpu.FM[1])
	assert.Equal(PAGE_SIZE+1, cpu.Decodes)
}

func TestMoveStep(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100, Word(0200100000020)) // MOVE 2,20
	assert.NoError(core.SetWord(020, 0123456654321))

	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal(Word(0123456654321), cpu.FM[2])
	assert.Equal(uint32(0101), cpu.PC)
	assert.Equal(1, cpu.Ticks)
}

func TestAddSequence(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		ac     Word
		first  Word
		second Word
		sum    Word
	}){
		{"simple", 1, WORD_MASK, 5, 5},
		{"carry", WORD_MASK, WORD_MASK, 2, 0},
		{"overflow", 0377777777777, 1, 0, SIGN_BIT},
	}

	for _, entry := range table {
		cpu, core := newMachine()
		load(t, cpu, core, 0100,
			op(0270, 3, 0200), // 0100: ADD 3,200
			op(0270, 3, 0201), // 0101: ADD 3,201
			op(0254, 4, 0),    // 0102: JRST 4,
		)
		load(t, cpu, core, 0200, entry.first, entry.second)
		cpu.FM[3] = entry.ac

		err := cpu.Run(0100)
		assert.ErrorIs(err, ErrHalt, entry.name)
		assert.Equal(entry.sum, cpu.FM[3], entry.name)
		assert.Equal(2, cpu.Ticks, entry.name)
	}
}

func TestSelfModifying(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100,
		op(0201, 1, 1),    // 0100: MOVEI 1,1
		op(0336, 0, 2),    // 0101: SKIPN 2
		op(0254, 0, 0104), // 0102: JRST 0104
		op(0254, 4, 0),    // 0103: JRST 4,
		op(0200, 3, 0110), // 0104: MOVE 3,0110
		op(0202, 3, 0100), // 0105: MOVEM 3,0100
		op(0474, 2, 0),    // 0106: SETO 2,
		op(0254, 0, 0100), // 0107: JRST 0100
		op(0201, 1, 7),    // 0110: MOVEI 1,7
	)

	err := cpu.Run(0100)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(Word(7), cpu.FM[1])
	assert.Equal(op(0201, 1, 7), cpu.FM[3])

	value, err := core.GetWord(0100)
	assert.NoError(err)
	assert.Equal(op(0201, 1, 7), value)
}

func TestAccumulatorCode(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100,
		op(0200, 2, 0110), // 0100: MOVE 2,0110
		op(0202, 2, 5),    // 0101: MOVEM 2,5
		op(0254, 0, 5),    // 0102: JRST 5
		0, 0, 0, 0, 0,
		op(0201, 1, 7), // 0110: MOVEI 1,7
	)

	cpu.FM[5] = op(0201, 1, 3)
	cpu.FM[6] = op(0254, 4, 0)

	cpu.PC = 5
	assert.NoError(cpu.Tick())
	assert.Equal(Word(3), cpu.FM[1])
	assert.Equal(UOP_READ_IMMEDIATE, cpu.Slots(5)[SLOT_READ])

	err := cpu.Run(0100)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(Word(7), cpu.FM[1])
}

func TestUnmapped(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100,
		op(0254, 0, 02000), // 0100: JRST 02000
		op(0200, 1, 02000), // 0101: MOVE 1,02000
		op(0202, 1, 02000), // 0102: MOVEM 1,02000
	)

	// Executing an unmapped word.
	err := cpu.Run(0100)
	assert.ErrorIs(err, ErrUnmapped)
	assert.ErrorIs(err, ErrUnmappedAccess(02000))
	var ei *ErrInstruction
	assert.True(errors.As(err, &ei))
	assert.Equal(uint32(02000), ei.Address)

	// Reading an unmapped word.
	cpu.PC = 0101
	err = cpu.Tick()
	assert.ErrorIs(err, ErrUnmapped)
	assert.True(errors.As(err, &ei))
	assert.Equal(uint32(0101), ei.Address)
	assert.Equal(uint32(0101), cpu.PC)

	// Writing an unmapped word does not map it.
	cpu.FM[1] = op(0201, 1, 1)
	cpu.PC = 0102
	err = cpu.Tick()
	assert.ErrorIs(err, ErrUnmapped)
	assert.Equal([SLOT_COUNT]Uop{UOP_UNMAPPED, UOP_UNMAPPED, UOP_UNMAPPED}, cpu.Slots(02000))
	value, err := core.GetWord(02000)
	assert.NoError(err)
	assert.Equal(Word(0), value)

	cpu.Invalidate(02000)
	assert.Equal(UOP_UNMAPPED, cpu.Slots(02000)[SLOT_READ])

	// Fast registers are always accessible.
	assert.NoError(cpu.WriteMemory(3, 042))
	value, err = cpu.ReadMemory(3)
	assert.NoError(err)
	assert.Equal(Word(042), value)

	// Unmapping discards translations.
	cpu.UnmappedPage(0100)
	assert.Equal([SLOT_COUNT]Uop{UOP_UNMAPPED, UOP_UNMAPPED, UOP_UNMAPPED}, cpu.Slots(0100))
	_, err = cpu.ReadMemory(0100)
	assert.ErrorIs(err, ErrUnmapped)
}

func TestIndirection(t *testing.T) {
	assert := assert.New(t)

	for _, hops := range []int{1, 2, 5, 100} {
		cm := &countingMemory{}
		cpu := NewCpu(cm)
		cpu.UnpurePage(0)

		for n := range hops - 1 {
			address := uint32(0100 + n)
			assert.NoError(cm.SetWord(address, MakeInstruction(0, 0, true, 0, address+1).Word()))
		}
		assert.NoError(cm.SetWord(uint32(0100+hops-1), MakeInstruction(0, 0, false, 0, 0300).Word()))

		cpu.IR = MakeInstruction(0200, 1, true, 0, 0100).Word()
		cm.reads = 0
		assert.NoError(cpu.calculateEA())
		assert.Equal(uint32(0300), cpu.MA, "hops %d", hops)
		assert.Equal(hops, cm.reads, "hops %d", hops)
	}
}

func TestIndexing(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newMachine()
	cpu.UnpurePage(0)

	table := [](struct {
		name  string
		index Word
		y     uint32
		ea    uint32
	}){
		{"plain", 5, 0100, 0105},
		{"negative", 0777777777776, 0100, 076},
		{"wrap", 0777777, 2, 1},
		{"left_ignored", 0123000000001, 0100, 0101},
	}

	for _, entry := range table {
		cpu.FM[3] = entry.index
		cpu.IR = MakeInstruction(0200, 1, false, 3, entry.y).Word()
		assert.NoError(cpu.calculateEA(), entry.name)
		assert.Equal(entry.ea, cpu.MA, entry.name)
	}

	// Indexed indirect word.
	cpu.FM[4] = 010
	assert.NoError(cpu.WriteMemory(0110, MakeInstruction(0, 0, false, 4, 0200).Word()))
	cpu.IR = MakeInstruction(0200, 1, true, 4, 0100).Word()
	assert.NoError(cpu.calculateEA())
	assert.Equal(uint32(0210), cpu.MA)
}

// execute runs the single instruction word at 0100, with AC 1 and the
// word at 0200 preset.
func execute(t *testing.T, word Word, ac Word, operand Word) (cpu *Cpu, core *memory.Core) {
	cpu, core = newMachine()
	load(t, cpu, core, 0100, word)
	require.NoError(t, core.SetWord(0200, operand))
	cpu.FM[1] = ac
	cpu.PC = 0100
	require.NoError(t, cpu.Tick())
	return
}

func TestOperate(t *testing.T) {
	assert := assert.New(t)

	const a = Word(0111111222222)
	const b = Word(0333333444444)
	const m = Word(0400000000000)

	table := [](struct {
		name    string
		word    Word
		ac      Word
		operand Word
		ac_out  Word
		mem_out Word
		pc      uint32
		flags   Word
	}){
		{"MOVE", op(0200, 1, 0200), 0, 042, 042, 042, 0101, 0},
		{"MOVEI", op(0201, 1, 0200), 0, 042, 0200, 042, 0101, 0},
		{"MOVEM", op(0202, 1, 0200), 5, 042, 5, 5, 0101, 0},
		{"MOVES", op(0203, 1, 0200), 5, 042, 042, 042, 0101, 0},
		{"MOVS", op(0204, 1, 0200), 0, 0123456654321, 0654321123456, 0123456654321, 0101, 0},
		{"MOVSI", op(0205, 1, 0200), 0, 0, 0200000000, 0, 0101, 0},
		{"MOVN", op(0210, 1, 0200), 0, 5, 0777777777773, 5, 0101, 0},
		{"MOVN_zero", op(0210, 1, 0200), 7, 0, 0, 0, 0101, FLAG_CRY0 | FLAG_CRY1},
		{"MOVN_most_negative", op(0210, 1, 0200), 0, m, m, m, 0101, FLAG_AROV | FLAG_CRY1},
		{"MOVNI", op(0211, 1, 0200), 0, 0, 0777777777600, 0, 0101, 0},
		{"MOVM", op(0214, 1, 0200), 0, 0777777777773, 5, 0777777777773, 0101, 0},
		{"MOVM_positive", op(0214, 1, 0200), 0, 5, 5, 5, 0101, 0},
		{"MOVMM", op(0216, 1, 0200), 0777777777776, 0, 0777777777776, 2, 0101, 0},

		{"EXCH", op(0250, 1, 0200), 1, 2, 2, 1, 0101, 0},

		{"ADD", op(0270, 1, 0200), 1, 1, 2, 1, 0101, 0},
		{"ADDI", op(0271, 1, 0200), 1, 0, 0201, 0, 0101, 0},
		{"ADDM", op(0272, 1, 0200), 2, 3, 2, 5, 0101, 0},
		{"ADDB", op(0273, 1, 0200), 2, 3, 5, 5, 0101, 0},
		{"ADD_overflow", op(0270, 1, 0200), 0377777777777, 1, m, 1, 0101, FLAG_AROV | FLAG_CRY1},
		{"ADD_carry", op(0270, 1, 0200), WORD_MASK, 1, 0, 1, 0101, FLAG_CRY0 | FLAG_CRY1},
		{"SUB", op(0274, 1, 0200), 5, 3, 2, 3, 0101, FLAG_CRY0 | FLAG_CRY1},
		{"SUB_negative", op(0274, 1, 0200), 3, 5, 0777777777776, 5, 0101, 0},
		{"SUBI", op(0275, 1, 0200), 0, 0, 0777777777600, 0, 0101, 0},

		{"CAIL_skip", op(0301, 1, 5), 3, 0, 3, 0, 0102, 0},
		{"CAIG", op(0307, 1, 5), 3, 0, 3, 0, 0101, 0},
		{"CAIL_signed", op(0301, 1, 5), WORD_MASK, 0, WORD_MASK, 0, 0102, 0},
		{"CAME_skip", op(0312, 1, 0200), 3, 3, 3, 3, 0102, 0},
		{"CAMN", op(0316, 1, 0200), 3, 3, 3, 3, 0101, 0},
		{"CAMA", op(0314, 1, 0200), 3, 4, 3, 4, 0102, 0},
		{"JUMPL", op(0321, 1, 0150), WORD_MASK, 0, WORD_MASK, 0, 0150, 0},
		{"JUMPGE", op(0325, 1, 0150), WORD_MASK, 0, WORD_MASK, 0, 0101, 0},
		{"JUMPA", op(0324, 1, 0150), 0, 0, 0, 0, 0150, 0},
		{"SKIPE", op(0332, 0, 0200), 0, 0, 0, 0, 0102, 0},
		{"SKIPG_load", op(0337, 1, 0200), 0, 5, 5, 5, 0102, 0},
		{"AOJE", op(0342, 1, 0150), WORD_MASK, 0, 0, 0, 0150, FLAG_CRY0 | FLAG_CRY1},
		{"AOJ", op(0340, 1, 0150), 0, 0, 1, 0, 0101, 0},
		{"AOS", op(0350, 1, 0200), 0, 1, 2, 2, 0101, 0},
		{"SOJGE", op(0365, 1, 0150), 1, 0, 0, 0, 0150, FLAG_CRY0 | FLAG_CRY1},
		{"SOSG", op(0377, 1, 0200), 0, 2, 1, 1, 0102, FLAG_CRY0 | FLAG_CRY1},
		{"SOSG_ac0", op(0377, 0, 0200), 0, 1, 0, 0, 0101, FLAG_CRY0 | FLAG_CRY1},

		{"HLL", op(0500, 1, 0200), a, b, 0333333222222, b, 0101, 0},
		{"HLLI", op(0501, 1, 0200), a, b, 0000000222222, b, 0101, 0},
		{"HLLM", op(0502, 1, 0200), a, b, a, 0111111444444, 0101, 0},
		{"HLLS", op(0503, 1, 0200), a, b, b, b, 0101, 0},
		{"HRL", op(0504, 1, 0200), a, b, 0444444222222, b, 0101, 0},
		{"HRLM", op(0506, 1, 0200), a, b, a, 0222222444444, 0101, 0},
		{"HRLS", op(0507, 1, 0200), a, b, 0444444444444, 0444444444444, 0101, 0},
		{"HRR", op(0540, 1, 0200), a, b, 0111111444444, b, 0101, 0},
		{"HRRM", op(0542, 1, 0200), a, b, a, 0333333222222, 0101, 0},
		{"HLR", op(0544, 1, 0200), a, b, 0111111333333, b, 0101, 0},
		{"HLRM", op(0546, 1, 0200), a, b, a, 0333333111111, 0101, 0},
		{"HLRS", op(0547, 1, 0200), a, b, 0333333333333, 0333333333333, 0101, 0},
		{"HLLZ", op(0510, 1, 0200), a, b, 0333333000000, b, 0101, 0},
		{"HRLZI", op(0515, 1, 0200), a, b, 0000200000000, b, 0101, 0},
		{"HRLZM", op(0516, 1, 0200), a, b, a, 0222222000000, 0101, 0},
		{"HLLO", op(0520, 1, 0200), a, b, 0333333777777, b, 0101, 0},
		{"HLLE", op(0530, 1, 0200), a, b, 0333333000000, b, 0101, 0},
		{"HRLE", op(0534, 1, 0200), a, b, 0444444777777, b, 0101, 0},
		{"HRRZ", op(0550, 1, 0200), a, b, 0000000444444, b, 0101, 0},
		{"HRRZS", op(0553, 1, 0200), a, b, 0000000444444, 0000000444444, 0101, 0},
		{"HRROI", op(0561, 1, 0200), a, b, 0777777000200, b, 0101, 0},
		{"HLRO", op(0564, 1, 0200), a, b, 0777777333333, b, 0101, 0},
		{"HRRE", op(0570, 1, 0200), a, b, 0777777444444, b, 0101, 0},
		{"HLRE", op(0574, 1, 0200), a, b, 0000000333333, b, 0101, 0},

		{"TRNE", op(0602, 1, 1), 2, 0, 2, 0, 0102, 0},
		{"TRNN", op(0606, 1, 3), 2, 0, 2, 0, 0102, 0},
		{"TRNN_clear", op(0606, 1, 1), 2, 0, 2, 0, 0101, 0},
		{"TLNE", op(0603, 1, 1), 1, 0, 1, 0, 0102, 0},
		{"TRZ", op(0620, 1, 3), 7, 0, 4, 0, 0101, 0},
		{"TRZA", op(0624, 1, 3), 7, 0, 4, 0, 0102, 0},
		{"TLO", op(0661, 1, 1), 0, 0, 01000000, 0, 0101, 0},
		{"TDC", op(0650, 1, 0200), 0707, 0770, 0077, 0770, 0101, 0},
		{"TSON", op(0677, 1, 0200), 01000000, 1, 01000000, 1, 0102, 0},
		{"TDZE", op(0632, 1, 0200), 4, 3, 4, 3, 0102, 0},
		{"TDZE_set", op(0632, 1, 0200), 5, 3, 4, 3, 0101, 0},
	}

	for _, entry := range table {
		cpu, core := execute(t, entry.word, entry.ac, entry.operand)

		assert.Equal(entry.ac_out, cpu.FM[1], entry.name)
		value, err := core.GetWord(0200)
		assert.NoError(err, entry.name)
		assert.Equal(entry.mem_out, value, entry.name)
		assert.Equal(entry.pc, cpu.PC, entry.name)
		assert.Equal(entry.flags, cpu.Flags, entry.name)
	}
}

func TestBoolean(t *testing.T) {
	assert := assert.New(t)

	const ac = Word(014)
	const mem = Word(012)

	for function := range 16 {
		// Result bit for (AC, E) = (1,1), (0,1), (1,0), (0,0).
		var expect Word
		for bit := range 36 {
			a := (ac >> bit) & 1
			e := (mem >> bit) & 1
			var index int
			switch {
			case a == 1 && e == 1:
				index = 0
			case a == 0 && e == 1:
				index = 1
			case a == 1 && e == 0:
				index = 2
			default:
				index = 3
			}
			if (function>>index)&1 != 0 {
				expect |= 1 << bit
			}
		}

		opcode := 0400 + function*4
		name := Mnemonic(opcode)

		// Basic mode: result to AC.
		cpu, core := execute(t, op(opcode, 1, 0200), ac, mem)
		assert.Equal(expect, cpu.FM[1], name)

		// Both mode: result to AC and memory.
		cpu, core = execute(t, op(opcode+3, 1, 0200), ac, mem)
		assert.Equal(expect, cpu.FM[1], name+"B")
		value, err := core.GetWord(0200)
		assert.NoError(err)
		assert.Equal(expect, value, name+"B")
	}

	// Immediate mode uses 0,,E.
	cpu, _ := execute(t, op(0405, 1, 0707), 0777777777770, 0)
	assert.Equal(Word(0700), cpu.FM[1], "ANDI")
	cpu, _ = execute(t, op(0435, 1, 0707), 0, 0)
	assert.Equal(Word(0707), cpu.FM[1], "IORI")
	cpu, _ = execute(t, op(0475, 1, 0707), 0, 0)
	assert.Equal(WORD_MASK, cpu.FM[1], "SETOI")
}

func TestSubroutine(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100,
		op(0260, 017, 0110), // 0100: PUSHJ 17,0110
		op(0254, 4, 0),      // 0101: JRST 4,
		0, 0, 0, 0, 0, 0,
		op(0201, 1, 5), // 0110: MOVEI 1,5
		op(0263, 017, 0), // 0111: POPJ 17,
	)

	stack := MakeWord(0777775, 0200)
	cpu.FM[017] = stack
	cpu.Flags = FLAG_CRY0
	cpu.PC = 0100

	assert.NoError(cpu.Tick())

	want := state{PC: 0110, Flags: FLAG_CRY0}
	want.FM[017] = MakeWord(0777776, 0201)
	if diff := cmp.Diff(want, snapshot(cpu)); diff != "" {
		t.Errorf("PUSHJ (-want +got):\n%s", diff)
	}
	saved, err := core.GetWord(0201)
	assert.NoError(err)
	assert.Equal(MakeWord(FLAG_CRY0, 0101), saved)

	// POPJ restores the flags.
	cpu.Flags = FLAG_AROV
	err = cpu.Run(0110)
	assert.ErrorIs(err, ErrHalt)

	want = state{PC: 0, Flags: FLAG_CRY0}
	want.FM[1] = 5
	want.FM[017] = stack
	if diff := cmp.Diff(want, snapshot(cpu)); diff != "" {
		t.Errorf("POPJ (-want +got):\n%s", diff)
	}
}

func TestPushPop(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100,
		op(0261, 017, 0210), // 0100: PUSH 17,0210
		op(0262, 017, 0211), // 0101: POP 17,0211
		op(0254, 4, 0),      // 0102: JRST 4,
	)
	require.NoError(t, core.SetWord(0210, 042))
	cpu.FM[017] = MakeWord(0, 0177)

	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal(MakeWord(1, 0200), cpu.FM[017])
	pushed, err := core.GetWord(0200)
	assert.NoError(err)
	assert.Equal(Word(042), pushed)

	err = cpu.Run(0101)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(MakeWord(0, 0177), cpu.FM[017])
	popped, err := core.GetWord(0211)
	assert.NoError(err)
	assert.Equal(Word(042), popped)
}

func TestStepPointer(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		ptr   Word
		down  bool
		after Word
	}){
		{"up", MakeWord(0777775, 0200), false, MakeWord(0777776, 0201)},
		{"down", MakeWord(0777776, 0201), true, MakeWord(0777775, 0200)},
		{"up_wrap", MakeWord(0777777, 0777777), false, 0},
		{"down_wrap", 0, true, MakeWord(0777777, 0777777)},
		{"halves_independent", MakeWord(0, 0777777), false, MakeWord(1, 0)},
	}

	for _, entry := range table {
		assert.Equal(entry.after, stepPointer(entry.ptr, entry.down), entry.name)
	}
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	// JSR stores flags,,PC at E and continues at E+1.
	cpu, core := newMachine()
	load(t, cpu, core, 0100, op(0264, 0, 0110))
	cpu.Flags = FLAG_AROV
	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal(uint32(0111), cpu.PC)
	saved, err := core.GetWord(0110)
	assert.NoError(err)
	assert.Equal(MakeWord(FLAG_AROV, 0101), saved)

	// JSP stores flags,,PC in AC.
	cpu, core = newMachine()
	load(t, cpu, core, 0100, op(0265, 2, 0110))
	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal(uint32(0110), cpu.PC)
	assert.Equal(Word(0101), cpu.FM[2])

	// JRST 4, halts at E.
	cpu, core = newMachine()
	load(t, cpu, core, 0100, op(0254, 4, 0150))
	err = cpu.Run(0100)
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(uint32(0150), cpu.PC)

	// JFCL jumps and clears when a selected flag is set.
	cpu, core = newMachine()
	load(t, cpu, core, 0100, op(0255, 010, 0150), op(0255, 004, 0150))
	cpu.Flags = FLAG_AROV | FLAG_CRY1
	cpu.PC = 0101
	assert.NoError(cpu.Tick())
	assert.Equal(uint32(0102), cpu.PC)
	assert.Equal(FLAG_AROV|FLAG_CRY1, cpu.Flags)
	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal(uint32(0150), cpu.PC)
	assert.Equal(FLAG_CRY1, cpu.Flags)
}

// trapRecorder is a Monitor that records each call.
type trapRecorder struct {
	calls []state
	ma    []uint32
	err   error
}

func (tr *trapRecorder) Trap(cpu *Cpu) error {
	tr.calls = append(tr.calls, snapshot(cpu))
	tr.ma = append(tr.ma, cpu.MA)
	return tr.err
}

func TestMonitorCall(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100, op(040, 1, 0123))

	cpu.PC = 0100
	err := cpu.Tick()
	assert.ErrorIs(err, ErrTrap)

	monitor := &trapRecorder{}
	cpu.Monitor = monitor
	cpu.PC = 0100
	assert.NoError(cpu.Tick())
	assert.Equal([]uint32{0123}, monitor.ma)
	assert.Equal(uint32(0101), monitor.calls[0].PC)

	monitor.err = ErrHalt
	cpu.PC = 0100
	err = cpu.Tick()
	assert.ErrorIs(err, ErrHalt)
}

func TestUnimplemented(t *testing.T) {
	assert := assert.New(t)

	for _, opcode := range []int{0, 017, 0133, 0220, 0240, 0251, 0252, 0256, 0266, 0700, 0777} {
		cpu, core := newMachine()
		load(t, cpu, core, 0100, op(opcode, 1, 0200))
		cpu.PC = 0100

		err := cpu.Tick()
		assert.ErrorIs(err, ErrUnimplemented, "%03o", opcode)

		var ei *ErrInstruction
		if assert.True(errors.As(err, &ei), "%03o", opcode) {
			assert.Equal(uint32(0100), ei.Address)
			assert.Equal(op(opcode, 1, 0200), ei.Word)
		}
		assert.Equal(0, cpu.Ticks)
	}
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu, core := newMachine()
	load(t, cpu, core, 0100, op(0201, 1, 1))
	cpu.PC = 0100
	assert.NoError(cpu.Tick())

	cpu.Reset()
	if diff := cmp.Diff(state{}, snapshot(cpu)); diff != "" {
		t.Errorf("Reset (-want +got):\n%s", diff)
	}
	assert.Equal(0, cpu.Ticks)
	assert.Equal(0, cpu.Decodes)
	assert.False(cpu.Mapped(0100))
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newMachine()
	cpu.PC = 0100
	cpu.FM[1] = 042

	text := cpu.String()
	assert.Contains(text, "pc: 000100")
	assert.Contains(text, "000000000042")
}
