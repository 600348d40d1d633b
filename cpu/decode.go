package cpu

// Decode is the uop triple for one opcode.
type Decode struct {
	Read    Uop
	Operate Uop
	Write   Uop
}

// Instruction fields, as shifts from the right of the word.
const (
	OPCODE_SHIFT   = 27
	OPCODE_MASK    = 0777
	AC_SHIFT       = 23
	AC_MASK        = 017
	INDIRECT_SHIFT = 22
	INDEX_SHIFT    = 18
	INDEX_MASK     = 017
	IOT_SHIFT      = 23 // I/O sub-function of opcode 0777
	IOT_MASK       = 3

	OPCODE_IOT = 0777
)

// modes are the four addressing variants of an instruction family:
// basic, immediate, memory, and both (or self).
type modes [4]Decode

var (
	unimplemented = Decode{UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED, UOP_UNIMPLEMENTED}

	// MOVE family, and the half-word Z/O/E forms.
	moveModes = modes{
		{UOP_READ_MEMORY, 0, UOP_WRITE_AC},
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_AC, 0, UOP_WRITE_MEMORY},
		{UOP_READ_MEMORY, 0, UOP_WRITE_SAME},
	}

	// Two-operand arithmetic and boolean.
	arithModes = modes{
		{UOP_READ_BOTH, 0, UOP_WRITE_AC},
		{UOP_READ_AC_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_BOTH, 0, UOP_WRITE_MEMORY},
		{UOP_READ_BOTH, 0, UOP_WRITE_BOTH},
	}

	// Half-word hold forms. BR is the source, AR the destination.
	holdModes = modes{
		{UOP_READ_BOTH, 0, UOP_WRITE_AC},
		{UOP_READ_AC_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_SWAPPED, 0, UOP_WRITE_MEMORY},
		{UOP_READ_SELF, 0, UOP_WRITE_SAME},
	}

	// Boolean functions ignoring both operands.
	constantModes = modes{
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_MEMORY},
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_BOTH},
	}

	// Boolean functions of the accumulator alone.
	accumulatorModes = modes{
		{UOP_READ_AC, 0, UOP_WRITE_AC},
		{UOP_READ_AC, 0, UOP_WRITE_AC},
		{UOP_READ_AC, 0, UOP_WRITE_MEMORY},
		{UOP_READ_AC, 0, UOP_WRITE_BOTH},
	}

	// Boolean functions of the memory operand alone.
	memoryModes = modes{
		{UOP_READ_MEMORY, 0, UOP_WRITE_AC},
		{UOP_READ_IMMEDIATE, 0, UOP_WRITE_AC},
		{UOP_READ_MEMORY, 0, UOP_WRITE_MEMORY},
		{UOP_READ_MEMORY, 0, UOP_WRITE_BOTH},
	}
)

// decodeTable is indexed by the 9-bit opcode.
var decodeTable [OPCODE_MASK + 1]Decode

// iotTable replaces the operate uop of opcode 0777, indexed by the I/O
// sub-function (CONI, CONO, DATAI, DATAO).
var iotTable = [IOT_MASK + 1]Uop{
	UOP_UNIMPLEMENTED,
	UOP_UNIMPLEMENTED,
	UOP_UNIMPLEMENTED,
	UOP_UNIMPLEMENTED,
}

// family installs an operate uop in all four modes starting at base.
func family(base int, operate Uop, m modes) {
	for n, entry := range m {
		entry.Operate = operate
		decodeTable[base+n] = entry
	}
}

func init() {
	for n := range decodeTable {
		decodeTable[n] = unimplemented
	}

	// Monitor calls.
	for op := 040; op <= 047; op++ {
		decodeTable[op] = Decode{UOP_READ_IMMEDIATE, UOP_MUUO, UOP_NOP}
	}

	family(0200, UOP_MOVE, moveModes)
	family(0204, UOP_MOVS, moveModes)
	family(0210, UOP_MOVN, moveModes)
	family(0214, UOP_MOVM, moveModes)

	decodeTable[0250] = Decode{UOP_READ_BOTH, UOP_EXCH, UOP_WRITE_AC_MEMORY}
	decodeTable[0254] = Decode{UOP_READ_IMMEDIATE, UOP_JRST, UOP_NOP}
	decodeTable[0255] = Decode{UOP_READ_IMMEDIATE, UOP_JFCL, UOP_NOP}

	decodeTable[0260] = Decode{UOP_READ_AC, UOP_PUSHJ, UOP_WRITE_AC}
	decodeTable[0261] = Decode{UOP_READ_BOTH, UOP_PUSH, UOP_WRITE_AC}
	decodeTable[0262] = Decode{UOP_READ_AC, UOP_POP, UOP_WRITE_AC}
	decodeTable[0263] = Decode{UOP_READ_AC, UOP_POPJ, UOP_WRITE_AC}
	decodeTable[0264] = Decode{UOP_READ_IMMEDIATE, UOP_JSR, UOP_NOP}
	decodeTable[0265] = Decode{UOP_READ_IMMEDIATE, UOP_JSP, UOP_WRITE_AC}

	family(0270, UOP_ADD, arithModes)
	family(0274, UOP_SUB, arithModes)

	// Condition is in the low three opcode bits.
	for cond := range 8 {
		decodeTable[0300+cond] = Decode{UOP_READ_AC_IMMEDIATE, UOP_SKIP, UOP_NOP}
		decodeTable[0310+cond] = Decode{UOP_READ_BOTH, UOP_SKIP, UOP_NOP}
		decodeTable[0320+cond] = Decode{UOP_READ_AC, UOP_JUMP, UOP_NOP}
		decodeTable[0330+cond] = Decode{UOP_READ_MEMORY, UOP_SKIP, UOP_WRITE_ACNZ}
		decodeTable[0340+cond] = Decode{UOP_READ_AC, UOP_AOJ, UOP_WRITE_AC}
		decodeTable[0350+cond] = Decode{UOP_READ_MEMORY, UOP_AOS, UOP_WRITE_SAME}
		decodeTable[0360+cond] = Decode{UOP_READ_AC, UOP_SOJ, UOP_WRITE_AC}
		decodeTable[0370+cond] = Decode{UOP_READ_MEMORY, UOP_SOS, UOP_WRITE_SAME}
	}

	family(0400, UOP_SETZ, constantModes)
	family(0404, UOP_AND, arithModes)
	family(0410, UOP_ANDCA, arithModes)
	family(0414, UOP_SETM, memoryModes)
	family(0420, UOP_ANDCM, arithModes)
	family(0424, UOP_SETA, accumulatorModes)
	family(0430, UOP_XOR, arithModes)
	family(0434, UOP_IOR, arithModes)
	family(0440, UOP_ANDCB, arithModes)
	family(0444, UOP_EQV, arithModes)
	family(0450, UOP_SETCA, accumulatorModes)
	family(0454, UOP_ORCA, arithModes)
	family(0460, UOP_SETCM, memoryModes)
	family(0464, UOP_ORCM, arithModes)
	family(0470, UOP_ORCB, arithModes)
	family(0474, UOP_SETO, constantModes)

	family(0500, UOP_HLL, holdModes)
	family(0504, UOP_HRL, holdModes)
	family(0510, UOP_HLLZ, moveModes)
	family(0514, UOP_HRLZ, moveModes)
	family(0520, UOP_HLLO, moveModes)
	family(0524, UOP_HRLO, moveModes)
	family(0530, UOP_HLLE, moveModes)
	family(0534, UOP_HRLE, moveModes)
	family(0540, UOP_HRR, holdModes)
	family(0544, UOP_HLR, holdModes)
	family(0550, UOP_HRRZ, moveModes)
	family(0554, UOP_HLRZ, moveModes)
	family(0560, UOP_HRRO, moveModes)
	family(0564, UOP_HLRO, moveModes)
	family(0570, UOP_HRRE, moveModes)
	family(0574, UOP_HLRE, moveModes)

	// Test instructions: immediate mask (R, L) or memory mask (D, S).
	for op := 0600; op <= 0677; op++ {
		entry := Decode{UOP_READ_AC_IMMEDIATE, UOP_TEST, UOP_WRITE_AC}
		if op&010 != 0 {
			entry.Read = UOP_READ_BOTH
		}
		if op&060 == 0 {
			entry.Write = UOP_NOP
		}
		decodeTable[op] = entry
	}

	decodeTable[OPCODE_IOT] = Decode{UOP_READ_IMMEDIATE, UOP_UNIMPLEMENTED, UOP_NOP}
}

// DecodeOpcode returns the uop triple for an opcode.
func DecodeOpcode(opcode int) Decode {
	return decodeTable[opcode&OPCODE_MASK]
}

// DecodeWord returns the uop triple for an instruction word.
func DecodeWord(word Word) (entry Decode) {
	opcode := int(word>>OPCODE_SHIFT) & OPCODE_MASK
	entry = decodeTable[opcode]
	if opcode == OPCODE_IOT {
		entry.Operate = iotTable[(word>>IOT_SHIFT)&IOT_MASK]
	}
	return
}
