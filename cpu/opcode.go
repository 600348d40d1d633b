package cpu

import (
	"fmt"
	"strings"
)

// Instruction is an instruction word, viewed by its fields.
type Instruction Word

// MakeInstruction packs an instruction word.
func MakeInstruction(opcode int, ac int, indirect bool, index int, y uint32) (in Instruction) {
	in = Instruction(opcode&OPCODE_MASK) << OPCODE_SHIFT
	in |= Instruction(ac&AC_MASK) << AC_SHIFT
	if indirect {
		in |= 1 << INDIRECT_SHIFT
	}
	in |= Instruction(index&INDEX_MASK) << INDEX_SHIFT
	in |= Instruction(y & ADDRESS_MASK)
	return
}

// Word returns the instruction as a machine word.
func (in Instruction) Word() Word {
	return Word(in) & WORD_MASK
}

// Opcode is the 9-bit operation code.
func (in Instruction) Opcode() int {
	return int(in>>OPCODE_SHIFT) & OPCODE_MASK
}

// Ac is the accumulator field.
func (in Instruction) Ac() int {
	return int(in>>AC_SHIFT) & AC_MASK
}

// Indirect is the indirect bit.
func (in Instruction) Indirect() bool {
	return (in>>INDIRECT_SHIFT)&1 != 0
}

// Index is the index register field.
func (in Instruction) Index() int {
	return int(in>>INDEX_SHIFT) & INDEX_MASK
}

// Y is the address field.
func (in Instruction) Y() uint32 {
	return uint32(in) & ADDRESS_MASK
}

// Mnemonic is the instruction's name.
func (in Instruction) Mnemonic() string {
	opcode := in.Opcode()
	if opcode == OPCODE_IOT {
		return iotMnemonic[(in>>IOT_SHIFT)&IOT_MASK]
	}
	return mnemonic[opcode]
}

// String disassembles the instruction as 'OP AC,@Y(X)'.
func (in Instruction) String() string {
	var text strings.Builder

	text.WriteString(in.Mnemonic())
	text.WriteString(" ")
	if in.Ac() != 0 {
		fmt.Fprintf(&text, "%o,", in.Ac())
	}
	if in.Indirect() {
		text.WriteString("@")
	}
	fmt.Fprintf(&text, "%o", in.Y())
	if in.Index() != 0 {
		fmt.Fprintf(&text, "(%o)", in.Index())
	}

	return text.String()
}

// mnemonic is indexed by opcode.
var mnemonic [OPCODE_MASK + 1]string

// iotMnemonic is indexed by the I/O sub-function of opcode 0777.
var iotMnemonic = [IOT_MASK + 1]string{"CONI", "CONO", "DATAI", "DATAO"}

// opcodeMap maps mnemonics back to opcodes.
var opcodeMap = map[string]int{}

// Mode suffixes of the four-way instruction families.
var (
	suffixArith = [4]string{"", "I", "M", "B"}
	suffixMove  = [4]string{"", "I", "M", "S"}
	suffixFloat = [8]string{"", "L", "M", "B", "R", "RI", "RM", "RB"}
)

// families lists the instruction names that take mode suffixes, by base
// opcode.
var families = []struct {
	base     int
	names    []string
	suffixes []string
}{
	{0140, []string{"FAD", "FSB", "FMP", "FDV"}, suffixFloat[:]},
	{0200, []string{"MOVE", "MOVS", "MOVN", "MOVM"}, suffixMove[:]},
	{0220, []string{"IMUL", "MUL", "IDIV", "DIV"}, suffixArith[:]},
	{0270, []string{"ADD", "SUB"}, suffixArith[:]},
	{0400, []string{
		"SETZ", "AND", "ANDCA", "SETM", "ANDCM", "SETA", "XOR", "IOR",
		"ANDCB", "EQV", "SETCA", "ORCA", "SETCM", "ORCM", "ORCB", "SETO",
	}, suffixArith[:]},
	{0500, []string{
		"HLL", "HRL", "HLLZ", "HRLZ", "HLLO", "HRLO", "HLLE", "HRLE",
		"HRR", "HLR", "HRRZ", "HLRZ", "HRRO", "HLRO", "HRRE", "HLRE",
	}, suffixMove[:]},
}

// singles lists the instructions without mode suffixes.
var singles = map[int]string{
	0040: "CALL", 0041: "INIT", 0047: "CALLI",

	0110: "DFAD", 0111: "DFSB", 0112: "DFMP", 0113: "DFDV",
	0120: "DMOVE", 0121: "DMOVN", 0122: "FIX", 0124: "DMOVEM",
	0125: "DMOVNM", 0126: "FIXR", 0127: "FLTR",
	0130: "UFA", 0131: "DFN", 0132: "FSC", 0133: "IBP",
	0134: "ILDB", 0135: "LDB", 0136: "IDPB", 0137: "DPB",

	0240: "ASH", 0241: "ROT", 0242: "LSH", 0243: "JFFO",
	0244: "ASHC", 0245: "ROTC", 0246: "LSHC",
	0250: "EXCH", 0251: "BLT", 0252: "AOBJP", 0253: "AOBJN",
	0254: "JRST", 0255: "JFCL", 0256: "XCT", 0257: "MAP",
	0260: "PUSHJ", 0261: "PUSH", 0262: "POP", 0263: "POPJ",
	0264: "JSR", 0265: "JSP", 0266: "JSA", 0267: "JRA",
}

// Test instruction name parts.
var (
	testSide = [4]string{"R", "L", "D", "S"}
	testMode = [4]string{"N", "Z", "C", "O"}
	testSkip = [4]string{"", "E", "A", "N"}
)

func init() {
	for opcode := range mnemonic {
		switch {
		case opcode < 040:
			mnemonic[opcode] = fmt.Sprintf("LUUO%02o", opcode)
		case opcode < 0100:
			mnemonic[opcode] = fmt.Sprintf("MUUO%02o", opcode)
		case opcode >= 0700:
			mnemonic[opcode] = fmt.Sprintf("IO%03o", opcode)
		default:
			mnemonic[opcode] = fmt.Sprintf("OP%03o", opcode)
		}
	}

	for opcode, name := range singles {
		mnemonic[opcode] = name
	}

	for _, family := range families {
		for n, name := range family.names {
			for s, suffix := range family.suffixes {
				mnemonic[family.base+n*len(family.suffixes)+s] = name + suffix
			}
		}
	}

	for cond := range 8 {
		suffix := Condition(cond).String()
		mnemonic[0300+cond] = "CAI" + suffix
		mnemonic[0310+cond] = "CAM" + suffix
		mnemonic[0320+cond] = "JUMP" + suffix
		mnemonic[0330+cond] = "SKIP" + suffix
		mnemonic[0340+cond] = "AOJ" + suffix
		mnemonic[0350+cond] = "AOS" + suffix
		mnemonic[0360+cond] = "SOJ" + suffix
		mnemonic[0370+cond] = "SOS" + suffix
	}

	for low := range 0100 {
		side := testSide[(low>>3)&1<<1|low&1]
		mode := testMode[(low>>TEST_MODE_SHIFT)&3]
		skip := testSkip[(low>>TEST_SKIP_SHIFT)&3]
		mnemonic[0600+low] = "T" + side + mode + skip
	}

	for opcode, name := range mnemonic {
		opcodeMap[name] = opcode
	}
}

// Mnemonic returns the name of an opcode.
func Mnemonic(opcode int) string {
	return mnemonic[opcode&OPCODE_MASK]
}

// LookupOpcode returns the opcode of a mnemonic.
func LookupOpcode(name string) (opcode int, ok bool) {
	opcode, ok = opcodeMap[strings.ToUpper(name)]
	return
}
