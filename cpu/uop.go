package cpu

import (
	"log"
)

// Uop is a micro-operation kind. Each address in the translation cache
// holds three of them: operand read, operate, and write back.
type Uop int

// Translation cache slots.
const (
	SLOT_READ    = 0
	SLOT_OPERATE = 1
	SLOT_WRITE   = 2
	SLOT_COUNT   = 3
)

//go:generate go tool stringer -linecomment -type=Uop
const (
	// Cache fillers and placeholders.
	UOP_UNMAPPED Uop = iota // unmapped
	UOP_DECODE_WORD         // decode_word
	UOP_DECODE_PAGE         // decode_page
	UOP_UNIMPLEMENTED       // unimplemented
	UOP_NOP                 // nop

	// Operand read, slot 0.
	UOP_READ_IMMEDIATE    // read_immediate
	UOP_READ_MEMORY       // read_memory
	UOP_READ_AC           // read_ac
	UOP_READ_AC_IMMEDIATE // read_ac_immediate
	UOP_READ_BOTH         // read_both
	UOP_READ_SWAPPED      // read_swapped
	UOP_READ_SELF         // read_self

	// Write back, slot 2.
	UOP_WRITE_AC        // write_ac
	UOP_WRITE_ACNZ      // write_acnz
	UOP_WRITE_MEMORY    // write_memory
	UOP_WRITE_BOTH      // write_both
	UOP_WRITE_AC_MEMORY // write_ac_memory
	UOP_WRITE_SAME      // write_same

	// Operate, slot 1.
	UOP_MUUO  // muuo
	UOP_MOVE  // move
	UOP_MOVS  // movs
	UOP_MOVN  // movn
	UOP_MOVM  // movm
	UOP_EXCH  // exch
	UOP_JRST  // jrst
	UOP_JFCL  // jfcl
	UOP_PUSHJ // pushj
	UOP_PUSH  // push
	UOP_POP   // pop
	UOP_POPJ  // popj
	UOP_JSR   // jsr
	UOP_JSP   // jsp
	UOP_ADD   // add
	UOP_SUB   // sub
	UOP_SKIP  // skip
	UOP_JUMP  // jump
	UOP_AOJ   // aoj
	UOP_AOS   // aos
	UOP_SOJ   // soj
	UOP_SOS   // sos
	UOP_SETZ  // setz
	UOP_AND   // and
	UOP_ANDCA // andca
	UOP_SETM  // setm
	UOP_ANDCM // andcm
	UOP_SETA  // seta
	UOP_XOR   // xor
	UOP_IOR   // ior
	UOP_ANDCB // andcb
	UOP_EQV   // eqv
	UOP_SETCA // setca
	UOP_ORCA  // orca
	UOP_SETCM // setcm
	UOP_ORCM  // orcm
	UOP_ORCB  // orcb
	UOP_SETO  // seto
	UOP_HLL   // hll
	UOP_HRL   // hrl
	UOP_HRR   // hrr
	UOP_HLR   // hlr
	UOP_HLLZ  // hllz
	UOP_HRLZ  // hrlz
	UOP_HRRZ  // hrrz
	UOP_HLRZ  // hlrz
	UOP_HLLO  // hllo
	UOP_HRLO  // hrlo
	UOP_HRRO  // hrro
	UOP_HLRO  // hlro
	UOP_HLLE  // hlle
	UOP_HRLE  // hrle
	UOP_HRRE  // hrre
	UOP_HLRE  // hlre
	UOP_TEST  // test
)

const uopCount = int(UOP_TEST) + 1

// uopHandler dispatches each uop kind. It is filled in by init, as the
// decode fillers re-enter dispatch.
var uopHandler [uopCount]func(cpu *Cpu) error

func init() {
	uopHandler = [uopCount]func(cpu *Cpu) error{
		UOP_UNMAPPED:      (*Cpu).uopUnmapped,
		UOP_DECODE_WORD:   (*Cpu).uopDecodeWord,
		UOP_DECODE_PAGE:   (*Cpu).uopDecodePage,
		UOP_UNIMPLEMENTED: (*Cpu).uopUnimplemented,
		UOP_NOP:           (*Cpu).uopNop,

		UOP_READ_IMMEDIATE:    (*Cpu).uopReadImmediate,
		UOP_READ_MEMORY:       (*Cpu).uopReadMemory,
		UOP_READ_AC:           (*Cpu).uopReadAc,
		UOP_READ_AC_IMMEDIATE: (*Cpu).uopReadAcImmediate,
		UOP_READ_BOTH:         (*Cpu).uopReadBoth,
		UOP_READ_SWAPPED:      (*Cpu).uopReadSwapped,
		UOP_READ_SELF:         (*Cpu).uopReadSelf,

		UOP_WRITE_AC:        (*Cpu).uopWriteAc,
		UOP_WRITE_ACNZ:      (*Cpu).uopWriteAcnz,
		UOP_WRITE_MEMORY:    (*Cpu).uopWriteMemory,
		UOP_WRITE_BOTH:      (*Cpu).uopWriteBoth,
		UOP_WRITE_AC_MEMORY: (*Cpu).uopWriteAcMemory,
		UOP_WRITE_SAME:      (*Cpu).uopWriteSame,

		UOP_MUUO:  (*Cpu).uopMuuo,
		UOP_MOVE:  (*Cpu).uopNop,
		UOP_MOVS:  (*Cpu).uopMovs,
		UOP_MOVN:  (*Cpu).uopMovn,
		UOP_MOVM:  (*Cpu).uopMovm,
		UOP_EXCH:  (*Cpu).uopExch,
		UOP_JRST:  (*Cpu).uopJrst,
		UOP_JFCL:  (*Cpu).uopJfcl,
		UOP_PUSHJ: (*Cpu).uopPushj,
		UOP_PUSH:  (*Cpu).uopPush,
		UOP_POP:   (*Cpu).uopPop,
		UOP_POPJ:  (*Cpu).uopPopj,
		UOP_JSR:   (*Cpu).uopJsr,
		UOP_JSP:   (*Cpu).uopJsp,
		UOP_ADD:   (*Cpu).uopAdd,
		UOP_SUB:   (*Cpu).uopSub,
		UOP_SKIP:  (*Cpu).uopSkip,
		UOP_JUMP:  (*Cpu).uopJump,
		UOP_AOJ:   (*Cpu).uopAoj,
		UOP_AOS:   (*Cpu).uopAos,
		UOP_SOJ:   (*Cpu).uopSoj,
		UOP_SOS:   (*Cpu).uopSos,

		UOP_SETZ:  (*Cpu).uopSetz,
		UOP_AND:   (*Cpu).uopAnd,
		UOP_ANDCA: (*Cpu).uopAndca,
		UOP_SETM:  (*Cpu).uopNop,
		UOP_ANDCM: (*Cpu).uopAndcm,
		UOP_SETA:  (*Cpu).uopNop,
		UOP_XOR:   (*Cpu).uopXor,
		UOP_IOR:   (*Cpu).uopIor,
		UOP_ANDCB: (*Cpu).uopAndcb,
		UOP_EQV:   (*Cpu).uopEqv,
		UOP_SETCA: (*Cpu).uopSetc,
		UOP_ORCA:  (*Cpu).uopOrca,
		UOP_SETCM: (*Cpu).uopSetc,
		UOP_ORCM:  (*Cpu).uopOrcm,
		UOP_ORCB:  (*Cpu).uopOrcb,
		UOP_SETO:  (*Cpu).uopSeto,

		UOP_HLL:  (*Cpu).uopHll,
		UOP_HRL:  (*Cpu).uopHrl,
		UOP_HRR:  (*Cpu).uopHrr,
		UOP_HLR:  (*Cpu).uopHlr,
		UOP_HLLZ: (*Cpu).uopHllz,
		UOP_HRLZ: (*Cpu).uopHrlz,
		UOP_HRRZ: (*Cpu).uopHrrz,
		UOP_HLRZ: (*Cpu).uopHlrz,
		UOP_HLLO: (*Cpu).uopHllo,
		UOP_HRLO: (*Cpu).uopHrlo,
		UOP_HRRO: (*Cpu).uopHrro,
		UOP_HLRO: (*Cpu).uopHlro,
		UOP_HLLE: (*Cpu).uopHlle,
		UOP_HRLE: (*Cpu).uopHrle,
		UOP_HRRE: (*Cpu).uopHrre,
		UOP_HLRE: (*Cpu).uopHlre,

		UOP_TEST: (*Cpu).uopTest,
	}
}

// exec dispatches a single uop.
func (cpu *Cpu) exec(uop Uop) (err error) {
	err = uopHandler[uop](cpu)
	if cpu.Verbose {
		log.Printf("%06o: %-17v AR %v BR %v", cpu.here, uop, cpu.AR, cpu.BR)
	}
	return
}
