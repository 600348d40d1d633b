package cpu

import (
	"errors"

	"github.com/ezrec/tenjit/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrUnmapped      = errors.New(f("unmapped"))
	ErrUnimplemented = errors.New(f("unimplemented"))
	ErrTrap          = errors.New(f("monitor call with no monitor"))
	ErrHalt          = errors.New(f("halt"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrAcInvalid          = errors.New(f("accumulator invalid"))
	ErrIndexInvalid       = errors.New(f("index register invalid"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrLocationDuplicate  = errors.New(f("location assembled twice"))
)

// ErrUnmappedAccess is the address of a read, write, or execution that
// touched an unmapped word.
type ErrUnmappedAccess uint32

func (err ErrUnmappedAccess) Error() string {
	return f("unmapped access at %06o", uint32(err))
}

func (err ErrUnmappedAccess) Is(target error) (ok bool) {
	if target == ErrUnmapped {
		return true
	}
	_, ok = target.(ErrUnmappedAccess)
	return
}

// ErrInstruction wraps an error raised while executing the instruction at
// Address.
type ErrInstruction struct {
	Address uint32
	Word    Word
	Err     error
}

func (err *ErrInstruction) Error() string {
	return f("%06o: %v (%v) %v", err.Address, err.Word, Instruction(err.Word), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
