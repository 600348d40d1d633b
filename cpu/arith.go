package cpu

import (
	"github.com/ezrec/tenjit/memory"
)

// magnitude is every bit except the sign.
const magnitude = WORD_MASK &^ SIGN_BIT

// addCarry returns a+b+carry, masked to 36 bits, and the carry and
// overflow flags the addition raises.
func addCarry(a, b, carry Word) (sum Word, flags Word) {
	a &= WORD_MASK
	b &= WORD_MASK

	full := a + b + carry
	cry0 := (full>>36)&1 != 0
	cry1 := ((a&magnitude)+(b&magnitude)+carry)>>35 != 0

	if cry0 {
		flags |= FLAG_CRY0
	}
	if cry1 {
		flags |= FLAG_CRY1
	}
	if cry0 != cry1 {
		flags |= FLAG_AROV
	}

	sum = full & WORD_MASK
	return
}

// add returns a+b.
func add(a, b Word) (Word, Word) {
	return addCarry(a, b, 0)
}

// sub returns a-b, as a + ^b + 1.
func sub(a, b Word) (Word, Word) {
	return addCarry(a, ^b&WORD_MASK, 1)
}

// negate returns -a. Negating zero carries out of both bits 0 and 1;
// negating the most negative number overflows and returns it unchanged.
func negate(a Word) (Word, Word) {
	return sub(0, a)
}

// Condition is a skip or jump condition, from the low three opcode bits.
type Condition int

const (
	COND_NEVER  = Condition(0)
	COND_L      = Condition(1)
	COND_E      = Condition(2)
	COND_LE     = Condition(3)
	COND_ALWAYS = Condition(4)
	COND_GE     = Condition(5)
	COND_N      = Condition(6)
	COND_G      = Condition(7)
)

var condName = [8]string{"", "L", "E", "LE", "A", "GE", "N", "G"}

func (cond Condition) String() string {
	return condName[cond&7]
}

// Test compares a with b as signed 36-bit numbers.
func (cond Condition) Test(a, b Word) (ok bool) {
	x := a.Int64()
	y := b.Int64()

	switch cond & 7 {
	case COND_NEVER:
		ok = false
	case COND_L:
		ok = x < y
	case COND_E:
		ok = x == y
	case COND_LE:
		ok = x <= y
	case COND_ALWAYS:
		ok = true
	case COND_GE:
		ok = x >= y
	case COND_N:
		ok = x != y
	case COND_G:
		ok = x > y
	}

	return
}

// stepPointer adds one (or, with down set, subtracts one) to both halves
// of a count,,pointer word, each modulo 2^18.
func stepPointer(ptr Word, down bool) Word {
	delta := Word(1)
	if down {
		delta = RIGHT
	}
	return memory.MakeWord(ptr.Left()+delta, ptr.Right()+delta)
}
