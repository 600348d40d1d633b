// Package memory provides the 36-bit word type and the backing stores
// the tenjit CPU reads and writes through.
//
// A store only holds words. Which pages are mapped, and how they are
// translated, is decided by the CPU's page classifier.
package memory

import (
	"fmt"
)

const (
	WORD_BITS    = 36
	WORD_MASK    = Word(0777777777777) // All 36 bits.
	SIGN_BIT     = Word(0400000000000) // Bit 0, in DEC numbering.
	LEFT         = Word(0777777000000) // Left half-word.
	RIGHT        = Word(0000000777777) // Right half-word.
	ADDRESS_MASK = 0777777             // 18-bit address.

	MOBY        = 1 << 18 // Full address space, in words.
	PAGE_SIZE   = 1024    // Words per page.
	PAGE_MASK   = 0776000 // Address bits selecting a page.
	OFFSET_MASK = 01777   // Address bits selecting a word in a page.
)

// Word is a 36-bit PDP-10 word, held in the low bits of a uint64.
type Word uint64

// MakeWord packs two 18-bit halves.
func MakeWord(left, right Word) Word {
	return ((left & RIGHT) << 18) | (right & RIGHT)
}

// Left returns the left half, right justified.
func (w Word) Left() Word {
	return (w >> 18) & RIGHT
}

// Right returns the right half.
func (w Word) Right() Word {
	return w & RIGHT
}

// Swap exchanges the halves.
func (w Word) Swap() Word {
	return MakeWord(w.Right(), w.Left())
}

// Negative is true when bit 0 (the sign) is set.
func (w Word) Negative() bool {
	return w&SIGN_BIT != 0
}

// Int64 sign-extends the word.
func (w Word) Int64() int64 {
	w &= WORD_MASK
	if w.Negative() {
		return int64(w | ^WORD_MASK)
	}
	return int64(w)
}

// String formats the word as 12 octal digits.
func (w Word) String() string {
	return fmt.Sprintf("%012o", uint64(w&WORD_MASK))
}

// PageOf returns the page-aligned address containing address.
func PageOf(address uint32) uint32 {
	return address & PAGE_MASK
}

// Memory is a backing word store.
type Memory interface {
	// GetWord reads the word at an 18-bit address.
	GetWord(address uint32) (value Word, err error)
	// SetWord writes the word at an 18-bit address.
	SetWord(address uint32, value Word) (err error)
}
