package monitor

import (
	"strings"

	"github.com/ezrec/tenjit/memory"
)

const SIXBIT_CHARS = 6 // Characters per word.

// Sixbit packs up to six characters, left justified, space padded.
// Lower case is folded to upper case; other characters outside the
// SIXBIT range wrap.
func Sixbit(text string) (word memory.Word) {
	text = strings.ToUpper(text)
	for n := range SIXBIT_CHARS {
		ch := byte(' ')
		if n < len(text) {
			ch = text[n]
		}
		word = word<<6 | memory.Word(ch-040)&077
	}
	return
}

// SixbitString unpacks a word, dropping trailing spaces.
func SixbitString(word memory.Word) string {
	var text [SIXBIT_CHARS]byte
	for n := range SIXBIT_CHARS {
		text[n] = byte((word>>(6*(SIXBIT_CHARS-1-n)))&077) + 040
	}
	return strings.TrimRight(string(text[:]), " ")
}
