package cpu

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/tenjit/memory"
)

// Location is one assembled word.
type Location struct {
	Address uint32 // Address of the word.
	Word    Word   // Assembled value.
	LineNo  int    // Source line.
	Pure    bool   // Assembled under .pure.
	Text    string // Source text.
}

// Program is the output of the assembler.
type Program struct {
	Locations []Location
	Labels    map[string]uint32
}

// Debug returns the location assembled at address, or nil.
func (prog *Program) Debug(address uint32) (loc *Location) {
	for n := range prog.Locations {
		if prog.Locations[n].Address == address {
			loc = &prog.Locations[n]
			break
		}
	}

	return
}

// Words iterates over the assembled words, in source order.
func (prog *Program) Words() iter.Seq2[uint32, Word] {
	return func(yield func(address uint32, word Word) bool) {
		for _, loc := range prog.Locations {
			if !yield(loc.Address, loc.Word) {
				return
			}
		}
	}
}

// Pages iterates over the pages the program occupies, in address order,
// and whether every word assembled into the page is pure.
func (prog *Program) Pages() iter.Seq2[uint32, bool] {
	pure := map[uint32]bool{}
	for _, loc := range prog.Locations {
		page := memory.PageOf(loc.Address)
		was, ok := pure[page]
		pure[page] = loc.Pure && (was || !ok)
	}

	pages := make([]uint32, 0, len(pure))
	for page := range pure {
		pages = append(pages, page)
	}
	slices.Sort(pages)

	return func(yield func(page uint32, pure bool) bool) {
		for _, page := range pages {
			if !yield(page, pure[page]) {
				return
			}
		}
	}
}

// Start returns the address of the label START, or the lowest assembled
// address.
func (prog *Program) Start() (address uint32, ok bool) {
	address, ok = prog.Labels["START"]
	if ok {
		return
	}

	for n, loc := range prog.Locations {
		if n == 0 || loc.Address < address {
			address = loc.Address
			ok = true
		}
	}

	return
}

// Listing writes the program as octal words with their source text.
func (prog *Program) Listing(out io.Writer) (err error) {
	for _, loc := range prog.Locations {
		mark := " "
		if loc.Pure {
			mark = "P"
		}
		_, err = fmt.Fprintf(out, "%06o %v %s %4d  %v\n", loc.Address, loc.Word, mark, loc.LineNo, loc.Text)
		if err != nil {
			return
		}
	}

	return
}
