package memory

import (
	"iter"
	"maps"
	"slices"
)

// Page is one page of core.
type Page [PAGE_SIZE]Word

// Core is an in-memory store, allocated a page at a time.
// Words never written read as zero.
type Core struct {
	Page map[uint32](*Page) // Populated pages, by page address.
}

var _ Memory = (*Core)(nil)
var _ Pager = (*Core)(nil)

// NewCore creates an empty core.
func NewCore() (core *Core) {
	core = &Core{}
	core.Reset()
	return
}

// Reset releases all pages.
func (core *Core) Reset() {
	core.Page = make(map[uint32](*Page))
}

func (core *Core) page(address uint32, create bool) (page *Page) {
	page, ok := core.Page[PageOf(address)]
	if !ok && create {
		if core.Page == nil {
			core.Page = make(map[uint32](*Page))
		}
		page = &Page{}
		core.Page[PageOf(address)] = page
	}
	return
}

// GetWord reads the word at address.
func (core *Core) GetWord(address uint32) (value Word, err error) {
	if address >= MOBY {
		err = &ErrAddress{Address: address, Err: ErrAddressRange}
		return
	}

	page := core.page(address, false)
	if page != nil {
		value = page[address&OFFSET_MASK]
	}

	return
}

// SetWord writes the word at address.
func (core *Core) SetWord(address uint32, value Word) (err error) {
	if address >= MOBY {
		err = &ErrAddress{Address: address, Err: ErrAddressRange}
		return
	}

	page := core.page(address, true)
	page[address&OFFSET_MASK] = value & WORD_MASK

	return
}

// Load stores consecutive words starting at address.
func (core *Core) Load(address uint32, words ...Word) (err error) {
	for n, word := range words {
		err = core.SetWord(address+uint32(n), word)
		if err != nil {
			return
		}
	}
	return
}

// Pages returns the populated page addresses in ascending order.
func (core *Core) Pages() iter.Seq[uint32] {
	return slices.Values(slices.Sorted(maps.Keys(core.Page)))
}

// Err is always nil; listing core pages cannot fail.
func (core *Core) Err() error {
	return nil
}
