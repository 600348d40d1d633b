package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSub(t *testing.T) {
	assert := assert.New(t)

	const m = Word(0400000000000)

	table := [](struct {
		name  string
		fn    func(a, b Word) (Word, Word)
		a, b  Word
		sum   Word
		flags Word
	}){
		{"add", add, 1, 1, 2, 0},
		{"add_overflow", add, 0377777777777, 1, m, FLAG_AROV | FLAG_CRY1},
		{"add_carry", add, WORD_MASK, 1, 0, FLAG_CRY0 | FLAG_CRY1},
		{"add_negative_overflow", add, m, m, 0, FLAG_AROV | FLAG_CRY0},
		{"add_masked", add, 01777777777777, 0, WORD_MASK, 0},
		{"sub", sub, 5, 3, 2, FLAG_CRY0 | FLAG_CRY1},
		{"sub_negative", sub, 3, 5, 0777777777776, 0},
		{"sub_zero", sub, 0, 0, 0, FLAG_CRY0 | FLAG_CRY1},
		{"sub_overflow", sub, m, 1, 0377777777777, FLAG_AROV | FLAG_CRY0},
	}

	for _, entry := range table {
		sum, flags := entry.fn(entry.a, entry.b)
		assert.Equal(entry.sum, sum, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}
}

func TestNegate(t *testing.T) {
	assert := assert.New(t)

	const m = Word(0400000000000)

	table := [](struct {
		name   string
		value  Word
		negate Word
		flags  Word
	}){
		{"zero", 0, 0, FLAG_CRY0 | FLAG_CRY1},
		{"one", 1, WORD_MASK, 0},
		{"minus_one", WORD_MASK, 1, 0},
		{"most_negative", m, m, FLAG_AROV | FLAG_CRY1},
		{"most_positive", 0377777777777, 0400000000001, 0},
	}

	for _, entry := range table {
		value, flags := negate(entry.value)
		assert.Equal(entry.negate, value, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}

	// Negation is an involution, except for the most negative number.
	for _, value := range []Word{1, 2, 0123456, 0377777777777, WORD_MASK} {
		once, _ := negate(value)
		twice, _ := negate(once)
		assert.Equal(value, twice)
	}
}

func TestCondition(t *testing.T) {
	assert := assert.New(t)

	const minus = WORD_MASK

	table := [](struct {
		a, b   Word
		expect [8]bool // never, L, E, LE, A, GE, N, G
	}){
		{1, 2, [8]bool{false, true, false, true, true, false, true, false}},
		{2, 2, [8]bool{false, false, true, true, true, true, false, false}},
		{3, 2, [8]bool{false, false, false, false, true, true, true, true}},
		{minus, 0, [8]bool{false, true, false, true, true, false, true, false}},
		{0, minus, [8]bool{false, false, false, false, true, true, true, true}},
	}

	for _, entry := range table {
		for cond, expect := range entry.expect {
			assert.Equal(expect, Condition(cond).Test(entry.a, entry.b),
				"%v %v %v", entry.a, Condition(cond), entry.b)
		}
	}
}
