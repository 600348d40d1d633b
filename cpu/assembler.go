// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tenjit/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// maxEquateDepth limits equates defined in terms of other equates.
const maxEquateDepth = 32

// Assembler is a single pass macro assembler for PDP-10 code.
type Assembler struct {
	Verbose  bool       // If set, verbosely logs the assembler actions.
	Location []Location // List of assembled words.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	loc        uint32         // Location counter.
	pure       bool           // Set while assembling pure code.
	expansions int            // Count of macro expansions.
	placed     map[uint32]int // Location index by address.
	links      []link         // Forward label references.
}

// link is a reference to a label that was not yet defined.
type link struct {
	index int    // Location to patch.
	label string // Label whose address is added to the right half.
}

// Define defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	symbolRe     = regexp.MustCompile(`^[A-Za-z_.$][A-Za-z0-9_.$]*$`)
	identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`) // Visible to $(...)
)

// valueOf returns the value of a number: octal by default, decimal with a
// trailing '.', or hexadecimal with a leading '0x'.
func valueOf(word string) (value Word, err error) {
	text := word
	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}

	var v uint64
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		v, err = strconv.ParseUint(text[2:], 16, 64)
	case strings.HasSuffix(text, "."):
		v, err = strconv.ParseUint(text[:len(text)-1], 10, 64)
	default:
		v, err = strconv.ParseUint(text, 8, 64)
	}
	if err != nil || v > uint64(WORD_MASK) {
		err = ErrParseNumber(word)
		return
	}

	value = Word(v)
	if negative {
		value = (^value + 1) & WORD_MASK
	}

	return
}

// term evaluates a number or a symbol. A symbol that is not yet defined is
// returned as label, to be linked once the whole source is read.
func (asm *Assembler) term(word string, depth int) (value Word, label string, err error) {
	switch {
	case len(word) == 0:
		err = ErrOpcodeValueMissing
	case word == ".":
		value = Word(asm.loc)
	case word[0] >= '0' && word[0] <= '9':
		value, err = valueOf(word)
	default:
		equate, ok := asm.Equate[word]
		if ok {
			if depth >= maxEquateDepth {
				err = ErrEquateSyntax
				return
			}
			return asm.expr(equate, depth+1)
		}
		address, ok := asm.Label[word]
		if ok {
			value = Word(address)
			return
		}
		if !symbolRe.MatchString(word) {
			err = ErrParseNumber(word)
			return
		}
		label = word
	}

	return
}

// expr evaluates a sum of terms, such as 'LOOP+2' or '-1'. At most one
// forward label may be added in.
func (asm *Assembler) expr(text string, depth int) (value Word, label string, err error) {
	rest := strings.TrimSpace(text)
	if len(rest) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	for len(rest) > 0 {
		negative := false
		for len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			if rest[0] == '-' {
				negative = !negative
			}
			rest = rest[1:]
		}

		end := strings.IndexAny(rest, "+-")
		if end < 0 {
			end = len(rest)
		}

		var part Word
		var part_label string
		part, part_label, err = asm.term(rest[:end], depth)
		if err != nil {
			return
		}
		rest = rest[end:]

		if len(part_label) != 0 {
			if negative || len(label) != 0 {
				err = ErrAddressInvalid
				return
			}
			label = part_label
		}

		if negative {
			value -= part
		} else {
			value += part
		}
	}

	value &= WORD_MASK
	return
}

// constant evaluates an expression that must not refer to a forward label.
func (asm *Assembler) constant(text string) (value Word, err error) {
	value, label, err := asm.expr(text, 0)
	if err != nil {
		return
	}
	if len(label) != 0 {
		err = ErrLabelMissing(label)
		return
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		if !identifierRe.MatchString(key) {
			continue
		}
		var equ Word
		equ, err = asm.constant(key)
		if err != nil {
			// Ignore non-integer equates. They may be mnemonics
			// or forward references.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(uint64(equ))
	}
	for key, address := range asm.Label {
		if !identifierRe.MatchString(key) {
			continue
		}
		pred[key] = starlark.MakeUint64(uint64(address))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = Word(st_int64) & WORD_MASK
	return
}

// operands are the decoded fields of 'AC,@Y(X)'.
type operands struct {
	ac       int
	indirect bool
	index    int
	y        Word
	label    string
}

// parseOperands decodes 'AC,@Y(X)'. Every part is optional.
func (asm *Assembler) parseOperands(text string) (ops operands, err error) {
	if len(text) == 0 {
		return
	}

	before, after, found := strings.Cut(text, ",")
	if found {
		var ac Word
		ac, err = asm.constant(before)
		if err != nil {
			return
		}
		if ac > AC_MASK {
			err = ErrAcInvalid
			return
		}
		ops.ac = int(ac)
		text = after
	}

	if strings.HasPrefix(text, "@") {
		ops.indirect = true
		text = text[1:]
	}

	if strings.HasSuffix(text, ")") {
		n := strings.LastIndex(text, "(")
		if n < 0 {
			err = ErrIndexInvalid
			return
		}
		var index Word
		index, err = asm.constant(text[n+1 : len(text)-1])
		if err != nil {
			return
		}
		if index > INDEX_MASK {
			err = ErrIndexInvalid
			return
		}
		ops.index = int(index)
		text = text[:n]
	}

	if len(text) != 0 {
		ops.y, ops.label, err = asm.expr(text, 0)
	}

	return
}

// parseLine parses a single line, handling equates, labels, and macro
// expansion. The remaining words are returned for parseWords.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%d.", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d.", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d.", uint64(value))
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) < 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = strings.Join(words[2:], "")
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !symbolRe.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.loc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			value, ok := old_equate[args[n]]
			if !ok {
				value = args[n]
			}
			asm.Equate[arg] = value
		}
		defer func() { asm.Equate = old_equate }()

		// '%' in a macro body makes a label local to this expansion.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "%", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno, line)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// emit assembles a word at the location counter.
func (asm *Assembler) emit(word Word, label string, lineno int, text string) (err error) {
	address := asm.loc
	_, ok := asm.placed[address]
	if ok {
		err = ErrLocationDuplicate
		return
	}

	if len(label) != 0 {
		asm.links = append(asm.links, link{index: len(asm.Location), label: label})
	}

	asm.placed[address] = len(asm.Location)
	asm.Location = append(asm.Location, Location{
		Address: address,
		Word:    word & WORD_MASK,
		LineNo:  lineno,
		Pure:    asm.pure,
		Text:    text,
	})

	asm.loc = (asm.loc + 1) & ADDRESS_MASK

	return
}

// opdef returns the base word of an instruction mnemonic, or of an equate
// used as one.
func (asm *Assembler) opdef(name string) (base Word, err error) {
	opcode, ok := LookupOpcode(name)
	if ok {
		base = MakeInstruction(opcode, 0, false, 0, 0).Word()
		return
	}

	equate, ok := asm.Equate[name]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	opcode, ok = LookupOpcode(equate)
	if ok {
		base = MakeInstruction(opcode, 0, false, 0, 0).Word()
		return
	}

	base, err = asm.constant(equate)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int, text string) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op := words[0]
	args := strings.Join(words[1:], "")

	switch op {
	case ".loc":
		var address Word
		address, err = asm.constant(args)
		if err != nil {
			return
		}
		if address > ADDRESS_MASK {
			err = ErrAddressInvalid
			return
		}
		asm.loc = uint32(address)
	case ".pure", ".impure":
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		asm.pure = op == ".pure"
	case ".word":
		var value Word
		var label string
		left, right, halves := strings.Cut(args, ",,")
		if halves {
			var lh Word
			lh, err = asm.constant(left)
			if err != nil {
				return
			}
			value, label, err = asm.expr(right, 0)
			if err != nil {
				return
			}
			value = memory.MakeWord(lh, value)
		} else {
			value, label, err = asm.expr(args, 0)
			if err != nil {
				return
			}
		}
		err = asm.emit(value, label, lineno, text)
	default:
		_, is_equate := asm.Equate[op]
		if strings.HasPrefix(op, ".") && !is_equate {
			err = ErrDirectiveInvalid
			return
		}

		var base Word
		base, err = asm.opdef(op)
		if err != nil {
			return
		}

		var ops operands
		ops, err = asm.parseOperands(args)
		if err != nil {
			return
		}

		word := base | Word(ops.ac)<<AC_SHIFT | Word(ops.index)<<INDEX_SHIFT
		if ops.indirect {
			word |= 1 << INDIRECT_SHIFT
		}
		word = word&^RIGHT | (word+ops.y)&RIGHT

		err = asm.emit(word, ops.label, lineno, text)
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Location = asm.Location[:0]
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.loc = 0
	asm.pure = false
	asm.expansions = 0
	asm.placed = make(map[uint32]int)
	asm.links = asm.links[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of forward labels.
	for _, ref := range asm.links {
		loc := &asm.Location[ref.index]
		address, ok := asm.Label[ref.label]
		if !ok {
			lineno = loc.LineNo
			line = loc.Text
			err = ErrLabelMissing(ref.label)
			return
		}
		loc.Word = loc.Word&^RIGHT | (loc.Word+Word(address))&RIGHT
	}

	prog = &Program{
		Locations: slices.Clone(asm.Location),
		Labels:    maps.Clone(asm.Label),
	}

	return
}
