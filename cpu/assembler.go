// Copyright 2025, Jordan Reyes <jordan@reyes.dev>

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
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"LOAD_BASE":    fmt.Sprintf("%#x", LOAD_BASE),
	"RESET_VECTOR": fmt.Sprintf("%#x", RESET_VECTOR),
}

// Assembler is a single pass assembler for the 6502 instruction subset.
// Operands select the addressing mode by their shape: '#v' immediate,
// 'v' zero page or absolute by magnitude, 'v,X' and 'v,Y' indexed,
// '(v,X)' and '(v),Y' indirect. Bare identifiers are absolute label
// references, linked after the parse.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to image offsets.
	Equate    map[string]string // Map of equates.

	statements []Statement // Statements generated so far.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word. '$' is accepted as a hex
// prefix alongside the Go bases.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if strings.HasPrefix(word, "$") {
		word = "0x" + word[1:]
	}
	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	value = uint16(v64)

	return
}

// resolveValue resolves an equate name or a plain value.
func (asm *Assembler) resolveValue(word string) (value uint16, err error) {
	if equ, ok := asm.Equate[word]; ok {
		word = equ
	}
	return asm.valueOf(word)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
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
	value = uint16(st_int64)
	return
}

// parseLine expands a single line into instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	// Check for whole-word equates.
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentOffset()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentOffset gets the image offset of the next emitted byte.
func (asm *Assembler) currentOffset() (offset int) {
	if len(asm.statements) == 0 {
		return 0
	}

	last := asm.statements[len(asm.statements)-1]

	return int(last.Addr) + len(last.Bytes) - int(LOAD_BASE)
}

var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// operand is a parsed instruction operand.
type operand struct {
	mode  AddressingMode
	value uint16
	label string
}

// parseOperand determines the addressing mode and value of an operand.
func (asm *Assembler) parseOperand(arg string) (opr operand, err error) {
	if len(arg) == 0 {
		opr.mode = IMPLIED
		return
	}

	upper := strings.ToUpper(arg)
	switch {
	case strings.HasPrefix(arg, "#"):
		opr.mode = IMMEDIATE
		opr.value, err = asm.resolveValue(arg[1:])
	case strings.HasPrefix(arg, "(") && strings.HasSuffix(upper, ",X)"):
		opr.mode = INDIRECT_X
		opr.value, err = asm.resolveValue(arg[1 : len(arg)-3])
	case strings.HasPrefix(arg, "(") && strings.HasSuffix(upper, "),Y"):
		opr.mode = INDIRECT_Y
		opr.value, err = asm.resolveValue(arg[1 : len(arg)-3])
	case strings.HasSuffix(upper, ",X"):
		opr.value, err = asm.resolveValue(arg[:len(arg)-2])
		opr.mode = ABSOLUTE_X
		if err == nil && opr.value <= 0xff {
			opr.mode = ZERO_PAGE_X
		}
	case strings.HasSuffix(upper, ",Y"):
		opr.value, err = asm.resolveValue(arg[:len(arg)-2])
		opr.mode = ABSOLUTE_Y
		if err == nil && opr.value <= 0xff {
			opr.mode = ZERO_PAGE_Y
		}
	default:
		opr.value, err = asm.resolveValue(arg)
		if err != nil && labelRe.MatchString(arg) {
			// Forward label reference; linked after the parse.
			err = nil
			opr.label = arg
			opr.mode = ABSOLUTE
			return
		}
		opr.mode = ABSOLUTE
		if opr.value <= 0xff {
			opr.mode = ZERO_PAGE
		}
	}
	if err != nil {
		return
	}

	switch opr.mode {
	case IMMEDIATE, INDIRECT_X, INDIRECT_Y:
		if opr.value > 0xff {
			err = ErrOperandRange
		}
	}

	return
}

// parseWords encodes a directive or instruction into a statement.
func (asm *Assembler) parseWords(words []string, line string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	addr := LOAD_BASE + uint16(asm.currentOffset())

	// .byte VALUE...
	if words[0] == ".byte" {
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		var data []uint8
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.resolveValue(word)
			if err != nil {
				return
			}
			if value > 0xff {
				err = ErrOperandRange
				return
			}
			data = append(data, uint8(value))
		}
		asm.emit(Statement{Addr: addr, LineNo: lineno, Source: line, Bytes: data})
		return
	}

	if len(words) > 2 {
		err = ErrExtraArgs
		return
	}

	mnemonic := strings.ToUpper(words[0])
	var arg string
	if len(words) == 2 {
		arg = words[1]
	}

	opr, err := asm.parseOperand(arg)
	if err != nil {
		return
	}

	op, err := findOpcode(mnemonic, opr.mode)
	if err != nil {
		return
	}

	data := []uint8{op.Hex}
	switch op.Bytes {
	case 2:
		data = append(data, uint8(opr.value))
	case 3:
		data = append(data, uint8(opr.value), uint8(opr.value>>8))
	}

	asm.emit(Statement{
		Addr:      addr,
		LineNo:    lineno,
		Source:    line,
		Bytes:     data,
		LinkLabel: opr.label,
	})

	return
}

func (asm *Assembler) emit(st Statement) {
	asm.statements = append(asm.statements, st)

	if asm.Verbose {
		log.Printf("%04x: % 02x ; %v", st.Addr, st.Bytes, st.Source)
	}
}

// Parse parses an input stream into a Program containing statements.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.statements = asm.statements[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, line, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of absolute labels.
	for n := range asm.statements {
		st := &asm.statements[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		offset, ok := asm.Label[st.LinkLabel]
		if !ok {
			err = ErrLabelMissing(st.LinkLabel)
			return
		}
		target := LOAD_BASE + uint16(offset)
		st.Bytes[1] = uint8(target)
		st.Bytes[2] = uint8(target >> 8)
	}

	prog = &Program{Statements: slices.Clone(asm.statements)}

	return
}
