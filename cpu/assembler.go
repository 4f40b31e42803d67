// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates, usable in $() expressions.
var sysEquate = map[string]int{
	"LINENO":       0,
	"MEMORY_SIZE":  MEMORY_SIZE,
	"ADDRESS_MASK": ADDRESS_MASK,
	"WORD_LIMIT":   WORD_LIMIT,
	"WORD_MASK":    WORD_MASK,
}

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a two pass assembler for the Simplez machine.
type Assembler struct {
	Verbose bool               // If set, verbosely logs the assembler actions.
	Label   map[string]Address // Symbol table of the last assembly.

	predefine map[string]int // Caller supplied equates.
	equate    map[string]int // Equates visible to expressions.
}

// Assemble assembles source text into a program.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "simplez"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, v := range asm.equate {
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrInvalidExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrInvalidExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > WORD_MASK {
		err = ErrInvalidExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expand replaces every $() expression of a line by its value.
func (asm *Assembler) expand(text string, lineno int) (line string, err error) {
	asm.equate["LINENO"] = lineno

	line = reExpression.ReplaceAllStringFunc(text, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		return strconv.Itoa(value)
	})

	return
}

// Lines parses an input stream into lines, dropping the empty ones.
func (asm *Assembler) Lines(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	asm.equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.equate[attr] = val
	}

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		code := text
		if strings.Contains(text, "$(") {
			comment := ""
			if n := strings.IndexByte(text, ';'); n >= 0 {
				code, comment = text[:n], text[n:]
			}
			code, err = asm.expand(code, lineno)
			if err != nil {
				err = &ErrLine{LineNo: lineno, Line: text, Err: err}
				return
			}
			code += comment
		}

		var line Line
		line, err = ParseLine(code, lineno)
		if err != nil {
			return
		}
		line.Text = text

		if line.Empty() {
			continue
		}

		lines = append(lines, line)
	}

	err = scanner.Err()
	if err != nil {
		lines = nil
		err = &ErrLine{LineNo: lineno + 1, Err: err}
		return
	}

	return
}

// Resolve is the first pass: it assigns every label its address.
func (asm *Assembler) Resolve(lines []Line) (labels map[string]Address, err error) {
	labels = make(map[string]Address, 16)

	var counter Address
	for n := range lines {
		line := &lines[n]

		if len(line.Label) != 0 {
			if _, ok := labels[line.Label]; ok {
				labels = nil
				err = &ErrLine{LineNo: line.LineNo, Line: line.Text, Err: ErrRedefinedLabel(line.Label)}
				return
			}
			labels[line.Label] = counter
			if asm.Verbose {
				log.Printf("label %v = %03o", line.Label, counter)
			}
		}

		counter = line.Next(counter)
	}

	asm.Label = labels

	return
}

// Encode is the second pass: it writes the words of the lines into a
// fresh memory image, stopping at the first 'end'.
func (asm *Assembler) Encode(lines []Line, labels map[string]Address) (prog *Program, err error) {
	out := &Program{
		Labels: labels,
	}

	var counter Address
	for n := range lines {
		line := &lines[n]
		cmd := &line.Command

		var word Word
		emit := false

		switch cmd.Kind {
		case COMMAND_INSTRUCTION:
			var addr Address
			if cmd.Op.HasAddress() {
				addr = cmd.Operand.Address
				if cmd.Operand.IsLabel() {
					var ok bool
					addr, ok = labels[cmd.Operand.Label]
					if !ok {
						err = &ErrLine{LineNo: line.LineNo, Line: line.Text, Remaining: cmd.Operand.Label, Err: ErrUndefinedLabel(cmd.Operand.Label)}
						return
					}
				}
			}
			word = MakeInstruction(cmd.Op, addr).Encode()
			emit = true
		case COMMAND_DIRECTIVE:
			switch cmd.Directive {
			case DIRECTIVE_DATA:
				word = MakeWord(cmd.Value)
				emit = true
			case DIRECTIVE_END:
				prog = out
				return
			}
		}

		if emit {
			if asm.Verbose {
				log.Printf("%03o: %04o %v", counter.Index(), word, line.Text)
			}
			out.write(counter, word, line)
		}

		counter = line.Next(counter)
	}

	prog = out

	return
}

// Parse parses and assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines, err := asm.Lines(input)
	if err != nil {
		return
	}

	labels, err := asm.Resolve(lines)
	if err != nil {
		return
	}

	prog, err = asm.Encode(lines, labels)
	if err != nil {
		prog = nil
		return
	}

	if asm.Verbose {
		log.Printf("assembled %d words, %d labels", len(prog.Written), len(labels))
	}

	return
}
