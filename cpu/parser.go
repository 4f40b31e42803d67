// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strconv"
	"strings"
)

// DirectiveKind is an assembler pseudo-operation.
type DirectiveKind int

const (
	DIRECTIVE_ORG  = DirectiveKind(0) // Set the location counter.
	DIRECTIVE_DATA = DirectiveKind(1) // Emit a literal word.
	DIRECTIVE_RES  = DirectiveKind(2) // Skip words without emitting.
	DIRECTIVE_END  = DirectiveKind(3) // Stop encoding.
)

// directiveMap maps directive mnemonics.
var directiveMap = map[string]DirectiveKind{
	"org":  DIRECTIVE_ORG,
	"data": DIRECTIVE_DATA,
	"res":  DIRECTIVE_RES,
	"end":  DIRECTIVE_END,
}

// CommandKind selects which fields of a Command are meaningful.
type CommandKind int

const (
	COMMAND_NONE        = CommandKind(0) // Label or comment only.
	COMMAND_INSTRUCTION = CommandKind(1)
	COMMAND_DIRECTIVE   = CommandKind(2)
)

// Operand is an instruction address, either literal or symbolic.
type Operand struct {
	Label   string  // Referenced label, if any.
	Address Address // Literal address, when Label is empty.
}

// IsLabel returns true for a symbolic operand.
func (op Operand) IsLabel() bool {
	return len(op.Label) != 0
}

// Command is the instruction or directive of a line.
type Command struct {
	Kind      CommandKind
	Op        Opcode        // Instruction opcode.
	Operand   Operand       // Instruction address, for addressed opcodes.
	Directive DirectiveKind // Directive kind.
	Value     int           // Org address, data value or reserve amount.
}

// Line is a parsed line of assembly source.
type Line struct {
	LineNo  int    // 1-based line number.
	Text    string // Original line text.
	Label   string // Label defined by the line, if any.
	Command Command
}

// Empty returns true if the line neither defines a label nor has a command.
func (line *Line) Empty() bool {
	return len(line.Label) == 0 && line.Command.Kind == COMMAND_NONE
}

// Next returns the location counter following this line.
func (line *Line) Next(counter Address) Address {
	cmd := &line.Command
	switch cmd.Kind {
	case COMMAND_INSTRUCTION:
		return counter.Next()
	case COMMAND_DIRECTIVE:
		switch cmd.Directive {
		case DIRECTIVE_ORG:
			return MakeAddress(cmd.Value)
		case DIRECTIVE_DATA:
			return counter.Next()
		case DIRECTIVE_RES:
			return counter.Advance(cmd.Value)
		}
	}

	return counter
}

// scanner walks the whitespace separated tokens of a line.
type scanner struct {
	text string
	pos  int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.text) && isSpace(s.text[s.pos]) {
		s.pos++
	}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.text)
}

func (s *scanner) rest() string {
	return s.text[s.pos:]
}

func (s *scanner) next() (token string) {
	start := s.pos
	for s.pos < len(s.text) && !isSpace(s.text[s.pos]) {
		s.pos++
	}
	return s.text[start:s.pos]
}

// validLabel checks a label name: a letter, then letters, digits or '_'.
func validLabel(name string) bool {
	if len(name) == 0 || !isLetter(name[0]) {
		return false
	}
	for n := 1; n < len(name); n++ {
		c := name[n]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// isMnemonic returns true for instruction and directive names, which can
// not be labels.
func isMnemonic(name string) bool {
	name = strings.ToLower(name)
	_, op := opcodeMap[name]
	_, directive := directiveMap[name]
	return op || directive
}

// parseNumber parses a decimal word value.
func parseNumber(digits string) (value int, err error) {
	if len(digits) == 0 {
		err = ErrInvalidNumber
		return
	}
	for n := range len(digits) {
		if !isDigit(digits[n]) {
			err = ErrInvalidNumber
			return
		}
	}
	v64, err := strconv.ParseUint(digits, 10, 16)
	if err != nil || v64 > WORD_MASK {
		err = ErrInvalidNumber
		return
	}

	value = int(v64)
	return
}

// parseOperand parses a single operand token. Literal operands also set
// 'number'.
func parseOperand(token string) (operand Operand, number bool, err error) {
	word := token
	if word[0] == '/' {
		word = word[1:]
		if strings.HasPrefix(word, "-") {
			// '/-N' addresses 4096-N
			var value int
			value, err = parseNumber(word[1:])
			if err != nil {
				return
			}
			operand.Address = MakeAddress(WORD_LIMIT - value)
			number = true
			return
		}
		if len(word) == 0 {
			err = ErrInvalidNumber
			return
		}
	}

	switch {
	case isDigit(word[0]):
		var value int
		value, err = parseNumber(word)
		if err != nil {
			return
		}
		operand.Address = Address(value)
		number = true
	case isLetter(word[0]):
		if !validLabel(word) {
			err = ErrInvalidLabelName
			return
		}
		operand.Label = word
	default:
		err = ErrParse
	}

	return
}

// ParseLine parses a single line of source. Errors are returned as *ErrLine.
func ParseLine(text string, lineno int) (line Line, err error) {
	line = Line{LineNo: lineno, Text: text}

	code, _, _ := strings.Cut(text, ";")
	s := &scanner{text: code}

	fail := func(start int, e error) (Line, error) {
		return Line{}, &ErrLine{LineNo: lineno, Line: text, Remaining: strings.TrimSpace(code[start:]), Err: e}
	}

	// A label is only present at the start of the line.
	if !s.done() && !isSpace(code[0]) {
		label := strings.TrimSuffix(s.next(), ":")
		if !validLabel(label) || isMnemonic(label) {
			return fail(0, ErrInvalidLabelName)
		}
		line.Label = label
	}

	s.skipSpace()
	if s.done() {
		return
	}

	start := s.pos
	mnemonic := s.next()
	for n := range len(mnemonic) {
		if !isLetter(mnemonic[n]) {
			return fail(start, ErrParse)
		}
	}

	cmd := &line.Command
	need := 0
	name := strings.ToLower(mnemonic)
	if op, ok := opcodeMap[name]; ok {
		cmd.Kind = COMMAND_INSTRUCTION
		cmd.Op = op
		if op.HasAddress() {
			need = 1
		}
	} else if directive, ok := directiveMap[name]; ok {
		cmd.Kind = COMMAND_DIRECTIVE
		cmd.Directive = directive
		if directive != DIRECTIVE_END {
			need = 1
		}
	} else {
		return fail(start, ErrInvalidInstruction(mnemonic))
	}

	for arg := 0; ; arg++ {
		s.skipSpace()
		if s.done() {
			if arg < need {
				return fail(s.pos, ErrMissingParameter)
			}
			break
		}
		if arg >= need {
			return fail(s.pos, ErrSyntax)
		}

		start = s.pos
		var operand Operand
		var number bool
		operand, number, err = parseOperand(s.next())
		if err != nil {
			return fail(start, err)
		}

		if cmd.Kind == COMMAND_INSTRUCTION {
			cmd.Operand = operand
			continue
		}

		if !number {
			return fail(start, ErrInvalidParameter{Expected: PARAMETER_NUMBER})
		}
		cmd.Value = int(operand.Address)
	}

	return
}
