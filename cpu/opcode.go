package cpu

import (
	"fmt"
)

// Opcode is the 3-bit operation field of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_STORE          = Opcode(0) // st
	OP_LOAD           = Opcode(1) // ld
	OP_ADD            = Opcode(2) // add
	OP_BRANCH         = Opcode(3) // br
	OP_BRANCH_IF_ZERO = Opcode(4) // bz
	OP_CLEAR          = Opcode(5) // clr
	OP_DECREASE       = Opcode(6) // dec
	OP_HALT           = Opcode(7) // halt
)

// HasAddress returns true if the opcode takes an address operand.
func (op Opcode) HasAddress() bool {
	return op >= OP_STORE && op <= OP_BRANCH_IF_ZERO
}

// opcodeMap maps instruction mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"st":   OP_STORE,
	"ld":   OP_LOAD,
	"add":  OP_ADD,
	"br":   OP_BRANCH,
	"bz":   OP_BRANCH_IF_ZERO,
	"clr":  OP_CLEAR,
	"dec":  OP_DECREASE,
	"halt": OP_HALT,
}

// Instruction is a decoded machine word.
//
// The address of a no-operand instruction is kept as decoded, so that every
// word survives a decode and encode unchanged.
type Instruction struct {
	Op      Opcode
	Address Address
}

// MakeInstruction creates an instruction, masking the address to memory.
func MakeInstruction(op Opcode, address Address) Instruction {
	return Instruction{Op: op, Address: address & ADDRESS_MASK}
}

// Decode splits a word into opcode and address. All 4096 words decode.
func Decode(word Word) (inst Instruction) {
	inst.Op = Opcode((word & OPCODE_MASK) >> OPCODE_SHIFT)
	inst.Address = Address(word & ADDRESS_MASK)
	return
}

// Encode packs the instruction into a word.
func (inst Instruction) Encode() Word {
	return ((Word(inst.Op) << OPCODE_SHIFT) & OPCODE_MASK) | Word(inst.Address&ADDRESS_MASK)
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	if inst.Op.HasAddress() {
		return fmt.Sprintf("%v /%d", inst.Op, inst.Address&ADDRESS_MASK)
	}

	return inst.Op.String()
}
