package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeString(t *testing.T) {
	assert := assert.New(t)

	for name, op := range opcodeMap {
		assert.Equal(name, op.String())
	}
	assert.Equal("Opcode(8)", Opcode(8).String())
}

func TestInstructionRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for w := range WORD_LIMIT {
		word := Word(w)
		assert.Equal(word, Decode(word).Encode(), "%04o", w)
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word Word
		text string
	}){
		{0o0005, "st /5"},
		{0o1777, "ld /511"},
		{0o2000, "add /0"},
		{0o3012, "br /10"},
		{0o4001, "bz /1"},
		{0o5000, "clr"},
		{0o5123, "clr"},
		{0o6000, "dec"},
		{0o7000, "halt"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, Decode(entry.word).String())
	}
}

func TestMakeInstruction(t *testing.T) {
	assert := assert.New(t)

	inst := MakeInstruction(OP_LOAD, 4095)
	assert.Equal(Address(511), inst.Address)
	assert.Equal(Word(0o1777), inst.Encode())
	assert.True(OP_BRANCH_IF_ZERO.HasAddress())
	assert.False(OP_CLEAR.HasAddress())

	// The opcode field is bits 11-9, the address bits 8-0.
	assert.Equal(Word(0o7000), Word(OPCODE_MASK))
	assert.Equal(Word(0o6123), Instruction{Op: OP_DECREASE, Address: 0o7123}.Encode())
	assert.Equal(Instruction{Op: OP_HALT, Address: 0o777}, Decode(0o7777))
}

func FuzzInstruction(f *testing.F) {
	f.Add(uint16(0))
	f.Add(uint16(0o7777))
	f.Add(uint16(0xffff))

	f.Fuzz(func(t *testing.T, w uint16) {
		word := Word(w) & WORD_MASK
		inst := Decode(word)
		assert.Equal(t, word, inst.Encode())
		assert.True(t, inst.Op >= OP_STORE && inst.Op <= OP_HALT)
		assert.Less(t, int(inst.Address), MEMORY_SIZE)
	})
}
