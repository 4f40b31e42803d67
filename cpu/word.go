// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	WORD_BITS    = 12                  // Bits in a machine word.
	WORD_LIMIT   = 1 << WORD_BITS      // Number of distinct word values.
	WORD_MASK    = WORD_LIMIT - 1      // Mask of the word bits.
	ADDRESS_BITS = 9                   // Significant address bits.
	MEMORY_SIZE  = 1 << ADDRESS_BITS   // Words of addressable memory.
	ADDRESS_MASK = MEMORY_SIZE - 1     // Mask of a memory index.
	OPCODE_SHIFT = ADDRESS_BITS        // Opcode position in a word.
	OPCODE_MASK  = 0x7 << OPCODE_SHIFT // Mask of the opcode bits.
)

// Word is a 12-bit memory cell. All arithmetic wraps modulo 4096.
type Word uint16

// MakeWord truncates a value to a 12-bit word.
func MakeWord(value int) Word {
	return Word(value & WORD_MASK)
}

// Add returns w + v, modulo 4096.
func (w Word) Add(v Word) Word {
	return (w + v) & WORD_MASK
}

// Dec returns w - 1, modulo 4096.
func (w Word) Dec() Word {
	return (w - 1) & WORD_MASK
}

// Address is a 12-bit location. Only the low 9 bits select memory.
type Address uint16

// MakeAddress truncates a value to a 12-bit address.
func MakeAddress(value int) Address {
	return Address(value & WORD_MASK)
}

// Index is the memory cell selected by the address.
func (a Address) Index() int {
	return int(a & ADDRESS_MASK)
}

// Next is the following address, modulo 4096.
func (a Address) Next() Address {
	return a.Advance(1)
}

// Advance returns a + n, modulo 4096.
func (a Address) Advance(n int) Address {
	return MakeAddress(int(a) + n)
}
