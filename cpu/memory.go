package cpu

import (
	"iter"
)

// Memory is the full 512 word store of the machine. The zero value is
// all-zero memory.
type Memory [MEMORY_SIZE]Word

// Get reads the cell selected by the address.
func (mem *Memory) Get(addr Address) Word {
	return mem[addr.Index()]
}

// Set writes the cell selected by the address.
func (mem *Memory) Set(addr Address, value Word) {
	mem[addr.Index()] = value & WORD_MASK
}

// Words iterates over every cell, in address order.
func (mem *Memory) Words() iter.Seq2[Address, Word] {
	return func(yield func(addr Address, word Word) bool) {
		for n, word := range mem {
			if !yield(Address(n), word) {
				return
			}
		}
	}
}
