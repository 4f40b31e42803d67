package cpu

import (
	"iter"
	"slices"
)

// Program is an assembled memory image, with its symbol table and the
// source lines that produced each word.
type Program struct {
	Memory  Memory             // Assembled memory image.
	Labels  map[string]Address // Symbol table.
	Written []Address          // Addresses written, in encoding order.

	source [MEMORY_SIZE](*Line)
}

// Debug is the source of a memory cell.
type Debug struct {
	*Line
	Address Address
}

// write stores an encoded word, remembering its source line.
func (prog *Program) write(addr Address, word Word, line *Line) {
	prog.Memory.Set(addr, word)
	prog.Written = append(prog.Written, addr)
	prog.source[addr.Index()] = line
}

// Debug finds the source line of an address. The Line is nil for cells
// that were not assembled.
func (prog *Program) Debug(addr Address) (dbg Debug) {
	dbg = Debug{
		Line:    prog.source[addr.Index()],
		Address: addr & ADDRESS_MASK,
	}

	return
}

// LineNo returns the source line number of an address, or 0.
func (prog *Program) LineNo(addr Address) int {
	line := prog.source[addr.Index()]
	if line == nil {
		return 0
	}

	return line.LineNo
}

// LabelsAt returns the labels bound to the memory cell of an address,
// sorted by name.
func (prog *Program) LabelsAt(addr Address) (labels []string) {
	for label, at := range prog.Labels {
		if at.Index() == addr.Index() {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)

	return
}

// Codes iterates over the assembled words, in encoding order.
func (prog *Program) Codes() iter.Seq2[Address, Word] {
	return func(yield func(addr Address, word Word) bool) {
		for _, addr := range prog.Written {
			if !yield(addr, prog.Memory.Get(addr)) {
				return
			}
		}
	}
}
