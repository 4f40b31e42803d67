// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":  fmt.Sprintf("%d", MEMORY_SIZE),
	"ADDRESS_MASK": fmt.Sprintf("%d", ADDRESS_MASK),
	"WORD_LIMIT":   fmt.Sprintf("%d", WORD_LIMIT),
	"WORD_MASK":    fmt.Sprintf("%d", WORD_MASK),
}

// Cpu is the execution context of the Simplez machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Acc Word    // Accumulator.
	Pc  Address // Program counter.
	Ir  Word    // Instruction register; the last fetched word.

	Ticks int // Steps executed since the last register reset.

	memory  Memory
	history History
}

// NewCpu creates a new CPU with zeroed memory, keeping up to depth
// modified addresses in its history.
func NewCpu(depth int) (cpu *Cpu) {
	cpu = &Cpu{
		history: History{Depth: depth},
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Zero is the zero flag. It is derived from the accumulator, never stored.
func (cpu *Cpu) Zero() bool {
	return cpu.Acc == 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"acc", "pc", "ir", "z"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "acc":
			strval = fmt.Sprintf("%04o (%d)", cpu.Acc, cpu.Acc)
		case "pc":
			strval = fmt.Sprintf("%04o (%d)", cpu.Pc, cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("%04o %v", cpu.Ir, Decode(cpu.Ir))
		case "z":
			strval = "0"
			if cpu.Zero() {
				strval = "1"
			}
		}
		text += fmt.Sprintf("% 4s: %v\n", reg, strval)
	}

	return
}

// ResetRegisters clears the accumulator, program counter, instruction
// register and tick counter. Memory is untouched.
func (cpu *Cpu) ResetRegisters() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Acc = 0
	cpu.Pc = 0
	cpu.Ir = 0
	cpu.Ticks = 0
}

// Memory returns a copy of the memory.
func (cpu *Cpu) Memory() Memory {
	return cpu.memory
}

// SetMemory replaces the memory wholesale, and forgets the history.
func (cpu *Cpu) SetMemory(mem Memory) {
	cpu.memory = mem
	cpu.history.Reset()
}

// LastModifications returns the recently stored addresses, most recent first.
func (cpu *Cpu) LastModifications() []Address {
	return slices.Clone(cpu.history.Data)
}

// store writes memory on behalf of the program, recording the address.
func (cpu *Cpu) store(addr Address, value Word) {
	cpu.memory.Set(addr, value)
	cpu.history.Push(addr)
}

// Step runs a single fetch-decode-execute cycle. It returns true when a
// halt instruction was executed; the program counter then still points at
// the halt.
func (cpu *Cpu) Step() (halted bool) {
	cpu.Ir = cpu.memory.Get(cpu.Pc)
	inst := Decode(cpu.Ir)

	if cpu.Verbose {
		log.Printf("%03o: %04o %v", cpu.Pc.Index(), cpu.Ir, inst)
	}

	cpu.Ticks++

	next_pc := cpu.Pc.Next()

	switch inst.Op {
	case OP_STORE:
		cpu.store(inst.Address, cpu.Acc)
	case OP_LOAD:
		cpu.Acc = cpu.memory.Get(inst.Address)
	case OP_ADD:
		cpu.Acc = cpu.Acc.Add(cpu.memory.Get(inst.Address))
	case OP_BRANCH:
		next_pc = inst.Address
	case OP_BRANCH_IF_ZERO:
		if cpu.Zero() {
			next_pc = inst.Address
		}
	case OP_CLEAR:
		cpu.Acc = 0
	case OP_DECREASE:
		cpu.Acc = cpu.Acc.Dec()
	case OP_HALT:
		halted = true
		return
	}

	cpu.Pc = next_pc

	return
}
