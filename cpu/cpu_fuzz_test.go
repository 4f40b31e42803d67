package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range 8 {
		f.Add(uint16(op<<OPCODE_SHIFT), uint16(0), uint16(0), uint16(0))
		f.Add(uint16(op<<OPCODE_SHIFT|0o777), uint16(0o7777), uint16(0o7777), uint16(1))
	}

	f.Fuzz(func(t *testing.T, opcode uint16, acc uint16, pc uint16, cell uint16) {
		assert := assert.New(t)

		word := Word(opcode) & WORD_MASK
		inst := Decode(word)

		cpu := NewCpu(0)
		var mem Memory
		mem[inst.Address] = Word(cell) & WORD_MASK
		cpu.SetMemory(mem)
		cpu.Pc = Address(pc) & WORD_MASK
		cpu.Acc = Word(acc) & WORD_MASK

		// Place the instruction where the PC fetches from, unless that is
		// also the operand cell.
		if cpu.Pc.Index() == int(inst.Address) {
			mem[inst.Address] = word
			cpu.SetMemory(mem)
		} else {
			mem[cpu.Pc.Index()] = word
			cpu.SetMemory(mem)
		}

		pre_acc := cpu.Acc
		pre_pc := cpu.Pc
		pre_mem := cpu.Memory()
		operand := pre_mem[inst.Address]

		halted := cpu.Step()

		code_str := fmt.Sprintf("%04o (%v) acc:%04o pc:%04o\ncpu:%v", word, inst, pre_acc, pre_pc, cpu.String())

		assert.Equal(word, cpu.Ir, code_str)
		assert.LessOrEqual(int(cpu.Acc), WORD_MASK, code_str)
		assert.LessOrEqual(int(cpu.Pc), WORD_MASK, code_str)
		assert.Equal(inst.Op == OP_HALT, halted, code_str)

		next_pc := pre_pc.Next()
		post_mem := cpu.Memory()

		switch inst.Op {
		case OP_STORE:
			assert.Equal(pre_acc, post_mem[inst.Address], code_str)
			assert.Equal([]Address{inst.Address}, cpu.LastModifications(), code_str)
			assert.Equal(pre_acc, cpu.Acc, code_str)
			assert.Equal(next_pc, cpu.Pc, code_str)
		case OP_LOAD:
			assert.Equal(operand, cpu.Acc, code_str)
			assert.Equal(next_pc, cpu.Pc, code_str)
		case OP_ADD:
			assert.Equal(Word((int(pre_acc)+int(operand))%WORD_LIMIT), cpu.Acc, code_str)
			assert.Equal(next_pc, cpu.Pc, code_str)
		case OP_BRANCH:
			assert.Equal(inst.Address, cpu.Pc, code_str)
		case OP_BRANCH_IF_ZERO:
			if pre_acc == 0 {
				assert.Equal(inst.Address, cpu.Pc, code_str)
			} else {
				assert.Equal(next_pc, cpu.Pc, code_str)
			}
		case OP_CLEAR:
			assert.Equal(Word(0), cpu.Acc, code_str)
			assert.Equal(next_pc, cpu.Pc, code_str)
		case OP_DECREASE:
			assert.Equal(Word((int(pre_acc)+WORD_LIMIT-1)%WORD_LIMIT), cpu.Acc, code_str)
			assert.Equal(next_pc, cpu.Pc, code_str)
		case OP_HALT:
			assert.Equal(pre_acc, cpu.Acc, code_str)
			assert.Equal(pre_pc, cpu.Pc, code_str)
		}

		if inst.Op != OP_STORE {
			assert.Equal(pre_mem, post_mem, code_str)
			assert.Empty(cpu.LastModifications(), code_str)
		}
	})
}
