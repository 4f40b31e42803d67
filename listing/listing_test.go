package listing

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/simplez/cpu"
)

func TestStyleOf(t *testing.T) {
	assert := assert.New(t)

	style, err := StyleOf("Rounded")
	assert.NoError(err)
	assert.Equal(table.StyleRounded.Name, style.Name)

	_, err = StyleOf("sparkly")
	assert.ErrorIs(err, ErrStyleUnknown)
}

func TestListingMemory(t *testing.T) {
	assert := assert.New(t)

	prog, err := cpu.Assemble(strings.Join([]string{
		"start ld five",
		"      halt",
		"five  data 5",
	}, "\n"))
	if !assert.NoError(err) {
		return
	}

	lst := NewListing()
	text := lst.Memory(&prog.Memory, prog)

	assert.Contains(text, "[0]")
	assert.Contains(text, "001000000010")
	assert.Contains(text, "ld /2")
	assert.Contains(text, "start")
	assert.Contains(text, "five")
	assert.Contains(text, "[511]")

	lst.SkipZero = true
	text = lst.Memory(&prog.Memory, prog)
	assert.Contains(text, "[2]")
	assert.Contains(text, "000000000101")
	assert.NotContains(text, "[3]")
	assert.NotContains(text, "[511]")
}

func TestListingMemoryNoProgram(t *testing.T) {
	assert := assert.New(t)

	var mem cpu.Memory
	mem[4] = cpu.Word(0o7000)

	lst := &Listing{SkipZero: true, Style: table.StyleDefault}
	text := lst.Memory(&mem, nil)

	assert.Contains(text, "[4]")
	assert.Contains(text, "111000000000")
	assert.Contains(text, "halt")
	assert.NotContains(text, "[0]")
	assert.NotContains(strings.ToUpper(text), "LABEL")
}

func TestListingRegisters(t *testing.T) {
	assert := assert.New(t)

	cp := cpu.NewCpu(0)
	var mem cpu.Memory
	mem[0] = cpu.MakeInstruction(cpu.OP_LOAD, 4).Encode()
	mem[1] = cpu.MakeInstruction(cpu.OP_STORE, 5).Encode()
	mem[2] = cpu.MakeInstruction(cpu.OP_HALT, 0).Encode()
	mem[4] = cpu.Word(0o12)
	cp.SetMemory(mem)

	for !cp.Step() {
	}

	lst := NewListing()
	text := lst.Registers(cp)

	assert.Contains(text, "ACC")
	assert.Contains(text, "0012")
	assert.Contains(text, "halt")
	assert.Contains(text, "[5]")
}

func TestListingCode(t *testing.T) {
	assert := assert.New(t)

	prog, err := cpu.Assemble(strings.Join([]string{
		"      org /9",
		"      ld five",
		"      halt",
		"      org /2",
		"five  data 5",
	}, "\n"))
	if !assert.NoError(err) {
		return
	}

	text := NewListing().Code(prog)

	nine := strings.Index(text, "[9]")
	ten := strings.Index(text, "[10]")
	two := strings.Index(text, "[2]")
	assert.True(nine >= 0 && ten > nine && two > ten, text)

	assert.Contains(text, "1002")
	assert.Contains(text, "7000")
	assert.Contains(text, "five  data 5")
	assert.NotContains(text, "[0]")
}
