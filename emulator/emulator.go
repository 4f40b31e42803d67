// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/internal"
)

const (
	DEFAULT_TICK_LIMIT = 1_000_000 // Default limit of ticks for Run.
)

var _emulator_defines = map[string]string{
	"HISTORY_DEPTH": fmt.Sprintf("%v", cpu.HISTORY_DEPTH),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	TickLimit int // Maximum ticks for Run; DEFAULT_TICK_LIMIT if zero.
}

// NewEmulator creates a new emulator, keeping depth modified addresses.
func NewEmulator(depth int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(depth),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load installs a freshly assembled program, and resets the registers.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Cpu.SetMemory(prog.Memory)
	emu.Reset()
}

// Reset the registers, keeping memory.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.ResetRegisters()
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	done = emu.Cpu.Step()

	return
}

// Run ticks until the program halts, the context is done, or the tick
// limit is reached. It returns the ticks executed by this call.
func (emu *Emulator) Run(ctx context.Context) (ticks int, err error) {
	limit := emu.TickLimit
	if limit <= 0 {
		limit = DEFAULT_TICK_LIMIT
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Pc, Err: err}
		}
	}()

	for ticks < limit {
		// Poll the context sparingly.
		if ticks%1024 == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		ticks++
		if emu.Tick() {
			if emu.Verbose {
				log.Printf("emulator: halt after %d ticks", ticks)
			}
			return
		}
	}

	err = ErrTickLimit

	return
}
