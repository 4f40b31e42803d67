// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package listing renders Simplez memory and registers as text tables.
package listing

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/internal"
	"github.com/ezrec/simplez/translate"
)

var f = translate.From

var (
	ErrStyleUnknown = errors.New(f("listing style unknown"))
)

const DEFAULT_STYLE = "light"

var styleMap = map[string]table.Style{
	"default": table.StyleDefault,
	"light":   table.StyleLight,
	"rounded": table.StyleRounded,
	"bold":    table.StyleBold,
	"double":  table.StyleDouble,
}

// StyleOf returns a named table style.
func StyleOf(name string) (style table.Style, err error) {
	style, ok := styleMap[strings.ToLower(name)]
	if !ok {
		err = ErrStyleUnknown
	}
	return
}

// Listing renders tables in a common style.
type Listing struct {
	SkipZero bool        // Omit memory rows whose word is zero.
	Style    table.Style // Table drawing style.
}

// NewListing returns a listing in the default style.
func NewListing() *Listing {
	return &Listing{Style: styleMap[DEFAULT_STYLE]}
}

func (lst *Listing) writer(title string) (tw table.Writer) {
	tw = table.NewWriter()
	tw.SetStyle(lst.Style)
	tw.SetTitle("%v", title)
	return
}

// words selects the memory rows to list.
func (lst *Listing) words(mem *cpu.Memory) iter.Seq2[cpu.Address, cpu.Word] {
	if !lst.SkipZero {
		return mem.Words()
	}

	return internal.IterSeq2Filter(mem.Words(), func(addr cpu.Address, word cpu.Word) bool {
		return word != 0
	})
}

// Memory renders every memory cell: its address, binary contents and
// decoded instruction. When prog is not nil, the labels bound to each cell
// are listed too.
func (lst *Listing) Memory(mem *cpu.Memory, prog *cpu.Program) string {
	tw := lst.writer(f("Memory"))

	header := table.Row{f("Address"), f("Contents (BIN)"), f("Instruction")}
	if prog != nil {
		header = append(header, f("Label"))
	}
	tw.AppendHeader(header)

	for addr, word := range lst.words(mem) {
		row := table.Row{
			fmt.Sprintf("[%d]", addr.Index()),
			fmt.Sprintf("%012b", uint16(word)),
			cpu.Decode(word).String(),
		}
		if prog != nil {
			row = append(row, strings.Join(prog.LabelsAt(addr), " "))
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}

// Code renders the assembled words in the order they were encoded, with
// the source line of each.
func (lst *Listing) Code(prog *cpu.Program) string {
	tw := lst.writer(f("Code"))

	tw.AppendHeader(table.Row{f("Address"), f("Octal"), f("Line"), f("Source")})

	for addr, word := range prog.Codes() {
		row := table.Row{fmt.Sprintf("[%d]", addr.Index()), fmt.Sprintf("%04o", uint16(word)), "", ""}
		if dbg := prog.Debug(addr); dbg.Line != nil {
			row[2] = dbg.LineNo
			row[3] = strings.TrimSpace(dbg.Text)
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}

// Registers renders the register set, the zero flag and the most recent
// memory writes.
func (lst *Listing) Registers(cp *cpu.Cpu) string {
	tw := lst.writer(f("Registers"))

	tw.AppendHeader(table.Row{f("Register"), f("Octal"), f("Decimal"), f("Decoded")})

	tw.AppendRow(table.Row{"ACC", fmt.Sprintf("%04o", uint16(cp.Acc)), int(cp.Acc), ""})
	tw.AppendRow(table.Row{"PC", fmt.Sprintf("%04o", uint16(cp.Pc)), int(cp.Pc), ""})
	tw.AppendRow(table.Row{"IR", fmt.Sprintf("%04o", uint16(cp.Ir)), int(cp.Ir), cpu.Decode(cp.Ir).String()})

	zero := 0
	if cp.Zero() {
		zero = 1
	}
	tw.AppendRow(table.Row{"Z", fmt.Sprintf("%o", zero), zero, ""})

	var writes []string
	for _, addr := range cp.LastModifications() {
		writes = append(writes, fmt.Sprintf("[%d]", addr.Index()))
	}
	tw.AppendFooter(table.Row{f("Writes"), strings.Join(writes, " "), cp.Ticks, ""})

	return tw.Render()
}
