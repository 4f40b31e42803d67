// Package cpu implements the Simplez machine and its assembler.
//
// The machine has a single 12-bit accumulator (ACC), a program counter (PC),
// an instruction register (IR), a zero flag derived from the accumulator,
// and 512 words of 12-bit memory. Each word holds a 3-bit opcode and a
// 9-bit address.
//
// The assembler is two pass: labels are resolved over the whole source
// before any operand is encoded, so forward references are legal. It
// understands the org, data, res and end directives, and evaluates $(...)
// compile-time expressions.
package cpu
