package gen

import (
	"bytes"
	"math/rand/v2"
	"strconv"
)

// Filler emits inert, low-compressibility padding instructions.
// Each instruction adds and then subtracts the same random literal.
// The number of digits dials in the compression rate:
//
//   - 10 digits => ~3x
//   - 3 digits  => ~5x
//   - 2 digits  => ~7x
type Filler struct {
	rng    *rand.Rand
	digits int
	lo, hi int64
}

// NewFiller returns a filler drawing literals of the given digit width from src.
func NewFiller(digits int, src rand.Source) *Filler {
	lo := int64(1)
	for range digits - 1 {
		lo *= 10
	}
	return &Filler{
		rng:    rand.New(src),
		digits: digits,
		lo:     lo,
		hi:     lo*10 - 1,
	}
}

// Digits returns the literal width.
func (f *Filler) Digits() int { return f.digits }

// InstructionLen returns the byte length of one "a+=N;a-=N;\n" pair.
func (f *Filler) InstructionLen() int {
	return (3 + f.digits + 1) + (3 + f.digits + 2)
}

// Count returns how many instructions fit in size once twice the overhead is
// subtracted. Sizing is best effort: sizes below the overhead yield zero
// instructions rather than an error.
func (f *Filler) Count(size int64, overhead int) int64 {
	n := (size - 2*int64(overhead)) / int64(f.InstructionLen())
	if n < 0 {
		return 0
	}
	return n
}

// WriteHelper writes the helper routine padded to approximately size bytes.
func (f *Filler) WriteHelper(b *bytes.Buffer, size int64, overhead int) {
	b.WriteString("function helper() {\n")
	b.WriteString("  let a=1;\n")
	num := make([]byte, 0, f.digits)
	for range f.Count(size, overhead) {
		num = strconv.AppendInt(num[:0], f.literal(), 10)
		b.WriteString("a+=")
		b.Write(num)
		b.WriteString(";a-=")
		b.Write(num)
		b.WriteString(";\n")
	}
	b.WriteString("  return a+100;\n")
	b.WriteString("}\n")
}

func (f *Filler) literal() int64 {
	return f.lo + f.rng.Int64N(f.hi-f.lo+1)
}
