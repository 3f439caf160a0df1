// Package position holds the coordinates used by the editing core.
//
// A BitLocation addresses one cell of a byte: BitIndex is the offset of the
// cell's lowest bit, counted from the least significant bit. In a hex view the
// high nibble is bit 4 and the low nibble is bit 0.
package position

import "fmt"

// BitLocation is a (byte, bit) coordinate. Ordering is lexicographic on
// (ByteIndex, BitIndex).
type BitLocation struct {
	ByteIndex uint64
	BitIndex  int
}

func NewBitLocation(byteIndex uint64, bitIndex int) BitLocation {
	if bitIndex < 0 || bitIndex > 7 {
		panic(fmt.Sprintf("position: bit index %d out of range", bitIndex))
	}
	return BitLocation{ByteIndex: byteIndex, BitIndex: bitIndex}
}

func (l BitLocation) Compare(o BitLocation) int {
	switch {
	case l.ByteIndex < o.ByteIndex:
		return -1
	case l.ByteIndex > o.ByteIndex:
		return 1
	case l.BitIndex < o.BitIndex:
		return -1
	case l.BitIndex > o.BitIndex:
		return 1
	}
	return 0
}

// AlignDown returns bit 0 of the same byte.
func (l BitLocation) AlignDown() BitLocation {
	return BitLocation{ByteIndex: l.ByteIndex}
}

// NextByte returns bit 0 of the following byte.
func (l BitLocation) NextByte() BitLocation {
	return BitLocation{ByteIndex: l.ByteIndex + 1}
}

// SingleByteRange is the canonical "caret without selection" range covering
// the byte l points into.
func (l BitLocation) SingleByteRange() BitRange {
	return BitRange{Start: l.AlignDown(), End: l.NextByte()}
}

func (l BitLocation) String() string {
	return fmt.Sprintf("%08X:%d", l.ByteIndex, l.BitIndex)
}

func MinLocation(a, b BitLocation) BitLocation {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

func MaxLocation(a, b BitLocation) BitLocation {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// BitRange is a half-open range [Start, End). Start <= End always holds for
// ranges built with NewBitRange.
type BitRange struct {
	Start BitLocation
	End   BitLocation
}

func NewBitRange(a, b BitLocation) BitRange {
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return BitRange{Start: a, End: b}
}

// ByteLength is the number of whole bytes spanned by the range.
func (r BitRange) ByteLength() uint64 {
	if r.End.ByteIndex < r.Start.ByteIndex {
		return 0
	}
	return r.End.ByteIndex - r.Start.ByteIndex
}

func (r BitRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether l lies in [Start, End).
func (r BitRange) Contains(l BitLocation) bool {
	return r.Start.Compare(l) <= 0 && l.Compare(r.End) < 0
}

// Encloses reports whether l lies in [Start, End].
func (r BitRange) Encloses(l BitLocation) bool {
	return r.Start.Compare(l) <= 0 && l.Compare(r.End) <= 0
}

// ContainsByte reports whether the byte at index lies in the range.
func (r BitRange) ContainsByte(index uint64) bool {
	return index >= r.Start.ByteIndex && index < r.End.ByteIndex
}

// ExtendTo grows the range so that it ends no earlier than l.
func (r BitRange) ExtendTo(l BitLocation) BitRange {
	return BitRange{
		Start: MinLocation(r.Start, l),
		End:   MaxLocation(r.End, l),
	}
}

func (r BitRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
