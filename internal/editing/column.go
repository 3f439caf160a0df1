package editing

import "hexedit/internal/position"

// Column is one way of viewing and typing bytes. It decides the cell size and
// parses typed text for its cells.
type Column interface {
	Name() string
	Index() int

	// FirstBitIndex is the bit index of the left-most cell of a byte.
	FirstBitIndex() int
	BitsPerCell() int

	// HandleTextInput writes text starting at loc and returns the location
	// following the last written cell. It reports false, leaving the document
	// untouched, when the text is not valid for the column or the document
	// refuses the mutation.
	HandleTextInput(doc Document, loc position.BitLocation, text string, mode Mode) (position.BitLocation, bool)
}

type cellColumn struct {
	name        string
	index       int
	bitsPerCell int
	parse       func(r rune) (byte, bool)
}

func NewHexColumn(index int) Column {
	return &cellColumn{name: "hex", index: index, bitsPerCell: 4, parse: parseHexDigit}
}

func NewBinaryColumn(index int) Column {
	return &cellColumn{name: "binary", index: index, bitsPerCell: 1, parse: parseBinaryDigit}
}

func NewASCIIColumn(index int) Column {
	return &cellColumn{name: "ascii", index: index, bitsPerCell: 8, parse: parsePrintable}
}

func (c *cellColumn) Name() string       { return c.name }
func (c *cellColumn) Index() int         { return c.index }
func (c *cellColumn) BitsPerCell() int   { return c.bitsPerCell }
func (c *cellColumn) FirstBitIndex() int { return 8 - c.bitsPerCell }

func (c *cellColumn) HandleTextInput(doc Document, loc position.BitLocation, text string, mode Mode) (position.BitLocation, bool) {
	if doc == nil || doc.IsReadOnly() || text == "" {
		return loc, false
	}

	values := make([]byte, 0, len(text))
	for _, r := range text {
		v, ok := c.parse(r)
		if !ok {
			return loc, false
		}
		values = append(values, v)
	}

	loc = AlignToCell(c, loc)
	mask := byte((1<<c.bitsPerCell - 1))
	for i, v := range values {
		needsByte := loc.ByteIndex >= doc.Length() ||
			(mode == ModeInsert && loc.BitIndex == c.FirstBitIndex())
		shift := uint(loc.BitIndex)
		if needsByte {
			if !doc.CanInsert() {
				return loc, i > 0
			}
			// One operation per typed cell, so a single undo takes it back.
			doc.InsertBytes(loc.ByteIndex, []byte{v << shift})
		} else {
			var cur [1]byte
			doc.ReadBytes(loc.ByteIndex, cur[:])
			doc.WriteBytes(loc.ByteIndex, []byte{cur[0]&^(mask<<shift) | v<<shift})
		}

		loc = NextCell(c, loc)
	}
	return loc, true
}

// AlignToCell snaps loc onto the start of the column cell containing it.
func AlignToCell(c Column, loc position.BitLocation) position.BitLocation {
	loc.BitIndex -= loc.BitIndex % c.BitsPerCell()
	return loc
}

// NextCell returns the cell to the right of loc, moving into the next byte
// after the last cell.
func NextCell(c Column, loc position.BitLocation) position.BitLocation {
	if loc.BitIndex-c.BitsPerCell() >= 0 {
		return position.BitLocation{ByteIndex: loc.ByteIndex, BitIndex: loc.BitIndex - c.BitsPerCell()}
	}
	return position.BitLocation{ByteIndex: loc.ByteIndex + 1, BitIndex: c.FirstBitIndex()}
}

// PrevCell returns the cell to the left of loc; the first cell of byte 0 has
// no predecessor and is returned unchanged.
func PrevCell(c Column, loc position.BitLocation) position.BitLocation {
	if loc.BitIndex+c.BitsPerCell() <= c.FirstBitIndex() {
		return position.BitLocation{ByteIndex: loc.ByteIndex, BitIndex: loc.BitIndex + c.BitsPerCell()}
	}
	if loc.ByteIndex == 0 {
		return loc
	}
	return position.BitLocation{ByteIndex: loc.ByteIndex - 1}
}

func parseHexDigit(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}

func parseBinaryDigit(r rune) (byte, bool) {
	switch r {
	case '0':
		return 0, true
	case '1':
		return 1, true
	}
	return 0, false
}

func parsePrintable(r rune) (byte, bool) {
	if r < 0x20 || r > 0x7E {
		return 0, false
	}
	return byte(r), true
}
