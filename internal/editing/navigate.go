package editing

import "hexedit/internal/position"

// KeyDown handles a non-text key. Boundary rules of the fixed-length and
// cyclic policies run first; otherwise the key gets default caret navigation.
// The result reports whether the key was consumed.
func (e *Engine) KeyDown(key Key, mods Modifiers) bool {
	switch key {
	case KeyInsert:
		e.ToggleMode()
		return true
	case KeyDelete:
		e.Delete()
		return true
	case KeyBackspace:
		e.Backspace()
		return true
	}

	col := e.caret.column
	if col == nil {
		return false
	}
	defer e.begin()()

	old := e.caret.location
	expand := mods&ModShift != 0
	bpl := e.bytesPerLine()

	switch key {
	case KeyLeft:
		if e.cyclic && old.ByteIndex == 0 && old.BitIndex == col.FirstBitIndex() {
			e.moveCaret(e.endOfLine(old), old, expand)
			return true
		}
		e.moveCaret(PrevCell(col, old), old, expand)

	case KeyRight:
		if e.IsOverflow(old.ByteIndex+1) && old.BitIndex == 0 {
			if e.cyclic {
				e.moveCaret(e.startOfLine(old), old, expand)
			}
			return true
		}
		e.moveCaret(NextCell(col, old), old, expand)

	case KeyDown, KeyPageDown:
		if !e.canResize {
			if e.cyclic {
				e.moveCaret(e.endOfLine(old), old, expand)
			}
			return true
		}
		step := bpl
		if key == KeyPageDown {
			step *= e.visibleLines()
		}
		e.moveCaret(position.BitLocation{ByteIndex: old.ByteIndex + step, BitIndex: old.BitIndex}, old, expand)

	case KeyUp, KeyPageUp:
		step := bpl
		if key == KeyPageUp {
			step *= e.visibleLines()
		}
		target := old
		switch {
		case old.ByteIndex >= step:
			target.ByteIndex -= step
		case key == KeyPageUp:
			target.ByteIndex %= bpl
		}
		e.moveCaret(target, old, expand)

	case KeyHome:
		if mods&ModCtrl != 0 {
			e.moveCaret(e.homeLocation(), old, expand)
		} else {
			e.moveCaret(e.startOfLine(old), old, expand)
		}

	case KeyEnd:
		if mods&ModCtrl != 0 {
			e.moveCaret(e.maxLocation(), old, expand)
		} else {
			e.moveCaret(e.endOfLine(old), old, expand)
		}

	default:
		return false
	}
	return true
}

// moveCaret places the caret at to, clamped to the document, and either
// collapses the selection onto it or extends the selection from from.
func (e *Engine) moveCaret(to, from position.BitLocation, expand bool) {
	e.caret.location = e.clampLocation(to)
	e.updateSelection(from, expand)
}

func (e *Engine) updateSelection(from position.BitLocation, expand bool) {
	if expand {
		e.selection.extend(from, e.caret.location)
		return
	}
	e.selection.collapse(e.caret.location)
}

func (e *Engine) startOfLine(loc position.BitLocation) position.BitLocation {
	bpl := e.bytesPerLine()
	return position.BitLocation{ByteIndex: loc.ByteIndex - loc.ByteIndex%bpl, BitIndex: e.firstBit()}
}

// endOfLine is the last cell of the last byte on loc's line that holds data.
func (e *Engine) endOfLine(loc position.BitLocation) position.BitLocation {
	var length uint64
	if e.doc != nil {
		length = e.doc.Length()
	}
	if length == 0 {
		return e.homeLocation()
	}
	bpl := e.bytesPerLine()
	last := loc.ByteIndex - loc.ByteIndex%bpl + bpl - 1
	if last > length-1 {
		last = length - 1
	}
	return position.BitLocation{ByteIndex: last}
}

// GoTo moves the caret to the first cell of byteIndex, clamped to the
// document, and collapses the selection.
func (e *Engine) GoTo(byteIndex uint64) {
	if e.doc == nil {
		return
	}
	defer e.begin()()
	old := e.caret.location
	e.moveCaret(position.BitLocation{ByteIndex: byteIndex, BitIndex: e.firstBit()}, old, false)
}
