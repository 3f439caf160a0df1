package editing

import "hexedit/internal/position"

// TextInput dispatches typed text to the primary column. It reports false
// only when there is nothing to act on (no document, no text, no column);
// rejected edits are swallowed and reported as handled.
func (e *Engine) TextInput(text string) bool {
	col := e.caret.column
	if e.doc == nil || text == "" || col == nil {
		return false
	}
	defer e.begin()()

	if e.doc.IsReadOnly() {
		e.logger.Debug("text input on read-only document", "text", text)
		return true
	}

	if e.caret.mode == ModeInsert {
		if !e.doc.CanInsert() {
			e.logger.Debug("insert not supported by document", "text", text)
			return true
		}
		// Typing over a selection replaces it.
		if e.selection.rng.ByteLength() > 1 {
			if !e.doc.CanRemove() {
				return true
			}
			e.Delete()
		}
	}

	// A fixed buffer cannot take a multi-byte replace, so the selection is
	// filled with the typed digit instead.
	if !e.canResize && e.selection.rng.ByteLength() > 1 {
		if e.fillSelection(text) {
			e.selection.collapse(e.caret.location)
		}
		return true
	}

	loc, ok := col.HandleTextInput(e.columnDocument(), e.caret.location, text, e.caret.mode)
	if !ok {
		e.logger.Debug("text input rejected by column", "column", col.Name(), "text", text, "location", e.caret.location)
		return true
	}

	// The written byte stays; only the caret motion is redirected or dropped.
	if e.IsOverflow(loc.ByteIndex) && loc.BitIndex == col.FirstBitIndex() {
		if e.cyclic {
			e.caret.location = e.startOfLine(e.caret.location)
			e.selection.collapse(e.caret.location)
		} else {
			e.logger.Debug("caret held at end of fixed document", "location", e.caret.location)
		}
		return true
	}

	e.caret.location = loc
	e.selection.collapse(loc)
	return true
}

// Delete removes the selected bytes. Under the fixed-length policy the
// selection, or the cell under the caret, is filled with the fill character
// instead and the document keeps its length.
func (e *Engine) Delete() {
	col := e.caret.column
	if col == nil || e.doc == nil || !e.doc.CanRemove() {
		return
	}
	defer e.begin()()

	r := e.selection.rng
	if !e.canResize {
		if r.ByteLength() > 1 {
			e.fillSelection(e.fillChar)
		} else {
			col.HandleTextInput(e.columnDocument(), e.caret.location, e.fillChar, ModeOverwrite)
		}
		return
	}

	e.doc.RemoveBytes(r.Start.ByteIndex, r.ByteLength())

	e.caret.location = position.BitLocation{ByteIndex: r.Start.ByteIndex, BitIndex: col.FirstBitIndex()}
	e.selection.collapse(e.caret.location)
}

// Backspace removes the byte before the caret, or the byte under it when the
// caret sits inside a cell group that has already been partly typed.
func (e *Engine) Backspace() {
	col := e.caret.column
	if col == nil || e.doc == nil || !e.doc.CanRemove() {
		return
	}
	defer e.begin()()

	r := e.selection.rng
	if !e.canResize {
		if r.ByteLength() > 1 {
			e.fillSelection(e.fillChar)
			return
		}
		if _, ok := col.HandleTextInput(e.columnDocument(), e.caret.location, e.fillChar, ModeOverwrite); !ok {
			return
		}
	}

	first := col.FirstBitIndex()
	index := r.Start.ByteIndex
	loc := e.caret.location
	switch {
	case r.ByteLength() > 1:
		if e.canResize {
			e.doc.RemoveBytes(index, r.ByteLength())
		}
		loc = position.BitLocation{ByteIndex: index, BitIndex: first}

	case loc.BitIndex == first:
		// At the left edge of a byte: take out the previous one.
		if index == 0 {
			break
		}
		if e.canResize {
			e.doc.RemoveBytes(index-1, 1)
			loc = position.BitLocation{ByteIndex: index - 1, BitIndex: first}
		} else {
			loc = position.BitLocation{ByteIndex: index - 1}
		}

	default:
		// Mid-byte: the partly typed byte is the one to go.
		if e.canResize {
			e.doc.RemoveBytes(index, 1)
		}
		loc = position.BitLocation{ByteIndex: index, BitIndex: first}
	}

	e.caret.location = loc
	e.selection.collapse(loc)
}

// fillSelection overwrites every selected byte with the first character of
// fill doubled into both nibbles and moves the caret to the selection start.
// It reports false when fill is not a hex digit and nothing was written.
func (e *Engine) fillSelection(fill string) bool {
	col := e.caret.column
	if fill == "" || col == nil || e.doc == nil || e.doc.IsReadOnly() {
		return false
	}
	value, ok := doubledHex(rune(fill[0]))
	if !ok {
		e.logger.Debug("fill rejected", "fill", fill)
		return false
	}

	r := e.selection.rng
	buf := make([]byte, r.ByteLength())
	for i := range buf {
		buf[i] = value
	}
	e.doc.WriteBytes(r.Start.ByteIndex, buf)

	e.caret.location = position.BitLocation{ByteIndex: r.Start.ByteIndex, BitIndex: col.FirstBitIndex()}
	return true
}
