package editing

// PointerPressed handles a button press. A left press picks the column under
// the pointer as primary, moves the caret and starts a drag selection. Presses
// past the end of a fixed-length document are swallowed.
func (e *Engine) PointerPressed(ev PointerEvent) bool {
	if ev.Button != ButtonLeft || e.layout == nil {
		return false
	}
	col, ok := e.layout.ColumnAt(ev.Point)
	if !ok {
		return false
	}
	defer e.begin()()

	if e.caret.column != col {
		e.setColumn(col)
	}
	loc, ok := e.layout.LocationAt(ev.Point, col)
	if !ok {
		return false
	}
	if e.IsOverflow(loc.ByteIndex) {
		e.logger.Debug("pointer press past fixed end", "location", loc)
		return true
	}

	old := e.caret.location
	e.caret.location = e.clampLocation(loc)
	if ev.Shift {
		e.selection.extend(old, e.caret.location)
	} else {
		e.selection.collapse(e.caret.location)
		e.selection.setAnchor(e.caret.location)
	}
	e.dragging = true
	return true
}

// PointerMoved extends an active drag selection. Moves onto locations past the
// end of a fixed-length document are swallowed.
func (e *Engine) PointerMoved(p Point) bool {
	col := e.caret.column
	if !e.dragging || col == nil || e.layout == nil {
		return false
	}
	anchor, ok := e.selection.Anchor()
	if !ok {
		return false
	}
	loc, ok := e.layout.LocationAt(p, col)
	if !ok {
		return false
	}
	if e.IsOverflow(loc.ByteIndex) {
		return true
	}

	defer e.begin()()
	e.caret.location = e.clampLocation(loc)
	e.selection.extend(anchor, e.caret.location)
	return true
}

func (e *Engine) PointerReleased() {
	e.dragging = false
}
