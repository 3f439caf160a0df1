package editing

import (
	"bytes"
	"testing"

	"hexedit/internal/position"
)

func TestPointerDragSelects(t *testing.T) {
	e, _, layout := newTestEngine(t, make([]byte, 8), resizable())

	if !e.PointerPressed(PointerEvent{Point: layout.pointOf(loc(2, 4)), Button: ButtonLeft}) {
		t.Fatal("expected press to be handled")
	}
	if !e.Dragging() {
		t.Error("expected drag to start")
	}
	if got := e.Caret().Location(); got != loc(2, 4) {
		t.Errorf("expected caret at %v, got %v", loc(2, 4), got)
	}

	e.PointerMoved(layout.pointOf(loc(5, 0)))
	r := e.Selection().Range()
	if r.Start != loc(2, 0) || r.End != loc(6, 0) {
		t.Errorf("unexpected selection %v", r)
	}
	assertConsistent(t, e)

	e.PointerReleased()
	if e.Dragging() {
		t.Error("expected drag to end")
	}
	if e.PointerMoved(layout.pointOf(loc(7, 0))) {
		t.Error("expected move without drag to be ignored")
	}
}

func TestPointerShiftPressExtends(t *testing.T) {
	e, _, layout := newTestEngine(t, make([]byte, 8), resizable())
	placeCaret(e, loc(1, 4))

	e.PointerPressed(PointerEvent{Point: layout.pointOf(loc(4, 0)), Button: ButtonLeft, Shift: true})

	r := e.Selection().Range()
	if r.Start != loc(1, 0) || r.End != loc(5, 0) {
		t.Errorf("unexpected selection %v", r)
	}
}

func TestPointerPressPastFixedEndIsSwallowed(t *testing.T) {
	e, _, layout := newTestEngine(t, make([]byte, 4), fixed(true))
	placeCaret(e, loc(1, 4))

	if !e.PointerPressed(PointerEvent{Point: layout.pointOf(loc(6, 4)), Button: ButtonLeft}) {
		t.Error("expected overflowing press to be swallowed")
	}
	if got := e.Caret().Location(); got != loc(1, 4) {
		t.Errorf("expected caret to stay at %v, got %v", loc(1, 4), got)
	}
	if e.Dragging() {
		t.Error("expected no drag to start")
	}
}

func TestPointerDragStopsAtFixedEnd(t *testing.T) {
	e, _, layout := newTestEngine(t, make([]byte, 4), fixed(false))

	e.PointerPressed(PointerEvent{Point: layout.pointOf(loc(1, 4)), Button: ButtonLeft})
	e.PointerMoved(layout.pointOf(loc(3, 0)))
	before := e.Selection().Range()

	if !e.PointerMoved(layout.pointOf(loc(9, 0))) {
		t.Error("expected overflowing move to be swallowed")
	}
	if got := e.Selection().Range(); got != before {
		t.Errorf("expected selection %v, got %v", before, got)
	}
	assertConsistent(t, e)
}

func TestPointerIgnoresOtherButtons(t *testing.T) {
	e, _, layout := newTestEngine(t, make([]byte, 4), resizable())

	if e.PointerPressed(PointerEvent{Point: layout.pointOf(loc(2, 4)), Button: ButtonRight}) {
		t.Error("expected right button to be ignored")
	}
	if e.PointerPressed(PointerEvent{Point: Point{X: 99}, Button: ButtonLeft}) {
		t.Error("expected press outside any column to be ignored")
	}
	if got := e.Caret().Location(); got != loc(0, 4) {
		t.Errorf("expected caret unchanged, got %v", got)
	}
}

// asciiLayout adds an ASCII column, one screen cell per byte, to the right of
// the hex grid.
type asciiLayout struct {
	*gridLayout
	ascii Column
	start int
}

func (a *asciiLayout) ColumnAt(p Point) (Column, bool) {
	if p.X >= a.start && p.Y >= 0 && uint64(p.X-a.start) < a.bpl {
		return a.ascii, true
	}
	return a.gridLayout.ColumnAt(p)
}

func (a *asciiLayout) LocationAt(p Point, col Column) (position.BitLocation, bool) {
	if col != a.ascii {
		return a.gridLayout.LocationAt(p, col)
	}
	return loc(uint64(p.Y)*a.bpl+uint64(p.X-a.start), 0), true
}

func TestSwallowedPressStillAlignsToNewColumn(t *testing.T) {
	e, buf, grid := newTestEngine(t, []byte{0x11, 0x22, 0x33}, fixed(false))
	layout := &asciiLayout{gridLayout: grid, ascii: NewASCIIColumn(1), start: 100}
	e.SetLayout(layout)
	placeCaret(e, loc(1, 4))

	if !e.PointerPressed(PointerEvent{Point: Point{X: layout.start + 5}, Button: ButtonLeft}) {
		t.Fatal("expected overflowing press to be swallowed")
	}
	if got := e.Caret().PrimaryColumn(); got != layout.ascii {
		t.Fatalf("expected ascii column to become primary, got %q", got.Name())
	}
	if got := e.Caret().Location(); got != loc(1, 0) {
		t.Errorf("expected caret realigned to %v, got %v", loc(1, 0), got)
	}

	e.Backspace()
	if got := e.Caret().Location(); got != loc(0, 0) {
		t.Errorf("expected backspace to step back to %v, got %v", loc(0, 0), got)
	}
	if got := buf.Data(); !bytes.Equal(got, []byte{0x11, '0', 0x33}) {
		t.Errorf("unexpected data % X", got)
	}
}
