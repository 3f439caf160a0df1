// Package editing turns keyboard, pointer and text input into caret,
// selection and document mutations for a byte grid.
//
// The Engine enforces the resize policy of the document it edits: a resizable
// document grows and shrinks on insert and delete, while a fixed-length one is
// only ever overwritten or filled, optionally with the caret wrapping around
// at the end of the data (cyclic mode).
package editing

import (
	"io"

	"github.com/charmbracelet/log"

	"hexedit/internal/position"
)

const defaultBytesPerLine = 16

type Options struct {
	// FillChar is the hex digit written by Delete and Backspace on
	// fixed-length documents.
	FillChar  string
	CanResize bool
	IsCyclic  bool
	Logger    *log.Logger
}

func DefaultOptions() Options {
	return Options{FillChar: "0", CanResize: true}
}

type Engine struct {
	doc       Document
	layout    Layout
	caret     Caret
	selection Selection

	fillChar  string
	canResize bool
	cyclic    bool
	dragging  bool

	logger *log.Logger

	listeners []listener
	nextID    int
	depth     int
	before    state
	batch     Batcher
	docEvent  *Event
}

func New(opts Options) (*Engine, error) {
	if err := ValidateFillChar(opts.FillChar); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		fillChar:  opts.FillChar,
		canResize: true,
		cyclic:    opts.IsCyclic,
		logger:    logger,
	}
	e.caret.mode = ModeInsert
	e.selection.collapse(e.caret.location)
	if !opts.CanResize {
		e.SetCanResize(false)
	}
	return e, nil
}

func (e *Engine) Document() Document      { return e.doc }
func (e *Engine) Caret() *Caret           { return &e.caret }
func (e *Engine) Selection() *Selection   { return &e.selection }
func (e *Engine) FillChar() string        { return e.fillChar }
func (e *Engine) CanResize() bool         { return e.canResize }
func (e *Engine) IsCyclic() bool          { return e.cyclic }
func (e *Engine) Dragging() bool          { return e.dragging }
func (e *Engine) SetLayout(layout Layout) { e.layout = layout }

func (e *Engine) SetFillChar(s string) error {
	if err := ValidateFillChar(s); err != nil {
		return err
	}
	e.fillChar = s
	return nil
}

// SetCanResize switches between the resizable and fixed-length policies.
// Leaving the resizable policy also leaves Insert mode.
func (e *Engine) SetCanResize(canResize bool) {
	defer e.begin()()
	e.canResize = canResize
	if !canResize {
		e.caret.mode = ModeOverwrite
		e.clamp()
	}
}

func (e *Engine) SetCyclic(cyclic bool) {
	e.cyclic = cyclic
}

func (e *Engine) SetDocument(doc Document) {
	defer e.begin()()
	old := e.doc
	e.doc = doc
	e.dragging = false
	e.caret.location = e.homeLocation()
	e.selection.collapse(e.caret.location)
	e.docEvent = &Event{Kind: DocumentChanged, OldDocument: old, NewDocument: doc}
}

// SetPrimaryColumn makes col receive typed text. The caret moves to the first
// cell of its byte in the new column.
func (e *Engine) SetPrimaryColumn(col Column) {
	defer e.begin()()
	e.setColumn(col)
}

func (e *Engine) setColumn(col Column) {
	e.caret.column = col
	if col != nil {
		e.caret.location = position.BitLocation{ByteIndex: e.caret.location.ByteIndex, BitIndex: col.FirstBitIndex()}
	}
}

func (e *Engine) SetMode(m Mode) {
	defer e.begin()()
	e.caret.mode = m
}

func (e *Engine) ToggleMode() {
	e.SetMode(e.caret.toggled(e.canResize))
}

// IsOverflow reports whether byteIndex lies past the fixed extent of the
// document. It is always false under the resizable policy.
func (e *Engine) IsOverflow(byteIndex uint64) bool {
	return !e.canResize && e.doc != nil && byteIndex >= e.doc.EnclosingRange().ByteLength()
}

// FixLength switches to the fixed-length policy and pads the document with the
// fill byte, or truncates it, to exactly n bytes.
func (e *Engine) FixLength(n uint64) {
	defer e.begin()()
	e.SetCanResize(false)
	if e.doc == nil {
		return
	}
	length := e.doc.Length()
	switch {
	case n > length:
		fill, _ := doubledHex(rune(e.fillChar[0]))
		padding := make([]byte, n-length)
		for i := range padding {
			padding[i] = fill
		}
		e.doc.InsertBytes(length, padding)
	case n < length:
		e.doc.RemoveBytes(n, length-n)
	}
	e.clamp()
}

// Clamp fits the caret and selection back into the document, typically after
// it was changed behind the engine's back (undo, reload).
func (e *Engine) Clamp() {
	defer e.begin()()
	e.clamp()
}

func (e *Engine) clamp() {
	loc := e.clampLocation(e.caret.location)
	e.caret.location = loc
	r := e.selection.rng
	if r.End.ByteIndex > e.maxLocation().ByteIndex+1 || !r.Encloses(loc) {
		e.selection.collapse(loc)
	}
}

// SelectAll selects every byte of the document.
func (e *Engine) SelectAll() {
	if e.doc == nil || e.doc.Length() == 0 {
		return
	}
	defer e.begin()()
	e.selection.setAnchor(position.BitLocation{})
	e.caret.location = position.BitLocation{ByteIndex: e.doc.Length() - 1}
	e.selection.extend(position.BitLocation{}, e.caret.location)
}

func (e *Engine) firstBit() int {
	if e.caret.column == nil {
		return 0
	}
	return e.caret.column.FirstBitIndex()
}

func (e *Engine) homeLocation() position.BitLocation {
	return position.BitLocation{BitIndex: e.firstBit()}
}

// appendable reports whether the caret may rest on the virtual cell just past
// the last byte.
func (e *Engine) appendable() bool {
	return e.canResize && e.doc != nil && e.doc.CanInsert()
}

func (e *Engine) maxLocation() position.BitLocation {
	if e.doc == nil {
		return e.homeLocation()
	}
	length := e.doc.Length()
	if e.appendable() {
		return position.BitLocation{ByteIndex: length, BitIndex: e.firstBit()}
	}
	if length == 0 {
		return e.homeLocation()
	}
	return position.BitLocation{ByteIndex: length - 1}
}

func (e *Engine) clampLocation(loc position.BitLocation) position.BitLocation {
	if e.caret.column != nil {
		loc = AlignToCell(e.caret.column, loc)
	}
	var length uint64
	if e.doc != nil {
		length = e.doc.Length()
	}
	switch {
	case e.appendable() && loc.ByteIndex >= length:
		return position.BitLocation{ByteIndex: length, BitIndex: e.firstBit()}
	case length == 0:
		return e.homeLocation()
	case !e.appendable() && loc.ByteIndex >= length:
		return position.BitLocation{ByteIndex: length - 1}
	}
	return loc
}

// columnDocument is the document as handed to columns: under the fixed-length
// policy it refuses insertion.
func (e *Engine) columnDocument() Document {
	if e.canResize {
		return e.doc
	}
	return fixedLength{e.doc}
}

func (e *Engine) bytesPerLine() uint64 {
	if e.layout == nil || e.layout.BytesPerLine() == 0 {
		return defaultBytesPerLine
	}
	return e.layout.BytesPerLine()
}

func (e *Engine) visibleLines() uint64 {
	if e.layout == nil || e.layout.VisibleLines() < 1 {
		return 1
	}
	return uint64(e.layout.VisibleLines())
}
