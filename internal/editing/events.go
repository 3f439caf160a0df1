package editing

import "hexedit/internal/position"

type EventKind int

const (
	LocationChanged EventKind = iota
	SelectionChanged
	ModeChanged
	DocumentChanged
)

func (k EventKind) String() string {
	switch k {
	case LocationChanged:
		return "location"
	case SelectionChanged:
		return "selection"
	case ModeChanged:
		return "mode"
	case DocumentChanged:
		return "document"
	}
	return "unknown"
}

// Event carries the committed state after an input step. Only the fields
// relevant to Kind are meaningful.
type Event struct {
	Kind        EventKind
	Location    position.BitLocation
	Range       position.BitRange
	Mode        Mode
	OldDocument Document
	NewDocument Document
}

type Listener func(Event)

type listener struct {
	id int
	fn Listener
}

type state struct {
	location position.BitLocation
	rng      position.BitRange
	mode     Mode
}

// AddListener registers l and returns a function removing it. Listeners run
// synchronously on the goroutine that fed the input, after the step that
// caused the change has fully completed.
func (e *Engine) AddListener(l Listener) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener{id: id, fn: l})
	return func() {
		for i, ls := range e.listeners {
			if ls.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) snapshot() state {
	return state{
		location: e.caret.location,
		rng:      e.selection.rng,
		mode:     e.caret.mode,
	}
}

// begin opens an input step and returns the function closing it. Steps nest;
// only the outermost one batches document notifications and reports state
// changes.
//
//	defer e.begin()()
func (e *Engine) begin() func() {
	if e.depth == 0 {
		e.before = e.snapshot()
		if b, ok := e.doc.(Batcher); ok {
			b.BeginUpdate()
			e.batch = b
		}
	}
	e.depth++
	return e.end
}

func (e *Engine) end() {
	e.depth--
	if e.depth > 0 {
		return
	}
	// Document listeners run inside EndUpdate and may feed the engine again,
	// which opens a new outermost step; this step's state is taken first.
	before, docEvent := e.before, e.docEvent
	e.docEvent = nil
	if e.batch != nil {
		b := e.batch
		e.batch = nil
		b.EndUpdate()
	}

	after := e.snapshot()
	var events []Event
	if docEvent != nil {
		events = append(events, *docEvent)
	}
	if after.mode != before.mode {
		events = append(events, Event{Kind: ModeChanged, Mode: after.mode})
	}
	if after.location != before.location {
		events = append(events, Event{Kind: LocationChanged, Location: after.location})
	}
	if after.rng != before.rng {
		events = append(events, Event{Kind: SelectionChanged, Range: after.rng})
	}

	for _, ev := range events {
		for _, l := range append([]listener(nil), e.listeners...) {
			l.fn(ev)
		}
	}
}
