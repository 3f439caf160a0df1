package editing

import (
	"bytes"
	"reflect"
	"testing"

	"hexedit/internal/buffer"
)

func TestListenersRunAfterDocumentChanges(t *testing.T) {
	e, buf, _ := newTestEngine(t, []byte{0x00, 0x00}, fixed(false))

	var got []string
	buf.Subscribe(func(c buffer.Change) { got = append(got, "doc:"+c.Kind.String()) })
	e.AddListener(func(ev Event) {
		got = append(got, ev.Kind.String())
		if ev.Kind == LocationChanged {
			var b [1]byte
			e.Document().ReadBytes(0, b[:])
			if b[0] != 0xA0 {
				t.Errorf("listener saw uncommitted byte %02X", b[0])
			}
		}
	})

	e.TextInput("A")

	want := []string{"doc:modify", "location"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNestedStepsNotifyOnce(t *testing.T) {
	e, _, _ := newTestEngine(t, []byte{0x01, 0x02, 0x03}, resizable())
	e.KeyDown(KeyEnd, ModCtrl)

	var kinds []EventKind
	e.AddListener(func(ev Event) { kinds = append(kinds, ev.Kind) })

	e.FixLength(2)

	want := []EventKind{ModeChanged, LocationChanged, SelectionChanged}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("expected %v, got %v", want, kinds)
	}
}

func TestNoEventsWithoutChange(t *testing.T) {
	e, _, _ := newTestEngine(t, []byte{0x01}, resizable())
	placeCaret(e, loc(0, 4))

	calls := 0
	e.AddListener(func(Event) { calls++ })

	e.KeyDown(KeyLeft, 0)
	e.KeyDown(KeyUp, 0)

	if calls != 0 {
		t.Errorf("expected no events, got %d", calls)
	}
	assertConsistent(t, e)
}

func TestSetDocumentEvent(t *testing.T) {
	e, old, _ := newTestEngine(t, []byte{0x01, 0x02}, resizable())
	placeCaret(e, loc(1, 0))

	var events []Event
	e.AddListener(func(ev Event) { events = append(events, ev) })

	next := buffer.FromBytes([]byte{0xFF})
	e.SetDocument(next)

	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %d", len(events))
	}
	if events[0].Kind != DocumentChanged {
		t.Errorf("expected document event first, got %v", events[0].Kind)
	}
	if events[0].OldDocument != Document(old) || events[0].NewDocument != Document(next) {
		t.Error("document event does not carry old and new documents")
	}
	if events[1].Kind != LocationChanged || events[1].Location != loc(0, 4) {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

func TestRemoveListener(t *testing.T) {
	e, _, _ := newTestEngine(t, []byte{0x01}, resizable())

	calls := 0
	remove := e.AddListener(func(Event) { calls++ })
	e.ToggleMode()
	remove()
	e.ToggleMode()

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDocumentListenerMayFeedEngine(t *testing.T) {
	e, buf, _ := newTestEngine(t, []byte{0x00, 0x00, 0x00}, fixed(false))
	buf.Subscribe(func(buffer.Change) { e.Clamp() })

	var kinds []EventKind
	e.AddListener(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == LocationChanged && ev.Location != loc(1, 4) {
			t.Errorf("expected location %v, got %v", loc(1, 4), ev.Location)
		}
	})

	e.TextInput("AB")

	want := []EventKind{LocationChanged, SelectionChanged}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("expected %v, got %v", want, kinds)
	}
	if got := buf.Data(); !bytes.Equal(got, []byte{0xAB, 0x00, 0x00}) {
		t.Errorf("unexpected data % X", got)
	}
	assertConsistent(t, e)
}
