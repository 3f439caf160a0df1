package buffer

import (
	"fmt"

	"hexedit/internal/position"
)

type ChangeKind int

const (
	ChangeModify ChangeKind = iota
	ChangeInsert
	ChangeRemove
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModify:
		return "modify"
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change describes one mutation of the buffer. Range covers the affected bytes
// as they were addressed at the time of the mutation.
type Change struct {
	Kind  ChangeKind
	Range position.BitRange
}

func byteSpan(offset, count uint64) position.BitRange {
	return position.BitRange{
		Start: position.BitLocation{ByteIndex: offset},
		End:   position.BitLocation{ByteIndex: offset + count},
	}
}

// Subscribe registers fn for change notifications and returns a function that
// removes it again.
func (b *Buffer) Subscribe(fn func(Change)) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// BeginUpdate defers change notifications until the matching EndUpdate.
// Calls nest.
func (b *Buffer) BeginUpdate() {
	b.batchDepth++
}

func (b *Buffer) EndUpdate() {
	if b.batchDepth == 0 {
		return
	}
	b.batchDepth--
	if b.batchDepth > 0 {
		return
	}
	pending := b.pending
	b.pending = nil
	for _, c := range pending {
		b.notify(c)
	}
}

func (b *Buffer) emit(c Change) {
	if b.batchDepth > 0 {
		b.pending = append(b.pending, c)
		return
	}
	b.notify(c)
}

func (b *Buffer) notify(c Change) {
	// Listeners may unsubscribe while being notified.
	ls := append([]listener(nil), b.listeners...)
	for _, l := range ls {
		l.fn(c)
	}
}

// ChangeSet accumulates the byte ranges touched since the last Reset.
type ChangeSet struct {
	ranges []position.BitRange
}

// Record adds the range affected by c. Insertions and removals shift every
// byte after them, so their range is extended to the end of enclosing.
func (s *ChangeSet) Record(c Change, enclosing position.BitRange) error {
	switch c.Kind {
	case ChangeModify:
		s.ranges = append(s.ranges, c.Range)
	case ChangeInsert, ChangeRemove:
		s.ranges = append(s.ranges, c.Range.ExtendTo(enclosing.End))
	default:
		return fmt.Errorf("%w: %v", ErrUnknownChange, c.Kind)
	}
	return nil
}

func (s *ChangeSet) Contains(index uint64) bool {
	for _, r := range s.ranges {
		if r.ContainsByte(index) {
			return true
		}
	}
	return false
}

func (s *ChangeSet) Ranges() []position.BitRange {
	return append([]position.BitRange(nil), s.ranges...)
}

func (s *ChangeSet) Reset() {
	s.ranges = nil
}
