package editing

import "hexedit/internal/position"

// Selection is the selected byte range plus the anchor a shift or drag
// extension started from.
type Selection struct {
	rng      position.BitRange
	anchor   position.BitLocation
	anchored bool
}

func (s *Selection) Range() position.BitRange {
	return s.rng
}

// Anchor returns the point an in-progress extension grows from.
func (s *Selection) Anchor() (position.BitLocation, bool) {
	return s.anchor, s.anchored
}

// collapse reduces the selection to the byte under at and drops the anchor.
func (s *Selection) collapse(at position.BitLocation) {
	s.rng = at.SingleByteRange()
	s.anchored = false
}

func (s *Selection) setAnchor(at position.BitLocation) {
	s.anchor = at.AlignDown()
	s.anchored = true
}

// extend selects every byte between the anchor and to, inclusive. from
// becomes the anchor when none is set yet.
func (s *Selection) extend(from, to position.BitLocation) {
	if !s.anchored {
		s.setAnchor(from)
	}
	to = to.AlignDown()
	s.rng = position.BitRange{
		Start: position.MinLocation(s.anchor, to),
		End:   position.MaxLocation(s.anchor, to).NextByte(),
	}
}
