package editing

import "hexedit/internal/position"

type Mode int

const (
	ModeInsert Mode = iota
	ModeOverwrite
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INS"
	}
	return "OVR"
}

// Caret is the current cell, the editing mode and the column that typed text
// is dispatched to. The engine is its only writer.
type Caret struct {
	location position.BitLocation
	mode     Mode
	column   Column
}

func (c *Caret) Location() position.BitLocation {
	return c.location
}

func (c *Caret) Mode() Mode {
	return c.mode
}

// PrimaryColumn is nil until a column is chosen.
func (c *Caret) PrimaryColumn() Column {
	return c.column
}

// toggled is the mode an Insert key press leads to. Without resize capability
// the caret always lands in Overwrite.
func (c *Caret) toggled(canResize bool) Mode {
	if c.mode == ModeOverwrite && canResize {
		return ModeInsert
	}
	return ModeOverwrite
}
