package editing

import "hexedit/internal/position"

type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
)

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Point is a pointer position in the presentation layer's coordinates.
type Point struct {
	X, Y int
}

type PointerEvent struct {
	Point
	Button Button
	Shift  bool
}

// Layout is the presentation layer as seen by the engine: line geometry and
// pointer hit-testing.
type Layout interface {
	BytesPerLine() uint64
	VisibleLines() int
	ColumnAt(p Point) (Column, bool)
	LocationAt(p Point, col Column) (position.BitLocation, bool)
}
