package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"hexedit/internal/config"
	"hexedit/internal/editing"
	"hexedit/internal/position"
)

const (
	offsetWidth = 10 // "%08X" plus two spaces
	columnGap   = 2
	rowsTop     = 2 // legend and column header
	chromeLines = 4 // rowsTop plus status and message lines
	hexDigits   = "0123456789ABCDEF"
)

// columnView places an editing column on screen.
type columnView struct {
	name  string
	col   editing.Column
	start int
	gap   int // blank screen cells after each byte
}

func newColumns(names []string, bpl int) ([]columnView, error) {
	var cols []columnView
	x := offsetWidth
	for i, name := range names {
		cv := columnView{name: name, start: x, gap: 1}
		switch name {
		case config.ColumnHex:
			cv.col = editing.NewHexColumn(i)
		case config.ColumnBinary:
			cv.col = editing.NewBinaryColumn(i)
		case config.ColumnASCII:
			cv.col = editing.NewASCIIColumn(i)
			cv.gap = 0
		default:
			return nil, fmt.Errorf("%w %q", config.ErrUnknownColumn, name)
		}
		cols = append(cols, cv)
		x += cv.width(bpl) + columnGap
	}
	return cols, nil
}

func (c columnView) cellsPerByte() int {
	return 8 / c.col.BitsPerCell()
}

func (c columnView) stride() int {
	return c.cellsPerByte() + c.gap
}

func (c columnView) width(bpl int) int {
	return bpl*c.stride() - c.gap
}

// bitOf is the bit index of the given cell within a byte.
func (c columnView) bitOf(cell int) int {
	return c.col.FirstBitIndex() - cell*c.col.BitsPerCell()
}

func (c columnView) cellText(b byte, cell int) string {
	bits := c.col.BitsPerCell()
	if bits == 8 {
		if b >= 0x20 && b <= 0x7E {
			return string(rune(b))
		}
		return "."
	}
	v := (b >> uint(c.bitOf(cell))) & byte(1<<bits-1)
	return hexDigits[v : v+1]
}

// hit maps a screen x onto a byte within the line and a cell within the byte.
// Points in the gap after a byte land on its last cell.
func (c columnView) hit(x, bpl int) (int, int) {
	rel := x - c.start
	if rel < 0 {
		rel = 0
	}
	i, cell := rel/c.stride(), rel%c.stride()
	if i >= bpl {
		i, cell = bpl-1, c.cellsPerByte()-1
	}
	if cell >= c.cellsPerByte() {
		cell = c.cellsPerByte() - 1
	}
	return i, cell
}

func (m *Model) BytesPerLine() uint64 {
	return uint64(m.config.Editing.BytesPerLine)
}

func (m *Model) VisibleLines() int {
	return m.visibleRows()
}

func (m *Model) ColumnAt(p editing.Point) (editing.Column, bool) {
	if p.Y < rowsTop || p.Y >= rowsTop+m.visibleRows() {
		return nil, false
	}
	bpl := m.config.Editing.BytesPerLine
	for _, cv := range m.columns {
		if p.X >= cv.start && p.X < cv.start+cv.width(bpl) {
			return cv.col, true
		}
	}
	return nil, false
}

func (m *Model) LocationAt(p editing.Point, col editing.Column) (position.BitLocation, bool) {
	cv, ok := m.columnView(col)
	if !ok {
		return position.BitLocation{}, false
	}
	row := p.Y - rowsTop
	if row < 0 {
		row = 0
	}
	if vis := m.visibleRows(); row >= vis {
		row = vis - 1
	}
	i, cell := cv.hit(p.X, m.config.Editing.BytesPerLine)
	line := m.scroll + uint64(row)
	return position.BitLocation{
		ByteIndex: line*m.BytesPerLine() + uint64(i),
		BitIndex:  cv.bitOf(cell),
	}, true
}

func (m *Model) columnView(col editing.Column) (columnView, bool) {
	for _, cv := range m.columns {
		if cv.col == col {
			return cv, true
		}
	}
	return columnView{}, false
}

func (m *Model) visibleRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) ensureCaretVisible() {
	visRows := uint64(m.visibleRows())
	caretRow := m.engine.Caret().Location().ByteIndex / m.BytesPerLine()

	if caretRow < m.scroll {
		m.scroll = caretRow
	} else if caretRow >= m.scroll+visRows {
		m.scroll = caretRow - visRows + 1
	}
}

// lineCount includes the line holding the append cell.
func (m *Model) lineCount() uint64 {
	return m.buf.Length()/m.BytesPerLine() + 1
}

func (m *Model) scrollBy(delta int) {
	if delta < 0 {
		d := uint64(-delta)
		if d > m.scroll {
			d = m.scroll
		}
		m.scroll -= d
		return
	}
	maxScroll := m.lineCount() - 1
	m.scroll += uint64(delta)
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewMain {
		return m, nil
	}
	p := editing.Point{X: msg.X, Y: msg.Y}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
			return m, nil
		case tea.MouseButtonLeft:
			m.engine.PointerPressed(editing.PointerEvent{Point: p, Button: editing.ButtonLeft, Shift: msg.Shift})
		}

	case tea.MouseActionMotion:
		if m.engine.Dragging() {
			m.engine.PointerMoved(p)
			m.ensureCaretVisible()
		}

	case tea.MouseActionRelease:
		m.engine.PointerReleased()
	}

	return m, m.failed()
}
