package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hexedit/internal/editing"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	switch m.view {
	case ViewHelp:
		b.WriteString(m.renderHelp())
	case ViewGoto:
		b.WriteString(m.renderGoto())
	case ViewSaveAs:
		b.WriteString(m.renderSaveAs())
	case ViewConfirmQuit:
		b.WriteString(m.renderMainView())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmDialog("Unsaved changes. Quit anyway? (Y/N)"))
	case ViewFileChangedPrompt:
		b.WriteString(m.renderMainView())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmDialog("File changed on disk. Overwrite? (Y/N)"))
	default:
		b.WriteString(m.renderMainView())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.statusMsg)
	}

	return b.String()
}

func (m *Model) renderLegend() string {
	var items []string

	hl := func(keys, label string) string {
		return m.styles.LegendHighlight.Render(keys) + m.styles.Legend.Render(" "+label)
	}
	dim := func(keys, label string) string {
		return m.styles.Disabled.Render(keys + " " + label)
	}

	items = append(items, hl("^Q", "Quit"))
	items = append(items, hl("F1", "Help"))

	if m.view == ViewMain {
		items = append(items, hl("^S", "Save"))
		items = append(items, hl("F2", "Save As"))
		items = append(items, hl("^G", "Goto"))
		items = append(items, hl("TAB", "Column"))
		items = append(items, hl("INS", "Mode"))
		if m.buf.CanUndo() {
			items = append(items, hl("^Z", "Undo"))
		} else {
			items = append(items, dim("^Z", "Undo"))
		}
		if m.buf.CanRedo() {
			items = append(items, hl("^Y", "Redo"))
		} else {
			items = append(items, dim("^Y", "Redo"))
		}
	} else {
		items = append(items, hl("ESC", "Back"))
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).Render(legend)
}

func (m *Model) renderMainView() string {
	var b strings.Builder

	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m *Model) renderColumnHeader() string {
	bpl := m.config.Editing.BytesPerLine
	caretCol := int(m.engine.Caret().Location().ByteIndex % m.BytesPerLine())

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", offsetWidth))
	for i, cv := range m.columns {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", columnGap))
		}
		if cv.stride() < 2 {
			// Too narrow for per-byte labels.
			b.WriteString(m.styles.Offset.Render(fmt.Sprintf("%-*s", cv.width(bpl), cv.name)))
			continue
		}
		for col := 0; col < bpl; col++ {
			label := fmt.Sprintf("%-*X", cv.stride(), col)
			if col == bpl-1 {
				label = label[:cv.stride()-cv.gap]
			}
			if col == caretCol {
				b.WriteString(m.styles.LegendHighlight.Render(label))
			} else {
				b.WriteString(m.styles.Offset.Render(label))
			}
		}
	}
	return b.String()
}

func (m *Model) renderRows() string {
	var lines []string
	bpl := m.BytesPerLine()
	caretRow := m.engine.Caret().Location().ByteIndex / bpl

	for row := 0; row < m.visibleRows(); row++ {
		line := m.scroll + uint64(row)
		if line >= m.lineCount() {
			break
		}
		lineStart := line * bpl

		offsetStr := fmt.Sprintf("%08X  ", lineStart)
		if line == caretRow {
			offsetStr = m.styles.LegendHighlight.Render(offsetStr)
		} else {
			offsetStr = m.styles.Offset.Render(offsetStr)
		}

		var b strings.Builder
		b.WriteString(offsetStr)
		for i, cv := range m.columns {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", columnGap))
			}
			m.renderColumnLine(&b, cv, lineStart)
		}
		lines = append(lines, b.String())
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderColumnLine(b *strings.Builder, cv columnView, lineStart uint64) {
	bpl := m.BytesPerLine()
	length := m.buf.Length()
	caret := m.engine.Caret()
	loc := caret.Location()
	primary := caret.PrimaryColumn() == cv.col
	sel := m.engine.Selection().Range()
	multi := sel.ByteLength() > 1

	var one [1]byte
	for i := uint64(0); i < bpl; i++ {
		idx := lineStart + i
		inData := idx < length
		if inData {
			m.buf.ReadBytes(idx, one[:])
		}

		for cell := 0; cell < cv.cellsPerByte(); cell++ {
			text := " "
			if inData {
				text = cv.cellText(one[0], cell)
			}

			style := m.styles.Normal
			switch {
			case idx == loc.ByteIndex && primary && cv.bitOf(cell) == loc.BitIndex:
				if caret.Mode() == editing.ModeInsert {
					style = m.styles.CaretInsert
				} else {
					style = m.styles.CaretOverwrite
				}
			case idx == loc.ByteIndex && !primary && inData:
				style = m.styles.SecondaryCaret
			case multi && sel.ContainsByte(idx) && inData:
				style = m.styles.Selection
			case inData && m.changes.Contains(idx):
				style = m.styles.Changed
			case inData && one[0] == 0:
				style = m.styles.Zero
			}
			b.WriteString(style.Render(text))
		}

		if cv.gap > 0 && i < bpl-1 {
			b.WriteString(strings.Repeat(" ", cv.gap))
		}
	}
}

// statusLine describes the caret or selection, the mode and the policy.
func (m *Model) statusLine() string {
	sel := m.engine.Selection().Range()
	caret := m.engine.Caret()

	var where string
	if n := sel.ByteLength(); n > 1 {
		where = fmt.Sprintf("Selected %d bytes [%08X - %08X]", n, sel.Start.ByteIndex, sel.End.ByteIndex-1)
	} else {
		where = fmt.Sprintf("Byte %d/%d", caret.Location().ByteIndex, m.buf.Length())
	}

	parts := []string{where, caret.Mode().String()}
	if col := caret.PrimaryColumn(); col != nil {
		parts = append(parts, strings.ToUpper(col.Name()))
	}
	if !m.engine.CanResize() {
		if m.engine.IsCyclic() {
			parts = append(parts, "CYCLIC")
		} else {
			parts = append(parts, "FIXED")
		}
	}
	if m.buf.IsReadOnly() {
		parts = append(parts, "RO")
	}

	name := m.buf.Filename()
	if name == "" {
		name = "[New File]"
	} else {
		name = filepath.Base(name)
	}
	if m.buf.IsModified() {
		name = "*" + name
	}
	parts = append(parts, name)

	return strings.Join(parts, " | ")
}

func (m *Model) renderStatus() string {
	return m.styles.Status.Width(m.width).Render(m.statusLine())
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.HelpTitle.Render("HELP - hexedit"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\nType hex digits, bits or characters into the active column.\n")
	b.WriteString("Press ESC or F1 to close this help screen.\n")
	return b.String()
}

func (m *Model) renderGoto() string {
	var b strings.Builder
	b.WriteString("\nGOTO OFFSET\n")
	b.WriteString("===========\n\n")
	b.WriteString("Offset: ")
	b.WriteString(m.gotoInput)
	b.WriteString("_\n\n")
	b.WriteString("(Prefix with 0x for hex offset)\n")
	b.WriteString("\nPress Enter to go, ESC to close\n")

	return b.String()
}

func (m *Model) renderSaveAs() string {
	var b strings.Builder
	b.WriteString("\nSAVE AS\n")
	b.WriteString("=======\n\n")
	b.WriteString("Filename: ")
	b.WriteString(m.saveAsInput)
	b.WriteString("_\n\n")
	b.WriteString("Press Enter to save, ESC to cancel\n")

	return b.String()
}

func (m *Model) renderConfirmDialog(message string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.config.Theme.BorderColor)).
		Padding(1, 2).
		Render(message)
}
