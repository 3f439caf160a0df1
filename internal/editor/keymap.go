package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"hexedit/internal/editing"
)

// KeyMap defines the editor key bindings. Printable keys are never bound here
// since they are typed into the primary column.
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	PageUp, PageDown                          key.Binding
	Home, End, ShiftHome, ShiftEnd            key.Binding
	DocStart, DocEnd                          key.Binding
	SelectToStart, SelectToEnd                key.Binding

	Insert, Delete, Backspace key.Binding
	NextColumn                key.Binding
	SelectAll                 key.Binding
	Undo, Redo                key.Binding

	Save, SaveAs, Goto key.Binding
	Help, Quit, Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		ShiftHome: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to line start")),
		ShiftEnd:  key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to line end")),

		DocStart:      key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "file start")),
		DocEnd:        key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "file end")),
		SelectToStart: key.NewBinding(key.WithKeys("ctrl+shift+home"), key.WithHelp("ctrl+shift+home", "select to file start")),
		SelectToEnd:   key.NewBinding(key.WithKeys("ctrl+shift+end"), key.WithHelp("ctrl+shift+end", "select to file end")),

		Insert:    key.NewBinding(key.WithKeys("insert"), key.WithHelp("ins", "insert/overwrite")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),

		NextColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),

		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "save as")),
		Goto:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "goto offset")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Save, k.NextColumn, k.Insert, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.DocStart, k.DocEnd},
		{k.ShiftLeft, k.ShiftRight, k.ShiftUp, k.ShiftDown, k.ShiftHome, k.ShiftEnd, k.SelectToStart, k.SelectToEnd, k.SelectAll},
		{k.Insert, k.Delete, k.Backspace, k.NextColumn, k.Undo, k.Redo},
		{k.Save, k.SaveAs, k.Goto, k.Help, k.Quit},
	}
}

// engineKey pairs a binding with the engine key it drives.
type engineKey struct {
	binding key.Binding
	key     editing.Key
	mods    editing.Modifiers
}

func (k KeyMap) engineKeys() []engineKey {
	return []engineKey{
		{k.Left, editing.KeyLeft, 0},
		{k.Right, editing.KeyRight, 0},
		{k.Up, editing.KeyUp, 0},
		{k.Down, editing.KeyDown, 0},
		{k.ShiftLeft, editing.KeyLeft, editing.ModShift},
		{k.ShiftRight, editing.KeyRight, editing.ModShift},
		{k.ShiftUp, editing.KeyUp, editing.ModShift},
		{k.ShiftDown, editing.KeyDown, editing.ModShift},
		{k.PageUp, editing.KeyPageUp, 0},
		{k.PageDown, editing.KeyPageDown, 0},
		{k.Home, editing.KeyHome, 0},
		{k.End, editing.KeyEnd, 0},
		{k.ShiftHome, editing.KeyHome, editing.ModShift},
		{k.ShiftEnd, editing.KeyEnd, editing.ModShift},
		{k.DocStart, editing.KeyHome, editing.ModCtrl},
		{k.DocEnd, editing.KeyEnd, editing.ModCtrl},
		{k.SelectToStart, editing.KeyHome, editing.ModCtrl | editing.ModShift},
		{k.SelectToEnd, editing.KeyEnd, editing.ModCtrl | editing.ModShift},
		{k.Insert, editing.KeyInsert, 0},
		{k.Delete, editing.KeyDelete, 0},
		{k.Backspace, editing.KeyBackspace, 0},
	}
}
