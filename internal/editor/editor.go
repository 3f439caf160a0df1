package editor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hexedit/internal/buffer"
	"hexedit/internal/config"
	"hexedit/internal/editing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewGoto
	ViewSaveAs
	ViewConfirmQuit
	ViewFileChangedPrompt
)

type Model struct {
	buf     *buffer.Buffer
	engine  *editing.Engine
	columns []columnView
	changes buffer.ChangeSet

	view   View
	keys   KeyMap
	help   help.Model
	width  int
	height int
	scroll uint64 // first visible line

	config *config.Config
	styles *config.Styles
	logger *log.Logger

	gotoInput   string
	saveAsInput string
	statusMsg   string

	// err is a broken document contract; the program stops on it.
	err error
}

// NewModel opens filename, or starts an empty buffer when it is empty, and
// wires it to an editing engine configured from cfg.
func NewModel(cfg *config.Config, filename string, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var buf *buffer.Buffer
	if filename == "" {
		buf = buffer.New()
	} else {
		b, err := buffer.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", filename, err)
		}
		buf = b
	}
	buf.SetReadOnly(cfg.Editing.ReadOnly)

	engine, err := editing.New(cfg.Editing.EngineOptions(logger))
	if err != nil {
		return nil, err
	}
	columns, err := newColumns(cfg.Editing.Columns, cfg.Editing.BytesPerLine)
	if err != nil {
		return nil, err
	}

	m := &Model{
		buf:     buf,
		engine:  engine,
		columns: columns,
		view:    ViewMain,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		config:  cfg,
		styles:  config.NewStyles(&cfg.Theme),
		logger:  logger,
	}
	m.help.ShowAll = true

	engine.SetLayout(m)
	engine.SetDocument(buf)
	engine.SetPrimaryColumn(columns[0].col)

	if n := cfg.Editing.Length; n > 0 && !buf.IsReadOnly() {
		engine.FixLength(n)
		// Undoing the padding would change the fixed length.
		buf.ClearHistory()
	}

	buf.Subscribe(m.recordChange)
	engine.AddListener(m.logEvent)

	return m, nil
}

// Err reports the error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Engine() *editing.Engine {
	return m.engine
}

func (m *Model) Buffer() *buffer.Buffer {
	return m.buf
}

func (m *Model) recordChange(c buffer.Change) {
	if err := m.changes.Record(c, m.buf.EnclosingRange()); err != nil && m.err == nil {
		m.err = err
		m.logger.Error("document change", "err", err)
	}
}

func (m *Model) logEvent(ev editing.Event) {
	switch ev.Kind {
	case editing.SelectionChanged:
		m.logger.Debug("selection changed", "range", ev.Range)
	case editing.LocationChanged:
		m.logger.Debug("location changed", "location", ev.Location)
	case editing.ModeChanged:
		m.logger.Debug("mode changed", "mode", ev.Mode)
	case editing.DocumentChanged:
		m.logger.Debug("document changed")
	}
}

func (m *Model) failed() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCaretVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status message on any key
	m.statusMsg = ""

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	case ViewFileChangedPrompt:
		return m.handleFileChangedPromptKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.tryQuit()
	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.trySave()
	case key.Matches(msg, m.keys.SaveAs):
		m.view = ViewSaveAs
		m.saveAsInput = m.buf.Filename()
		return m, nil
	case key.Matches(msg, m.keys.Goto):
		m.view = ViewGoto
		m.gotoInput = ""
		return m, nil
	case key.Matches(msg, m.keys.NextColumn):
		m.nextColumn()
		return m, nil
	case key.Matches(msg, m.keys.SelectAll):
		m.engine.SelectAll()
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		if m.buf.Undo() {
			m.engine.Clamp()
		}
	case key.Matches(msg, m.keys.Redo):
		if m.buf.Redo() {
			m.engine.Clamp()
		}
	default:
		m.dispatch(msg)
	}

	m.ensureCaretVisible()
	return m, m.failed()
}

// dispatch hands navigation and typed text to the engine.
func (m *Model) dispatch(msg tea.KeyMsg) {
	for _, ek := range m.keys.engineKeys() {
		if key.Matches(msg, ek.binding) {
			if !m.engine.KeyDown(ek.key, ek.mods) {
				m.logger.Debug("key not handled", "key", msg.String())
			}
			return
		}
	}

	var text string
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		text = string(msg.Runes)
	case tea.KeySpace:
		text = " "
	default:
		return
	}
	m.engine.TextInput(text)
}

func (m *Model) nextColumn() {
	primary := m.engine.Caret().PrimaryColumn()
	next := 0
	for i, cv := range m.columns {
		if cv.col == primary {
			next = (i + 1) % len(m.columns)
			break
		}
	}
	m.engine.SetPrimaryColumn(m.columns[next].col)
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	if m.buf.IsModified() {
		m.view = ViewConfirmQuit
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) trySave() (tea.Model, tea.Cmd) {
	if m.buf.IsNew() || m.buf.Filename() == "" {
		m.view = ViewSaveAs
		m.saveAsInput = ""
		return m, nil
	}

	// Check if file changed on disk
	changed, err := m.buf.HasChangedOnDisk()
	if err == nil && changed {
		m.view = ViewFileChangedPrompt
		return m, nil
	}

	m.save()
	return m, nil
}

func (m *Model) save() {
	if err := m.buf.Save(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
		return
	}
	m.changes.Reset()
	m.statusMsg = "File saved"
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back, m.keys.Help) {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		m.doGoto()
		m.view = ViewMain
	case tea.KeyBackspace:
		if len(m.gotoInput) > 0 {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
	default:
		char := msg.String()
		if len(char) == 1 && (isHexChar(char) || char == "x" || char == "X") {
			m.gotoInput += char
		}
	}
	return m, nil
}

func (m *Model) doGoto() {
	if m.gotoInput == "" {
		return
	}

	input := strings.ToLower(m.gotoInput)
	var offset uint64
	var err error
	if strings.HasPrefix(input, "0x") {
		offset, err = strconv.ParseUint(input[2:], 16, 64)
	} else {
		offset, err = strconv.ParseUint(input, 10, 64)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Invalid offset %q", m.gotoInput)
		return
	}

	m.engine.GoTo(offset)
	m.ensureCaretVisible()
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		if m.saveAsInput != "" {
			if err := m.buf.SaveAs(m.saveAsInput); err != nil {
				m.statusMsg = fmt.Sprintf("Error: %v", err)
			} else {
				m.changes.Reset()
				m.statusMsg = "File saved"
				m.view = ViewMain
			}
		}
	case tea.KeyBackspace:
		if len(m.saveAsInput) > 0 {
			m.saveAsInput = m.saveAsInput[:len(m.saveAsInput)-1]
		}
	case tea.KeySpace:
		m.saveAsInput += " "
	case tea.KeyRunes:
		m.saveAsInput += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleFileChangedPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.save()
		m.view = ViewMain
	case "n", "N", "esc":
		m.view = ViewMain
	}
	return m, nil
}

func isHexChar(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
