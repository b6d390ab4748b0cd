package editor

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"bytedit/internal/buffer"
	"bytedit/internal/codec"
	"bytedit/internal/config"
	"bytedit/internal/render"
	"bytedit/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type View int

const (
	ViewMain View = iota
	ViewEdit
	ViewSaveAs
	ViewFileChangedPrompt
)

type Model struct {
	buf      *buffer.Buffer
	state    *view.State
	view     View
	editMode view.Mode
	input    textinput.Model
	width    int
	height   int
	config   *config.Config
	styles   *config.Styles

	// Suggested target when saving a buffer that has no file yet.
	savePath string

	statusMsg string
	statusErr bool
}

// NewModel starts a session on buf. savePath prefills the save-as prompt
// when buf is not backed by a file.
func NewModel(buf *buffer.Buffer, cfg *config.Config, savePath string) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Model{
		buf:      buf,
		state:    view.New(),
		view:     ViewMain,
		input:    textinput.New(),
		config:   cfg,
		styles:   config.NewStyles(&cfg.Theme),
		savePath: savePath,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == ViewEdit || m.view == ViewSaveAs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearStatus()

	switch m.view {
	case ViewEdit:
		return m.handleEditKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewFileChangedPrompt:
		return m.handleFileChangedPromptKey(msg)
	default:
		return m, m.apply(Decode(msg))
	}
}

func (m *Model) apply(cmd Command) tea.Cmd {
	switch cmd {
	case MoveUp:
		m.move(cmd, -view.RowWidth)
	case MoveDown:
		m.move(cmd, view.RowWidth)
	case MoveLeft:
		m.move(cmd, -1)
	case MoveRight:
		m.move(cmd, 1)
	case SetModeHex:
		m.state.SetMode(view.ModeHex)
	case SetModeBinary:
		m.state.SetMode(view.ModeBinary)
	case SetModeChar:
		m.state.SetMode(view.ModeChar)
	case EditHex:
		return m.openEdit(view.ModeHex)
	case EditBinary:
		return m.openEdit(view.ModeBinary)
	case EditChar:
		return m.openEdit(view.ModeChar)
	case Save:
		return m.trySave()
	case Quit:
		return tea.Quit
	}
	return nil
}

func (m *Model) move(cmd Command, delta int64) {
	if !m.state.MoveCursor(delta, m.buf) {
		log.Printf("%s rejected at offset %d in %s mode", cmd, m.state.Cursor(), m.state.Mode())
	}
}

func (m *Model) openEdit(mode view.Mode) tea.Cmd {
	m.state.SetMode(mode)
	m.editMode = mode
	m.view = ViewEdit

	m.input = textinput.New()
	switch mode {
	case view.ModeHex:
		m.input.Prompt = "Hex value: "
		m.input.Placeholder = "00-7F"
		m.input.CharLimit = 8
	case view.ModeBinary:
		m.input.Prompt = "Binary value (8 bits): "
		m.input.Placeholder = "00000000"
		m.input.CharLimit = 8
	default:
		m.input.Prompt = "Char: "
		m.input.CharLimit = 1
	}
	return m.input.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		m.closeInput()
		if err := m.applyEdit(m.editMode, value); err != nil {
			log.Printf("edit at %d discarded: %v", m.state.Cursor(), err)
			m.setError(fmt.Sprintf("Invalid %s value %q", strings.ToLower(m.editMode.String()), value))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEdit parses input in the given representation and writes it at the
// cursor. Unparseable input leaves the buffer untouched.
func (m *Model) applyEdit(mode view.Mode, input string) error {
	var (
		b   byte
		err error
	)
	switch mode {
	case view.ModeHex:
		b, err = codec.HexToByte(strings.TrimSpace(input))
	case view.ModeBinary:
		b, err = codec.BinToByte(strings.TrimSpace(input))
	default:
		r, size := utf8.DecodeRuneInString(input)
		if size == 0 {
			return fmt.Errorf("char %q: %w", input, codec.ErrInvalid)
		}
		b = codec.CharToByte(r)
	}
	if err != nil {
		return err
	}

	m.buf.Set(m.state.Cursor(), b)
	return nil
}

func (m *Model) trySave() tea.Cmd {
	if m.buf.Filename() == "" {
		return m.openSaveAs()
	}

	changed, err := m.buf.HasChangedOnDisk()
	if err == nil && changed {
		m.view = ViewFileChangedPrompt
		return nil
	}

	m.save()
	return nil
}

func (m *Model) save() {
	if err := m.buf.Save(); err != nil {
		log.Printf("save %s: %v", m.buf.Filename(), err)
		m.setError(fmt.Sprintf("Error saving: %v", err))
		return
	}
	m.setStatus("File saved")
}

func (m *Model) openSaveAs() tea.Cmd {
	m.view = ViewSaveAs
	m.input = textinput.New()
	m.input.Prompt = "Save as: "
	m.input.SetValue(m.savePath)
	return m.input.Focus()
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		if err := m.buf.SaveAs(name); err != nil {
			log.Printf("save as %s: %v", name, err)
			m.setError(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		m.closeInput()
		m.setStatus("File saved")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleFileChangedPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.view = ViewMain
		m.save()
	case "n", "N", "esc":
		m.view = ViewMain
		m.setStatus("Save cancelled")
	}
	return m, nil
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.view = ViewMain
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusMsg = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.statusMsg = ""
	m.statusErr = false
}

// Frame returns the frame for the current state, without styling.
func (m *Model) Frame() render.Frame {
	return render.Render(m.buf, *m.state)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(render.Styled(m.Frame(), m.styles))

	switch m.view {
	case ViewEdit, ViewSaveAs:
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(m.input.View()))
	case ViewFileChangedPrompt:
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render("File changed on disk. Overwrite? (y/n)"))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.statusMsg))
		} else {
			b.WriteString(m.styles.Status.Render(m.statusMsg))
		}
	}

	return b.String()
}
