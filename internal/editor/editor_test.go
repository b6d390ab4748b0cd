package editor

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bytedit/internal/buffer"
	"bytedit/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, buf *buffer.Buffer, savePath string) *Model {
	t.Helper()
	m := NewModel(buf, nil, savePath)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func openTemp(t *testing.T, data []byte) (*buffer.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	buf, err := buffer.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return buf, path
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := NewModel(buffer.New(), nil, "")
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestViewShowsFrame(t *testing.T) {
	m := newTestModel(t, buffer.NewFilled(32), "")
	out := m.View()
	for _, want := range []string{"Mode: [HEX]", "41 42 43", "Selected Offset (Dec): 0", "[Q] Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestArrowNavigation(t *testing.T) {
	m := newTestModel(t, buffer.NewFilled(64), "")

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", m.state.Cursor())
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.state.Cursor() != 18 {
		t.Fatalf("expected cursor 18, got %d", m.state.Cursor())
	}
	press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", m.state.Cursor())
	}
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.state.Cursor() != 1 {
		t.Errorf("up from the first row should be a no-op, got %d", m.state.Cursor())
	}
}

func TestModeSwitchKeys(t *testing.T) {
	m := newTestModel(t, buffer.NewFilled(8), "")

	press(m, runes("2"))
	if m.state.Mode() != view.ModeBinary {
		t.Errorf("expected binary mode, got %v", m.state.Mode())
	}
	press(m, runes("3"))
	if m.state.Mode() != view.ModeChar {
		t.Errorf("expected char mode, got %v", m.state.Mode())
	}
	if !strings.Contains(m.View(), "Mode: [CHAR]") {
		t.Error("view should show char mode")
	}
	press(m, runes("1"))
	if m.state.Mode() != view.ModeHex {
		t.Errorf("expected hex mode, got %v", m.state.Mode())
	}
}

func TestEditHexGrowsEmptyBuffer(t *testing.T) {
	buf := buffer.New()
	m := newTestModel(t, buf, "")

	press(m, runes("h"))
	if m.view != ViewEdit {
		t.Fatalf("expected edit prompt, got view %d", m.view)
	}
	typeText(m, "DE")
	press(m, enter)

	if m.view != ViewMain {
		t.Errorf("expected prompt to close, got view %d", m.view)
	}
	if buf.Size() != 1 || buf.Get(0) != 0xDE || !buf.IsModified() {
		t.Errorf("unexpected buffer: size %d byte %02X modified %v", buf.Size(), buf.Get(0), buf.IsModified())
	}
}

func TestEditHexInvalidIsDiscarded(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("h"))
	typeText(m, "zz")
	press(m, enter)

	if buf.Get(0) != 'A' {
		t.Errorf("byte changed to %02X", buf.Get(0))
	}
	if !m.statusErr || !strings.Contains(m.statusMsg, "Invalid hex") {
		t.Errorf("expected invalid hex status, got %q", m.statusMsg)
	}
}

func TestEditBinary(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")
	press(m, tea.KeyMsg{Type: tea.KeyRight})

	press(m, runes("b"))
	if m.state.Mode() != view.ModeBinary {
		t.Errorf("edit binary should switch to binary mode, got %v", m.state.Mode())
	}
	typeText(m, "10101010")
	press(m, enter)

	if buf.Get(1) != 0xAA {
		t.Errorf("expected 0xAA at offset 1, got %02X", buf.Get(1))
	}
}

func TestEditBinaryWrongLength(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("b"))
	typeText(m, "101")
	press(m, enter)

	if buf.Get(0) != 'A' {
		t.Errorf("byte changed to %02X", buf.Get(0))
	}
	if !m.statusErr {
		t.Error("expected an error status")
	}
}

func TestEditChar(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("c"))
	if m.state.Mode() != view.ModeChar {
		t.Errorf("edit char should switch to char mode, got %v", m.state.Mode())
	}
	typeText(m, "Z")
	press(m, enter)

	if buf.Get(0) != 90 {
		t.Errorf("expected 90 at offset 0, got %d", buf.Get(0))
	}
}

func TestEditCharEmptyIsDiscarded(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("c"), enter)
	if buf.Get(0) != 'A' {
		t.Errorf("byte changed to %02X", buf.Get(0))
	}
	if !m.statusErr {
		t.Error("expected an error status")
	}
}

func TestEditEscapeCancels(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("h"))
	typeText(m, "00")
	press(m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.view != ViewMain {
		t.Errorf("expected main view, got %d", m.view)
	}
	if buf.Get(0) != 'A' {
		t.Errorf("byte changed to %02X", buf.Get(0))
	}
}

func TestEditPromptSwallowsCommandKeys(t *testing.T) {
	buf := buffer.NewFilled(4)
	m := newTestModel(t, buf, "")

	press(m, runes("h"), runes("q"), runes("s"))
	if m.view != ViewEdit {
		t.Errorf("expected prompt to stay open, got view %d", m.view)
	}
	if m.input.Value() != "qs" {
		t.Errorf("expected keys to reach the prompt, got %q", m.input.Value())
	}
	if buf.Size() != 4 || buf.Get(0) != 'A' {
		t.Error("buffer changed while typing in the prompt")
	}
}

func TestSaveExistingFile(t *testing.T) {
	buf, path := openTemp(t, []byte{0x01, 0x02})
	m := newTestModel(t, buf, path)

	press(m, runes("h"))
	typeText(m, "7F")
	press(m, enter)
	press(m, runes("s"))

	if m.statusMsg != "File saved" {
		t.Errorf("expected saved status, got %q", m.statusMsg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 0x7F {
		t.Errorf("expected 0x7F on disk, got %02X", data[0])
	}
	if buf.IsModified() {
		t.Error("buffer should be clean after save")
	}
}

func TestSaveUnnamedOpensSaveAs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "fresh.bin")
	buf := buffer.NewFilled(26)
	m := newTestModel(t, buf, target)

	press(m, runes("s"))
	if m.view != ViewSaveAs {
		t.Fatalf("expected save-as prompt, got view %d", m.view)
	}
	if m.input.Value() != target {
		t.Errorf("expected prompt prefilled with %q, got %q", target, m.input.Value())
	}

	press(m, enter)
	if m.view != ViewMain {
		t.Errorf("expected prompt to close, got view %d", m.view)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		t.Errorf("unexpected file content %q", data)
	}
	if buf.Filename() != target {
		t.Errorf("expected filename %q, got %q", target, buf.Filename())
	}
}

func TestSaveAsFailureKeepsPrompt(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "dir", "f.bin")
	m := newTestModel(t, buffer.NewFilled(2), target)

	press(m, runes("s"), enter)
	if m.view != ViewSaveAs {
		t.Errorf("expected prompt to stay open, got view %d", m.view)
	}
	if !m.statusErr {
		t.Error("expected an error status")
	}
}

func TestSaveFileChangedOnDisk(t *testing.T) {
	buf, path := openTemp(t, []byte("abc"))
	m := newTestModel(t, buf, path)

	if err := os.WriteFile(path, []byte("xyz"), 0644); err != nil {
		t.Fatal(err)
	}

	press(m, runes("s"))
	if m.view != ViewFileChangedPrompt {
		t.Fatalf("expected changed-on-disk prompt, got view %d", m.view)
	}
	if !strings.Contains(m.View(), "File changed on disk") {
		t.Error("view should show the overwrite prompt")
	}

	press(m, runes("n"))
	data, _ := os.ReadFile(path)
	if string(data) != "xyz" {
		t.Errorf("declined overwrite changed the file to %q", data)
	}

	press(m, runes("s"), runes("y"))
	data, _ = os.ReadFile(path)
	if string(data) != "abc" {
		t.Errorf("expected overwrite with abc, got %q", data)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, buffer.NewFilled(4), "")
	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUnrecognizedKeyIsIgnored(t *testing.T) {
	m := newTestModel(t, buffer.NewFilled(4), "")
	before := *m.state
	if cmd := press(m, runes("z")); cmd != nil {
		t.Error("expected no command")
	}
	if *m.state != before {
		t.Error("state changed on unrecognized key")
	}
}

func TestRejectedMoveIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	m := newTestModel(t, buffer.NewFilled(4), "")
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.state.Cursor())
	}
	if !strings.Contains(logs.String(), "move_left rejected at offset 0 in HEX mode") {
		t.Errorf("unexpected log output %q", logs.String())
	}

	logs.Reset()
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if logs.Len() != 0 {
		t.Errorf("expected no log for an accepted move, got %q", logs.String())
	}
}
