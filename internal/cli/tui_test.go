package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m InsertModel, keys ...string) (InsertModel, tea.Cmd) {
	var cmd tea.Cmd
	var model tea.Model = m
	for _, k := range keys {
		model, cmd = model.Update(key(k))
	}
	return model.(InsertModel), cmd
}

func TestInsertModelConfirmDefaults(t *testing.T) {
	m := NewInsertModel("Board.canvas", "vault", 5, 3)
	m, cmd := send(m, "enter", "enter", "enter")
	if !m.Confirmed || m.Count != 5 || m.PerRow != 3 {
		t.Errorf("model = %+v", m)
	}
	if cmd == nil {
		t.Error("confirming should quit")
	}
}

func TestInsertModelEdit(t *testing.T) {
	m := NewInsertModel("Board.canvas", "vault", 5, 3)
	m, _ = send(m, "backspace", "8", "tab", "backspace", "2", "tab", "enter")
	if !m.Confirmed || m.Count != 8 || m.PerRow != 2 {
		t.Errorf("Count=%d PerRow=%d Confirmed=%v", m.Count, m.PerRow, m.Confirmed)
	}
}

func TestInsertModelInvalid(t *testing.T) {
	m := NewInsertModel("Board.canvas", "vault", 5, 3)
	m, _ = send(m, "tab", "backspace", "0", "tab", "enter")
	if m.Confirmed {
		t.Fatal("zero notes per row should not confirm")
	}
	if !strings.Contains(m.View(), "Notes per row must be at least 1") {
		t.Errorf("view does not show the error:\n%s", m.View())
	}
}

func TestInsertModelCancel(t *testing.T) {
	m := NewInsertModel("Board.canvas", "vault", 5, 3)
	m, cmd := send(m, "esc")
	if m.Confirmed || cmd == nil {
		t.Errorf("esc should cancel and quit, got Confirmed=%v", m.Confirmed)
	}
}

func TestInsertModelView(t *testing.T) {
	v := NewInsertModel("Board.canvas", `search "idea"`, 5, 3).View()
	for _, want := range []string{"Number of notes", "Notes per row", "Add Notes", "Board.canvas"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestParseField(t *testing.T) {
	if n, err := parseField(" 4 ", "x", 1); err != nil || n != 4 {
		t.Errorf("parseField = %d, %v", n, err)
	}
	if _, err := parseField("four", "x", 1); err == nil {
		t.Error("expected error for non-number")
	}
	if _, err := parseField("0", "x", 1); err == nil {
		t.Error("expected error below minimum")
	}
}
