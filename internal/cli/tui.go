package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(1, 2)
	labelStyle        = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorWhite).Background(colorDim)
	buttonActiveStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorWhite).Background(colorCyan).Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// InsertModel - confirmation modal for `add`
// =============================================================================

const (
	focusCount = iota
	focusPerRow
	focusSubmit
	focusStops
)

// InsertModel asks how many notes to add and how many go in each row, then
// waits for "Add Notes". Esc or ctrl+c cancels.
type InsertModel struct {
	Canvas string
	Source string

	inputs [2]textinput.Model
	focus  int
	err    string

	// Set when the user confirms.
	Confirmed bool
	Count     int
	PerRow    int
}

// NewInsertModel creates the modal with both fields prefilled.
func NewInsertModel(canvas, source string, count, perRow int) InsertModel {
	m := InsertModel{Canvas: canvas, Source: source, Count: count, PerRow: perRow}
	for i, v := range []int{count, perRow} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 4
		ti.Width = 6
		ti.SetValue(strconv.Itoa(v))
		m.inputs[i] = ti
	}
	m.inputs[focusCount].Focus()
	return m
}

func (m InsertModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InsertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.Confirmed = false
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			if m.focus != focusSubmit {
				return m.moveFocus(1), nil
			}
			return m.submit()
		}
	}

	if m.focus == focusSubmit {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m InsertModel) moveFocus(delta int) InsertModel {
	m.focus = (m.focus + delta + focusStops) % focusStops
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// submit parses both fields and quits when they are valid.
func (m InsertModel) submit() (tea.Model, tea.Cmd) {
	count, err := parseField(m.inputs[focusCount].Value(), "Number of notes", 0)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	perRow, err := parseField(m.inputs[focusPerRow].Value(), "Notes per row", 1)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	m.Count, m.PerRow = count, perRow
	m.Confirmed = true
	return m, tea.Quit
}

func parseField(v, label string, minimum int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	if n < minimum {
		return 0, fmt.Errorf("%s must be at least %d", label, minimum)
	}
	return n, nil
}

func (m InsertModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Insert random notes"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.Canvas + " · " + m.Source))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Number of notes") + m.inputs[focusCount].View() + "\n")
	b.WriteString(labelStyle.Render("Notes per row") + m.inputs[focusPerRow].View() + "\n\n")

	button := buttonStyle
	if m.focus == focusSubmit {
		button = buttonActiveStyle
	}
	b.WriteString(button.Render("Add Notes"))

	if m.err != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.err))
	}
	b.WriteString("\n\n" + StyleDim.Render("tab next  ⏎ confirm  esc cancel"))

	return modalStyle.Render(b.String())
}

// runInsertModal shows m and returns its final state.
func runInsertModal(m InsertModel) (InsertModel, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}
	return final.(InsertModel), nil
}
