// Package tui implements the interactive fix picker used by
// `siglint fix -i`. It renders one list across all files; every entry
// toggles one suggestion, and confirming returns the accepted entries
// to the caller, which applies them.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user quits the picker without
// confirming; the caller leaves every file untouched.
var ErrAborted = errors.New("fix selection aborted")

// FixItem is one selectable suggestion.
type FixItem struct {
	Path    string
	Line    int
	Column  int
	RuleID  string
	Title   string
	OldText string
	NewText string
	// Edits is the number of text edits the suggestion carries; the
	// preview shows the first.
	Edits int
}

// RunFixPicker shows the picker and returns the indexes of the
// accepted items, in item order. It returns ErrAborted when the user
// quits without confirming.
func RunFixPicker(items []FixItem) ([]int, error) {
	m := newPickerModel(items)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("fix picker: %w", err)
	}

	pm, ok := final.(pickerModel)
	if !ok || pm.aborted {
		return nil, ErrAborted
	}
	return pm.accepted(), nil
}

type pickerModel struct {
	items    []FixItem
	selected []bool
	cursor   int

	preview viewport.Model
	width   int
	height  int
	ready   bool

	confirmed bool
	aborted   bool
}

func newPickerModel(items []FixItem) pickerModel {
	selected := make([]bool, len(items))
	for i := range selected {
		selected[i] = true // everything accepted until deselected
	}
	return pickerModel{
		items:    items,
		selected: selected,
	}
}

// accepted returns the selected item indexes in item order.
func (m pickerModel) accepted() []int {
	var out []int
	for i, sel := range m.selected {
		if sel {
			out = append(out, i)
		}
	}
	return out
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview = viewport.New(msg.Width, m.previewHeight())
		m.ready = true
		m.syncPreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.syncPreview()
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.syncPreview()
			}
		case " ":
			if len(m.items) > 0 {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "a":
			for i := range m.selected {
				m.selected[i] = true
			}
		case "n":
			for i := range m.selected {
				m.selected[i] = false
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "pgup":
			m.preview.HalfViewUp()
		case "pgdown":
			m.preview.HalfViewDown()
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// previewHeight is the space left for the diff preview below the list
// and above the help line.
func (m pickerModel) previewHeight() int {
	h := m.height - m.listHeight() - 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m pickerModel) listHeight() int {
	h := len(m.items)
	if limit := m.height / 2; h > limit && limit > 0 {
		h = limit
	}
	return h
}

// syncPreview loads the cursor item's before/after text into the
// viewport.
func (m *pickerModel) syncPreview() {
	if !m.ready || len(m.items) == 0 {
		return
	}
	it := m.items[m.cursor]

	var b strings.Builder
	b.WriteString(previewLabelStyle.Render("Before") + "\n")
	b.WriteString(previewOldStyle.Render(it.OldText) + "\n\n")
	b.WriteString(previewLabelStyle.Render("After") + "\n")
	b.WriteString(previewNewStyle.Render(it.NewText) + "\n")
	if it.Edits > 1 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("(+%d more edits)", it.Edits-1)) + "\n")
	}

	m.preview.Height = m.previewHeight()
	m.preview.Width = m.width
	m.preview.SetContent(b.String())
	m.preview.GotoTop()
}

// View implements tea.Model.
func (m pickerModel) View() string {
	if len(m.items) == 0 {
		return "No fixable issues.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Select fixes to apply (%d/%d)", len(m.accepted()), len(m.items))))
	b.WriteString("\n")

	// Keep the cursor visible when the list is taller than its pane.
	height := m.listHeight()
	if height == 0 {
		height = len(m.items)
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}

	for i := start; i < len(m.items) && i < start+height; i++ {
		it := m.items[i]

		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %s:%d:%d  %s  %s",
			check, it.Path, it.Line, it.Column, it.Title, mutedStyle.Render(it.RuleID))
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.preview.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space toggle · a all · n none · enter apply · q abort"))
	b.WriteString("\n")
	return b.String()
}
